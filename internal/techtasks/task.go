// Package techtasks breaks a project plan into language-agnostic technical
// tasks a developer can implement in order.
package techtasks

import (
	"fmt"
	"strings"
)

// AcceptanceCriterion is one testable condition for task completion.
type AcceptanceCriterion struct {
	Criterion string `json:"criterion"`
}

// TaskExample illustrates expected behavior or an edge case.
type TaskExample struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// TechnicalTask is a single unit of work. Optional fields marshal only when
// set so a saved task round-trips without noise.
type TechnicalTask struct {
	ID                 string                `json:"id"`
	Title              string                `json:"title"`
	Description        string                `json:"description"`
	AcceptanceCriteria []AcceptanceCriterion `json:"acceptance_criteria"`
	Examples           []TaskExample         `json:"examples"`
	Dependencies       []string              `json:"dependencies,omitempty"`
	EstimatedEffort    *string               `json:"estimated_effort,omitempty"`
	Priority           *string               `json:"priority,omitempty"`
	Tags               []string              `json:"tags,omitempty"`
	Notes              *string               `json:"notes,omitempty"`
}

// ToMarkdown renders the task as a standalone document.
func (t TechnicalTask) ToMarkdown() string {
	var lines []string

	lines = append(lines, fmt.Sprintf("# Task: %s", t.Title))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("**ID:** %s", t.ID))
	lines = append(lines, t.headerFields()...)
	lines = append(lines, t.body("##")...)

	return strings.Join(lines, "\n")
}

func (t TechnicalTask) headerFields() []string {
	var lines []string
	if t.Priority != nil && *t.Priority != "" {
		lines = append(lines, fmt.Sprintf("**Priority:** %s", *t.Priority))
	}
	if t.EstimatedEffort != nil && *t.EstimatedEffort != "" {
		lines = append(lines, fmt.Sprintf("**Estimated Effort:** %s", *t.EstimatedEffort))
	}
	if len(t.Tags) > 0 {
		lines = append(lines, fmt.Sprintf("**Tags:** %s", strings.Join(t.Tags, ", ")))
	}
	return lines
}

// body renders the shared sections at the given heading level.
func (t TechnicalTask) body(h string) []string {
	var lines []string

	lines = append(lines, "")
	lines = append(lines, h+" Description")
	lines = append(lines, "")
	lines = append(lines, t.Description)
	lines = append(lines, "")

	if len(t.Dependencies) > 0 {
		lines = append(lines, h+" Dependencies")
		lines = append(lines, "")
		for _, dep := range t.Dependencies {
			lines = append(lines, fmt.Sprintf("- Task %s", dep))
		}
		lines = append(lines, "")
	}

	lines = append(lines, h+" Acceptance Criteria")
	lines = append(lines, "")
	for i, criterion := range t.AcceptanceCriteria {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, criterion.Criterion))
	}
	lines = append(lines, "")

	if len(t.Examples) > 0 {
		lines = append(lines, h+" Examples")
		lines = append(lines, "")
		for _, example := range t.Examples {
			lines = append(lines, h+"# "+example.Title)
			lines = append(lines, "")
			lines = append(lines, example.Description)
			lines = append(lines, "")
		}
	}

	if t.Notes != nil && *t.Notes != "" {
		lines = append(lines, h+" Notes")
		lines = append(lines, "")
		lines = append(lines, *t.Notes)
		lines = append(lines, "")
	}

	return lines
}

// TaskList is the full breakdown for one project.
type TaskList struct {
	ProjectName        string          `json:"project_name"`
	ProjectDescription string          `json:"project_description"`
	Tasks              []TechnicalTask `json:"tasks"`
}

// ToMarkdown renders the whole list, one numbered section per task.
func (l TaskList) ToMarkdown() string {
	var lines []string

	lines = append(lines, fmt.Sprintf("# Technical Task List: %s", l.ProjectName))
	lines = append(lines, "")
	lines = append(lines, l.ProjectDescription)
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("**Total Tasks:** %d", len(l.Tasks)))
	lines = append(lines, "")
	lines = append(lines, "---")
	lines = append(lines, "")

	for i, task := range l.Tasks {
		lines = append(lines, fmt.Sprintf("## Task %d: %s", i+1, task.Title))
		lines = append(lines, "")
		lines = append(lines, fmt.Sprintf("**ID:** %s", task.ID))
		lines = append(lines, task.headerFields()...)
		lines = append(lines, task.body("###")...)
		lines = append(lines, "---")
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}
