package techtasks

import (
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/plankit/plankit/internal/conversation"
	"github.com/plankit/plankit/internal/llm"
	"github.com/plankit/plankit/pkg/report"
)

const systemPrompt = `
You are an expert software architect and project planner tasked with breaking down project plans into actionable, language-agnostic technical tasks for developers.

Your goal is to generate a comprehensive list of technical tasks that:
1. Are completely agnostic of programming language and frameworks - focus on logical requirements and business logic
2. Can be followed sequentially by a developer to build the application
3. Include all necessary details: title, description, acceptance criteria, examples, dependencies, effort estimates, and implementation notes

For each task, you must provide:
- **title**: A clear, concise title (3-8 words) that describes what needs to be built
- **description**: A detailed description explaining:
  - What needs to be built and why
  - The business logic and requirements
  - Key technical considerations (without prescribing specific technologies)
  - How this task fits into the overall system
- **acceptance_criteria**: A list of 3-5 specific, testable conditions that define when the task is complete. Each criterion should be:
  - Specific and measurable
  - Testable (can be verified)
  - Focused on behavior and outcomes, not implementation details
- **examples**: 2-4 concrete examples that illustrate:
  - Expected behavior and edge cases
  - Sample inputs and outputs
  - Implementation approaches (conceptually, not code)
  - Common scenarios the feature should handle
- **dependencies**: List of other task numbers that must be completed first
- **estimated_effort**: Size estimate (Small: 1-4 hours, Medium: 4-16 hours, Large: 16+ hours, or X-Large: multiple days)
- **priority**: Priority level (High, Medium, Low) based on dependencies and criticality
- **tags**: Relevant tags for categorization (e.g., 'backend', 'frontend', 'database', 'api', 'authentication', 'data-model', 'business-logic', 'ui', 'validation', 'integration')
- **notes**: Additional implementation tips, considerations, security concerns, or references to relevant sections of the project plan

Guidelines:
- Break down complex features into smaller, manageable tasks
- Ensure tasks are logically ordered with clear dependencies
- Start with foundational tasks (data models, core logic) before building on them (APIs, UI, integrations)
- Each task should be independently testable
- Focus on WHAT needs to be built, not HOW (avoid language/framework specifics)
- Be comprehensive but practical - tasks should be completable within the estimated time
- Consider all aspects: data models, business logic, APIs, user interfaces, validation, error handling, security, testing
- Use clear, professional language that any developer can understand

Output format:
Generate a JSON object with a "tasks" array, where each task follows this structure:
{
  "title": "Task title",
  "description": "Detailed description...",
  "acceptance_criteria": [
    {"criterion": "Specific testable condition 1"},
    {"criterion": "Specific testable condition 2"}
  ],
  "examples": [
    {"title": "Example scenario", "description": "Detailed example..."}
  ],
  "dependencies": [],
  "estimated_effort": "Medium",
  "priority": "High",
  "tags": ["tag1", "tag2"],
  "notes": "Additional notes..."
}
`

// SmartCriteria are the SMART requirements of a project plan.
type SmartCriteria struct {
	Specific   string `json:"specific"`
	Measurable string `json:"measurable"`
	Achievable string `json:"achievable"`
	Relevant   string `json:"relevant"`
	TimeBound  string `json:"time_bound"`
}

// ProjectPlan is the input for task generation.
type ProjectPlan struct {
	GoalStatement     string         `json:"goal_statement"`
	SmartCriteria     *SmartCriteria `json:"smart_criteria,omitempty"`
	Dependencies      []string       `json:"dependencies,omitempty"`
	ResourcesRequired []string       `json:"resources_required,omitempty"`
}

// wireCriterion tolerates both shapes models produce for acceptance
// criteria: the documented {"criterion": "..."} object and a bare string.
type wireCriterion struct {
	Criterion string
}

func (c *wireCriterion) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		c.Criterion = s
		return nil
	}
	var obj struct {
		Criterion string `json:"criterion"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	c.Criterion = obj.Criterion
	return nil
}

type wireTask struct {
	Title              string          `json:"title"`
	Description        string          `json:"description"`
	AcceptanceCriteria []wireCriterion `json:"acceptance_criteria"`
	Examples           []TaskExample   `json:"examples"`
	Dependencies       []string        `json:"dependencies"`
	EstimatedEffort    *string         `json:"estimated_effort"`
	Priority           *string         `json:"priority"`
	Tags               []string        `json:"tags"`
	Notes              *string         `json:"notes"`
}

type wireTaskList struct {
	Tasks []wireTask `json:"tasks"`
}

// Result is the generated breakdown with its provenance.
type Result struct {
	SystemPrompt string
	UserPrompt   string
	TaskList     TaskList
	Metadata     report.RunMetadata
}

// buildUserPrompt flattens the plan (and optional work breakdown structure)
// into the prompt the model sees.
func buildUserPrompt(plan ProjectPlan, wbs any) (string, error) {
	var parts []string
	parts = append(parts, "Generate a comprehensive technical task list for the following project:\n")

	if plan.GoalStatement != "" {
		parts = append(parts, fmt.Sprintf("**Project Goal:** %s\n", plan.GoalStatement))
	}
	if smart := plan.SmartCriteria; smart != nil {
		parts = append(parts, "\n**Project Requirements:**")
		parts = append(parts, fmt.Sprintf("- Specific: %s", orNA(smart.Specific)))
		parts = append(parts, fmt.Sprintf("- Measurable: %s", orNA(smart.Measurable)))
		parts = append(parts, fmt.Sprintf("- Achievable: %s", orNA(smart.Achievable)))
		parts = append(parts, fmt.Sprintf("- Relevant: %s", orNA(smart.Relevant)))
		parts = append(parts, fmt.Sprintf("- Time-bound: %s\n", orNA(smart.TimeBound)))
	}
	if len(plan.Dependencies) > 0 {
		parts = append(parts, "\n**Project Dependencies:**")
		for _, dep := range plan.Dependencies {
			parts = append(parts, "- "+dep)
		}
		parts = append(parts, "")
	}
	if len(plan.ResourcesRequired) > 0 {
		parts = append(parts, "\n**Resources Required:**")
		for _, resource := range plan.ResourcesRequired {
			parts = append(parts, "- "+resource)
		}
		parts = append(parts, "")
	}
	if wbs != nil {
		encoded, err := json.MarshalIndent(wbs, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encoding work breakdown structure: %w", err)
		}
		parts = append(parts, "\n**Work Breakdown Structure:**")
		parts = append(parts, string(encoded))
		parts = append(parts, "")
	}

	parts = append(parts, "\nGenerate a detailed, sequential list of technical tasks that will guide developers to build this application. Ensure tasks are language and framework agnostic, focusing on logical requirements and business functionality.")
	return strings.Join(parts, "\n"), nil
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// Generate asks the model for a task breakdown of plan. wbs is an optional
// work breakdown structure included verbatim for extra context.
func Generate(ctx context.Context, exec *llm.Executor, plan ProjectPlan, wbs any) (*Result, error) {
	if strings.TrimSpace(plan.GoalStatement) == "" {
		return nil, fmt.Errorf("task generation needs a goal statement")
	}

	sys := strings.TrimSpace(systemPrompt)
	userPrompt, err := buildUserPrompt(plan, wbs)
	if err != nil {
		return nil, err
	}

	turns, err := conversation.Run[wireTaskList](ctx, exec, sys, []string{userPrompt})
	if err != nil {
		return nil, err
	}
	turn := turns[0]

	tasks := make([]TechnicalTask, 0, len(turn.Response.Tasks))
	for i, wt := range turn.Response.Tasks {
		title := wt.Title
		if title == "" {
			title = fmt.Sprintf("Task %d", i+1)
		}
		criteria := make([]AcceptanceCriterion, 0, len(wt.AcceptanceCriteria))
		for _, c := range wt.AcceptanceCriteria {
			if c.Criterion != "" {
				criteria = append(criteria, AcceptanceCriterion{Criterion: c.Criterion})
			}
		}
		tasks = append(tasks, TechnicalTask{
			ID:                 uuid.NewString(),
			Title:              title,
			Description:        wt.Description,
			AcceptanceCriteria: criteria,
			Examples:           wt.Examples,
			Dependencies:       wt.Dependencies,
			EstimatedEffort:    wt.EstimatedEffort,
			Priority:           wt.Priority,
			Tags:               wt.Tags,
			Notes:              wt.Notes,
		})
	}

	warnDanglingDependencies(tasks)

	description := "No description available"
	if plan.SmartCriteria != nil && plan.SmartCriteria.Specific != "" {
		description = plan.SmartCriteria.Specific
	}

	return &Result{
		SystemPrompt: sys,
		UserPrompt:   userPrompt,
		TaskList: TaskList{
			ProjectName:        plan.GoalStatement,
			ProjectDescription: description,
			Tasks:              tasks,
		},
		Metadata: report.Run([]report.CallMetadata{report.Call(turn.Model, turn.ClassName, turn.Raw)}),
	}, nil
}

// warnDanglingDependencies flags dependency references that do not name any
// generated task. Models reference tasks by ordinal, so "1".."n" are the
// valid forms. Dependencies are informational, so unknowns are kept.
func warnDanglingDependencies(tasks []TechnicalTask) {
	known := make(map[string]bool, len(tasks))
	for i := range tasks {
		known[fmt.Sprintf("%d", i+1)] = true
	}
	for i, task := range tasks {
		for _, dep := range task.Dependencies {
			if !known[dep] {
				log.Warn().
					Int("task", i+1).
					Str("dependency", dep).
					Msg("dependency does not match any task")
			}
		}
	}
}

// SaveJSON writes the task list with its metadata as indented JSON.
func (r *Result) SaveJSON(path string) error {
	doc := struct {
		TaskList
		Metadata     report.RunMetadata `json:"metadata"`
		SystemPrompt string             `json:"system_prompt"`
		UserPrompt   string             `json:"user_prompt"`
	}{r.TaskList, r.Metadata, r.SystemPrompt, r.UserPrompt}
	return report.SaveJSON(path, doc)
}

// SaveMarkdown writes the rendered task list.
func (r *Result) SaveMarkdown(path string) error {
	return report.SaveText(path, r.TaskList.ToMarkdown())
}
