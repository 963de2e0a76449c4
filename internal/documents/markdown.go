package documents

import (
	"fmt"
	"strings"
)

// ChecklistMarkdown renders the cleaned checklist as a document with one
// numbered section per item.
func ChecklistMarkdown(c Checklist) string {
	var rows []string

	rows = append(rows, "\n## Documents to Create\n")
	if len(c.DocumentsToCreate) > 0 {
		for i, item := range c.DocumentsToCreate {
			if i > 0 {
				rows = append(rows, "")
			}
			rows = append(rows, fmt.Sprintf("### %d. %s", i+1, item.DocumentName))
			rows = append(rows, fmt.Sprintf("\n**ID:** %s", item.ID))
			rows = append(rows, fmt.Sprintf("\n**Description:** %s", item.Description))
			rows = append(rows, fmt.Sprintf("\n**Responsible Role Type:** %s", item.ResponsibleRoleType))
			if item.DocumentTemplatePrimary != nil && *item.DocumentTemplatePrimary != "" {
				rows = append(rows, fmt.Sprintf("\n**Primary Template:** %s", *item.DocumentTemplatePrimary))
			}
			if item.DocumentTemplateSecondary != nil && *item.DocumentTemplateSecondary != "" {
				rows = append(rows, fmt.Sprintf("\n**Secondary Template:** %s", *item.DocumentTemplateSecondary))
			}
			rows = append(rows, "\n**Steps:**\n")
			rows = append(rows, steps(item.StepsToCreate)...)
			if item.ApprovalAuthorities != nil && *item.ApprovalAuthorities != "" {
				rows = append(rows, fmt.Sprintf("\n**Approval Authorities:** %s", *item.ApprovalAuthorities))
			}
		}
	} else {
		rows = append(rows, "\n*No documents identified to create.*")
	}

	rows = append(rows, "\n## Documents to Find\n")
	if len(c.DocumentsToFind) > 0 {
		for i, item := range c.DocumentsToFind {
			if i > 0 {
				rows = append(rows, "")
			}
			rows = append(rows, fmt.Sprintf("### %d. %s", i+1, item.DocumentName))
			rows = append(rows, fmt.Sprintf("\n**ID:** %s", item.ID))
			rows = append(rows, fmt.Sprintf("\n**Description:** %s", item.Description))
			if item.RecencyRequirement != nil && *item.RecencyRequirement != "" {
				rows = append(rows, fmt.Sprintf("\n**Recency Requirement:** %s", *item.RecencyRequirement))
			}
			rows = append(rows, fmt.Sprintf("\n**Responsible Role Type:** %s", item.ResponsibleRoleType))
			rows = append(rows, fmt.Sprintf("\n**Access Difficulty:** %s", item.AccessDifficulty))
			rows = append(rows, "\n**Steps:**\n")
			rows = append(rows, steps(item.StepsToFind)...)
		}
	} else {
		rows = append(rows, "\n*No documents identified to find.*")
	}

	return strings.Join(rows, "\n")
}

func steps(items []string) []string {
	if len(items) == 0 {
		return []string{"- *(No steps provided)*"}
	}
	lines := make([]string, len(items))
	for i, step := range items {
		lines[i] = "- " + step
	}
	return lines
}
