package premortem

import (
	"fmt"
	"strings"
)

// Markdown renders the analysis as a standalone document: an assumptions
// table, a failure mode summary table, then one detailed section per failure
// mode. Failure modes are numbered FM1, FM2, ... by position.
func Markdown(a Analysis) string {
	var rows []string

	rows = append(rows, "A premortem assumes the project has failed and works backward to identify the most likely causes.\n")

	rows = append(rows, "## Assumptions to Kill\n")
	rows = append(rows, "These foundational assumptions represent the project's key uncertainties. If proven false, they could lead to failure. Validate them immediately using the specified methods.\n")
	rows = append(rows, "| ID | Assumption | Validation Method | Failure Trigger |")
	rows = append(rows, "|----|------------|-------------------|-----------------|")
	for _, assumption := range a.AssumptionsToKill {
		rows = append(rows, fmt.Sprintf("| %s | %s | %s | %s |",
			assumption.AssumptionID, assumption.Statement, assumption.TestNow, assumption.Falsifier))
	}
	rows = append(rows, "\n")

	rows = append(rows, "## Failure Scenarios and Mitigation Plans\n")
	rows = append(rows, "Each scenario below links to a root-cause assumption and includes a detailed failure story, early warning signs, measurable tripwires, a response playbook, and a stop rule to guide decision-making.\n")

	rows = append(rows, "### Summary of Failure Modes\n")
	rows = append(rows, "| ID | Title | Archetype | Root Cause | Owner | Risk Level |")
	rows = append(rows, "|----|-------|-----------|------------|-------|------------|")
	for i, fm := range a.FailureModes {
		rows = append(rows, fmt.Sprintf("| FM%d | %s | %s | %s | %s | %s |",
			i+1, fm.Title, fm.Archetype, fm.RootCauseID, ownerOrDefault(fm.Owner), RiskLevelBrief(fm.Likelihood, fm.Impact)))
	}
	rows = append(rows, "\n")

	rows = append(rows, "### Failure Modes\n")
	for i, fm := range a.FailureModes {
		if i > 0 {
			rows = append(rows, "---\n")
		}
		rows = append(rows, fmt.Sprintf("#### FM%d - %s\n", i+1, fm.Title))
		rows = append(rows, fmt.Sprintf("- **Archetype**: %s", fm.Archetype))
		rows = append(rows, fmt.Sprintf("- **Root Cause**: Assumption %s", fm.RootCauseID))
		rows = append(rows, fmt.Sprintf("- **Owner**: %s", ownerOrDefault(fm.Owner)))
		rows = append(rows, fmt.Sprintf("- **Risk Level:** %s\n", RiskLevelVerbose(fm.Likelihood, fm.Impact)))

		rows = append(rows, "##### Failure Story")
		rows = append(rows, fm.RiskAnalysis+"\n")

		rows = append(rows, "##### Early Warning Signs")
		rows = append(rows, bulletList(fm.EarlyWarningSigns, "No early warning signs defined"))

		rows = append(rows, "\n##### Tripwires")
		rows = append(rows, bulletList(fm.Tripwires, "No tripwires defined"))

		rows = append(rows, "\n##### Response Playbook")
		rows = append(rows, bulletList(fm.Playbook, "No response actions defined"))
		rows = append(rows, "\n")

		stopRule := "Not specified"
		if fm.StopRule != nil && *fm.StopRule != "" {
			stopRule = *fm.StopRule
		}
		rows = append(rows, fmt.Sprintf("**STOP RULE:** %s\n", stopRule))
	}

	return strings.Join(rows, "\n")
}

func ownerOrDefault(owner *string) string {
	if owner == nil || *owner == "" {
		return "Unassigned"
	}
	return *owner
}

func bulletList(items []string, empty string) string {
	if len(items) == 0 {
		items = []string{empty}
	}
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "- " + item
	}
	return strings.Join(lines, "\n")
}
