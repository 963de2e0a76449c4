// Package premortem generates a premortem risk analysis: assume the plan has
// already failed, then work backward to the assumptions that killed it.
//
// Each run asks for batches of exactly 3 assumptions and 3 failure modes, one
// failure mode per archetype. The full analysis runs three batches in one
// conversation so later batches can avoid repeating earlier themes.
package premortem

import (
	"context"
	"fmt"
	"strings"

	"github.com/plankit/plankit/internal/conversation"
	"github.com/plankit/plankit/internal/llm"
	"github.com/plankit/plankit/pkg/report"
)

// AssumptionItem is a foundational belief to validate immediately. If the
// belief is false the plan is in danger, so each comes with a concrete test
// and the result that would falsify it.
type AssumptionItem struct {
	AssumptionID string `json:"assumption_id"`
	Statement    string `json:"statement"`
	TestNow      string `json:"test_now"`
	Falsifier    string `json:"falsifier"`
}

// FailureModeItem is one story of how the plan could fail, rooted in a single
// assumption. Likelihood and impact are 1-5 scales; either may be absent when
// the model declined to score.
type FailureModeItem struct {
	FailureModeIndex  int      `json:"failure_mode_index"`
	RootCauseID       string   `json:"root_cause_assumption_id"`
	Archetype         string   `json:"failure_mode_archetype"`
	Title             string   `json:"failure_mode_title"`
	RiskAnalysis      string   `json:"risk_analysis"`
	EarlyWarningSigns []string `json:"early_warning_signs"`
	Owner             *string  `json:"owner"`
	Likelihood        *int     `json:"likelihood_5"`
	Impact            *int     `json:"impact_5"`
	Tripwires         []string `json:"tripwires"`
	Playbook          []string `json:"playbook"`
	StopRule          *string  `json:"stop_rule"`
}

// Analysis is the merged premortem across all batches.
type Analysis struct {
	AssumptionsToKill []AssumptionItem  `json:"assumptions_to_kill"`
	FailureModes      []FailureModeItem `json:"failure_modes"`
}

// Detail selects how many batches to run.
type Detail string

const (
	// DetailFast runs a single batch: 3 assumptions, 3 failure modes.
	DetailFast Detail = "fast"
	// DetailFull runs three batches for 9 of each.
	DetailFull Detail = "full"
)

const systemPrompt = `
Persona: You are a senior project analyst. Your primary goal is to write compelling, detailed, and distinct failure stories that are also operationally actionable.

Objective: Imagine the user's project has failed completely. Generate a comprehensive premortem analysis as a single JSON object.

Instructions:
1.  Generate a top-level ` + "`assumptions_to_kill`" + ` array containing exactly 3 critical assumptions to test, each with an ` + "`id`, `statement`, `test_now`, and `falsifier`" + `. An assumption is a belief held without proof (e.g., "The supply chain is stable"), not a project goal.
2.  Generate a top-level ` + "`failure_modes`" + ` array containing exactly 3 detailed, story-like failure failure_modes, one for each archetype: Process/Financial, Technical/Logistical, and Market/Human.
3.  **CRITICAL LINKING STEP: For each ` + "`failure_mode`" + `, you MUST identify its root cause by setting the ` + "`root_cause_assumption_id`" + ` field to the ` + "`assumption_id`" + ` of one of the assumptions you created in step 1. ** Each assumption ("A1", "A2", "A3", "A4", etc.) must be used as a root cause exactly once.
4.  Each story in the ` + "`failure_modes`" + ` array must be a detailed, multi-paragraph story with a clear causal chain. Do not write short summaries.
5.  For each of the 3 failure_modes, you MUST populate all the following fields: ` + "`failure_mode_index`, `failure_mode_archetype`, `failure_mode_title`, `risk_analysis`, `early_warning_signs`, `owner`, `likelihood_5`, `impact_5`, `tripwires`, `playbook`, and `stop_rule`" + `.
6.  **CRITICAL:** Each of the 3 failure_modes must be distinct and unique. Do not repeat the same story, phrasing, or playbook actions. Tailor each one specifically to its archetype (e.g., the financial failure should be about money and process, the technical failure about engineering and materials, the market failure about public perception and competition).
7.  Tripwires MUST be objectively measurable (use operators like <=, >=, =, %, days, counts); avoid vague terms like "significant" or "many".
8.  The ` + "`playbook`" + ` array MUST contain exactly 3 actions as follows:
    1.  An immediate containment/control action, e.g., 'Contain: Stop the bleeding.'
    2.  An assessment/triage action, e.g., 'Assess: Figure out how bad the damage is.'
    3.  A strategic response action, e.g., 'Respond: Take strategic action based on the assessment.'
9.  The ` + "`stop_rule`" + ` MUST be a hard, non-negotiable condition for project cancellation or a major pivot.
10. Your entire output must be a single, valid JSON object. For any follow-up requests, you MUST regenerate the full JSON object including all required fields, not just the part being changed. Do not add any text or explanation outside of the JSON structure.

FULL-OBJECT, TWO-KEYS ONLY (HARD RULE)
- The top-level JSON MUST contain exactly two keys: "assumptions_to_kill" and "failure_modes". No other keys are allowed.
- On follow-up requests (even if they ask for "only assumptions"), you MUST return the full JSON object with BOTH keys present and populated. Never omit or leave "failure_modes" empty.
- If asked to start at A4/A7/etc., create exactly 3 new assumptions with those IDs and REBUILD all 3 failure_modes to reference them (each assumption used exactly once).
- The message must END immediately after the closing "}" of the JSON. No markdown or text after it.
- Self-check before sending: output starts with "{" and ends with "}", includes BOTH required keys, has exactly 3 assumptions and exactly 3 failure_modes.
`

var followUpPrompts = []string{
	"Generate 3 new assumptions that are thematically different from the previous ones. Start assumption_id at A4.",
	"Generate 3 new assumptions that are thematically different from the previous ones and covers different archetypes. Start assumption_id at A7.",
}

// Result is the completed premortem with its provenance.
type Result struct {
	SystemPrompt string
	UserPrompt   string
	Analysis     Analysis
	Metadata     report.RunMetadata
	Markdown     string
}

// Execute runs the premortem conversation against exec and merges the batch
// responses. The merged analysis must pass referential-integrity validation;
// a model that produced dangling or reused root-cause links fails the run.
func Execute(ctx context.Context, exec *llm.Executor, detail Detail, userPrompt string) (*Result, error) {
	if strings.TrimSpace(userPrompt) == "" {
		return nil, fmt.Errorf("premortem needs a plan description")
	}

	prompts := []string{userPrompt}
	if detail != DetailFast {
		prompts = append(prompts, followUpPrompts...)
	}

	sys := strings.TrimSpace(systemPrompt)
	turns, err := conversation.Run[Analysis](ctx, exec, sys, prompts)
	if err != nil {
		return nil, err
	}

	var merged Analysis
	calls := make([]report.CallMetadata, 0, len(turns))
	for _, turn := range turns {
		merged.AssumptionsToKill = append(merged.AssumptionsToKill, turn.Response.AssumptionsToKill...)
		merged.FailureModes = append(merged.FailureModes, turn.Response.FailureModes...)
		calls = append(calls, report.Call(turn.Model, turn.ClassName, turn.Raw))
	}

	if err := Validate(merged); err != nil {
		return nil, err
	}

	return &Result{
		SystemPrompt: sys,
		UserPrompt:   userPrompt,
		Analysis:     merged,
		Metadata:     report.Run(calls),
		Markdown:     Markdown(merged),
	}, nil
}

// SaveJSON writes the analysis with its metadata as indented JSON.
func (r *Result) SaveJSON(path string) error {
	doc := struct {
		Analysis
		Metadata     report.RunMetadata `json:"metadata"`
		SystemPrompt string             `json:"system_prompt"`
		UserPrompt   string             `json:"user_prompt"`
	}{r.Analysis, r.Metadata, r.SystemPrompt, r.UserPrompt}
	return report.SaveJSON(path, doc)
}

// SaveMarkdown writes the rendered markdown document.
func (r *Result) SaveMarkdown(path string) error {
	return report.SaveText(path, r.Markdown)
}
