// Package experts finds the professional roles best suited to review a plan.
// The model is asked for exactly 4 experts, then once more for 4 different
// ones, and the two batches are merged.
package experts

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/plankit/plankit/internal/conversation"
	"github.com/plankit/plankit/internal/llm"
	"github.com/plankit/plankit/pkg/report"
)

// Expert is the wire schema of one suggested reviewer role.
type Expert struct {
	Title          string `json:"expert_title"`
	Knowledge      string `json:"expert_knowledge"`
	Why            string `json:"expert_why"`
	What           string `json:"expert_what"`
	RelevantSkills string `json:"expert_relevant_skills"`
	SearchQuery    string `json:"expert_search_query"`
}

// ExpertDetails is the wire schema of one batch.
type ExpertDetails struct {
	Experts []Expert `json:"experts"`
}

// CleanedExpert is an expert with a stable identity and shortened field names.
type CleanedExpert struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Knowledge   string `json:"knowledge"`
	Why         string `json:"why"`
	What        string `json:"what"`
	Skills      string `json:"skills"`
	SearchQuery string `json:"search_query"`
}

const systemPrompt = `
You are an expert strategist who identifies key professional roles needed to review and improve a user-provided document or plan.

GUIDING PRINCIPLES
- Direct Alignment: Ensure each expert directly corresponds to specific sections, themes, risks, or opportunities within the user's document (e.g., linking a 'Market Analyst' to the 'Opportunities' section of a SWOT analysis).
- Interdisciplinary Diversity: Suggest a mix of experts, including non-obvious but high-value roles that can offer unique, interdisciplinary insights.
- Contextual Relevance: Consider geographical and regional factors mentioned in the document that might influence the expertise required or how one might search for it.

OUTPUT CONTRACT
- Return ONE value: a valid JSON object only. No markdown, no prose, no backticks, no metadata.
- Root shape exactly:
  {"experts":[
    {"expert_title":"string",
     "expert_knowledge":"string",
     "expert_why":"string",
     "expert_what":"string",
     "expert_relevant_skills":"string",
     "expert_search_query":"string"}
  ]}
- Exactly 4 experts per response. Never more, never less.
- Strings only. No nulls. No "N/A". Use short, specific phrases.
- Keep each string ≤ 160 characters. If token pressure rises, shorten phrasing—never truncate JSON.

FIELD RULES
- expert_title: Concise, professional role label. Avoid fluff. No duplicates within this list.
- expert_knowledge: Brief, comma-separated list of nouns/phrases specifying industry knowledge (e.g., e-commerce logistics, medical device regulation).
- expert_why: The unique reason THIS role is needed for THIS input. **Link their expertise to a specific part of the document.**
- expert_what: The first concrete, high-leverage action this expert would take regarding the document.
- expert_relevant_skills: Brief, comma-separated skills; avoid repeating expert_knowledge verbatim.
- expert_search_query: 3-7 comma-separated search terms for a human to use on Google/LinkedIn. No quotation marks or periods.

CONTEXT & DEDUP
- Maintain an international perspective unless the user input specifies a jurisdiction; then align to it.
- If the conversation already contains an assistant message with a JSON {"experts":[...]} from a previous step, treat those as "already selected" and DO NOT repeat any titles or near-duplicate roles. Produce 4 new, non-overlapping roles.

FORMAT GUARDRAILS
- Output must start with "{" and end with "}".
- No trailing commas anywhere.
- No extra keys beyond the schema.
- No line breaks are required; minified JSON preferred.

SELF-CHECK (silent)
Before emitting, verify: exactly 4 objects under "experts"; all fields present and non-empty; no duplication; JSON is valid and closed.
`

// followUpPrompt asks for a second batch that must not overlap the first.
const followUpPrompt = "4 more please"

// Result is the merged expert list with its provenance.
type Result struct {
	SystemPrompt string
	UserPrompt   string
	Raw          ExpertDetails
	Experts      []CleanedExpert
	Metadata     report.RunMetadata
}

// Find runs the two-batch expert conversation. A failed second batch leaves
// a valid 4-expert result; a failed first batch fails the run.
func Find(ctx context.Context, exec *llm.Executor, userPrompt string) (*Result, error) {
	if strings.TrimSpace(userPrompt) == "" {
		return nil, fmt.Errorf("expert finding needs a plan description")
	}

	sys := strings.TrimSpace(systemPrompt)
	turns, err := conversation.Run[ExpertDetails](ctx, exec, sys, []string{userPrompt, followUpPrompt})
	if err != nil {
		return nil, err
	}

	var merged ExpertDetails
	calls := make([]report.CallMetadata, 0, len(turns))
	for _, turn := range turns {
		merged.Experts = append(merged.Experts, turn.Response.Experts...)
		calls = append(calls, report.Call(turn.Model, turn.ClassName, turn.Raw))
	}

	cleaned := make([]CleanedExpert, 0, len(merged.Experts))
	for _, e := range merged.Experts {
		cleaned = append(cleaned, CleanedExpert{
			ID:          uuid.NewString(),
			Title:       e.Title,
			Knowledge:   e.Knowledge,
			Why:         e.Why,
			What:        e.What,
			Skills:      e.RelevantSkills,
			SearchQuery: e.SearchQuery,
		})
	}

	return &Result{
		SystemPrompt: sys,
		UserPrompt:   userPrompt,
		Raw:          merged,
		Experts:      cleaned,
		Metadata:     report.Run(calls),
	}, nil
}

// SaveJSON writes the merged raw response with its metadata.
func (r *Result) SaveJSON(path string) error {
	doc := struct {
		ExpertDetails
		Metadata     report.RunMetadata `json:"metadata"`
		SystemPrompt string             `json:"system_prompt"`
		UserPrompt   string             `json:"user_prompt"`
	}{r.Raw, r.Metadata, r.SystemPrompt, r.UserPrompt}
	return report.SaveJSON(path, doc)
}

// SaveCleaned writes the cleaned expert list.
func (r *Result) SaveCleaned(path string) error {
	return report.SaveJSON(path, r.Experts)
}
