package documents

import (
	"context"
	"fmt"
	"strings"

	"github.com/plankit/plankit/internal/conversation"
	"github.com/plankit/plankit/internal/llm"
	"github.com/plankit/plankit/internal/purpose"
	"github.com/plankit/plankit/pkg/report"
)

// IdentifyResult is the outcome of a document identification run.
type IdentifyResult struct {
	SystemPrompt string
	UserPrompt   string
	Raw          DocumentDetails
	Checklist    Checklist
	Metadata     report.RunMetadata
	Markdown     string
}

// Identify asks the model which documents must be created or found before
// detailed planning can begin, using the prompt variant for p.
func Identify(ctx context.Context, exec *llm.Executor, p purpose.Purpose, userPrompt string) (*IdentifyResult, error) {
	if strings.TrimSpace(userPrompt) == "" {
		return nil, fmt.Errorf("document identification needs a plan description")
	}
	systemPrompt, err := promptFor(identifyPrompts, p)
	if err != nil {
		return nil, err
	}

	turns, err := conversation.Run[DocumentDetails](ctx, exec, systemPrompt, []string{userPrompt})
	if err != nil {
		return nil, err
	}
	turn := turns[0]

	checklist := Cleanup(turn.Response)
	return &IdentifyResult{
		SystemPrompt: systemPrompt,
		UserPrompt:   userPrompt,
		Raw:          turn.Response,
		Checklist:    checklist,
		Metadata:     report.Run([]report.CallMetadata{report.Call(turn.Model, turn.ClassName, turn.Raw)}),
		Markdown:     ChecklistMarkdown(checklist),
	}, nil
}

// SaveJSON writes the raw response with its metadata as indented JSON.
func (r *IdentifyResult) SaveJSON(path string) error {
	doc := struct {
		DocumentDetails
		Metadata     report.RunMetadata `json:"metadata"`
		SystemPrompt string             `json:"system_prompt"`
		UserPrompt   string             `json:"user_prompt"`
	}{r.Raw, r.Metadata, r.SystemPrompt, r.UserPrompt}
	return report.SaveJSON(path, doc)
}

// SaveMarkdown writes the rendered checklist.
func (r *IdentifyResult) SaveMarkdown(path string) error {
	return report.SaveText(path, r.Markdown)
}

// SaveChecklist writes the cleaned document lists as indented JSON.
func (r *IdentifyResult) SaveChecklist(path string) error {
	return report.SaveJSON(path, r.Checklist)
}
