package documents

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"github.com/plankit/plankit/internal/conversation"
	"github.com/plankit/plankit/internal/llm"
	"github.com/plankit/plankit/internal/purpose"
	"github.com/plankit/plankit/pkg/report"
)

// PreferredDocumentCount is how many documents to keep after filtering. The
// kept set may end up larger when a whole impact bucket pushes it past the
// target, or smaller when the list is short.
const PreferredDocumentCount = 5

// Impact is the assessed value of a document for the initial project phase.
type Impact string

const (
	ImpactCritical Impact = "Critical"
	ImpactHigh     Impact = "High"
	ImpactMedium   Impact = "Medium"
	ImpactLow      Impact = "Low"
)

// ImpactItem is the model's verdict on a single document, keyed by the
// integer id it was presented under.
type ImpactItem struct {
	ID           int    `json:"id"`
	Rationale    string `json:"rationale"`
	ImpactRating Impact `json:"impact_rating"`
}

// ImpactAssessment is the wire schema of a filtering run.
type ImpactAssessment struct {
	DocumentList []ImpactItem `json:"document_list"`
	Summary      string       `json:"summary"`
}

// KeepIDs selects the documents to keep: take every Critical document, then
// widen bucket by bucket (High, Medium, Low) while the kept set is still
// below PreferredDocumentCount. Items with an unrecognized rating are
// dropped.
func KeepIDs(a ImpactAssessment) map[int]bool {
	buckets := map[Impact][]int{}
	for _, item := range a.DocumentList {
		switch item.ImpactRating {
		case ImpactCritical, ImpactHigh, ImpactMedium, ImpactLow:
			buckets[item.ImpactRating] = append(buckets[item.ImpactRating], item.ID)
		default:
			log.Warn().
				Int("document_id", item.ID).
				Str("impact_rating", string(item.ImpactRating)).
				Msg("unrecognized impact rating, dropping document")
		}
	}

	keep := make(map[int]bool)
	for _, impact := range []Impact{ImpactCritical, ImpactHigh, ImpactMedium, ImpactLow} {
		if impact != ImpactCritical && len(keep) >= PreferredDocumentCount {
			break
		}
		for _, id := range buckets[impact] {
			keep[id] = true
		}
	}
	return keep
}

// FilterResult is the outcome of filtering one checklist.
type FilterResult[T any] struct {
	SystemPrompt string
	UserPrompt   string
	Assessment   ImpactAssessment
	KeptIDs      []int
	Kept         []T
	Metadata     report.RunMetadata
}

// SaveJSON writes the assessment with its metadata as indented JSON.
func (r *FilterResult[T]) SaveJSON(path string) error {
	doc := struct {
		ImpactAssessment
		Metadata     report.RunMetadata `json:"metadata"`
		SystemPrompt string             `json:"system_prompt"`
		UserPrompt   string             `json:"user_prompt"`
	}{r.Assessment, r.Metadata, r.SystemPrompt, r.UserPrompt}
	return report.SaveJSON(path, doc)
}

// SaveKept writes the surviving documents as indented JSON.
func (r *FilterResult[T]) SaveKept(path string) error {
	return report.SaveJSON(path, r.Kept)
}

// FilterToFind narrows a find checklist to the most impactful documents.
func FilterToFind(ctx context.Context, exec *llm.Executor, p purpose.Purpose, planPrompt string, docs []CleanedFindDocument) (*FilterResult[CleanedFindDocument], error) {
	systemPrompt, err := promptFor(filterFindPrompts, p)
	if err != nil {
		return nil, err
	}
	return filterDocuments(ctx, exec, systemPrompt, planPrompt, docs)
}

// FilterToCreate narrows a create checklist to the most impactful documents.
func FilterToCreate(ctx context.Context, exec *llm.Executor, p purpose.Purpose, planPrompt string, docs []CleanedCreateDocument) (*FilterResult[CleanedCreateDocument], error) {
	systemPrompt, err := promptFor(filterCreatePrompts, p)
	if err != nil {
		return nil, err
	}
	return filterDocuments(ctx, exec, systemPrompt, planPrompt, docs)
}

func filterDocuments[T listed](ctx context.Context, exec *llm.Executor, systemPrompt, planPrompt string, docs []T) (*FilterResult[T], error) {
	if strings.TrimSpace(planPrompt) == "" {
		return nil, fmt.Errorf("document filtering needs a plan description")
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no documents to filter")
	}

	inputs, idToUUID := filterInputs(docs)
	docsJSON, err := json.Marshal(inputs)
	if err != nil {
		return nil, fmt.Errorf("encoding filter inputs: %w", err)
	}
	userPrompt := fmt.Sprintf("File 'plan.txt':\n%s\n\nFile 'documents.json':\n%s", planPrompt, docsJSON)

	turns, err := conversation.Run[ImpactAssessment](ctx, exec, systemPrompt, []string{userPrompt})
	if err != nil {
		return nil, err
	}
	turn := turns[0]
	assessment := turn.Response

	keep := KeepIDs(assessment)
	keepUUIDs := make(map[string]bool, len(keep))
	for id := range keep {
		if docUUID, ok := idToUUID[id]; ok {
			keepUUIDs[docUUID] = true
		}
	}

	var kept []T
	for _, doc := range docs {
		if keepUUIDs[doc.docID()] {
			kept = append(kept, doc)
		}
	}
	// Every selected integer id must translate back to exactly one document.
	// A mismatch means the model invented ids, so the whole selection is
	// untrustworthy.
	if len(kept) != len(keep) {
		return nil, fmt.Errorf("kept %d documents but the assessment selected %d ids", len(kept), len(keep))
	}

	keptIDs := make([]int, 0, len(keep))
	for id := range keep {
		keptIDs = append(keptIDs, id)
	}
	sort.Ints(keptIDs)

	return &FilterResult[T]{
		SystemPrompt: systemPrompt,
		UserPrompt:   userPrompt,
		Assessment:   assessment,
		KeptIDs:      keptIDs,
		Kept:         kept,
		Metadata:     report.Run([]report.CallMetadata{report.Call(turn.Model, turn.ClassName, turn.Raw)}),
	}, nil
}
