// Package documents produces a prerequisite checklist for a plan: documents
// the team must draft before detailed planning can start, and existing source
// material they must locate. A second stage filters each checklist down to
// the handful of items worth chasing first.
package documents

import (
	"github.com/google/uuid"
)

// CreateDocumentItem is a document the team needs to draft.
type CreateDocumentItem struct {
	DocumentName              string   `json:"document_name"`
	Description               string   `json:"description"`
	ResponsibleRoleType       string   `json:"responsible_role_type"`
	DocumentTemplatePrimary   *string  `json:"document_template_primary"`
	DocumentTemplateSecondary *string  `json:"document_template_secondary"`
	StepsToCreate             []string `json:"steps_to_create"`
	ApprovalAuthorities       *string  `json:"approval_authorities"`
}

// FindDocumentItem is existing source material to locate: datasets, laws,
// standards, guides.
type FindDocumentItem struct {
	DocumentName        string   `json:"document_name"`
	Description         string   `json:"description"`
	RecencyRequirement  *string  `json:"recency_requirement"`
	ResponsibleRoleType string   `json:"responsible_role_type"`
	StepsToFind         []string `json:"steps_to_find"`
	AccessDifficulty    string   `json:"access_difficulty"`
}

// DocumentDetails is the wire schema the model fills in. The part2 lists give
// the model a second chance to surface documents it missed in the first pass;
// cleanup folds them back into the main lists.
type DocumentDetails struct {
	DocumentsToCreate      []CreateDocumentItem `json:"documents_to_create"`
	DocumentsToFind        []FindDocumentItem   `json:"documents_to_find"`
	DocumentsToCreatePart2 []CreateDocumentItem `json:"documents_to_create_part2"`
	DocumentsToFindPart2   []FindDocumentItem   `json:"documents_to_find_part2"`
}

// CleanedCreateDocument is a create item with a stable identity.
type CleanedCreateDocument struct {
	ID string `json:"id"`
	CreateDocumentItem
}

// CleanedFindDocument is a find item with a stable identity.
type CleanedFindDocument struct {
	ID string `json:"id"`
	FindDocumentItem
}

// Checklist is the cleaned result of a document identification run.
type Checklist struct {
	DocumentsToCreate []CleanedCreateDocument `json:"documents_to_create"`
	DocumentsToFind   []CleanedFindDocument   `json:"documents_to_find"`
}

// Cleanup merges the part2 lists into the main lists and assigns each
// document a fresh UUID.
func Cleanup(details DocumentDetails) Checklist {
	var checklist Checklist
	for _, item := range append(details.DocumentsToCreate, details.DocumentsToCreatePart2...) {
		checklist.DocumentsToCreate = append(checklist.DocumentsToCreate, CleanedCreateDocument{
			ID:                 uuid.NewString(),
			CreateDocumentItem: item,
		})
	}
	for _, item := range append(details.DocumentsToFind, details.DocumentsToFindPart2...) {
		checklist.DocumentsToFind = append(checklist.DocumentsToFind, CleanedFindDocument{
			ID:               uuid.NewString(),
			FindDocumentItem: item,
		})
	}
	return checklist
}
