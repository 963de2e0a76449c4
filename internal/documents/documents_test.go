package documents

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/plankit/plankit/internal/purpose"
)

type DocumentsSuite struct {
	suite.Suite
}

func TestDocumentsSuite(t *testing.T) {
	suite.Run(t, new(DocumentsSuite))
}

func strp(v string) *string { return &v }

func createItem(name string) CreateDocumentItem {
	return CreateDocumentItem{
		DocumentName:        name,
		Description:         "description of " + name,
		ResponsibleRoleType: "Project Manager",
		StepsToCreate:       []string{"draft", "review"},
	}
}

func findItem(name string) FindDocumentItem {
	return FindDocumentItem{
		DocumentName:        name,
		Description:         "description of " + name,
		ResponsibleRoleType: "Analyst",
		StepsToFind:         []string{"search portal"},
		AccessDifficulty:    "Easy: public website",
	}
}

func (s *DocumentsSuite) TestCleanupMergesPartTwo() {
	details := DocumentDetails{
		DocumentsToCreate:      []CreateDocumentItem{createItem("Project Charter")},
		DocumentsToCreatePart2: []CreateDocumentItem{createItem("Risk Register")},
		DocumentsToFind:        []FindDocumentItem{findItem("Zoning Regulations")},
		DocumentsToFindPart2:   []FindDocumentItem{findItem("GDP Data"), findItem("Housing Price Index")},
	}

	checklist := Cleanup(details)
	s.Require().Len(checklist.DocumentsToCreate, 2)
	s.Require().Len(checklist.DocumentsToFind, 3)
	s.Equal("Project Charter", checklist.DocumentsToCreate[0].DocumentName)
	s.Equal("Risk Register", checklist.DocumentsToCreate[1].DocumentName)
	s.Equal("Housing Price Index", checklist.DocumentsToFind[2].DocumentName)

	seen := map[string]bool{}
	for _, doc := range checklist.DocumentsToCreate {
		s.NotEmpty(doc.ID)
		s.False(seen[doc.ID], "ids must be unique")
		seen[doc.ID] = true
	}
	for _, doc := range checklist.DocumentsToFind {
		s.NotEmpty(doc.ID)
		s.False(seen[doc.ID], "ids must be unique")
		seen[doc.ID] = true
	}
}

func (s *DocumentsSuite) TestCleanupEmpty() {
	checklist := Cleanup(DocumentDetails{})
	s.Empty(checklist.DocumentsToCreate)
	s.Empty(checklist.DocumentsToFind)
}

func (s *DocumentsSuite) TestFilterInputs() {
	docs := []CleanedFindDocument{
		{ID: "uuid-a", FindDocumentItem: findItem("Zoning Regulations")},
		{ID: "uuid-b", FindDocumentItem: findItem("GDP Data")},
	}
	inputs, idToUUID := filterInputs(docs)
	s.Require().Len(inputs, 2)
	s.Equal(0, inputs[0].ID)
	s.Equal("Zoning Regulations\ndescription of Zoning Regulations", inputs[0].Name)
	s.Equal(1, inputs[1].ID)
	s.Equal("uuid-a", idToUUID[0])
	s.Equal("uuid-b", idToUUID[1])
}

func (s *DocumentsSuite) TestChecklistMarkdown() {
	checklist := Checklist{
		DocumentsToCreate: []CleanedCreateDocument{{
			ID: "uuid-create",
			CreateDocumentItem: CreateDocumentItem{
				DocumentName:            "Project Charter",
				Description:             "Defines the project.",
				ResponsibleRoleType:     "Project Manager",
				DocumentTemplatePrimary: strp("PMI Project Charter Template"),
				StepsToCreate:           []string{"Draft scope", "Collect signatures"},
				ApprovalAuthorities:     strp("Steering Committee"),
			},
		}},
		DocumentsToFind: []CleanedFindDocument{{
			ID: "uuid-find",
			FindDocumentItem: FindDocumentItem{
				DocumentName:        "Local Zoning Regulations",
				Description:         "Current zoning rules.",
				RecencyRequirement:  strp("Current regulations essential"),
				ResponsibleRoleType: "Legal Counsel",
				StepsToFind:         []string{"Check municipality website"},
				AccessDifficulty:    "Easy: public website",
			},
		}},
	}

	md := ChecklistMarkdown(checklist)
	s.Contains(md, "## Documents to Create")
	s.Contains(md, "### 1. Project Charter")
	s.Contains(md, "**ID:** uuid-create")
	s.Contains(md, "**Primary Template:** PMI Project Charter Template")
	s.NotContains(md, "**Secondary Template:**")
	s.Contains(md, "- Draft scope")
	s.Contains(md, "**Approval Authorities:** Steering Committee")
	s.Contains(md, "## Documents to Find")
	s.Contains(md, "### 1. Local Zoning Regulations")
	s.Contains(md, "**Recency Requirement:** Current regulations essential")
	s.Contains(md, "**Access Difficulty:** Easy: public website")

	s.Equal(md, ChecklistMarkdown(checklist), "rendering the same checklist twice must be byte-identical")
}

func (s *DocumentsSuite) TestChecklistMarkdownEmpty() {
	md := ChecklistMarkdown(Checklist{})
	s.Contains(md, "*No documents identified to create.*")
	s.Contains(md, "*No documents identified to find.*")
}

func (s *DocumentsSuite) TestPromptSetsComplete() {
	purposes := []purpose.Purpose{purpose.Business, purpose.Personal, purpose.Other}
	for _, set := range []map[purpose.Purpose]string{identifyPrompts, filterFindPrompts, filterCreatePrompts} {
		seen := map[string]bool{}
		for _, p := range purposes {
			prompt, err := promptFor(set, p)
			s.Require().NoError(err)
			s.NotEmpty(prompt)
			s.False(seen[prompt], "each purpose needs its own prompt variant")
			seen[prompt] = true
		}
	}
}
