package techtasks

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/suite"

	"github.com/plankit/plankit/internal/llm"
	"github.com/plankit/plankit/internal/llm/llmtest"
)

type TechTasksSuite struct {
	suite.Suite
}

func TestTechTasksSuite(t *testing.T) {
	suite.Run(t, new(TechTasksSuite))
}

func strp(v string) *string { return &v }

func (s *TechTasksSuite) plan() ProjectPlan {
	return ProjectPlan{
		GoalStatement: "Build a recipe sharing platform",
		SmartCriteria: &SmartCriteria{
			Specific:   "Users can publish and search recipes",
			Measurable: "100 recipes in the first month",
			Achievable: "Single small team",
			Relevant:   "Core product offering",
			TimeBound:  "Launch within 3 months",
		},
		Dependencies:      []string{"Domain registration"},
		ResourcesRequired: []string{"2 developers"},
	}
}

func (s *TechTasksSuite) exec(clients ...llm.Client) *llm.Executor {
	exec, err := llm.NewExecutor(clients, nil)
	s.Require().NoError(err)
	return exec
}

func (s *TechTasksSuite) TestGenerate() {
	reply := `{"tasks":[
		{"title":"Design recipe data model",
		 "description":"Define the entities for recipes and users.",
		 "acceptance_criteria":[{"criterion":"Recipes store title and steps"}],
		 "examples":[{"title":"Basic recipe","description":"A pasta recipe with 5 steps."}],
		 "dependencies":[],
		 "estimated_effort":"Medium",
		 "priority":"High",
		 "tags":["data-model"],
		 "notes":"Keep it normalized."},
		{"title":"Implement recipe search",
		 "description":"Full-text search over recipe titles.",
		 "acceptance_criteria":[{"criterion":"Search returns matches by title"}],
		 "examples":[],
		 "dependencies":["1"],
		 "tags":["backend"]}
	]}`
	client := llmtest.NewScripted("m", llmtest.Reply(reply))

	result, err := Generate(context.Background(), s.exec(client), s.plan(), nil)
	s.Require().NoError(err)

	s.Equal("Build a recipe sharing platform", result.TaskList.ProjectName)
	s.Equal("Users can publish and search recipes", result.TaskList.ProjectDescription)
	s.Require().Len(result.TaskList.Tasks, 2)

	first := result.TaskList.Tasks[0]
	s.NotEmpty(first.ID)
	s.Equal("Design recipe data model", first.Title)
	s.Equal("High", *first.Priority)
	s.Len(first.AcceptanceCriteria, 1)

	second := result.TaskList.Tasks[1]
	s.Nil(second.Priority)
	s.Equal([]string{"1"}, second.Dependencies)
	s.NotEqual(first.ID, second.ID)

	// Prompt carries the plan details.
	userPrompt := client.Calls[0][1].Content
	s.Contains(userPrompt, "**Project Goal:** Build a recipe sharing platform")
	s.Contains(userPrompt, "- Specific: Users can publish and search recipes")
	s.Contains(userPrompt, "- Domain registration")
	s.Contains(userPrompt, "- 2 developers")
	s.NotContains(userPrompt, "Work Breakdown Structure")
}

func (s *TechTasksSuite) TestGenerateWithWBS() {
	client := llmtest.NewScripted("m", llmtest.Reply(`{"tasks":[]}`))
	wbs := map[string]any{"phases": []string{"foundation", "launch"}}

	result, err := Generate(context.Background(), s.exec(client), s.plan(), wbs)
	s.Require().NoError(err)
	s.Empty(result.TaskList.Tasks)
	s.Contains(client.Calls[0][1].Content, "**Work Breakdown Structure:**")
	s.Contains(client.Calls[0][1].Content, `"foundation"`)
}

func (s *TechTasksSuite) TestGenerateToleratesStringCriteria() {
	reply := `{"tasks":[{
		"title":"Validate input",
		"description":"Reject malformed recipes.",
		"acceptance_criteria":["Empty titles are rejected",{"criterion":"Steps must be non-empty"}],
		"examples":[]
	}]}`
	client := llmtest.NewScripted("m", llmtest.Reply(reply))

	result, err := Generate(context.Background(), s.exec(client), s.plan(), nil)
	s.Require().NoError(err)
	s.Require().Len(result.TaskList.Tasks, 1)
	criteria := result.TaskList.Tasks[0].AcceptanceCriteria
	s.Require().Len(criteria, 2)
	s.Equal("Empty titles are rejected", criteria[0].Criterion)
	s.Equal("Steps must be non-empty", criteria[1].Criterion)
}

func (s *TechTasksSuite) TestGenerateDefaultsMissingTitle() {
	reply := `{"tasks":[{"description":"d","acceptance_criteria":[],"examples":[]}]}`
	client := llmtest.NewScripted("m", llmtest.Reply(reply))

	result, err := Generate(context.Background(), s.exec(client), s.plan(), nil)
	s.Require().NoError(err)
	s.Equal("Task 1", result.TaskList.Tasks[0].Title)
}

func (s *TechTasksSuite) TestGenerateRejectsEmptyGoal() {
	client := llmtest.NewScripted("m")
	_, err := Generate(context.Background(), s.exec(client), ProjectPlan{}, nil)
	s.Require().Error(err)
	s.Empty(client.Calls)
}

func (s *TechTasksSuite) TestGenerateFailure() {
	client := llmtest.NewScripted("m", llmtest.Fail(errors.New("boom")))
	_, err := Generate(context.Background(), s.exec(client), s.plan(), nil)
	s.Require().Error(err)
}

func (s *TechTasksSuite) TestTaskRoundTrip() {
	task := TechnicalTask{
		ID:                 "t-1",
		Title:              "Build API",
		Description:        "Expose the recipes.",
		AcceptanceCriteria: []AcceptanceCriterion{{Criterion: "Endpoints respond"}},
		Examples:           []TaskExample{{Title: "List", Description: "GET returns recipes."}},
		EstimatedEffort:    strp("Large"),
		Tags:               []string{"api"},
	}

	raw, err := json.Marshal(task)
	s.Require().NoError(err)
	s.NotContains(string(raw), "priority", "unset optional fields stay off the wire")
	s.NotContains(string(raw), "notes")

	var back TechnicalTask
	s.Require().NoError(json.Unmarshal(raw, &back))
	s.Equal(task, back)
}

func (s *TechTasksSuite) TestTaskMarkdown() {
	task := TechnicalTask{
		ID:          "t-1",
		Title:       "Build API",
		Description: "Expose the recipes over HTTP.",
		AcceptanceCriteria: []AcceptanceCriterion{
			{Criterion: "Endpoints respond"},
			{Criterion: "Errors use a consistent shape"},
		},
		Examples:        []TaskExample{{Title: "List recipes", Description: "GET returns all recipes."}},
		Dependencies:    []string{"1"},
		EstimatedEffort: strp("Large"),
		Priority:        strp("High"),
		Tags:            []string{"api", "backend"},
		Notes:           strp("Version the endpoints."),
	}

	md := task.ToMarkdown()
	s.Contains(md, "# Task: Build API")
	s.Contains(md, "**ID:** t-1")
	s.Contains(md, "**Priority:** High")
	s.Contains(md, "**Estimated Effort:** Large")
	s.Contains(md, "**Tags:** api, backend")
	s.Contains(md, "## Description")
	s.Contains(md, "## Dependencies")
	s.Contains(md, "- Task 1")
	s.Contains(md, "1. Endpoints respond")
	s.Contains(md, "2. Errors use a consistent shape")
	s.Contains(md, "### List recipes")
	s.Contains(md, "## Notes")

	s.Equal(md, task.ToMarkdown(), "rendering the same task twice must be byte-identical")
}

func (s *TechTasksSuite) TestTaskListMarkdown() {
	list := TaskList{
		ProjectName:        "Recipes",
		ProjectDescription: "A recipe platform.",
		Tasks: []TechnicalTask{
			{ID: "a", Title: "First", Description: "d1", AcceptanceCriteria: []AcceptanceCriterion{{Criterion: "c1"}}},
			{ID: "b", Title: "Second", Description: "d2", AcceptanceCriteria: []AcceptanceCriterion{{Criterion: "c2"}}},
		},
	}

	md := list.ToMarkdown()
	s.Contains(md, "# Technical Task List: Recipes")
	s.Contains(md, "**Total Tasks:** 2")
	s.Contains(md, "## Task 1: First")
	s.Contains(md, "## Task 2: Second")
	s.Contains(md, "### Description")
	s.Equal(2, strings.Count(md, "### Acceptance Criteria"))
	s.Equal(md, list.ToMarkdown())
}
