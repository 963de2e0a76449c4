package documents

import (
	"embed"
	"fmt"
	"strings"

	"github.com/plankit/plankit/internal/purpose"
)

// The system prompts vary by plan purpose: a business venture is steered
// toward charters and compliance material, a personal goal toward simple
// checklists and guides. They are kept as markdown files to stay editable
// without touching code.
//
//go:embed prompts/*.md
var promptFS embed.FS

func loadPrompt(name string) string {
	data, err := promptFS.ReadFile("prompts/" + name)
	if err != nil {
		panic(fmt.Sprintf("missing embedded prompt %s: %v", name, err))
	}
	return strings.TrimSpace(string(data))
}

func promptSet(prefix string) map[purpose.Purpose]string {
	return map[purpose.Purpose]string{
		purpose.Business: loadPrompt(prefix + "_business.md"),
		purpose.Personal: loadPrompt(prefix + "_personal.md"),
		purpose.Other:    loadPrompt(prefix + "_other.md"),
	}
}

var (
	identifyPrompts     = promptSet("identify")
	filterFindPrompts   = promptSet("filter_find")
	filterCreatePrompts = promptSet("filter_create")
)

func promptFor(set map[purpose.Purpose]string, p purpose.Purpose) (string, error) {
	prompt, ok := set[p]
	if !ok {
		return "", fmt.Errorf("no prompt for purpose %q", p)
	}
	return prompt, nil
}
