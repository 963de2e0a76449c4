// Package purpose classifies what kind of plan is being made. Several prompt
// sets vary by purpose: a business venture needs permits and compliance
// documents, a personal goal does not.
package purpose

import "fmt"

// Purpose is the plan category selecting prompt variants.
type Purpose string

const (
	Business Purpose = "business"
	Personal Purpose = "personal"
	Other    Purpose = "other"
)

// Parse validates a purpose string.
func Parse(s string) (Purpose, error) {
	switch Purpose(s) {
	case Business, Personal, Other:
		return Purpose(s), nil
	default:
		return "", fmt.Errorf("unknown plan purpose %q", s)
	}
}

func (p Purpose) String() string { return string(p) }
