package llm

import (
	"fmt"

	"github.com/plankit/plankit/internal/config"
)

// Factory builds a Client for one configured model. It exists so tests can
// substitute scripted clients for real backends.
type Factory func(config.ModelConfig) Client

// Registry resolves configuration model names to chat clients. It is the only
// place that knows the special "auto" name.
type Registry struct {
	cfg     *config.Config
	factory Factory
}

// NewRegistry wraps a validated configuration. A nil factory defaults to
// NewOpenAIClient.
func NewRegistry(cfg *config.Config, factory Factory) *Registry {
	if factory == nil {
		factory = func(mc config.ModelConfig) Client { return NewOpenAIClient(mc) }
	}
	return &Registry{cfg: cfg, factory: factory}
}

// Item is one selectable entry for UI listings.
type Item struct {
	ID    string
	Label string
}

// Items lists every selectable model, with the auto entry first.
func (r *Registry) Items() []Item {
	items := make([]Item, 0, len(r.cfg.Models)+1)
	items = append(items, Item{ID: config.AutoModelID, Label: config.AutoModelLabel})
	for _, mc := range r.cfg.Models {
		items = append(items, Item{ID: mc.ID, Label: mc.DisplayLabel()})
	}
	return items
}

// IsValid reports whether name is "auto" or a configured model ID.
func (r *Registry) IsValid(name string) bool {
	return name == config.AutoModelID || r.cfg.IsValidModelID(name)
}

// Resolve returns the client for a single concrete model. The "auto" name is
// not a concrete model and is rejected; use ClientsForRun for fallback lists.
func (r *Registry) Resolve(name string) (Client, error) {
	if name == config.AutoModelID {
		return nil, fmt.Errorf("%q selects a fallback list, not a single model", config.AutoModelID)
	}
	mc, ok := r.cfg.FindModel(name)
	if !ok {
		return nil, fmt.Errorf("unknown model %q", name)
	}
	return r.factory(mc), nil
}

// ClientsForRun expands a model selection into the ordered fallback list for
// an execution run. "auto" yields every prioritized model in priority order;
// a concrete name yields just that model.
func (r *Registry) ClientsForRun(name string) ([]Client, error) {
	if name == config.AutoModelID {
		ordered := r.cfg.ModelsByPriority()
		if len(ordered) == 0 {
			return nil, fmt.Errorf("no prioritized models configured for %q", config.AutoModelID)
		}
		clients := make([]Client, 0, len(ordered))
		for _, mc := range ordered {
			clients = append(clients, r.factory(mc))
		}
		return clients, nil
	}
	client, err := r.Resolve(name)
	if err != nil {
		return nil, err
	}
	return []Client{client}, nil
}
