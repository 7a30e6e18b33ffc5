package catalog

import (
	"fmt"
	"sort"

	"github.com/stackfield/agentstudio/provider"
)

// Definition is one agent entry: a reusable configuration of model, system
// instructions and token budget. Definitions are immutable during a run; a
// catalog is only ever replaced wholesale.
type Definition struct {
	// ID is the unique key within a catalog. Not serialized inside the entry;
	// it is the entry's key in the agents mapping.
	ID string `yaml:"-" json:"id"`

	Name         string `yaml:"name" json:"name"`
	Model        string `yaml:"model" json:"model"`
	SystemPrompt string `yaml:"system_prompt" json:"system_prompt"`
	MaxTokens    int    `yaml:"max_tokens" json:"max_tokens"`

	// SupportedModels, when non-empty, restricts which models a user may
	// select when overriding this agent's default model.
	SupportedModels []string `yaml:"supported_models,omitempty" json:"supported_models,omitempty"`

	Category    string `yaml:"category,omitempty" json:"category,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// AllowsModel reports whether the definition permits the given model as an
// override. An empty allow-list permits every supported model.
func (d Definition) AllowsModel(model string) bool {
	if len(d.SupportedModels) == 0 {
		return true
	}
	for _, m := range d.SupportedModels {
		if m == model {
			return true
		}
	}
	return false
}

// ModelChoices returns the models a user may pick for this agent: the
// intersection of the allow-list with the supported model inventory, or the
// full inventory when the intersection would be empty.
func (d Definition) ModelChoices() []string {
	all := provider.Models()
	if len(d.SupportedModels) == 0 {
		return all
	}
	var choices []string
	for _, m := range all {
		if d.AllowsModel(m) {
			choices = append(choices, m)
		}
	}
	if len(choices) == 0 {
		return all
	}
	return choices
}

// NotFoundError reports a lookup for an agent id the catalog does not hold.
type NotFoundError struct {
	ID string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("agent not found: %s", e.ID)
}

// Catalog is an immutable set of agent definitions keyed by id.
type Catalog struct {
	agents map[string]Definition
}

// New builds a catalog from definitions. The input map is copied; entry IDs
// are set from their keys and zero token budgets filled with the default.
func New(agents map[string]Definition) *Catalog {
	m := make(map[string]Definition, len(agents))
	for id, def := range agents {
		def.ID = id
		if def.MaxTokens <= 0 {
			def.MaxTokens = provider.DefaultMaxTokens
		}
		m[id] = def
	}
	return &Catalog{agents: m}
}

// Get returns the definition for id or a *NotFoundError.
func (c *Catalog) Get(id string) (Definition, error) {
	def, ok := c.agents[id]
	if !ok {
		return Definition{}, &NotFoundError{ID: id}
	}
	return def, nil
}

// Has reports whether the catalog holds id.
func (c *Catalog) Has(id string) bool {
	_, ok := c.agents[id]
	return ok
}

// IDs returns all agent ids, sorted.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.agents))
	for id := range c.agents {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of definitions.
func (c *Catalog) Len() int { return len(c.agents) }

// Definitions returns all definitions ordered by id.
func (c *Catalog) Definitions() []Definition {
	defs := make([]Definition, 0, len(c.agents))
	for _, id := range c.IDs() {
		defs = append(defs, c.agents[id])
	}
	return defs
}

// Categories returns the distinct category labels in use, sorted.
func (c *Catalog) Categories() []string {
	seen := map[string]bool{}
	var cats []string
	for _, def := range c.agents {
		if def.Category == "" || seen[def.Category] {
			continue
		}
		seen[def.Category] = true
		cats = append(cats, def.Category)
	}
	sort.Strings(cats)
	return cats
}

// Merge combines two catalogs additively: primary entries win on id
// collision, secondary entries fill the gaps. Neither input is mutated.
func Merge(primary, secondary *Catalog) *Catalog {
	m := make(map[string]Definition, len(primary.agents)+len(secondary.agents))
	for id, def := range secondary.agents {
		m[id] = def
	}
	for id, def := range primary.agents {
		m[id] = def
	}
	return &Catalog{agents: m}
}
