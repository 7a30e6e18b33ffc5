package catalog

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// document is the declarative import/export shape: a mapping with a
// top-level agents collection keyed by agent id.
type document struct {
	Agents map[string]Definition `yaml:"agents"`
}

// ValidationError reports a malformed catalog document. Imports that fail
// validation are never partially applied.
type ValidationError struct {
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid catalog document: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid catalog document: %s", e.Reason)
}

// Unwrap exposes the underlying parse error, if any.
func (e *ValidationError) Unwrap() error { return e.Err }

// Parse reads a declarative catalog document. It fails with *ValidationError
// when the document is not a mapping or its agents collection is absent or
// empty.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ValidationError{Reason: "document does not parse as a mapping", Err: err}
	}
	if len(doc.Agents) == 0 {
		return nil, &ValidationError{Reason: "no agents defined"}
	}
	return New(doc.Agents), nil
}

// Marshal round-trips the catalog back to the declarative document shape,
// field-compatible with Parse.
func Marshal(c *Catalog) ([]byte, error) {
	doc := document{Agents: make(map[string]Definition, c.Len())}
	for _, def := range c.Definitions() {
		doc.Agents[def.ID] = def
	}
	return yaml.Marshal(doc)
}
