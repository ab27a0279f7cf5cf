package validate

import (
	"fmt"
	"sort"

	"github.com/5w1tchy/bookshelf-api/internal/api/apperr"
	"github.com/xeipuuv/gojsonschema"
)

// Validator checks documents against a fixed set of compiled schemas.
type Validator struct {
	schemas map[string]*gojsonschema.Schema
}

// NewValidator compiles every schema once. Schema IDs must be unique.
func NewValidator(schemas ...Schema) (*Validator, error) {
	v := &Validator{schemas: make(map[string]*gojsonschema.Schema, len(schemas))}
	for _, s := range schemas {
		if s.ID == "" {
			return nil, fmt.Errorf("schema %q has no id", s.Title)
		}
		if _, dup := v.schemas[s.ID]; dup {
			return nil, fmt.Errorf("duplicate schema id %s", s.ID)
		}
		compiled, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(s.Document()))
		if err != nil {
			return nil, fmt.Errorf("cannot compile schema %s: %w", s.ID, err)
		}
		v.schemas[s.ID] = compiled
	}
	return v, nil
}

// Validate checks doc (a decoded JSON value) against schemaID. A document that
// does not match yields an *apperr.Error of kind Validation listing every
// violation in a stable order.
func (v *Validator) Validate(schemaID string, doc any) error {
	schema, ok := v.schemas[schemaID]
	if !ok {
		return fmt.Errorf("there is no schema %s", schemaID)
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("cannot validate with schema %s: %w", schemaID, err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	sort.Strings(msgs)
	return apperr.Validation(msgs...)
}
