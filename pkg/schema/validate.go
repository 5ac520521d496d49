package schema

import (
	"errors"
	"fmt"
	"strings"
)

var (
	errTableMissing  = errors.New("schema: form table is required")
	errFieldsMissing = errors.New("schema: form declares no fields")
)

// Validate checks the structural invariants a form must satisfy before any
// session is built on top of it: a persistence target, at least one field, and
// field keys that are non-empty and unique.
func (f Form) Validate() error {
	if strings.TrimSpace(f.Table) == "" {
		return errTableMissing
	}
	if len(f.Fields) == 0 {
		return errFieldsMissing
	}

	seen := make(map[string]struct{}, len(f.Fields))
	for idx, field := range f.Fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			return fmt.Errorf("schema: field %d has an empty key", idx)
		}
		if key != field.Key {
			return fmt.Errorf("schema: field key %q has surrounding whitespace", field.Key)
		}
		if _, exists := seen[key]; exists {
			return fmt.Errorf("schema: duplicate field key %q", key)
		}
		seen[key] = struct{}{}

		if field.Type == TypeSelect && len(field.Options) == 0 {
			return fmt.Errorf("schema: select field %q declares no options", key)
		}
	}
	return nil
}
