package form

import "github.com/notedhq/go-formkit/pkg/schema"

// Defaults derives the initial value map for a field list. The key set is
// exactly the field key set: list-shaped fields start as empty slices,
// checkboxes as false, numbers as nil, and everything else as the empty
// string, matching the shapes the synthesized validator accepts.
func Defaults(fields []schema.FieldConfig) map[string]any {
	out := make(map[string]any, len(fields))
	for _, field := range fields {
		switch field.Type {
		case schema.TypeTags:
			out[field.Key] = []string{}
		case schema.TypeLinks:
			out[field.Key] = []schema.Link{}
		case schema.TypeImages:
			out[field.Key] = []schema.Image{}
		case schema.TypeCheckbox:
			out[field.Key] = false
		case schema.TypeNumber:
			out[field.Key] = nil
		case schema.TypeSelect:
			if field.Multiple {
				out[field.Key] = []string{}
			} else {
				out[field.Key] = ""
			}
		default:
			out[field.Key] = ""
		}
	}
	return out
}
