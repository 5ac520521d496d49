package form

import "github.com/notedhq/go-formkit/pkg/schema"

// Prepare turns validated form data into a persistable payload: a shallow
// copy with the schema's auto-managed columns removed and empty strings
// rewritten to nil so optional text persists as NULL. Flagged auto fields are
// deleted outright even when the client supplied a value; they belong to the
// persistence layer. Prepare is idempotent and adds no keys.
func Prepare(data map[string]any, f schema.Form) map[string]any {
	out := make(map[string]any, len(data))
	for key, value := range data {
		out[key] = value
	}

	if f.Auto.UserID {
		delete(out, "user_id")
	}
	if f.Auto.CreatedAt {
		delete(out, "created_at")
	}
	if f.Auto.UpdatedAt {
		delete(out, "updated_at")
	}

	for key, value := range out {
		if s, ok := value.(string); ok && s == "" {
			out[key] = nil
		}
	}
	return out
}
