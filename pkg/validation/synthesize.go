package validation

import (
	"fmt"

	"github.com/notedhq/go-formkit/pkg/schema"
)

// FormErrorKey carries failures that cannot be attributed to a single field,
// such as a panic inside a rule predicate.
const FormErrorKey = "_form"

// Result is the outcome of running a Validator. On success Data holds the
// normalized value for every declared field; on failure Errors holds one
// message per offending field key.
type Result struct {
	OK     bool
	Data   map[string]any
	Errors map[string]string
}

// compiled pairs a field config with its normalizer and ordered rule list.
type compiled struct {
	field       schema.FieldConfig
	label       string
	typeMessage string
	normalize   func(any) (any, bool)
	// empty reports whether a normalized value counts as "not provided".
	// Fields without an emptiness concept (checkbox) leave it nil, which is
	// also why a required checkbox enforces nothing.
	empty func(any) bool
	rules []rule
}

// Validator checks a value map against the rules synthesized from a field
// list. It is immutable after construction and safe for reuse across
// sessions.
type Validator struct {
	fields []compiled
	index  map[string]int
}

// Synthesize converts field configs into a Validator. Rules are assembled per
// field in a fixed order (base type rule, length limits, pattern, format
// checks, count caps) so precedence is decided by construction, not by call
// sites. The required/optional policy is applied through the emptiness check:
// an empty optional value passes without running any further rules.
func Synthesize(fields []schema.FieldConfig) *Validator {
	v := &Validator{
		fields: make([]compiled, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for _, field := range fields {
		c := compile(field)
		v.index[field.Key] = len(v.fields)
		v.fields = append(v.fields, c)
	}
	return v
}

// Validate runs every field's rule list against data. Missing keys validate
// as the field's empty value, so callers that always pass the full value map
// and callers that omit untouched fields agree. A panic inside a rule is
// reported as a single generic form-level error instead of crashing the
// caller.
func (v *Validator) Validate(data map[string]any) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			result = Result{Errors: map[string]string{
				FormErrorKey: "validation failed unexpectedly",
			}}
		}
	}()

	errs := make(map[string]string)
	out := make(map[string]any, len(v.fields))
	for _, c := range v.fields {
		value, msg := c.check(data[c.field.Key])
		if msg != "" {
			errs[c.field.Key] = msg
			continue
		}
		out[c.field.Key] = value
	}

	if len(errs) > 0 {
		return Result{Errors: errs}
	}
	return Result{OK: true, Data: out}
}

// Check validates a single field's value in isolation, returning the error
// message ("" when the value passes) and whether the key is declared at all.
func (v *Validator) Check(key string, value any) (string, bool) {
	idx, ok := v.index[key]
	if !ok {
		return "", false
	}
	_, msg := v.fields[idx].check(value)
	return msg, true
}

func (c compiled) check(raw any) (any, string) {
	value, ok := c.normalize(raw)
	if !ok {
		return nil, c.typeMessage
	}
	if c.empty != nil && c.empty(value) {
		if c.field.Required {
			return value, fmt.Sprintf("%s is required", c.label)
		}
		return value, ""
	}
	for _, r := range c.rules {
		if !r.ok(value) {
			return value, r.message
		}
	}
	return value, ""
}

func compile(field schema.FieldConfig) compiled {
	label := field.DisplayLabel()
	c := compiled{field: field, label: label}

	switch field.Type {
	case schema.TypeTags:
		c.normalize = normalizeStringSlice
		c.typeMessage = fmt.Sprintf("%s must be a list of tags", label)
		c.empty = emptySlice
		if field.MaxTags != nil {
			c.rules = append(c.rules, maxItemsRule(label, *field.MaxTags, "tags"))
		}

	case schema.TypeLinks:
		c.normalize = normalizeLinks
		c.typeMessage = fmt.Sprintf("%s must be a list of links", label)
		c.empty = emptySlice
		c.rules = append(c.rules, linkURLRule(label))
		if field.MaxLinks != nil {
			c.rules = append(c.rules, maxItemsRule(label, *field.MaxLinks, "links"))
		}

	case schema.TypeImages:
		c.normalize = normalizeImages
		c.typeMessage = fmt.Sprintf("%s must be a list of images", label)
		c.empty = emptySlice
		c.rules = append(c.rules, imageURLRule(label))
		if field.MaxFiles != nil {
			c.rules = append(c.rules, maxItemsRule(label, *field.MaxFiles, "images"))
		}

	case schema.TypeSelect:
		if field.Multiple {
			c.normalize = normalizeStringSlice
			c.typeMessage = fmt.Sprintf("%s must be a list of selections", label)
			c.empty = emptySlice
			break
		}
		c.normalize = normalizeString
		c.typeMessage = fmt.Sprintf("%s must be text", label)
		c.empty = emptyString

	case schema.TypeCheckbox:
		c.normalize = normalizeBool
		c.typeMessage = fmt.Sprintf("%s must be true or false", label)
		// no emptiness: a required checkbox enforces nothing

	case schema.TypeNumber:
		c.normalize = normalizeNumber
		c.typeMessage = fmt.Sprintf("%s must be a number", label)
		c.empty = func(v any) bool { return v == nil }
		if field.Min != nil {
			c.rules = append(c.rules, minRule(label, *field.Min))
		}
		if field.Max != nil {
			c.rules = append(c.rules, maxRule(label, *field.Max))
		}

	case schema.TypeDate:
		c.normalize = normalizeDate
		c.typeMessage = fmt.Sprintf("%s must be a date", label)
		c.empty = emptyString

	default:
		// text, email, url, textarea, project-select, and unknown types all
		// validate as strings.
		c.normalize = normalizeString
		c.typeMessage = fmt.Sprintf("%s must be text", label)
		c.empty = emptyString
		if field.MaxLength != nil {
			c.rules = append(c.rules, maxLengthRule(label, *field.MaxLength))
		}
		if field.MinLength != nil {
			c.rules = append(c.rules, minLengthRule(label, *field.MinLength))
		}
		if field.Pattern != "" {
			if r, ok := patternRule(label, field.Pattern); ok {
				c.rules = append(c.rules, r)
			}
		}
		switch field.Type {
		case schema.TypeEmail:
			c.rules = append(c.rules, emailRule(label))
		case schema.TypeURL:
			c.rules = append(c.rules, urlRule(label))
		}
	}

	return c
}

func emptyString(v any) bool { return asString(v) == "" }

func emptySlice(v any) bool { return valueLen(v) == 0 }

func normalizeString(raw any) (any, bool) {
	if raw == nil {
		return "", true
	}
	s, ok := raw.(string)
	return s, ok
}

func normalizeBool(raw any) (any, bool) {
	if raw == nil {
		return false, true
	}
	b, ok := raw.(bool)
	return b, ok
}

func normalizeNumber(raw any) (any, bool) {
	switch v := raw.(type) {
	case nil:
		return nil, true
	case string:
		if v == "" {
			return nil, true
		}
	}
	n, ok := asNumber(raw)
	if !ok {
		return nil, false
	}
	return n, true
}

func normalizeDate(raw any) (any, bool) {
	if raw == nil {
		return "", true
	}
	s, ok := asDateString(raw)
	return s, ok
}

func normalizeStringSlice(raw any) (any, bool) {
	switch v := raw.(type) {
	case nil:
		return []string{}, true
	case []string:
		return append([]string{}, v...), true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

func normalizeLinks(raw any) (any, bool) {
	switch v := raw.(type) {
	case nil:
		return []schema.Link{}, true
	case []schema.Link:
		return append([]schema.Link{}, v...), true
	case []any:
		out := make([]schema.Link, 0, len(v))
		for _, item := range v {
			switch entry := item.(type) {
			case schema.Link:
				out = append(out, entry)
			case map[string]any:
				out = append(out, schema.Link{
					URL:         stringAt(entry, "url"),
					Title:       stringAt(entry, "title"),
					Description: stringAt(entry, "description"),
				})
			default:
				return nil, false
			}
		}
		return out, true
	}
	return nil, false
}

func normalizeImages(raw any) (any, bool) {
	switch v := raw.(type) {
	case nil:
		return []schema.Image{}, true
	case []schema.Image:
		return append([]schema.Image{}, v...), true
	case []any:
		out := make([]schema.Image, 0, len(v))
		for _, item := range v {
			switch entry := item.(type) {
			case schema.Image:
				out = append(out, entry)
			case map[string]any:
				image := schema.Image{
					URL:      stringAt(entry, "url"),
					Alt:      stringAt(entry, "alt"),
					Caption:  stringAt(entry, "caption"),
					Filename: stringAt(entry, "filename"),
					Type:     stringAt(entry, "type"),
				}
				if size, ok := asNumber(entry["size"]); ok {
					image.Size = int64(size)
				}
				out = append(out, image)
			default:
				return nil, false
			}
		}
		return out, true
	}
	return nil, false
}

func stringAt(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
