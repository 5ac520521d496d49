package widgets

import (
	"strings"

	"github.com/notedhq/go-formkit/pkg/render"
	"github.com/notedhq/go-formkit/pkg/schema"
)

// Tags maintains a committed tag list plus a transient typing buffer. The
// buffer is the widget's own state; only committed tags flow through
// onChange.
type Tags struct {
	cfg    schema.FieldConfig
	ctx    Context
	tags   []string
	buffer string
	open   bool
}

// NewTags builds a tags widget from the current value, accepting []string or
// []any of strings and treating anything else as empty.
func NewTags(cfg schema.FieldConfig, ctx Context) *Tags {
	return &Tags{cfg: cfg, ctx: ctx, tags: coerceStrings(ctx.Value)}
}

// Config returns the field config the widget was built from.
func (t *Tags) Config() schema.FieldConfig { return t.cfg }

// Tags returns a copy of the committed tag list.
func (t *Tags) Tags() []string {
	return append([]string(nil), t.tags...)
}

// Buffer returns the transient typing buffer.
func (t *Tags) Buffer() string { return t.buffer }

// Open reports whether the suggestion list is showing.
func (t *Tags) Open() bool { return t.open }

// SetBuffer replaces the typing buffer and recomputes suggestion visibility:
// suggestions show only while the buffer is non-empty and at least one
// suggestion matches.
func (t *Tags) SetBuffer(value string) {
	if t.disabled() {
		return
	}
	t.buffer = value
	t.open = value != "" && len(t.Suggestions()) > 0
}

// Enter commits the trimmed buffer as a new tag when it is non-empty, not
// already present (case-sensitive exact match), and the tag cap is not
// reached. A successful commit clears the buffer and closes the suggestion
// list; a rejected commit leaves the list untouched.
func (t *Tags) Enter() bool {
	return t.commit(t.buffer)
}

// Backspace on an empty buffer removes the most recently added tag.
func (t *Tags) Backspace() {
	if t.disabled() || t.buffer != "" || len(t.tags) == 0 {
		return
	}
	t.tags = t.tags[:len(t.tags)-1]
	t.ctx.emit(t.Tags())
}

// Escape clears the buffer and closes the suggestion list.
func (t *Tags) Escape() {
	t.buffer = ""
	t.open = false
}

// Choose commits a suggestion exactly as if it had been typed.
func (t *Tags) Choose(suggestion string) bool {
	return t.commit(suggestion)
}

// Remove deletes a tag, preserving the order of the remaining ones.
func (t *Tags) Remove(tag string) {
	if t.disabled() {
		return
	}
	for idx, existing := range t.tags {
		if existing == tag {
			t.tags = append(t.tags[:idx], t.tags[idx+1:]...)
			t.ctx.emit(t.Tags())
			return
		}
	}
}

// Suggestions filters the configured suggestion list to entries not already
// selected that contain the buffer case-insensitively. Empty while the
// buffer is empty.
func (t *Tags) Suggestions() []string {
	if t.buffer == "" || len(t.cfg.Suggestions) == 0 {
		return nil
	}
	needle := strings.ToLower(t.buffer)
	var out []string
	for _, suggestion := range t.cfg.Suggestions {
		if t.has(suggestion) {
			continue
		}
		if strings.Contains(strings.ToLower(suggestion), needle) {
			out = append(out, suggestion)
		}
	}
	return out
}

// Element describes the control: committed tag chips, the typing buffer, and
// the visible suggestions.
func (t *Tags) Element() render.Element {
	el := baseElement(t.cfg, t.ctx, "tags")
	el.Value = t.Tags()
	el.Attrs["buffer"] = t.buffer

	for _, tag := range t.tags {
		el.Children = append(el.Children, render.Element{Kind: "tag", Value: tag})
	}
	if t.open {
		suggestions := render.Element{Kind: "suggestions"}
		for _, suggestion := range t.Suggestions() {
			suggestions.Children = append(suggestions.Children, render.Element{
				Kind:  "suggestion",
				Value: suggestion,
			})
		}
		el.Children = append(el.Children, suggestions)
	}
	return el
}

func (t *Tags) commit(raw string) bool {
	if t.disabled() {
		return false
	}
	tag := strings.TrimSpace(raw)
	if tag == "" || t.has(tag) || t.atCap() {
		return false
	}
	if !t.cfg.AllowCustomTags && len(t.cfg.Suggestions) > 0 && !contains(t.cfg.Suggestions, tag) {
		return false
	}
	t.tags = append(t.tags, tag)
	t.buffer = ""
	t.open = false
	t.ctx.emit(t.Tags())
	return true
}

func (t *Tags) has(tag string) bool {
	return contains(t.tags, tag)
}

func (t *Tags) atCap() bool {
	return t.cfg.MaxTags != nil && len(t.tags) >= *t.cfg.MaxTags
}

func (t *Tags) disabled() bool {
	return t.cfg.Disabled || t.ctx.Disabled
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

func coerceStrings(value any) []string {
	switch v := value.(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
