package widgets

import (
	"strconv"
	"unicode/utf8"

	"github.com/notedhq/go-formkit/pkg/render"
	"github.com/notedhq/go-formkit/pkg/schema"
)

// Text handles the text, email, url, and textarea field types. Every
// keystroke hands the full new string to SetValue; a configured maxLength is
// a hard input cap applied before the change is committed.
type Text struct {
	cfg   schema.FieldConfig
	ctx   Context
	value string
}

// NewText builds a text widget, treating a nil current value as "".
func NewText(cfg schema.FieldConfig, ctx Context) *Text {
	value, _ := ctx.Value.(string)
	return &Text{cfg: cfg, ctx: ctx, value: value}
}

// Config returns the field config the widget was built from.
func (t *Text) Config() schema.FieldConfig { return t.cfg }

// Value returns the current committed string.
func (t *Text) Value() string { return t.value }

// SetValue commits a new full value, capping it at maxLength when one is
// configured.
func (t *Text) SetValue(value string) {
	if t.disabled() {
		return
	}
	if t.cfg.MaxLength != nil {
		value = truncateRunes(value, *t.cfg.MaxLength)
	}
	t.value = value
	t.ctx.emit(value)
}

// Counter reports the live current/max character count. ok is false when no
// maxLength is configured and no counter should be shown.
func (t *Text) Counter() (current, max int, ok bool) {
	if t.cfg.MaxLength == nil {
		return 0, 0, false
	}
	return utf8.RuneCountInString(t.value), *t.cfg.MaxLength, true
}

// Element describes the control: an input (typed text/email/url) or a
// textarea with its configured row count, plus a counter child when
// maxLength is set.
func (t *Text) Element() render.Element {
	kind := "input"
	if t.cfg.Type == schema.TypeTextarea {
		kind = "textarea"
	}
	el := baseElement(t.cfg, t.ctx, kind)
	el.Value = t.value

	switch t.cfg.Type {
	case schema.TypeEmail:
		el.Attrs["type"] = "email"
	case schema.TypeURL:
		el.Attrs["type"] = "url"
	case schema.TypeTextarea:
		rows := t.cfg.Rows
		if rows <= 0 {
			rows = 3
		}
		el.Attrs["rows"] = strconv.Itoa(rows)
	default:
		el.Attrs["type"] = "text"
	}

	if current, max, ok := t.Counter(); ok {
		el.Attrs["maxlength"] = strconv.Itoa(max)
		el.Children = append(el.Children, render.Element{
			Kind: "counter",
			Attrs: map[string]string{
				"current": strconv.Itoa(current),
				"max":     strconv.Itoa(max),
			},
		})
	}
	return el
}

func (t *Text) disabled() bool {
	return t.cfg.Disabled || t.ctx.Disabled
}

func truncateRunes(s string, limit int) string {
	if limit < 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit])
}
