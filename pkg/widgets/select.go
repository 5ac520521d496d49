package widgets

import (
	"strconv"

	"github.com/notedhq/go-formkit/pkg/render"
	"github.com/notedhq/go-formkit/pkg/schema"
)

// Select picks from the field's declared options. Single-select holds one
// value string; multi-select holds an ordered value slice toggled entry by
// entry.
type Select struct {
	cfg      schema.FieldConfig
	ctx      Context
	value    string
	multiple []string
}

// NewSelect builds the widget from the field's current value.
func NewSelect(cfg schema.FieldConfig, ctx Context) *Select {
	s := &Select{cfg: cfg, ctx: ctx}
	if cfg.Multiple {
		s.multiple = coerceStrings(ctx.Value)
	} else {
		s.value, _ = ctx.Value.(string)
	}
	return s
}

// Config returns the field config the widget was built from.
func (s *Select) Config() schema.FieldConfig { return s.cfg }

// Value returns the single-select value ("" when none).
func (s *Select) Value() string { return s.value }

// Values returns a copy of the multi-select values.
func (s *Select) Values() []string {
	return append([]string(nil), s.multiple...)
}

// Select sets a single-select value to one of the declared option values, or
// clears it with "". Rejected on multi-select fields.
func (s *Select) Select(value string) bool {
	if s.disabled() || s.cfg.Multiple {
		return false
	}
	if value != "" && !s.declared(value) {
		return false
	}
	s.value = value
	s.ctx.emit(value)
	return true
}

// Toggle flips one value in or out of a multi-select. Rejected on
// single-select fields and for undeclared values.
func (s *Select) Toggle(value string) bool {
	if s.disabled() || !s.cfg.Multiple || !s.declared(value) {
		return false
	}
	if contains(s.multiple, value) {
		next := make([]string, 0, len(s.multiple)-1)
		for _, v := range s.multiple {
			if v != value {
				next = append(next, v)
			}
		}
		s.multiple = next
	} else {
		s.multiple = append(s.multiple, value)
	}
	s.ctx.emit(s.Values())
	return true
}

// Element describes the control with the declared options as children; the
// selected attribute marks current membership.
func (s *Select) Element() render.Element {
	el := baseElement(s.cfg, s.ctx, "select")
	el.Attrs["multiple"] = strconv.FormatBool(s.cfg.Multiple)
	if s.cfg.Multiple {
		el.Value = s.Values()
	} else {
		el.Value = s.value
	}

	for _, option := range s.cfg.Options {
		child := render.Element{Kind: "option", Label: option.Label, Value: option.Value, Attrs: map[string]string{}}
		selected := option.Value == s.value
		if s.cfg.Multiple {
			selected = contains(s.multiple, option.Value)
		}
		child.Attrs["selected"] = strconv.FormatBool(selected)
		el.Children = append(el.Children, child)
	}
	return el
}

func (s *Select) declared(value string) bool {
	for _, option := range s.cfg.Options {
		if option.Value == value {
			return true
		}
	}
	return false
}

func (s *Select) disabled() bool {
	return s.cfg.Disabled || s.ctx.Disabled
}
