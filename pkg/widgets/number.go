package widgets

import (
	"strconv"
	"strings"

	"github.com/notedhq/go-formkit/pkg/render"
	"github.com/notedhq/go-formkit/pkg/schema"
)

// Number edits a numeric value. The value is a *float64 so "no value entered"
// stays distinct from zero; range limits are enforced by validation, not by
// the widget.
type Number struct {
	cfg   schema.FieldConfig
	ctx   Context
	value *float64
}

// NewNumber builds the widget from the field's current value.
func NewNumber(cfg schema.FieldConfig, ctx Context) *Number {
	n := &Number{cfg: cfg, ctx: ctx}
	switch v := ctx.Value.(type) {
	case float64:
		n.value = &v
	case *float64:
		n.value = v
	case int:
		f := float64(v)
		n.value = &f
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			n.value = &f
		}
	}
	return n
}

// Config returns the field config the widget was built from.
func (n *Number) Config() schema.FieldConfig { return n.cfg }

// Value returns the current value, nil when none is entered.
func (n *Number) Value() *float64 { return n.value }

// Set replaces the value.
func (n *Number) Set(value float64) {
	if n.disabled() {
		return
	}
	n.value = &value
	n.ctx.emit(value)
}

// SetString parses typed input. Blank input clears the value; anything
// unparseable is rejected without changing it.
func (n *Number) SetString(input string) bool {
	if n.disabled() {
		return false
	}
	input = strings.TrimSpace(input)
	if input == "" {
		n.Clear()
		return true
	}
	value, err := strconv.ParseFloat(input, 64)
	if err != nil {
		return false
	}
	n.value = &value
	n.ctx.emit(value)
	return true
}

// Clear removes the value, emitting nil.
func (n *Number) Clear() {
	if n.disabled() {
		return
	}
	n.value = nil
	n.ctx.emit(nil)
}

// Element describes the control with its min/max/step attributes.
func (n *Number) Element() render.Element {
	el := baseElement(n.cfg, n.ctx, "input")
	el.Attrs["type"] = "number"
	if n.value != nil {
		el.Value = *n.value
	}
	if n.cfg.Min != nil {
		el.Attrs["min"] = formatFloat(*n.cfg.Min)
	}
	if n.cfg.Max != nil {
		el.Attrs["max"] = formatFloat(*n.cfg.Max)
	}
	if n.cfg.Step != nil {
		el.Attrs["step"] = formatFloat(*n.cfg.Step)
	}
	return el
}

func (n *Number) disabled() bool {
	return n.cfg.Disabled || n.ctx.Disabled
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
