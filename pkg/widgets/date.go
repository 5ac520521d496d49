package widgets

import (
	"strings"
	"time"

	"github.com/notedhq/go-formkit/pkg/render"
	"github.com/notedhq/go-formkit/pkg/schema"
)

// Date edits a date value carried as a string. The widget does not parse the
// input; format enforcement stays with validation so partially typed dates
// survive rerenders.
type Date struct {
	cfg   schema.FieldConfig
	ctx   Context
	value string
}

// NewDate builds the widget from the field's current value.
func NewDate(cfg schema.FieldConfig, ctx Context) *Date {
	d := &Date{cfg: cfg, ctx: ctx}
	switch v := ctx.Value.(type) {
	case string:
		d.value = v
	case time.Time:
		d.value = v.Format("2006-01-02")
	}
	return d
}

// Config returns the field config the widget was built from.
func (d *Date) Config() schema.FieldConfig { return d.cfg }

// Value returns the current date string.
func (d *Date) Value() string { return d.value }

// Set replaces the value. Blank input clears it.
func (d *Date) Set(value string) {
	if d.disabled() {
		return
	}
	d.value = strings.TrimSpace(value)
	d.ctx.emit(d.value)
}

// Element describes the control.
func (d *Date) Element() render.Element {
	el := baseElement(d.cfg, d.ctx, "input")
	el.Attrs["type"] = "date"
	el.Value = d.value
	return el
}

func (d *Date) disabled() bool {
	return d.cfg.Disabled || d.ctx.Disabled
}
