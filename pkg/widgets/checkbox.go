package widgets

import (
	"strconv"

	"github.com/notedhq/go-formkit/pkg/render"
	"github.com/notedhq/go-formkit/pkg/schema"
)

// Checkbox edits a boolean value. Anything that is not a bool true reads as
// unchecked.
type Checkbox struct {
	cfg     schema.FieldConfig
	ctx     Context
	checked bool
}

// NewCheckbox builds the widget from the field's current value.
func NewCheckbox(cfg schema.FieldConfig, ctx Context) *Checkbox {
	checked, _ := ctx.Value.(bool)
	return &Checkbox{cfg: cfg, ctx: ctx, checked: checked}
}

// Config returns the field config the widget was built from.
func (c *Checkbox) Config() schema.FieldConfig { return c.cfg }

// Checked returns the current state.
func (c *Checkbox) Checked() bool { return c.checked }

// Toggle flips the state.
func (c *Checkbox) Toggle() {
	c.Set(!c.checked)
}

// Set forces the state.
func (c *Checkbox) Set(checked bool) {
	if c.disabled() {
		return
	}
	c.checked = checked
	c.ctx.emit(checked)
}

// Element describes the control.
func (c *Checkbox) Element() render.Element {
	el := baseElement(c.cfg, c.ctx, "input")
	el.Attrs["type"] = "checkbox"
	el.Attrs["checked"] = strconv.FormatBool(c.checked)
	el.Value = c.checked
	return el
}

func (c *Checkbox) disabled() bool {
	return c.cfg.Disabled || c.ctx.Disabled
}
