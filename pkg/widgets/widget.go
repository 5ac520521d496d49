// Package widgets implements the per-field-type input controllers. Each
// widget is built from (config, value, onChange, error, disabled), owns only
// its own transient state (typing buffers, staged inputs), and has no view of
// sibling fields or the schema as a whole.
package widgets

import (
	"errors"
	"fmt"
	"log"

	"github.com/notedhq/go-formkit/pkg/render"
	"github.com/notedhq/go-formkit/pkg/schema"
)

// ErrUnknownType reports a field type no widget handles.
var ErrUnknownType = errors.New("widgets: unknown field type")

// warnf logs skipped fields. Swappable so embedders can route warnings into
// their own logger.
var warnf = log.Printf

// SetWarnf replaces the warning sink. Passing nil restores the default.
func SetWarnf(fn func(format string, args ...any)) {
	if fn == nil {
		warnf = log.Printf
		return
	}
	warnf = fn
}

// Context binds a widget to one field's slot in a form session: the current
// value, the change callback, the standing error, and the disabled flag.
type Context struct {
	Value    any
	OnChange func(value any)
	Error    string
	Disabled bool
}

func (c Context) emit(value any) {
	if c.OnChange != nil {
		c.OnChange(value)
	}
}

// Widget is one interactive control. Element returns a snapshot of its
// current visual state.
type Widget interface {
	Config() schema.FieldConfig
	Element() render.Element
}

// Option configures widget construction.
type Option func(*config)

type config struct {
	projectSource ProjectSource
}

// WithProjectSource wires the external list collaborator project-select
// widgets load from.
func WithProjectSource(source ProjectSource) Option {
	return func(c *config) {
		c.projectSource = source
	}
}

// New constructs the widget for a field config. The dispatch is exhaustive
// over the known field types; anything else returns ErrUnknownType so callers
// can skip the field instead of crashing the form.
func New(cfg schema.FieldConfig, ctx Context, options ...Option) (Widget, error) {
	var c config
	for _, opt := range options {
		if opt != nil {
			opt(&c)
		}
	}

	switch cfg.Type {
	case schema.TypeText, schema.TypeEmail, schema.TypeURL, schema.TypeTextarea:
		return NewText(cfg, ctx), nil
	case schema.TypeTags:
		return NewTags(cfg, ctx), nil
	case schema.TypeLinks:
		return NewLinks(cfg, ctx), nil
	case schema.TypeImages:
		return NewImages(cfg, ctx), nil
	case schema.TypeProjectSelect:
		return NewProjectSelect(cfg, ctx, c.projectSource), nil
	case schema.TypeSelect:
		return NewSelect(cfg, ctx), nil
	case schema.TypeNumber:
		return NewNumber(cfg, ctx), nil
	case schema.TypeCheckbox:
		return NewCheckbox(cfg, ctx), nil
	case schema.TypeDate:
		return NewDate(cfg, ctx), nil
	}
	return nil, fmt.Errorf("%w: %q (field %q)", ErrUnknownType, cfg.Type, cfg.Key)
}

// Build constructs widgets for every field, binding each to its context.
// Fields with unsupported types are skipped with a warning rather than
// failing the whole form.
func Build(fields []schema.FieldConfig, bind func(schema.FieldConfig) Context, options ...Option) []Widget {
	out := make([]Widget, 0, len(fields))
	for _, field := range fields {
		widget, err := New(field, bind(field), options...)
		if err != nil {
			warnf("widgets: skipping field %q: unsupported type %q", field.Key, field.Type)
			continue
		}
		out = append(out, widget)
	}
	return out
}

// Elements renders the element tree for a whole form given its current
// values and standing errors. Unsupported field types are skipped with a
// warning.
func Elements(f schema.Form, values map[string]any, errs map[string]string, options ...Option) []render.Element {
	widgets := Build(f.Fields, func(field schema.FieldConfig) Context {
		return Context{
			Value:    values[field.Key],
			Error:    errs[field.Key],
			Disabled: field.Disabled,
		}
	}, options...)

	out := make([]render.Element, 0, len(widgets))
	for _, widget := range widgets {
		out = append(out, widget.Element())
	}
	return out
}

func baseElement(cfg schema.FieldConfig, ctx Context, kind string) render.Element {
	return render.Element{
		Kind:        kind,
		Name:        cfg.Key,
		Label:       cfg.DisplayLabel(),
		Description: cfg.Description,
		Placeholder: cfg.Placeholder,
		Error:       ctx.Error,
		Disabled:    cfg.Disabled || ctx.Disabled,
		AutoFocus:   cfg.AutoFocus,
		Attrs:       map[string]string{},
	}
}
