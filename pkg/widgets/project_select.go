package widgets

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/notedhq/go-formkit/pkg/render"
	"github.com/notedhq/go-formkit/pkg/schema"
)

// ProjectSource supplies the external project list a project-select widget
// offers. Implementations are expected to be fast; the widget caches the
// first successful fetch for its lifetime.
type ProjectSource interface {
	Projects(ctx context.Context) ([]string, error)
}

// ProjectSelect picks one project name from an externally fetched list, with
// an optional free-text path when the config allows custom entries. The
// cached list is owned by this widget instance and is never mutated by
// selection.
type ProjectSelect struct {
	cfg      schema.FieldConfig
	ctx      Context
	source   ProjectSource
	selected string

	options  []string
	loaded   bool
	fetching bool
}

// NewProjectSelect builds the widget. source may be nil, in which case only
// custom entries (when allowed) are possible.
func NewProjectSelect(cfg schema.FieldConfig, ctx Context, source ProjectSource) *ProjectSelect {
	selected, _ := ctx.Value.(string)
	return &ProjectSelect{cfg: cfg, ctx: ctx, source: source, selected: selected}
}

// Config returns the field config the widget was built from.
func (p *ProjectSelect) Config() schema.FieldConfig { return p.cfg }

// Selected returns the currently selected project name ("" when none).
func (p *ProjectSelect) Selected() string { return p.selected }

// Options returns a copy of the cached project list.
func (p *ProjectSelect) Options() []string {
	return append([]string(nil), p.options...)
}

// Load fetches the project list once. Repeat calls after a successful load
// are no-ops, as is a call while a fetch is already outstanding; a failed
// fetch leaves the widget ready to retry.
func (p *ProjectSelect) Load(ctx context.Context) error {
	if p.loaded || p.fetching || p.source == nil {
		return nil
	}
	p.fetching = true
	defer func() { p.fetching = false }()

	projects, err := p.source.Projects(ctx)
	if err != nil {
		return fmt.Errorf("widgets: load projects: %w", err)
	}
	p.options = projects
	p.loaded = true
	return nil
}

// Select sets the value to one of the fetched names, or clears it with "".
// The external list is never mutated.
func (p *ProjectSelect) Select(name string) bool {
	if p.disabled() {
		return false
	}
	if name != "" && !contains(p.options, name) {
		return false
	}
	p.selected = name
	p.ctx.emit(name)
	return true
}

// SelectCustom sets a free-text project name. Gated by allowCustom.
func (p *ProjectSelect) SelectCustom(name string) bool {
	if p.disabled() || !p.cfg.AllowCustom {
		return false
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	p.selected = name
	p.ctx.emit(name)
	return true
}

// Clear resets the selection to "".
func (p *ProjectSelect) Clear() {
	if p.disabled() {
		return
	}
	p.selected = ""
	p.ctx.emit("")
}

// Element describes the control with the cached options as children.
func (p *ProjectSelect) Element() render.Element {
	el := baseElement(p.cfg, p.ctx, "select")
	el.Value = p.selected
	el.Attrs["source"] = "projects"
	el.Attrs["allowCustom"] = strconv.FormatBool(p.cfg.AllowCustom)

	for _, option := range p.options {
		el.Children = append(el.Children, render.Element{Kind: "option", Value: option})
	}
	return el
}

func (p *ProjectSelect) disabled() bool {
	return p.cfg.Disabled || p.ctx.Disabled
}
