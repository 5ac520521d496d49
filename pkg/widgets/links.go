package widgets

import (
	"strconv"
	"strings"

	"github.com/notedhq/go-formkit/pkg/render"
	"github.com/notedhq/go-formkit/pkg/schema"
)

// Links edits a list of link entries. New links are built from a staged URL
// input; title and description are editable in place afterwards when the
// config allows it.
type Links struct {
	cfg    schema.FieldConfig
	ctx    Context
	links  []schema.Link
	staged string
}

// NewLinks builds a links widget from the current value.
func NewLinks(cfg schema.FieldConfig, ctx Context) *Links {
	return &Links{cfg: cfg, ctx: ctx, links: coerceLinks(ctx.Value)}
}

// Config returns the field config the widget was built from.
func (l *Links) Config() schema.FieldConfig { return l.cfg }

// Links returns a copy of the current entries.
func (l *Links) Links() []schema.Link {
	return append([]schema.Link(nil), l.links...)
}

// Staged returns the staged URL input.
func (l *Links) Staged() string { return l.staged }

// SetStaged replaces the staged URL input.
func (l *Links) SetStaged(url string) {
	if l.disabled() {
		return
	}
	l.staged = url
}

// CanAdd reports whether another link may be appended.
func (l *Links) CanAdd() bool {
	if l.disabled() {
		return false
	}
	return l.cfg.MaxLinks == nil || len(l.links) < *l.cfg.MaxLinks
}

// Add appends a new entry built from the staged URL and clears the staging
// input. It is a no-op (returning false) when the staged URL is blank or the
// link cap is reached.
func (l *Links) Add() bool {
	url := strings.TrimSpace(l.staged)
	if url == "" || !l.CanAdd() {
		return false
	}
	l.links = append(l.links, schema.Link{URL: url})
	l.staged = ""
	l.ctx.emit(l.Links())
	return true
}

// Remove deletes the entry at idx, preserving the order of the rest.
func (l *Links) Remove(idx int) {
	if l.disabled() || idx < 0 || idx >= len(l.links) {
		return
	}
	l.links = append(l.links[:idx], l.links[idx+1:]...)
	l.ctx.emit(l.Links())
}

// SetTitle edits one entry's title in place. Gated by allowTitleEdit.
func (l *Links) SetTitle(idx int, title string) {
	if l.disabled() || !l.cfg.AllowTitleEdit || idx < 0 || idx >= len(l.links) {
		return
	}
	l.links[idx].Title = title
	l.ctx.emit(l.Links())
}

// SetDescription edits one entry's description in place. Gated by
// allowDescriptionEdit.
func (l *Links) SetDescription(idx int, description string) {
	if l.disabled() || !l.cfg.AllowDescriptionEdit || idx < 0 || idx >= len(l.links) {
		return
	}
	l.links[idx].Description = description
	l.ctx.emit(l.Links())
}

// Element describes the control: one row per link plus the staged URL input
// and whether the add action is currently available.
func (l *Links) Element() render.Element {
	el := baseElement(l.cfg, l.ctx, "links")
	el.Value = l.Links()
	el.Attrs["staged"] = l.staged
	el.Attrs["canAdd"] = strconv.FormatBool(l.CanAdd())

	for _, link := range l.links {
		row := render.Element{Kind: "link", Value: link}
		if l.cfg.AllowTitleEdit {
			row = row.WithAttr("editableTitle", "true")
		}
		if l.cfg.AllowDescriptionEdit {
			row = row.WithAttr("editableDescription", "true")
		}
		el.Children = append(el.Children, row)
	}
	return el
}

func (l *Links) disabled() bool {
	return l.cfg.Disabled || l.ctx.Disabled
}

func coerceLinks(value any) []schema.Link {
	switch v := value.(type) {
	case []schema.Link:
		return append([]schema.Link(nil), v...)
	case []any:
		out := make([]schema.Link, 0, len(v))
		for _, item := range v {
			if link, ok := item.(schema.Link); ok {
				out = append(out, link)
			}
		}
		return out
	}
	return nil
}
