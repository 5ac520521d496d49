// Package html renders form snapshots as server-side HTML through pongo2
// templates. Schema-supplied rich text is sanitized before it reaches a
// template's safe filter, and theme configuration flows in as CSS custom
// properties and asset URLs.
package html

import (
	"context"
	"fmt"

	theme "github.com/goliatone/go-theme"
	"github.com/microcosm-cc/bluemonday"

	"github.com/notedhq/go-formkit/pkg/render"
	"github.com/notedhq/go-formkit/pkg/schema"
)

const (
	rendererName   = "html"
	contentType    = "text/html; charset=utf-8"
	formTemplate   = "templates/form"
	stylesheetSlot = "formkit.stylesheet"
)

// Option customises the renderer.
type Option func(*Renderer)

// WithTemplateRenderer substitutes the template engine.
func WithTemplateRenderer(engine TemplateRenderer) Option {
	return func(r *Renderer) {
		if engine != nil {
			r.engine = engine
		}
	}
}

// WithThemeConfig applies a resolved theme: CSS custom properties become an
// inline style on the form, and the stylesheet asset slot resolves to a link
// tag.
func WithThemeConfig(cfg *theme.RendererConfig) Option {
	return func(r *Renderer) {
		r.theme = cfg
	}
}

// WithSanitizer overrides the policy applied to description markup.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(r *Renderer) {
		if policy != nil {
			r.sanitizer = policy
		}
	}
}

// Renderer implements render.Renderer for HTML output.
type Renderer struct {
	engine    TemplateRenderer
	theme     *theme.RendererConfig
	sanitizer *bluemonday.Policy
}

// New constructs the renderer with the embedded template bundle.
func New(options ...Option) (*Renderer, error) {
	engine, err := NewEngine(WithFS(templatesFS))
	if err != nil {
		return nil, fmt.Errorf("html: build engine: %w", err)
	}

	r := &Renderer{
		engine:    engine,
		sanitizer: bluemonday.UGCPolicy(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r, nil
}

// Name implements render.Renderer.
func (r *Renderer) Name() string { return rendererName }

// ContentType implements render.Renderer.
func (r *Renderer) ContentType() string { return contentType }

// Render draws the snapshot into a complete <form> document fragment.
func (r *Renderer) Render(ctx context.Context, snap render.Snapshot, options render.Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	method := options.Method
	if method == "" {
		method = "post"
	}
	submitText := snap.Form.SubmitText
	if submitText == "" {
		submitText = "Save"
	}

	data := map[string]any{
		"action":      options.Action,
		"method":      method,
		"title":       snap.Form.Title,
		"description": r.sanitize(snap.Form.Description),
		"formError":   snap.FormError,
		"submitText":  submitText,
		"resetText":   snap.Form.ResetText,
		"elements":    r.elementContexts(snap.Elements),
		"themeStyle":  r.themeStyle(),
		"stylesheet":  r.stylesheetURL(),
	}

	out, err := r.engine.RenderTemplate(formTemplate, data)
	if err != nil {
		return nil, fmt.Errorf("html: render form: %w", err)
	}
	return []byte(out), nil
}

func (r *Renderer) sanitize(markup string) string {
	if markup == "" {
		return ""
	}
	return r.sanitizer.Sanitize(markup)
}

func (r *Renderer) elementContexts(elements []render.Element) []map[string]any {
	out := make([]map[string]any, 0, len(elements))
	for _, el := range elements {
		out = append(out, r.elementContext(el))
	}
	return out
}

func (r *Renderer) elementContext(el render.Element) map[string]any {
	attrs := make(map[string]string, len(el.Attrs))
	for key, value := range el.Attrs {
		attrs[key] = value
	}
	return map[string]any{
		"kind":        el.Kind,
		"name":        el.Name,
		"label":       el.Label,
		"description": r.sanitize(el.Description),
		"placeholder": el.Placeholder,
		"value":       elementValue(el.Value),
		"error":       el.Error,
		"disabled":    el.Disabled,
		"autofocus":   el.AutoFocus,
		"attrs":       attrs,
		"children":    r.elementContexts(el.Children),
	}
}

// elementValue flattens the typed value shapes into template-friendly maps.
func elementValue(value any) any {
	switch v := value.(type) {
	case schema.Link:
		return map[string]any{"url": v.URL, "title": v.Title, "description": v.Description}
	case schema.Image:
		return map[string]any{
			"url": v.URL, "alt": v.Alt, "caption": v.Caption,
			"filename": v.Filename, "size": v.Size, "type": v.Type,
		}
	}
	return value
}

func (r *Renderer) themeStyle() string {
	if r.theme == nil || len(r.theme.CSSVars) == 0 {
		return ""
	}
	return cssVarsStyle(r.theme.CSSVars)
}

func (r *Renderer) stylesheetURL() string {
	if r.theme == nil || r.theme.AssetURL == nil {
		return ""
	}
	return r.theme.AssetURL(stylesheetSlot)
}
