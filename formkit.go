// Package formkit is the top-level convenience surface over the form engine.
// It re-exports the types simple callers need and bundles the common
// schema -> session -> render path into single calls.
package formkit

import (
	"context"

	"github.com/notedhq/go-formkit/pkg/form"
	"github.com/notedhq/go-formkit/pkg/notify"
	"github.com/notedhq/go-formkit/pkg/persist"
	"github.com/notedhq/go-formkit/pkg/render"
	"github.com/notedhq/go-formkit/pkg/renderers/html"
	"github.com/notedhq/go-formkit/pkg/schema"
	"github.com/notedhq/go-formkit/pkg/validation"
	"github.com/notedhq/go-formkit/pkg/widgets"
)

// Aliases exported via the root package so callers with simple needs only
// import formkit.
type (
	// Form is a declarative form definition.
	Form = schema.Form
	// FieldConfig describes one field of a form.
	FieldConfig = schema.FieldConfig
	// Session is the stateful form lifecycle: values, validation, submit.
	Session = form.Session
	// SessionOption customises a session at construction time.
	SessionOption = form.Option
	// Row is one table record as a column/value map.
	Row = persist.Row
	// Toast is a user-facing notification.
	Toast = notify.Toast
)

// ParseForm parses a form definition from JSON or YAML.
func ParseForm(data []byte, source string) (Form, error) {
	return schema.Parse(data, source)
}

// NewSession validates a form definition and starts a session over it.
func NewSession(f Form, options ...SessionOption) (*Session, error) {
	return form.New(f, options...)
}

// Snapshot builds the renderer-facing view of a session's current state:
// the form chrome, one element tree per field, and any standing errors.
func Snapshot(s *Session) render.Snapshot {
	errs := s.Errors()
	return render.Snapshot{
		Form:      s.Form(),
		Elements:  widgets.Elements(s.Form(), s.Values(), errs),
		Errors:    errs,
		FormError: errs[validation.FormErrorKey],
	}
}

// RenderHTML renders a session's current state through the built-in HTML
// renderer. Callers that render repeatedly should construct an html.Renderer
// once and reuse it; this helper builds a fresh one per call.
func RenderHTML(ctx context.Context, s *Session, renderOptions render.Options, options ...html.Option) ([]byte, error) {
	renderer, err := html.New(options...)
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, Snapshot(s), renderOptions)
}

// DefaultRegistry returns a renderer registry with the built-in HTML
// renderer registered under its canonical name.
func DefaultRegistry() (*render.Registry, error) {
	renderer, err := html.New()
	if err != nil {
		return nil, err
	}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)
	return registry, nil
}
