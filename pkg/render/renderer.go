package render

import (
	"context"

	"github.com/notedhq/go-formkit/pkg/schema"
)

// Snapshot is everything a renderer needs to draw one form at a moment in
// time: the immutable schema, the element tree the widgets produced, and any
// standing errors.
type Snapshot struct {
	Form      schema.Form
	Elements  []Element
	Errors    map[string]string
	FormError string
}

// Options carries per-render instructions that do not belong in the schema.
type Options struct {
	// Action is the submit target renderers may embed (a URL for HTML).
	Action string
	// Method overrides the submit verb for surfaces that have one.
	Method string
}

// Renderer converts a form snapshot into a byte representation.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, snap Snapshot, options Options) ([]byte, error)
}
