package widgets

import (
	"strconv"
	"strings"

	"github.com/notedhq/go-formkit/pkg/render"
	"github.com/notedhq/go-formkit/pkg/schema"
)

// Images edits a list of image entries. Captions are editable in place when
// the config allows it; an entry's URL is fixed once added.
type Images struct {
	cfg    schema.FieldConfig
	ctx    Context
	images []schema.Image
}

// NewImages builds an images widget from the current value.
func NewImages(cfg schema.FieldConfig, ctx Context) *Images {
	return &Images{cfg: cfg, ctx: ctx, images: coerceImages(ctx.Value)}
}

// Config returns the field config the widget was built from.
func (w *Images) Config() schema.FieldConfig { return w.cfg }

// Images returns a copy of the current entries.
func (w *Images) Images() []schema.Image {
	return append([]schema.Image(nil), w.images...)
}

// CanAdd reports whether another image may be appended.
func (w *Images) CanAdd() bool {
	if w.disabled() {
		return false
	}
	return w.cfg.MaxFiles == nil || len(w.images) < *w.cfg.MaxFiles
}

// Add appends an entry when the file cap is not reached and the image
// satisfies the configured size and MIME-type limits. Rejected adds are
// no-ops returning false.
func (w *Images) Add(image schema.Image) bool {
	if !w.CanAdd() || strings.TrimSpace(image.URL) == "" {
		return false
	}
	if w.cfg.MaxFileSize != nil && image.Size > *w.cfg.MaxFileSize {
		return false
	}
	if len(w.cfg.AllowedTypes) > 0 && !contains(w.cfg.AllowedTypes, image.Type) {
		return false
	}
	w.images = append(w.images, image)
	w.ctx.emit(w.Images())
	return true
}

// Remove deletes the entry at idx, preserving the order of the rest.
func (w *Images) Remove(idx int) {
	if w.disabled() || idx < 0 || idx >= len(w.images) {
		return
	}
	w.images = append(w.images[:idx], w.images[idx+1:]...)
	w.ctx.emit(w.Images())
}

// SetCaption edits one entry's caption in place. Gated by allowCaptions.
// URLs are not editable post-add; only the caption is.
func (w *Images) SetCaption(idx int, caption string) {
	if w.disabled() || !w.cfg.AllowCaptions || idx < 0 || idx >= len(w.images) {
		return
	}
	w.images[idx].Caption = caption
	w.ctx.emit(w.Images())
}

// Element describes the control: one row per image plus the add state.
func (w *Images) Element() render.Element {
	el := baseElement(w.cfg, w.ctx, "images")
	el.Value = w.Images()
	el.Attrs["canAdd"] = strconv.FormatBool(w.CanAdd())
	if w.cfg.AllowCaptions {
		el.Attrs["editableCaption"] = "true"
	}

	for _, image := range w.images {
		el.Children = append(el.Children, render.Element{Kind: "image", Value: image})
	}
	return el
}

func (w *Images) disabled() bool {
	return w.cfg.Disabled || w.ctx.Disabled
}

func coerceImages(value any) []schema.Image {
	switch v := value.(type) {
	case []schema.Image:
		return append([]schema.Image(nil), v...)
	case []any:
		out := make([]schema.Image, 0, len(v))
		for _, item := range v {
			if image, ok := item.(schema.Image); ok {
				out = append(out, image)
			}
		}
		return out
	}
	return nil
}
