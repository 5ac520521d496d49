package render

// Element is the renderer-facing description of one rendered control (or a
// piece of one). Widgets emit Element trees; renderers turn them into bytes
// for a concrete surface (HTML, terminal). Elements carry no behavior.
type Element struct {
	// Kind names the control: "input", "textarea", "tags", "tag", "links",
	// "link", "images", "image", "select", "option", "checkbox", "counter",
	// "suggestions", "suggestion".
	Kind string

	// Name is the field key for top-level controls, empty for fragments.
	Name string

	Label       string
	Description string
	Placeholder string
	Value       any
	Error       string
	Disabled    bool
	AutoFocus   bool

	// Attrs carries kind-specific presentation hints (type, rows, maxlength,
	// current/max counter text) as strings.
	Attrs map[string]string

	Children []Element
}

// Attr returns the named attribute or "".
func (e Element) Attr(name string) string {
	if e.Attrs == nil {
		return ""
	}
	return e.Attrs[name]
}

// WithAttr returns a copy of e with the attribute set.
func (e Element) WithAttr(name, value string) Element {
	attrs := make(map[string]string, len(e.Attrs)+1)
	for k, v := range e.Attrs {
		attrs[k] = v
	}
	attrs[name] = value
	e.Attrs = attrs
	return e
}
