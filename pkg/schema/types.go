package schema

// FieldType enumerates the input kinds the form engine knows how to validate
// and render. Unknown type strings are tolerated at runtime (they validate as
// plain text and are skipped by renderers) so legacy schema documents keep
// loading.
type FieldType string

const (
	TypeText          FieldType = "text"
	TypeEmail         FieldType = "email"
	TypeURL           FieldType = "url"
	TypeTextarea      FieldType = "textarea"
	TypeTags          FieldType = "tags"
	TypeLinks         FieldType = "links"
	TypeImages        FieldType = "images"
	TypeProjectSelect FieldType = "project-select"
	TypeSelect        FieldType = "select"
	TypeNumber        FieldType = "number"
	TypeCheckbox      FieldType = "checkbox"
	TypeDate          FieldType = "date"
)

// Known reports whether t is one of the supported field types.
func (t FieldType) Known() bool {
	switch t {
	case TypeText, TypeEmail, TypeURL, TypeTextarea, TypeTags, TypeLinks,
		TypeImages, TypeProjectSelect, TypeSelect, TypeNumber, TypeCheckbox, TypeDate:
		return true
	}
	return false
}

// Option is one entry of a select field.
type Option struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// Link is the value shape carried by a links field. URL is the only mandatory
// member; title and description stay editable in place when the field config
// allows it.
type Link struct {
	URL         string `json:"url" yaml:"url"`
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Image is the value shape carried by an images field.
type Image struct {
	URL      string `json:"url" yaml:"url"`
	Alt      string `json:"alt,omitempty" yaml:"alt,omitempty"`
	Caption  string `json:"caption,omitempty" yaml:"caption,omitempty"`
	Filename string `json:"filename,omitempty" yaml:"filename,omitempty"`
	Size     int64  `json:"size,omitempty" yaml:"size,omitempty"`
	Type     string `json:"type,omitempty" yaml:"type,omitempty"`
}

// FieldConfig describes one form input: its stable key (doubling as the
// storage column name), presentation strings, and the constraint attributes
// relevant to its type. Constraint members that do not apply to a field's type
// are simply ignored; optional numeric limits use pointers so "absent" stays
// distinguishable from zero.
type FieldConfig struct {
	Key         string    `json:"key" yaml:"key"`
	Type        FieldType `json:"type" yaml:"type"`
	Label       string    `json:"label,omitempty" yaml:"label,omitempty"`
	Required    bool      `json:"required,omitempty" yaml:"required,omitempty"`
	Placeholder string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Disabled    bool      `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	AutoFocus   bool      `json:"autoFocus,omitempty" yaml:"autoFocus,omitempty"`

	// text, email, url, textarea
	MaxLength *int   `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	MinLength *int   `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	Pattern   string `json:"pattern,omitempty" yaml:"pattern,omitempty"`

	// textarea
	Rows int `json:"rows,omitempty" yaml:"rows,omitempty"`

	// tags
	MaxTags         *int     `json:"maxTags,omitempty" yaml:"maxTags,omitempty"`
	AllowCustomTags bool     `json:"allowCustomTags,omitempty" yaml:"allowCustomTags,omitempty"`
	Suggestions     []string `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`

	// links
	MaxLinks             *int `json:"maxLinks,omitempty" yaml:"maxLinks,omitempty"`
	AllowTitleEdit       bool `json:"allowTitleEdit,omitempty" yaml:"allowTitleEdit,omitempty"`
	AllowDescriptionEdit bool `json:"allowDescriptionEdit,omitempty" yaml:"allowDescriptionEdit,omitempty"`

	// images
	MaxFiles      *int     `json:"maxFiles,omitempty" yaml:"maxFiles,omitempty"`
	MaxFileSize   *int64   `json:"maxFileSize,omitempty" yaml:"maxFileSize,omitempty"`
	AllowedTypes  []string `json:"allowedTypes,omitempty" yaml:"allowedTypes,omitempty"`
	AllowCaptions bool     `json:"allowCaptions,omitempty" yaml:"allowCaptions,omitempty"`

	// project-select
	AllowCustom bool `json:"allowCustom,omitempty" yaml:"allowCustom,omitempty"`

	// select
	Options  []Option `json:"options,omitempty" yaml:"options,omitempty"`
	Multiple bool     `json:"multiple,omitempty" yaml:"multiple,omitempty"`

	// number
	Min  *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max  *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	Step *float64 `json:"step,omitempty" yaml:"step,omitempty"`
}

// DisplayLabel returns the label shown to users, falling back to the key when
// no label is configured.
func (f FieldConfig) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Key
}

// IsArray reports whether the field's value is list-shaped (tags, links,
// images, or a multi-select).
func (f FieldConfig) IsArray() bool {
	switch f.Type {
	case TypeTags, TypeLinks, TypeImages:
		return true
	case TypeSelect:
		return f.Multiple
	}
	return false
}

// AutoFields flags the columns the persistence layer owns. Flagged fields are
// stripped from every submitted payload; a client-supplied value for them is
// never trusted.
type AutoFields struct {
	UserID    bool `json:"user_id,omitempty" yaml:"user_id,omitempty"`
	CreatedAt bool `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt bool `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// Form is an ordered collection of field configs plus submission metadata.
// Forms are immutable once constructed; a form session only ever reads them.
type Form struct {
	Title          string        `json:"title,omitempty" yaml:"title,omitempty"`
	Description    string        `json:"description,omitempty" yaml:"description,omitempty"`
	Table          string        `json:"table" yaml:"table"`
	Fields         []FieldConfig `json:"fields" yaml:"fields"`
	SubmitText     string        `json:"submitText,omitempty" yaml:"submitText,omitempty"`
	ResetText      string        `json:"resetText,omitempty" yaml:"resetText,omitempty"`
	SuccessMessage string        `json:"successMessage,omitempty" yaml:"successMessage,omitempty"`
	Auto           AutoFields    `json:"autoFields,omitempty" yaml:"autoFields,omitempty"`
}

// Field returns the config for key, if declared.
func (f Form) Field(key string) (FieldConfig, bool) {
	for _, field := range f.Fields {
		if field.Key == key {
			return field, true
		}
	}
	return FieldConfig{}, false
}

// Keys returns the declared field keys in schema order.
func (f Form) Keys() []string {
	out := make([]string, 0, len(f.Fields))
	for _, field := range f.Fields {
		out = append(out, field.Key)
	}
	return out
}
