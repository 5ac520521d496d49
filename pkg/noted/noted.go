// Package noted binds the generic form engine to the Noted note-taking
// domain: a concrete note schema, user-scoped listing and deletion, and a
// project list source for the project-select widget.
package noted

import (
	"context"
	"errors"
	"fmt"

	"github.com/notedhq/go-formkit/pkg/auth"
	"github.com/notedhq/go-formkit/pkg/form"
	"github.com/notedhq/go-formkit/pkg/notify"
	"github.com/notedhq/go-formkit/pkg/persist"
	"github.com/notedhq/go-formkit/pkg/schema"
)

const (
	notesTable    = "notes"
	projectsTable = "projects"
)

// ErrNotConfigured is returned when a service is built without a store or a
// valid user.
var ErrNotConfigured = errors.New("noted: store and user are required")

// Schema returns the note form definition. Each call builds a fresh value so
// callers can adjust their copy without affecting others.
func Schema() schema.Form {
	titleMax := 100
	tagMax := 10
	return schema.Form{
		Title:          "New Note",
		Description:    "Capture a thought before it gets away.",
		Table:          notesTable,
		SubmitText:     "Save note",
		SuccessMessage: "Your note was saved",
		Auto:           schema.AutoFields{UserID: true, CreatedAt: true, UpdatedAt: true},
		Fields: []schema.FieldConfig{
			{Key: "title", Type: schema.TypeText, Label: "Title", Required: true,
				MaxLength: &titleMax, Placeholder: "What is this about?", AutoFocus: true},
			{Key: "content", Type: schema.TypeTextarea, Label: "Content", Rows: 8,
				Placeholder: "Write it down..."},
			{Key: "tags", Type: schema.TypeTags, Label: "Tags", MaxTags: &tagMax,
				AllowCustomTags: true, Suggestions: []string{"idea", "reading", "followup"}},
			{Key: "links", Type: schema.TypeLinks, Label: "Links",
				AllowTitleEdit: true, AllowDescriptionEdit: true},
			{Key: "project", Type: schema.TypeProjectSelect, Label: "Project",
				AllowCustom: true},
		},
	}
}

// Service exposes note operations for one user. All reads and writes are
// scoped to that user's rows.
type Service struct {
	store   persist.Store
	user    *auth.User
	toaster notify.Toaster
}

// Option customises a service at construction time.
type Option func(*Service)

// WithToaster wires the notification collaborator passed on to sessions.
func WithToaster(toaster notify.Toaster) Option {
	return func(s *Service) {
		if toaster != nil {
			s.toaster = toaster
		}
	}
}

// NewService builds a note service over a store for one user.
func NewService(store persist.Store, user *auth.User, options ...Option) (*Service, error) {
	if store == nil || !user.Valid() {
		return nil, ErrNotConfigured
	}
	s := &Service{store: store, user: user, toaster: notify.Nop{}}
	for _, option := range options {
		option(s)
	}
	return s, nil
}

// NewCreateSession starts a blank note session for the service's user.
func (s *Service) NewCreateSession(options ...form.Option) (*form.Session, error) {
	base := []form.Option{
		form.WithStore(s.store),
		form.WithUser(s.user),
		form.WithToaster(s.toaster),
	}
	return form.New(Schema(), append(base, options...)...)
}

// NewEditSession loads the user's note by id and starts an update session
// seeded from the stored row. A note owned by another user is not found.
func (s *Service) NewEditSession(ctx context.Context, id string, options ...form.Option) (*form.Session, error) {
	record, err := s.store.From(notesTable).
		Eq("id", id).
		Eq("user_id", s.user.ID).
		One(ctx)
	if err != nil {
		return nil, fmt.Errorf("noted: load note %s: %w", id, err)
	}

	base := []form.Option{
		form.WithStore(s.store),
		form.WithUser(s.user),
		form.WithToaster(s.toaster),
		form.WithRecord(id, record),
	}
	return form.New(Schema(), append(base, options...)...)
}

// List returns the user's notes, most recently updated first.
func (s *Service) List(ctx context.Context) ([]persist.Row, error) {
	rows, err := s.store.From(notesTable).
		Eq("user_id", s.user.ID).
		Order("updated_at", false).
		Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("noted: list notes: %w", err)
	}
	return rows, nil
}

// Get returns one of the user's notes by id.
func (s *Service) Get(ctx context.Context, id string) (persist.Row, error) {
	row, err := s.store.From(notesTable).
		Eq("id", id).
		Eq("user_id", s.user.ID).
		One(ctx)
	if err != nil {
		return nil, fmt.Errorf("noted: load note %s: %w", id, err)
	}
	return row, nil
}

// Delete removes one of the user's notes by id.
func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.store.From(notesTable).
		Eq("id", id).
		Eq("user_id", s.user.ID).
		Delete(ctx)
	if err != nil {
		return fmt.Errorf("noted: delete note %s: %w", id, err)
	}
	return nil
}

// Projects returns the user's project names in alphabetical order. The
// service satisfies the project-select widget's list source.
func (s *Service) Projects(ctx context.Context) ([]string, error) {
	rows, err := s.store.From(projectsTable).
		Select("name").
		Eq("user_id", s.user.ID).
		Order("name", true).
		Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("noted: list projects: %w", err)
	}
	names := make([]string, 0, len(rows))
	for _, row := range rows {
		if name, ok := row["name"].(string); ok && name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}
