package form

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/notedhq/go-formkit/pkg/auth"
	"github.com/notedhq/go-formkit/pkg/notify"
	"github.com/notedhq/go-formkit/pkg/persist"
	"github.com/notedhq/go-formkit/pkg/schema"
	"github.com/notedhq/go-formkit/pkg/validation"
)

// State names the lifecycle phase of a session.
type State string

const (
	StateEditing    State = "editing"
	StateSubmitting State = "submitting"
)

// Mode selects the persistence verb a session uses.
type Mode string

const (
	ModeCreate Mode = "create"
	ModeUpdate Mode = "update"
)

var (
	// ErrInvalid reports a failed validation pass. Per-field messages stay on
	// the session (Errors); they are never surfaced through the toaster.
	ErrInvalid = errors.New("form: validation failed")
	// ErrSubmitInFlight rejects a second submit (or a reset) while one is
	// outstanding.
	ErrSubmitInFlight = errors.New("form: a submit is already in progress")
	// ErrNotConfigured wraps configuration failures detected before any
	// persistence call is attempted.
	ErrNotConfigured = errors.New("form: session is not configured")
	// ErrUnknownField rejects mutations of keys the schema does not declare.
	ErrUnknownField = errors.New("form: unknown field")
)

// SubmitFunc replaces the built-in persistence path with a caller-supplied
// one. It receives the prepared payload and returns the stored row.
type SubmitFunc func(ctx context.Context, payload map[string]any) (persist.Row, error)

// Session owns the mutable state of one active form: current values, standing
// field errors, and the submit lifecycle. The schema it was built from is
// never mutated. Sessions are intended for a single logical thread of
// control; the internal lock only guards the double-submit window.
type Session struct {
	form      schema.Form
	validator *validation.Validator
	snapshot  map[string]any
	entity    string

	mode       Mode
	recordID   any
	keepValues bool

	store      persist.Store
	user       *auth.User
	toaster    notify.Toaster
	submitFn   SubmitFunc
	recordSeed map[string]any

	onSuccess func(persist.Row)
	onReset   func()

	mu     sync.Mutex
	state  State
	values map[string]any
	errors map[string]string
}

// New builds a session for the supplied form. The form is validated first;
// initial values come from Defaults, overlaid with the record snapshot when
// WithRecord puts the session in update mode.
func New(f schema.Form, options ...Option) (*Session, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		form:      f,
		validator: validation.Synthesize(f.Fields),
		mode:      ModeCreate,
		state:     StateEditing,
		toaster:   notify.Nop{},
		entity:    singular(f.Table),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}

	s.snapshot = Defaults(f.Fields)
	if s.mode == ModeUpdate && s.recordSeed != nil {
		for key := range s.snapshot {
			if value, ok := s.recordSeed[key]; ok {
				s.snapshot[key] = value
			}
		}
	}
	s.values = cloneValues(s.snapshot)
	return s, nil
}

// Form returns the immutable schema the session was built from.
func (s *Session) Form() schema.Form { return s.form }

// Mode reports whether the session creates or updates a record.
func (s *Session) Mode() Mode { return s.mode }

// State reports the current lifecycle phase.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Set stores a new value for a declared field. When the field carries a
// standing error and the new value passes the field's own rule, the error is
// cleared; full validation otherwise waits for Submit.
func (s *Session) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateSubmitting {
		return ErrSubmitInFlight
	}
	msg, known := s.validator.Check(key, value)
	if !known {
		return fmt.Errorf("%w: %q", ErrUnknownField, key)
	}

	s.values[key] = value
	if _, hadError := s.errors[key]; hadError && msg == "" {
		delete(s.errors, key)
	}
	return nil
}

// Value returns the current value for key.
func (s *Session) Value(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.values[key]
	return value, ok
}

// Values returns a copy of the current value map.
func (s *Session) Values() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneValues(s.values)
}

// Errors returns a copy of the standing per-field errors.
func (s *Session) Errors() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.errors))
	for key, msg := range s.errors {
		out[key] = msg
	}
	return out
}

// FieldError returns the standing error for one field, if any.
func (s *Session) FieldError(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errors[key]
}

// Submit validates the current values and, when they pass, prepares the
// payload and hands it to the persistence path. Validation failures leave
// per-field errors on the session and return ErrInvalid without touching the
// store or the toaster. Persistence failures are reported through the toaster
// and returned to the caller with field values intact. A submit while another
// is in flight returns ErrSubmitInFlight.
func (s *Session) Submit(ctx context.Context) (persist.Row, error) {
	if ctx == nil {
		return nil, errors.New("form: context is required")
	}

	s.mu.Lock()
	if s.state == StateSubmitting {
		s.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	s.state = StateSubmitting
	values := cloneValues(s.values)
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.state = StateEditing
		s.mu.Unlock()
	}()

	result := s.validator.Validate(values)
	if !result.OK {
		s.mu.Lock()
		s.errors = result.Errors
		s.mu.Unlock()
		return nil, ErrInvalid
	}

	payload := Prepare(result.Data, s.form)
	saved, err := s.persist(ctx, payload)
	if err != nil {
		s.toaster.Toast(notify.Toast{
			Title:       fmt.Sprintf("Failed to %s %s", s.mode, s.entity),
			Description: errorDescription(err),
			Type:        notify.TypeError,
		})
		return nil, err
	}

	s.mu.Lock()
	s.errors = nil
	if !s.keepValues {
		s.values = cloneValues(s.snapshot)
	}
	s.mu.Unlock()

	s.toaster.Toast(notify.Toast{
		Title:       "Success",
		Description: s.successMessage(),
		Type:        notify.TypeSuccess,
	})
	if s.onSuccess != nil {
		s.onSuccess(saved)
	}
	return saved, nil
}

// Reset restores the initial values (defaults, or the record snapshot in
// update mode), clears every standing error, and fires the caller's reset
// callback.
func (s *Session) Reset() error {
	s.mu.Lock()
	if s.state == StateSubmitting {
		s.mu.Unlock()
		return ErrSubmitInFlight
	}
	s.values = cloneValues(s.snapshot)
	s.errors = nil
	s.mu.Unlock()

	if s.onReset != nil {
		s.onReset()
	}
	return nil
}

func (s *Session) persist(ctx context.Context, payload map[string]any) (persist.Row, error) {
	if s.submitFn != nil {
		return s.submitFn(ctx, payload)
	}
	if s.store == nil {
		return nil, fmt.Errorf("%w: persistence store is missing", ErrNotConfigured)
	}
	if !s.user.Valid() {
		return nil, fmt.Errorf("%w: user identity is required before submit", ErrNotConfigured)
	}

	query := s.store.From(s.form.Table)
	switch s.mode {
	case ModeUpdate:
		if s.recordID == nil {
			return nil, fmt.Errorf("%w: record id is required for update", ErrNotConfigured)
		}
		query = query.Eq("id", s.recordID)
		if s.form.Auto.UserID {
			query = query.Eq("user_id", s.user.ID)
		}
		return query.Update(ctx, payload)
	default:
		row := cloneValues(payload)
		if s.form.Auto.UserID {
			// The trusted identity, applied after Prepare stripped any
			// client-supplied value.
			row["user_id"] = s.user.ID
		}
		return query.Insert(ctx, row)
	}
}

func (s *Session) successMessage() string {
	if s.form.SuccessMessage != "" {
		return s.form.SuccessMessage
	}
	return fmt.Sprintf("Your %s was saved", s.entity)
}

func errorDescription(err error) string {
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		return "An unexpected error occurred"
	}
	return msg
}

func cloneValues(src map[string]any) map[string]any {
	out := make(map[string]any, len(src))
	for key, value := range src {
		out[key] = value
	}
	return out
}

// singular trims a plural table name for human-readable messages; "notes"
// becomes "note". Irregular plurals fall back to the table name itself.
func singular(table string) string {
	if strings.HasSuffix(table, "s") && len(table) > 1 && !strings.HasSuffix(table, "ss") {
		return strings.TrimSuffix(table, "s")
	}
	if table == "" {
		return "record"
	}
	return table
}
