package form

import (
	"github.com/notedhq/go-formkit/pkg/auth"
	"github.com/notedhq/go-formkit/pkg/notify"
	"github.com/notedhq/go-formkit/pkg/persist"
)

// Option customises a session at construction time.
type Option func(*Session)

// WithStore wires the persistence collaborator the built-in submit path uses.
func WithStore(store persist.Store) Option {
	return func(s *Session) {
		s.store = store
	}
}

// WithUser supplies the identity used to scope persistence queries.
func WithUser(user *auth.User) Option {
	return func(s *Session) {
		s.user = user
	}
}

// WithToaster wires the notification collaborator. Sessions default to a
// no-op toaster.
func WithToaster(toaster notify.Toaster) Option {
	return func(s *Session) {
		if toaster != nil {
			s.toaster = toaster
		}
	}
}

// WithSubmitFunc replaces the built-in persistence path entirely. Store and
// user wiring are ignored when a submit func is present.
func WithSubmitFunc(fn SubmitFunc) Option {
	return func(s *Session) {
		s.submitFn = fn
	}
}

// WithRecord puts the session in update mode: initial values come from the
// record snapshot and submits patch the row matching id (scoped to the user
// when the schema declares user_id as auto-managed).
func WithRecord(id any, record map[string]any) Option {
	return func(s *Session) {
		s.mode = ModeUpdate
		s.recordID = id
		s.recordSeed = record
	}
}

// WithEntity overrides the human-readable noun used in toast messages, which
// otherwise derives from the table name.
func WithEntity(entity string) Option {
	return func(s *Session) {
		if entity != "" {
			s.entity = entity
		}
	}
}

// WithKeepValues leaves submitted values visible after a successful submit
// instead of resetting to the initial snapshot.
func WithKeepValues() Option {
	return func(s *Session) {
		s.keepValues = true
	}
}

// WithOnSuccess registers a callback fired with the stored row after a
// successful submit.
func WithOnSuccess(fn func(persist.Row)) Option {
	return func(s *Session) {
		s.onSuccess = fn
	}
}

// WithOnReset registers a callback fired after Reset restores the initial
// values.
func WithOnReset(fn func()) Option {
	return func(s *Session) {
		s.onReset = fn
	}
}
