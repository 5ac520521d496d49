package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrTooManyAttempts is returned when validation keeps failing past the
	// configured re-prompt limit.
	ErrTooManyAttempts = errors.New("tui: too many failed attempts")
)
