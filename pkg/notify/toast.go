// Package notify is the fire-and-forget notification seam used to surface
// submit outcomes without coupling the form engine to a UI layer.
package notify

import "log"

// Toast types understood by consumers.
const (
	TypeSuccess = "success"
	TypeError   = "error"
	TypeInfo    = "info"
)

// Toast is one notification.
type Toast struct {
	Title       string
	Description string
	Type        string
}

// Toaster receives toasts. Implementations must not block.
type Toaster interface {
	Toast(t Toast)
}

// Nop discards every toast. It is the default when a session is built
// without a toaster.
type Nop struct{}

func (Nop) Toast(Toast) {}

// Logger writes toasts to the standard logger, which is enough for CLI use.
type Logger struct{}

func (Logger) Toast(t Toast) {
	log.Printf("[%s] %s: %s", t.Type, t.Title, t.Description)
}

// Recorder keeps every toast it receives, for tests.
type Recorder struct {
	Toasts []Toast
}

func (r *Recorder) Toast(t Toast) {
	r.Toasts = append(r.Toasts, t)
}

// Last returns the most recent toast and whether any were recorded.
func (r *Recorder) Last() (Toast, bool) {
	if len(r.Toasts) == 0 {
		return Toast{}, false
	}
	return r.Toasts[len(r.Toasts)-1], true
}
