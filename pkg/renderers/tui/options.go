package tui

import "github.com/notedhq/go-formkit/pkg/widgets"

// Option configures a Runner.
type Option func(*Runner)

// WithPromptDriver overrides the prompt driver used by the runner.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Runner) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithProjectSource wires the list project-select fields offer.
func WithProjectSource(source widgets.ProjectSource) Option {
	return func(r *Runner) {
		r.projects = source
	}
}

// WithMaxAttempts bounds the validate-and-reprompt loop.
func WithMaxAttempts(attempts int) Option {
	return func(r *Runner) {
		if attempts > 0 {
			r.maxAttempts = attempts
		}
	}
}
