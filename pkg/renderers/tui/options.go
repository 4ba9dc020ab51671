package tui

import (
	"log/slog"

	"github.com/goliatone/go-jobform/pkg/application"
)

// Theme captures optional message prefixes the session applies when printing.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the survey driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithSubmitter sets the collaborator that receives a valid application.
// Without one the form is accepted locally.
func WithSubmitter(submitter application.Submitter) Option {
	return func(s *Session) {
		s.submitter = submitter
	}
}

// WithForm resumes an existing form instead of starting from defaults.
func WithForm(form *application.Form) Option {
	return func(s *Session) {
		if form != nil {
			s.form = form
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}

// WithLogger sets the logger used for submission failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}
