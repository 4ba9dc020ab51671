package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/goliatone/go-jobform/pkg/application"
	"github.com/goliatone/go-jobform/pkg/render"
)

// Menu entries shown after the fields have been collected.
const (
	ActionSave          = "Save"
	ActionEditFields    = "Edit fields"
	ActionReplaceResume = "Replace resume"
	ActionDeleteResume  = "Delete resume"
	ActionCancel        = "Cancel"
	ActionQuit          = "Quit"
)

var menu = []string{
	ActionSave,
	ActionEditFields,
	ActionReplaceResume,
	ActionDeleteResume,
	ActionCancel,
	ActionQuit,
}

// Session walks an applicant through the form in a terminal. It drives the
// same application.Form transitions as the HTML page.
type Session struct {
	driver    PromptDriver
	submitter application.Submitter
	form      *application.Form
	theme     Theme
	logger    *slog.Logger
}

// New constructs a session with the survey driver and a fresh form.
func New(options ...Option) (*Session, error) {
	s := &Session{
		driver: NewSurveyDriver(nil),
		form:   application.New(),
		theme:  Theme{ErrorPrefix: "! "},
		logger: slog.Default(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.driver == nil {
		return nil, ErrNoDriver
	}
	return s, nil
}

// Form exposes the form being edited.
func (s *Session) Form() *application.Form {
	return s.form
}

// Run prompts every field and the resume, then loops on the action menu until
// the application is submitted or the applicant quits. The returned form
// reports the final status.
func (s *Session) Run(ctx context.Context) (*application.Form, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := s.promptFields(ctx); err != nil {
		return s.form, err
	}
	if err := s.promptResume(ctx); err != nil {
		return s.form, err
	}

	for {
		choice, err := s.driver.Select(ctx, SelectConfig{
			Message: "What next?",
			Options: menu,
		})
		if err != nil {
			return s.form, err
		}
		if choice < 0 || choice >= len(menu) {
			continue
		}

		switch menu[choice] {
		case ActionSave:
			done, err := s.save(ctx)
			if err != nil || done {
				return s.form, err
			}
		case ActionEditFields:
			if err := s.promptFields(ctx); err != nil {
				return s.form, err
			}
		case ActionReplaceResume:
			if err := s.promptResume(ctx); err != nil {
				return s.form, err
			}
		case ActionDeleteResume:
			s.form.DeleteResume()
			if err := s.info(ctx, "Resume removed."); err != nil {
				return s.form, err
			}
		case ActionCancel:
			s.form.Cancel()
			if err := s.info(ctx, "Form reset."); err != nil {
				return s.form, err
			}
		case ActionQuit:
			return s.form, nil
		}
	}
}

func (s *Session) promptFields(ctx context.Context) error {
	page := render.PageFromForm(s.form)
	for _, section := range page.Sections {
		for _, field := range section.Fields {
			if field.Input == render.InputFile {
				continue
			}
			value, err := s.promptField(ctx, field)
			if err != nil {
				return err
			}
			if err := s.form.SetField(field.Name, value); err != nil {
				return fmt.Errorf("tui: set %s: %w", field.Name, err)
			}
		}
	}
	return nil
}

func (s *Session) promptField(ctx context.Context, field render.Field) (string, error) {
	message := field.Label
	if field.Error != "" {
		message = fmt.Sprintf("%s (%s)", field.Label, field.Error)
	}

	if field.Input == render.InputSelect {
		idx, err := s.driver.Select(ctx, SelectConfig{
			Message:      message,
			Options:      field.Options,
			DefaultIndex: indexOf(field.Options, field.Value),
		})
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(field.Options) {
			return field.Value, nil
		}
		return field.Options[idx], nil
	}

	value, err := s.driver.Input(ctx, InputConfig{
		Message: message,
		Default: field.Value,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(value), nil
}

// promptResume asks for a PDF path until one is accepted or the applicant
// leaves the answer blank.
func (s *Session) promptResume(ctx context.Context) error {
	for {
		message := "Resume (path to a PDF, blank to skip)"
		if name := s.form.ResumeFileName(); name != "" {
			message = fmt.Sprintf("Resume (current: %s, blank to keep)", name)
		}
		path, err := s.driver.Input(ctx, InputConfig{
			Message: message,
			Help:    "PDF up to 5MB",
		})
		if err != nil {
			return err
		}

		candidate, err := application.CandidateFromPath(strings.TrimSpace(path))
		if err != nil {
			if err := s.errorf(ctx, "%v", err); err != nil {
				return err
			}
			continue
		}
		accepted, err := s.form.Attach(application.SourcePicker, candidate)
		if err != nil {
			if err := s.errorf(ctx, "%v", err); err != nil {
				return err
			}
			continue
		}
		if candidate.IsZero() || accepted {
			return nil
		}
		if err := s.errorf(ctx, "%s", s.form.Errors().Get(application.FieldResume)); err != nil {
			return err
		}
	}
}

func (s *Session) save(ctx context.Context) (bool, error) {
	outcome, err := s.form.Submit(ctx, s.submitter)
	if err != nil {
		s.logger.Error("application submission failed", "error", err)
	}

	switch outcome.Status {
	case application.StatusSubmitted:
		msg := "Application submitted."
		if outcome.Receipt.ID != "" {
			msg = fmt.Sprintf("Application submitted. Reference: %s", outcome.Receipt.ID)
		}
		return true, s.info(ctx, msg)
	default:
		return false, s.reportErrors(ctx)
	}
}

func (s *Session) reportErrors(ctx context.Context) error {
	page := render.PageFromForm(s.form)
	for _, notice := range page.Notices {
		if err := s.errorf(ctx, "%s", notice); err != nil {
			return err
		}
	}
	for _, section := range page.Sections {
		for _, field := range section.Fields {
			if field.Error == "" {
				continue
			}
			if err := s.errorf(ctx, "%s: %s", field.Label, field.Error); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Session) info(ctx context.Context, msg string) error {
	return s.driver.Info(ctx, s.theme.InfoPrefix+msg)
}

func (s *Session) errorf(ctx context.Context, format string, args ...any) error {
	return s.driver.Info(ctx, s.theme.ErrorPrefix+fmt.Sprintf(format, args...))
}
