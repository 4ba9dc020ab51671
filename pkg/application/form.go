package application

import (
	"errors"
	"fmt"
	"slices"
)

// Form owns a State, the displayed Errors and the submission status. It is
// driven by one controller at a time and is not safe for concurrent use.
type Form struct {
	state      State
	errors     Errors
	resumeName string
	status     Status
	notices    []string
	receipt    Receipt
}

// New returns a form holding DefaultState.
func New() *Form {
	return &Form{
		state:  DefaultState(),
		errors: Errors{},
		status: StatusIdle,
	}
}

// State returns a copy of the current values.
func (f *Form) State() State {
	return f.state.clone()
}

// Errors returns a copy of the displayed error mapping.
func (f *Form) Errors() Errors {
	return f.errors.Clone()
}

// ResumeFileName is the display name of the attached resume, or "".
func (f *Form) ResumeFileName() string {
	return f.resumeName
}

// Status reports where the form is in the submission state machine.
func (f *Form) Status() Status {
	return f.status
}

// Notices returns form-level messages that are not tied to a field.
func (f *Form) Notices() []string {
	return slices.Clone(f.notices)
}

// Receipt returns the collaborator's receipt for the last accepted submission.
func (f *Form) Receipt() Receipt {
	return f.receipt
}

// SetField updates a single text field, leaving every other field untouched.
func (f *Form) SetField(name, value string) error {
	if name == FieldResume {
		return ErrResumeField
	}
	if name == FieldCountry && !IsCountry(value) {
		return fmt.Errorf("%w: %q", ErrUnknownCountry, value)
	}
	if !f.state.set(name, value) {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return nil
}

// Attach offers a resume candidate. A candidate that breaks the type or size
// rule is rejected: the resume error is set and the current resume is kept.
// An accepted candidate replaces the resume and clears the resume error.
//
// The returned error only reports failures reading the candidate; rejections
// are reported through Errors and accepted=false. A zero candidate is a no-op.
func (f *Form) Attach(source Source, candidate Candidate) (accepted bool, err error) {
	if candidate.IsZero() {
		return false, nil
	}

	if msg := candidate.rejection(); msg != "" {
		f.setError(FieldResume, msg)
		return false, nil
	}

	content, err := candidate.read()
	if errors.Is(err, errContentTooLarge) {
		f.setError(FieldResume, MsgResumeTooLarge)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("application: %s intake: %w", source, err)
	}

	f.state.Resume = &Resume{
		Name:      candidate.Name,
		MediaType: candidate.MediaType,
		Size:      int64(len(content)),
		Content:   content,
	}
	f.resumeName = candidate.Name
	delete(f.errors, FieldResume)
	return true, nil
}

// DeleteResume clears the attached resume and its display name. Errors are
// left as they are.
func (f *Form) DeleteResume() {
	f.state.Resume = nil
	f.resumeName = ""
}

// Cancel restores DefaultState and clears errors, the resume display name,
// notices, receipt and status.
func (f *Form) Cancel() {
	f.state = DefaultState()
	f.errors = Errors{}
	f.resumeName = ""
	f.notices = nil
	f.receipt = Receipt{}
	f.status = StatusIdle
}

func (f *Form) setError(field, msg string) {
	if f.errors == nil {
		f.errors = Errors{}
	}
	f.errors[field] = msg
}
