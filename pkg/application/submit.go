package application

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Status is the submission state of a Form.
type Status string

const (
	// StatusIdle is a form that has not been submitted since creation or
	// cancel.
	StatusIdle Status = "idle"
	// StatusInvalid is a submit that failed validation; errors are shown
	// and the values retained.
	StatusInvalid Status = "invalid"
	// StatusSubmitted is a submit handed off and accepted by the
	// collaborator. The form is not reset.
	StatusSubmitted Status = "submitted"
	// StatusRejected is a valid submit the collaborator refused or could
	// not be reached for.
	StatusRejected Status = "rejected"
)

// Submission is the validated payload handed to a Submitter.
type Submission struct {
	State State
}

// Receipt acknowledges an accepted submission.
type Receipt struct {
	ID          string    `json:"id,omitempty"`
	SubmittedAt time.Time `json:"submittedAt,omitzero"`
}

// Submitter is the external collaborator that receives a valid application.
// Implementations return *RejectionError when the application was refused.
type Submitter interface {
	Submit(ctx context.Context, submission Submission) (Receipt, error)
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, submission Submission) (Receipt, error)

// Submit calls fn.
func (fn SubmitterFunc) Submit(ctx context.Context, submission Submission) (Receipt, error) {
	return fn(ctx, submission)
}

// Outcome summarises a Submit call.
type Outcome struct {
	Status  Status
	Errors  Errors
	Receipt Receipt
}

// Submit validates the state and, when valid, hands it to submitter. The
// displayed errors are replaced by the validation result. A nil submitter
// accepts without doing anything.
//
// The returned error is non-nil only when the submitter failed for reasons
// other than a rejection; the form is then StatusRejected with a notice.
func (f *Form) Submit(ctx context.Context, submitter Submitter) (Outcome, error) {
	f.errors = Validate(f.state)
	f.notices = nil
	f.receipt = Receipt{}

	if !f.errors.Empty() {
		f.status = StatusInvalid
		return f.outcome(), nil
	}

	if submitter == nil {
		f.status = StatusSubmitted
		return f.outcome(), nil
	}

	receipt, err := submitter.Submit(ctx, Submission{State: f.state.clone()})
	if err != nil {
		f.status = StatusRejected

		var rejection *RejectionError
		if errors.As(err, &rejection) {
			fields, form := MapRejection(rejection.Fields)
			for name, msg := range fields {
				f.errors[name] = msg
			}
			f.notices = append(normalizeMessages(rejection.Form), form...)
			if len(f.notices) == 0 && fields.Empty() {
				f.notices = []string{MsgSubmitFailed}
			}
			return f.outcome(), nil
		}

		f.notices = []string{MsgSubmitFailed}
		return f.outcome(), fmt.Errorf("application: submit: %w", err)
	}

	f.status = StatusSubmitted
	f.receipt = receipt
	return f.outcome(), nil
}

func (f *Form) outcome() Outcome {
	return Outcome{
		Status:  f.status,
		Errors:  f.errors.Clone(),
		Receipt: f.receipt,
	}
}
