// Package application holds the job application form: its state, the
// validator, the resume intake rules and the submission state machine.
//
// A Form is owned by a single controller (an HTTP draft, a terminal session)
// and is mutated through discrete transitions:
//
//	form := application.New()
//	_ = form.SetField(application.FieldFirstName, "Ada")
//	_, _ = form.Attach(application.SourcePicker, candidate)
//	outcome, err := form.Submit(ctx, submitter)
//
// Validation and intake problems are reported as data through Errors; Go
// errors are reserved for I/O and transport failures.
package application
