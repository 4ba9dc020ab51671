package application

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func pdfOfSize(size int64) Candidate {
	return CandidateFromBytes("cv.pdf", ContentTypePDF, bytes.Repeat([]byte{'x'}, int(size)))
}

func filledForm(t *testing.T) *Form {
	t.Helper()
	form := New()
	for name, value := range map[string]string{
		FieldFirstName:     "Ada",
		FieldLastName:      "Lovelace",
		FieldEmail:         "ada@example.com",
		FieldMobileNo:      "5550100",
		FieldCountry:       "Canada",
		FieldStreetAddress: "1 Analytical Way",
		FieldCity:          "Toronto",
		FieldRegion:        "ON",
		FieldPostalCode:    "M5V",
	} {
		if err := form.SetField(name, value); err != nil {
			t.Fatalf("set %s: %v", name, err)
		}
	}
	if accepted, err := form.Attach(SourcePicker, pdfOfSize(128)); err != nil || !accepted {
		t.Fatalf("attach: accepted=%v err=%v", accepted, err)
	}
	return form
}

func TestNew_Defaults(t *testing.T) {
	form := New()
	if diff := cmp.Diff(DefaultState(), form.State()); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}
	if form.State().Country != "India" {
		t.Fatalf("expected default country India, got %q", form.State().Country)
	}
	if !form.Errors().Empty() || form.ResumeFileName() != "" || form.Status() != StatusIdle {
		t.Fatalf("unexpected initial form: errors=%v name=%q status=%s", form.Errors(), form.ResumeFileName(), form.Status())
	}
}

func TestSetField_UpdatesOnlyOneField(t *testing.T) {
	form := filledForm(t)
	before := form.State()

	if err := form.SetField(FieldCity, "Ottawa"); err != nil {
		t.Fatalf("set city: %v", err)
	}

	want := before
	want.City = "Ottawa"
	if diff := cmp.Diff(want, form.State()); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestSetField_Refusals(t *testing.T) {
	form := New()

	if err := form.SetField("nickname", "x"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if err := form.SetField(FieldResume, "cv.pdf"); !errors.Is(err, ErrResumeField) {
		t.Fatalf("expected ErrResumeField, got %v", err)
	}
	if err := form.SetField(FieldCountry, "Atlantis"); !errors.Is(err, ErrUnknownCountry) {
		t.Fatalf("expected ErrUnknownCountry, got %v", err)
	}
	if diff := cmp.Diff(DefaultState(), form.State()); diff != "" {
		t.Fatalf("refused updates changed state (-want +got):\n%s", diff)
	}
}

func TestAttach_Boundaries(t *testing.T) {
	tests := []struct {
		name      string
		candidate Candidate
		accepted  bool
		message   string
	}{
		{"exactly 5 MiB", pdfOfSize(MaxResumeSizeBytes), true, ""},
		{"one byte over", pdfOfSize(MaxResumeSizeBytes + 1), false, MsgResumeTooLarge},
		{"png", CandidateFromBytes("photo.png", "image/png", []byte("png")), false, MsgResumeNotPDF},
		{"large png reports type", CandidateFromBytes("photo.png", "image/png", bytes.Repeat([]byte{'x'}, int(MaxResumeSizeBytes+1))), false, MsgResumeNotPDF},
	}

	for _, source := range []Source{SourcePicker, SourceDrop} {
		for _, tt := range tests {
			t.Run(string(source)+"/"+tt.name, func(t *testing.T) {
				form := New()
				accepted, err := form.Attach(source, tt.candidate)
				if err != nil {
					t.Fatalf("attach: %v", err)
				}
				if accepted != tt.accepted {
					t.Fatalf("accepted=%v, want %v", accepted, tt.accepted)
				}
				if got := form.Errors().Get(FieldResume); got != tt.message {
					t.Fatalf("resume error %q, want %q", got, tt.message)
				}
				if tt.accepted {
					if form.State().Resume == nil || form.ResumeFileName() != tt.candidate.Name {
						t.Fatalf("expected resume stored with display name")
					}
				} else if form.State().Resume != nil {
					t.Fatalf("rejected candidate stored")
				}
			})
		}
	}
}

func TestAttach_RejectionKeepsPreviousResume(t *testing.T) {
	form := filledForm(t)
	previous := form.State().Resume

	accepted, err := form.Attach(SourceDrop, CandidateFromBytes("photo.png", "image/png", []byte("png")))
	if err != nil || accepted {
		t.Fatalf("expected rejection, accepted=%v err=%v", accepted, err)
	}
	if diff := cmp.Diff(previous, form.State().Resume); diff != "" {
		t.Fatalf("resume changed (-want +got):\n%s", diff)
	}
	if form.ResumeFileName() != "cv.pdf" {
		t.Fatalf("display name changed to %q", form.ResumeFileName())
	}
	if form.Errors().Get(FieldResume) != MsgResumeNotPDF {
		t.Fatalf("expected type error")
	}
}

func TestAttach_AcceptClearsResumeErrorOnly(t *testing.T) {
	form := New()
	if _, err := form.Submit(context.Background(), nil); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := form.Attach(SourcePicker, pdfOfSize(10)); err != nil {
		t.Fatalf("attach: %v", err)
	}

	errs := form.Errors()
	if errs.Has(FieldResume) {
		t.Fatalf("resume error not cleared")
	}
	if !errs.Has(FieldFirstName) || !errs.Has(FieldEmail) {
		t.Fatalf("other errors should remain, got %v", errs)
	}
}

func TestAttach_ZeroCandidateIsNoop(t *testing.T) {
	form := filledForm(t)
	before := form.State()
	accepted, err := form.Attach(SourcePicker, Candidate{})
	if err != nil || accepted {
		t.Fatalf("expected no-op, accepted=%v err=%v", accepted, err)
	}
	if diff := cmp.Diff(before, form.State()); diff != "" {
		t.Fatalf("state changed (-want +got):\n%s", diff)
	}
}

func TestAttach_ContentLargerThanDeclared(t *testing.T) {
	candidate := pdfOfSize(MaxResumeSizeBytes + 10)
	candidate.Size = 100

	form := New()
	accepted, err := form.Attach(SourcePicker, candidate)
	if err != nil || accepted {
		t.Fatalf("expected rejection, accepted=%v err=%v", accepted, err)
	}
	if form.Errors().Get(FieldResume) != MsgResumeTooLarge {
		t.Fatalf("expected size error, got %q", form.Errors().Get(FieldResume))
	}
}

func TestAttach_OpenFailure(t *testing.T) {
	candidate := Candidate{
		Name:      "cv.pdf",
		MediaType: ContentTypePDF,
		Size:      10,
		Open: func() (io.ReadCloser, error) {
			return nil, errors.New("disk gone")
		},
	}

	form := New()
	if _, err := form.Attach(SourcePicker, candidate); err == nil {
		t.Fatalf("expected open failure")
	}
	if form.State().Resume != nil || form.Errors().Has(FieldResume) {
		t.Fatalf("open failure must leave state untouched")
	}
}

func TestDeleteResume_LeavesOtherValuesAndErrors(t *testing.T) {
	form := filledForm(t)
	if err := form.SetField(FieldFirstName, "Ada1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, err := form.Submit(context.Background(), nil); err != nil {
		t.Fatalf("submit: %v", err)
	}
	beforeState := form.State()
	beforeErrors := form.Errors()

	form.DeleteResume()

	wantState := beforeState
	wantState.Resume = nil
	if diff := cmp.Diff(wantState, form.State()); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(beforeErrors, form.Errors()); diff != "" {
		t.Fatalf("errors changed (-want +got):\n%s", diff)
	}
	if form.ResumeFileName() != "" {
		t.Fatalf("display name not cleared")
	}
}

func TestCancel_RestoresDefaults(t *testing.T) {
	form := filledForm(t)
	_, _ = form.Attach(SourceDrop, CandidateFromBytes("a.png", "image/png", []byte("x")))
	_ = form.SetField(FieldMobileNo, "abc")
	_, _ = form.Submit(context.Background(), nil)

	form.Cancel()

	if diff := cmp.Diff(DefaultState(), form.State()); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}
	if !form.Errors().Empty() {
		t.Fatalf("errors not cleared: %v", form.Errors())
	}
	if form.ResumeFileName() != "" || form.Status() != StatusIdle || len(form.Notices()) != 0 {
		t.Fatalf("cancel left residue: name=%q status=%s notices=%v", form.ResumeFileName(), form.Status(), form.Notices())
	}
}

func TestSubmit_InvalidDoesNotHandOff(t *testing.T) {
	form := New()
	called := false
	submitter := SubmitterFunc(func(context.Context, Submission) (Receipt, error) {
		called = true
		return Receipt{}, nil
	})

	outcome, err := form.Submit(context.Background(), submitter)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if called {
		t.Fatalf("submitter called for invalid form")
	}
	if outcome.Status != StatusInvalid || form.Status() != StatusInvalid {
		t.Fatalf("expected invalid status, got %s", outcome.Status)
	}
	if !outcome.Errors.Has(FieldResume) {
		t.Fatalf("expected resume error")
	}
}

func TestSubmit_ReplacesIntakeErrors(t *testing.T) {
	form := filledForm(t)
	_, _ = form.Attach(SourcePicker, CandidateFromBytes("a.png", "image/png", []byte("x")))
	if !form.Errors().Has(FieldResume) {
		t.Fatalf("expected intake error before submit")
	}

	outcome, err := form.Submit(context.Background(), nil)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !outcome.Errors.Empty() || outcome.Status != StatusSubmitted {
		t.Fatalf("expected clean submit, got %+v", outcome)
	}
}

func TestSubmit_ValidHandsOffAndRetainsState(t *testing.T) {
	form := filledForm(t)
	before := form.State()

	var got Submission
	submitter := SubmitterFunc(func(_ context.Context, s Submission) (Receipt, error) {
		got = s
		return Receipt{ID: "r-1"}, nil
	})

	outcome, err := form.Submit(context.Background(), submitter)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if outcome.Status != StatusSubmitted || outcome.Receipt.ID != "r-1" {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
	if diff := cmp.Diff(before, got.State); diff != "" {
		t.Fatalf("handoff payload mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(before, form.State()); diff != "" {
		t.Fatalf("form reset after submit (-want +got):\n%s", diff)
	}
}

func TestSubmit_Rejection(t *testing.T) {
	form := filledForm(t)
	submitter := SubmitterFunc(func(context.Context, Submission) (Receipt, error) {
		return Receipt{}, &RejectionError{
			Fields: map[string][]string{
				"/body/email":   {"Email already applied"},
				"data.resume":   {"Resume unreadable"},
				"/body/unknown": {"Position closed"},
			},
		}
	})

	outcome, err := form.Submit(context.Background(), submitter)
	if err != nil {
		t.Fatalf("rejections are not errors: %v", err)
	}
	if outcome.Status != StatusRejected {
		t.Fatalf("expected rejected, got %s", outcome.Status)
	}
	wantErrors := Errors{
		FieldEmail:  "Email already applied",
		FieldResume: "Resume unreadable",
	}
	if diff := cmp.Diff(wantErrors, outcome.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Position closed"}, form.Notices()); diff != "" {
		t.Fatalf("notices mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmit_TransportFailure(t *testing.T) {
	form := filledForm(t)
	boom := errors.New("connection refused")
	submitter := SubmitterFunc(func(context.Context, Submission) (Receipt, error) {
		return Receipt{}, boom
	})

	outcome, err := form.Submit(context.Background(), submitter)
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped transport error, got %v", err)
	}
	if outcome.Status != StatusRejected {
		t.Fatalf("expected rejected, got %s", outcome.Status)
	}
	if diff := cmp.Diff([]string{MsgSubmitFailed}, form.Notices(), cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("notices mismatch (-want +got):\n%s", diff)
	}
}
