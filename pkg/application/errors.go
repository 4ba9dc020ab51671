package application

import (
	"errors"
	"maps"
	"sort"
	"strings"
)

var (
	// ErrUnknownField is returned by SetField for names outside TextFields.
	ErrUnknownField = errors.New("application: unknown field")
	// ErrResumeField is returned when the resume is set through SetField
	// instead of Attach.
	ErrResumeField = errors.New("application: resume must be attached, not set")
	// ErrUnknownCountry is returned when country is not one of Countries.
	ErrUnknownCountry = errors.New("application: unknown country")
)

// Messages shown to the applicant.
const (
	MsgInvalidFirstName = "Please enter a valid first name"
	MsgInvalidLastName  = "Please enter a valid last name"
	MsgInvalidMobileNo  = "Please enter a valid mobile number"
	MsgMissingEmail     = "Please enter an email address"
	MsgMissingResume    = "Please upload a resume"
	MsgResumeNotPDF     = "Only PDF files are allowed"
	MsgResumeTooLarge   = "File size must be less than 5MB"
	MsgSubmitFailed     = "Submission failed, please try again"
)

// Errors maps field names to a message. A field that is absent, or mapped to
// an empty string, is valid.
type Errors map[string]string

// Get returns the message for field, or "".
func (e Errors) Get(field string) string {
	if e == nil {
		return ""
	}
	return e[field]
}

// Has reports whether field carries a non-empty message.
func (e Errors) Has(field string) bool {
	return strings.TrimSpace(e.Get(field)) != ""
}

// Empty reports whether no field carries a message.
func (e Errors) Empty() bool {
	for _, msg := range e {
		if strings.TrimSpace(msg) != "" {
			return false
		}
	}
	return true
}

// Fields returns the sorted names of fields that carry a message.
func (e Errors) Fields() []string {
	out := make([]string, 0, len(e))
	for name, msg := range e {
		if strings.TrimSpace(msg) == "" {
			continue
		}
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Clone returns an independent copy; nil stays nil.
func (e Errors) Clone() Errors {
	if e == nil {
		return nil
	}
	return maps.Clone(e)
}

// RejectionError is returned by a Submitter when the collaborator refused
// the application. Fields is keyed by the collaborator's own paths
// ("/body/email", "data.resume", ...); Form holds messages not tied to a field.
type RejectionError struct {
	Fields map[string][]string
	Form   []string
}

func (e *RejectionError) Error() string {
	if e == nil {
		return "application: submission rejected"
	}
	count := 0
	for _, msgs := range e.Fields {
		count += len(msgs)
	}
	var b strings.Builder
	b.WriteString("application: submission rejected")
	if count > 0 {
		b.WriteString(": ")
		b.WriteString(strings.Join(sortedKeys(e.Fields), ", "))
	}
	if len(e.Form) > 0 {
		b.WriteString(": ")
		b.WriteString(strings.Join(e.Form, "; "))
	}
	return b.String()
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
