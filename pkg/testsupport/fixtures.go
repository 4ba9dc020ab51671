// Package testsupport holds fixtures shared by the form's surface tests.
package testsupport

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-jobform/pkg/application"
)

var (
	pdf = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")
	png = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
)

// PDF returns a minimal PDF document that content sniffing recognises.
func PDF() []byte {
	return bytes.Clone(pdf)
}

// PNG returns the header of a PNG image.
func PNG() []byte {
	return bytes.Clone(png)
}

// OversizedPDF returns a PDF one byte over the resume limit.
func OversizedPDF() []byte {
	data := make([]byte, application.MaxResumeSizeBytes+1)
	copy(data, pdf)
	return data
}

// ValidState returns a state that passes validation, resume included.
func ValidState() application.State {
	state := application.DefaultState()
	state.FirstName = "Ada"
	state.LastName = "Lovelace"
	state.Email = "ada@example.com"
	state.MobileNo = "5550100"
	state.Country = "Canada"
	state.City = "Toronto"
	state.Resume = &application.Resume{
		Name:      "cv.pdf",
		MediaType: application.ContentTypePDF,
		Size:      int64(len(pdf)),
		Content:   PDF(),
	}
	return state
}

// FilledForm returns a form holding ValidState, built through the form's own
// operations.
func FilledForm(t *testing.T) *application.Form {
	t.Helper()

	form := application.New()
	values := ValidState().Values()
	for _, name := range application.TextFields() {
		if err := form.SetField(name, values[name]); err != nil {
			t.Fatalf("set %s: %v", name, err)
		}
	}
	accepted, err := form.Attach(application.SourcePicker, application.CandidateFromBytes("cv.pdf", application.ContentTypePDF, PDF()))
	if err != nil || !accepted {
		t.Fatalf("attach resume: accepted=%v err=%v", accepted, err)
	}
	return form
}

// WriteFile writes data to name inside a fresh temporary directory and
// returns the path.
func WriteFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents. Tests can assert
// the renderer returns and writes the same payload without duplicating buffer
// setup.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
