// Package jobform is the entry point for embedding the job application form:
// it re-exports the form types and wires the submission collaborators, theme
// and contract that the server and terminal surfaces share.
package jobform

import (
	"context"
	"log/slog"

	"github.com/jonboulle/clockwork"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-jobform/pkg/application"
	"github.com/goliatone/go-jobform/pkg/contract"
	"github.com/goliatone/go-jobform/pkg/render"
	"github.com/goliatone/go-jobform/pkg/submission"
)

// Form is the application form controller.
type Form = application.Form

// State is the editable field state of a form.
type State = application.State

// Errors maps field names to displayed messages.
type Errors = application.Errors

// Submitter receives valid applications.
type Submitter = application.Submitter

// Receipt acknowledges a handed-off application.
type Receipt = application.Receipt

// RenderOptions describes per-request overrides passed to renderers.
type RenderOptions = render.RenderOptions

// NewForm returns a form holding the default state.
func NewForm() *Form {
	return application.New()
}

// NewSubmitter returns the collaborator valid applications are handed to.
// An empty endpoint selects the logging placeholder.
func NewSubmitter(endpoint string, log *slog.Logger, options ...submission.HTTPOption) (Submitter, error) {
	if log == nil {
		log = slog.Default()
	}
	if endpoint == "" {
		return submission.NewLogger(log, clockwork.NewRealClock()), nil
	}
	options = append([]submission.HTTPOption{submission.WithLogger(log)}, options...)
	return submission.NewHTTP(endpoint, options...)
}

// ThemeFromManifest resolves a single go-theme manifest into the config the
// renderers consume. A nil manifest yields a nil config.
func ThemeFromManifest(manifest *theme.Manifest, variant string) (*render.ThemeConfig, error) {
	if manifest == nil {
		return nil, nil
	}
	return render.ResolveTheme(&render.ManifestSelector{Manifest: manifest, DefaultVariant: variant}, manifest.Name, variant)
}

// LoadContract parses the embedded submission contract and checks that it
// still describes the form.
func LoadContract(ctx context.Context) (*contract.Document, error) {
	doc, err := contract.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := doc.Verify(); err != nil {
		return doc, err
	}
	return doc, nil
}
