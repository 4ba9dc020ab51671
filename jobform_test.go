package jobform

import (
	"context"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-jobform/internal/logging"
	"github.com/goliatone/go-jobform/pkg/submission"
)

func TestNewSubmitterSelectsCollaborator(t *testing.T) {
	placeholder, err := NewSubmitter("", logging.Discard())
	if err != nil {
		t.Fatalf("placeholder: %v", err)
	}
	if _, ok := placeholder.(*submission.Logger); !ok {
		t.Fatalf("expected logging placeholder, got %T", placeholder)
	}

	remote, err := NewSubmitter("https://hr.example.com/applications", nil)
	if err != nil {
		t.Fatalf("http submitter: %v", err)
	}
	httpSubmitter, ok := remote.(*submission.HTTP)
	if !ok {
		t.Fatalf("expected http submitter, got %T", remote)
	}
	if httpSubmitter.Endpoint() != "https://hr.example.com/applications" {
		t.Fatalf("unexpected endpoint %q", httpSubmitter.Endpoint())
	}

	if _, err := NewSubmitter("ftp://hr.example.com", nil); err == nil {
		t.Fatalf("expected non-http endpoint to be refused")
	}
}

func TestThemeFromManifest(t *testing.T) {
	cfg, err := ThemeFromManifest(nil, "")
	if err != nil || cfg != nil {
		t.Fatalf("expected nil theme, got %+v %v", cfg, err)
	}

	manifest := &theme.Manifest{
		Name:   "acme",
		Tokens: map[string]string{"accent": "#0055ff"},
		Variants: map[string]theme.Variant{
			"dark": {Tokens: map[string]string{"accent": "#88aaff"}},
		},
	}
	cfg, err = ThemeFromManifest(manifest, "dark")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Theme != "acme" || cfg.Variant != "dark" || cfg.Tokens["accent"] != "#88aaff" {
		t.Fatalf("unexpected theme %+v", cfg)
	}

	if _, err := ThemeFromManifest(manifest, "sepia"); err == nil {
		t.Fatalf("expected unknown variant to fail")
	}
}

func TestLoadContractMatchesForm(t *testing.T) {
	doc, err := LoadContract(context.Background())
	if err != nil {
		t.Fatalf("load contract: %v", err)
	}
	if len(doc.Fields()) == 0 {
		t.Fatalf("expected contract fields")
	}
}

func TestNewFormStartsIdle(t *testing.T) {
	form := NewForm()
	if form.State().Country != "India" {
		t.Fatalf("unexpected default country %q", form.State().Country)
	}
}
