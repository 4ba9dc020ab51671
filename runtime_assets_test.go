package jobform

import (
	"io/fs"
	"strings"
	"testing"

	vanilla "github.com/goliatone/go-jobform/pkg/renderers/vanilla"
)

func TestRuntimeAssetsFSContainsDropZoneScript(t *testing.T) {
	data, err := fs.ReadFile(RuntimeAssetsFS(), vanilla.RuntimeScriptName)
	if err != nil {
		t.Fatalf("expected drop zone script to be readable: %v", err)
	}
	if !strings.Contains(string(data), "data-upload-url") {
		t.Fatalf("expected drop zone script to post to the upload url")
	}
}

func TestRuntimeAssetsFSContainsStylesheet(t *testing.T) {
	if _, err := fs.ReadFile(RuntimeAssetsFS(), vanilla.StylesheetName); err != nil {
		t.Fatalf("expected stylesheet to be readable: %v", err)
	}
}

func TestEmbeddedTemplatesContainsPage(t *testing.T) {
	if _, err := fs.ReadFile(EmbeddedTemplates(), "templates/application.tmpl"); err != nil {
		t.Fatalf("expected page template: %v", err)
	}
}
