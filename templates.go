package jobform

import (
	"io/fs"

	vanilla "github.com/goliatone/go-jobform/pkg/renderers/vanilla"
)

// EmbeddedTemplates exposes the built-in page templates so callers can copy
// or override them with vanilla.WithTemplatesFS.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}
