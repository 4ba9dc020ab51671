package jobform

import (
	"io/fs"

	vanilla "github.com/goliatone/go-jobform/pkg/renderers/vanilla"
)

// RuntimeAssetsFS exposes the stylesheet and drop zone script the rendered
// page links to, for applications that mount the form in their own router.
//
// Typical mount:
//
//	mux.Handle("/runtime/",
//	  http.StripPrefix("/runtime/",
//	    http.FileServerFS(jobform.RuntimeAssetsFS()),
//	  ),
//	)
func RuntimeAssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
