// Package template defines the template engine seam used by HTML renderers.
// Engines live in sub packages; gotemplate provides a pongo2 backed one.
package template
