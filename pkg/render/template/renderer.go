package template

import (
	"io"
)

// Filter transforms a template value. param is nil when the filter is used
// without an argument.
type Filter func(input any, param any) (any, error)

// TemplateRenderer is the contract renderers depend on. Render resolves a
// named template; RenderString parses inline template source.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn Filter) error
	GlobalContext(data any) error
}
