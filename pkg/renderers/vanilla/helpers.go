package vanilla

import (
	"strings"

	"github.com/goliatone/go-jobform/pkg/render"
)

func spanClass(span string) string {
	switch strings.TrimSpace(span) {
	case "half", "wide", "full", "third":
		return "jobform-span-" + span
	default:
		return "jobform-span-full"
	}
}

func errorID(field render.Field) string {
	if field.ID == "" {
		return ""
	}
	return field.ID + "-error"
}

// cssDeclarations strips characters that could close the surrounding style
// element.
func cssDeclarations(theme *render.ThemeConfig) string {
	decls := theme.CSSVarDeclarations()
	return strings.NewReplacer("<", "", ">", "", "{", "", "}", "").Replace(decls)
}

func hiddenInputs(hidden map[string]string) []map[string]string {
	sorted := render.SortedHiddenFields(hidden)
	out := make([]map[string]string, 0, len(sorted))
	for _, field := range sorted {
		out = append(out, map[string]string{"name": field.Name, "value": field.Value})
	}
	return out
}

func assetURL(base, name string) string {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		base = "/runtime"
	}
	return base + "/" + name
}
