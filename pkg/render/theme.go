package render

import (
	"errors"
	"fmt"
	"maps"
	"path"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ThemeConfig is the resolved theme handed to renderers.
type ThemeConfig struct {
	Theme    string
	Variant  string
	Tokens   map[string]string
	CSSVars  map[string]string
	AssetURL func(key string) string
}

// CSSVarDeclarations renders CSSVars as a sorted declaration list suitable
// for a :root block.
func (c *ThemeConfig) CSSVarDeclarations() string {
	if c == nil || len(c.CSSVars) == 0 {
		return ""
	}
	names := make([]string, 0, len(c.CSSVars))
	for name := range c.CSSVars {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "%s: %s;", name, c.CSSVars[name])
	}
	return b.String()
}

// ResolveTheme asks selector for a theme/variant and flattens the selection:
// variant tokens and assets override the manifest's.
func ResolveTheme(selector theme.ThemeSelector, name, variant string) (*ThemeConfig, error) {
	if selector == nil {
		return nil, nil
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("render: select theme %q: %w", name, err)
	}
	if selection == nil || selection.Manifest == nil {
		return nil, errors.New("render: theme selection is empty")
	}

	manifest := selection.Manifest
	tokens := maps.Clone(manifest.Tokens)
	if tokens == nil {
		tokens = make(map[string]string)
	}
	prefix := manifest.Assets.Prefix
	files := maps.Clone(manifest.Assets.Files)
	if files == nil {
		files = make(map[string]string)
	}

	if v, ok := manifest.Variants[selection.Variant]; ok {
		maps.Copy(tokens, v.Tokens)
		maps.Copy(files, v.Assets.Files)
		if v.Assets.Prefix != "" {
			prefix = v.Assets.Prefix
		}
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+strings.TrimPrefix(key, "--")] = value
	}

	themeName := selection.Theme
	if themeName == "" {
		themeName = manifest.Name
	}

	return &ThemeConfig{
		Theme:   themeName,
		Variant: selection.Variant,
		Tokens:  tokens,
		CSSVars: cssVars,
		AssetURL: func(key string) string {
			file, ok := files[key]
			if !ok {
				return ""
			}
			if prefix == "" || strings.HasPrefix(file, "/") || strings.Contains(file, "://") {
				return file
			}
			return path.Join(prefix, file)
		},
	}, nil
}

// ManifestSelector serves a single manifest, the common case for a form
// configured from a file.
type ManifestSelector struct {
	Manifest *theme.Manifest
	// DefaultVariant is used when Select is called with an empty variant.
	DefaultVariant string
}

var _ theme.ThemeSelector = (*ManifestSelector)(nil)

// Select implements theme.ThemeSelector.
func (s *ManifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if s == nil || s.Manifest == nil {
		return nil, errors.New("render: no theme manifest configured")
	}
	if name != "" && name != s.Manifest.Name {
		return nil, fmt.Errorf("render: theme %q not found", name)
	}
	if variant == "" {
		variant = s.DefaultVariant
	}
	if variant != "" {
		if _, ok := s.Manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("render: theme %q has no variant %q", s.Manifest.Name, variant)
		}
	}
	return &theme.Selection{
		Theme:    s.Manifest.Name,
		Variant:  variant,
		Manifest: s.Manifest,
	}, nil
}
