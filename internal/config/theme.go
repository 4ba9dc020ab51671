package config

import (
	"fmt"
	"maps"

	theme "github.com/goliatone/go-theme"
)

// Theme describes a go-theme manifest inline in the config file. An empty
// Name means no theme.
type Theme struct {
	Name     string                  `json:"name" yaml:"name"`
	Version  string                  `json:"version" yaml:"version"`
	Variant  string                  `json:"variant" yaml:"variant"`
	Tokens   map[string]string       `json:"tokens" yaml:"tokens"`
	Assets   ThemeAssets             `json:"assets" yaml:"assets"`
	Variants map[string]ThemeVariant `json:"variants" yaml:"variants"`
}

// ThemeAssets maps asset keys (for example "stylesheet") to files below Prefix.
type ThemeAssets struct {
	Prefix string            `json:"prefix" yaml:"prefix"`
	Files  map[string]string `json:"files" yaml:"files"`
}

// ThemeVariant overrides tokens and assets of the base theme.
type ThemeVariant struct {
	Tokens map[string]string `json:"tokens" yaml:"tokens"`
	Assets ThemeAssets       `json:"assets" yaml:"assets"`
}

// Enabled reports whether a theme is configured.
func (t Theme) Enabled() bool {
	return t.Name != ""
}

// Manifest converts the configured theme to a go-theme manifest, or nil when
// no theme is configured.
func (t Theme) Manifest() *theme.Manifest {
	if !t.Enabled() {
		return nil
	}
	manifest := &theme.Manifest{
		Name:    t.Name,
		Version: t.Version,
		Tokens:  maps.Clone(t.Tokens),
		Assets: theme.Assets{
			Prefix: t.Assets.Prefix,
			Files:  maps.Clone(t.Assets.Files),
		},
	}
	if len(t.Variants) > 0 {
		manifest.Variants = make(map[string]theme.Variant, len(t.Variants))
		for name, variant := range t.Variants {
			manifest.Variants[name] = theme.Variant{
				Tokens: maps.Clone(variant.Tokens),
				Assets: theme.Assets{
					Prefix: variant.Assets.Prefix,
					Files:  maps.Clone(variant.Assets.Files),
				},
			}
		}
	}
	return manifest
}

func (t Theme) validate() error {
	if !t.Enabled() {
		if t.Variant != "" || len(t.Tokens) > 0 || len(t.Variants) > 0 {
			return fmt.Errorf("config: theme settings given without a theme name")
		}
		return nil
	}
	if t.Variant != "" {
		if _, ok := t.Variants[t.Variant]; !ok {
			return fmt.Errorf("config: theme %q has no variant %q", t.Name, t.Variant)
		}
	}
	return nil
}
