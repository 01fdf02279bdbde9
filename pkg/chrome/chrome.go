// Package chrome derives the wrapper class names of a form from go-theme
// manifests so forms pick up the look of the active theme and variant.
package chrome

import (
	"errors"
	"fmt"
	"maps"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbuilder/pkg/form"
)

// Token keys read from a manifest. Missing tokens keep the stock class.
const (
	TokenForm            = "form.class"
	TokenError           = "form.error"
	TokenErrorWrap       = "form.errors"
	TokenField           = "form.field"
	TokenLabel           = "form.label"
	TokenInput           = "form.input"
	TokenRequired        = "form.required"
	TokenSublabel        = "form.sublabel"
	TokenHelper          = "form.helper"
	TokenSubmit          = "form.submit"
	TokenThumbnail       = "form.thumbnail"
	TokenThumbnailRemove = "form.thumbnail_remove"
)

// FromTokens maps theme tokens onto form classes.
func FromTokens(tokens map[string]string) form.Classes {
	override := form.Classes{
		Form:            tokens[TokenForm],
		Error:           tokens[TokenError],
		ErrorWrap:       tokens[TokenErrorWrap],
		Field:           tokens[TokenField],
		Label:           tokens[TokenLabel],
		Input:           tokens[TokenInput],
		Required:        tokens[TokenRequired],
		Sublabel:        tokens[TokenSublabel],
		Helper:          tokens[TokenHelper],
		Submit:          tokens[TokenSubmit],
		Thumbnail:       tokens[TokenThumbnail],
		ThumbnailRemove: tokens[TokenThumbnailRemove],
	}
	return form.DefaultClasses().Merge(override)
}

// FromManifest applies the manifest tokens, then the variant tokens.
func FromManifest(m *theme.Manifest, variant string) form.Classes {
	if m == nil {
		return form.DefaultClasses()
	}
	tokens := make(map[string]string, len(m.Tokens))
	maps.Copy(tokens, m.Tokens)
	if v, ok := m.Variants[variant]; ok {
		maps.Copy(tokens, v.Tokens)
	}
	return FromTokens(tokens)
}

// Resolve asks selector for a theme and variant and returns its classes.
func Resolve(selector theme.ThemeSelector, name, variant string) (form.Classes, error) {
	if selector == nil {
		return form.Classes{}, errors.New("chrome: nil theme selector")
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return form.Classes{}, fmt.Errorf("chrome: select theme %q/%q: %w", name, variant, err)
	}
	if selection == nil || selection.Manifest == nil {
		return form.Classes{}, fmt.Errorf("chrome: theme %q has no manifest", name)
	}
	return FromManifest(selection.Manifest, selection.Variant), nil
}

// Option returns a form option applying the classes of the selected theme.
func Option(selector theme.ThemeSelector, name, variant string) (form.Option, error) {
	classes, err := Resolve(selector, name, variant)
	if err != nil {
		return nil, err
	}
	return form.WithClasses(classes), nil
}

type manifestFile struct {
	Name     string                       `yaml:"name"`
	Version  string                       `yaml:"version"`
	Tokens   map[string]string            `yaml:"tokens"`
	Variants map[string]map[string]string `yaml:"variants"`
}

// ParseManifest reads a YAML manifest with name, version, tokens and
// per-variant tokens, and checks it registers cleanly.
func ParseManifest(data []byte) (*theme.Manifest, error) {
	var file manifestFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("chrome: parse manifest: %w", err)
	}
	m := &theme.Manifest{
		Name:    file.Name,
		Version: file.Version,
		Tokens:  file.Tokens,
	}
	if len(file.Variants) > 0 {
		m.Variants = make(map[string]theme.Variant, len(file.Variants))
		for name, tokens := range file.Variants {
			m.Variants[name] = theme.Variant{Tokens: tokens}
		}
	}
	if err := theme.NewRegistry().Register(m); err != nil {
		return nil, fmt.Errorf("chrome: invalid manifest: %w", err)
	}
	return m, nil
}
