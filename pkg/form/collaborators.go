package form

import (
	"html/template"
)

// OldInputStore returns the previously submitted value of a field.
type OldInputStore interface {
	Get(name string) (any, bool)
}

// OldInputFunc adapts a function to OldInputStore.
type OldInputFunc func(name string) (any, bool)

// Get calls fn.
func (fn OldInputFunc) Get(name string) (any, bool) { return fn(name) }

// ValidationErrors is the message collection of the last validation run.
type ValidationErrors interface {
	Has(name string) bool
	All() []string
	IsEmpty() bool
}

// AntiForgery renders the hidden token field placed inside the opening tag.
type AntiForgery interface {
	Field() template.HTML
}

// FileURLResolver returns the public URL of path on a storage disk.
type FileURLResolver interface {
	Resolve(disk, path string) (string, error)
}

// HTMLSanitizer removes unsafe markup from user content.
type HTMLSanitizer interface {
	Purify(raw string) (string, error)
}

// Translator resolves a message key for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// HelpRenderer turns a "help" attr into HTML shown under the control.
type HelpRenderer interface {
	Render(src string) (string, error)
}
