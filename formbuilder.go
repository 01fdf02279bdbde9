// Package formbuilder renders server-side HTML forms from registered field
// definitions. The root package re-exports the common entry points; the
// building blocks live under pkg/.
package formbuilder

import (
	"context"
	"html/template"
	"io/fs"

	"github.com/goliatone/go-formbuilder/pkg/definition"
	"github.com/goliatone/go-formbuilder/pkg/form"
)

// Form is the form assembler.
type Form = form.Form

// Definition is a serialisable form description.
type Definition = definition.Definition

// New returns an empty form configured by opts.
func New(opts ...form.Option) *Form {
	return form.New(opts...)
}

// FromDefinition parses a YAML or JSON definition and builds its form.
// source names the document in errors and, without a handle, provides it.
func FromDefinition(data []byte, source string, opts ...form.Option) (*Form, error) {
	def, err := definition.Parse(data, source)
	if err != nil {
		return nil, err
	}
	return def.Build(opts...)
}

// LoadDefinitions reads every definition file in fsys.
func LoadDefinitions(fsys fs.FS) (*definition.Store, error) {
	return definition.LoadFS(fsys)
}

// OpenAPIOperations lists the operations of an OpenAPI document.
func OpenAPIOperations(ctx context.Context, doc []byte) ([]string, error) {
	return definition.OpenAPIOperations(ctx, doc)
}

// GenerateHTML builds the form of an OpenAPI operation's request body and
// renders it. It is the shortest path from a document to markup.
func GenerateHTML(ctx context.Context, doc []byte, operationID string, opts ...form.Option) (template.HTML, error) {
	def, err := definition.FromOpenAPI(ctx, doc, operationID)
	if err != nil {
		return "", err
	}
	f, err := def.Build(opts...)
	if err != nil {
		return "", err
	}
	return f.Render()
}
