package formbuilder

import (
	"io/fs"

	"github.com/goliatone/go-formbuilder/pkg/scripts"
)

// EmbeddedTemplates exposes the enhancement script templates so callers can
// reuse or override them through scripts.WithRenderer.
func EmbeddedTemplates() fs.FS {
	return scripts.TemplatesFS()
}
