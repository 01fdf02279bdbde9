// Package scripts collects the client-side enhancement snippets contributed by
// stateful form controls (file preview removal, rich-text editors and date
// pickers) and renders them from embedded templates.
package scripts

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"strings"
	"sync"

	tpl "github.com/goliatone/go-formbuilder/pkg/render/template"
	"github.com/goliatone/go-formbuilder/pkg/render/template/gotemplate"
)

// Template names shipped with the package.
const (
	TemplateFileRemove      = "file_remove"
	TemplateRichTextLibrary = "richtext_library"
	TemplateRichTextInit    = "richtext_init"
	TemplateDatePicker      = "datepicker"
)

//go:embed templates/*.tpl
var embedded embed.FS

// TemplatesFS exposes the embedded snippet templates rooted at their
// directory.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		panic(fmt.Sprintf("scripts: embedded templates: %v", err))
	}
	return sub
}

var (
	defaultOnce     sync.Once
	defaultRenderer tpl.TemplateRenderer
	defaultErr      error
)

// DefaultRenderer returns the shared engine over TemplatesFS.
func DefaultRenderer() (tpl.TemplateRenderer, error) {
	defaultOnce.Do(func() {
		defaultRenderer, defaultErr = gotemplate.New(gotemplate.WithFS(TemplatesFS()))
	})
	return defaultRenderer, defaultErr
}

// Option configures a Collector.
type Option func(*Collector)

// WithRenderer swaps the template renderer used by AddTemplate.
func WithRenderer(r tpl.TemplateRenderer) Option {
	return func(c *Collector) {
		if r != nil {
			c.renderer = r
		}
	}
}

type entry struct {
	key     string
	snippet string
}

// Collector keeps snippets in insertion order. A keyed snippet replaces the
// content of an earlier snippet with the same key without moving it; unkeyed
// snippets are always appended. Not safe for concurrent use.
type Collector struct {
	entries  []entry
	keys     map[string]int
	renderer tpl.TemplateRenderer
}

// New returns an empty collector.
func New(opts ...Option) *Collector {
	c := &Collector{keys: make(map[string]int)}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Add appends an unkeyed snippet.
func (c *Collector) Add(snippet string) {
	c.AddKeyed("", snippet)
}

// AddKeyed stores snippet under key. An empty key behaves like Add.
func (c *Collector) AddKeyed(key, snippet string) {
	if key == "" {
		c.entries = append(c.entries, entry{snippet: snippet})
		return
	}
	if idx, ok := c.keys[key]; ok {
		c.entries[idx].snippet = snippet
		return
	}
	c.keys[key] = len(c.entries)
	c.entries = append(c.entries, entry{key: key, snippet: snippet})
}

// AddTemplate renders the named template with data and stores the result
// under key.
func (c *Collector) AddTemplate(key, name string, data map[string]any) error {
	renderer := c.renderer
	if renderer == nil {
		var err error
		if renderer, err = DefaultRenderer(); err != nil {
			return fmt.Errorf("scripts: template engine: %w", err)
		}
	}
	out, err := renderer.RenderTemplate(name, data)
	if err != nil {
		return fmt.Errorf("scripts: render %q: %w", name, err)
	}
	c.AddKeyed(key, strings.TrimRight(out, "\n"))
	return nil
}

// Has reports whether a snippet is stored under key.
func (c *Collector) Has(key string) bool {
	_, ok := c.keys[key]
	return ok
}

// Len returns the number of stored snippets.
func (c *Collector) Len() int {
	return len(c.entries)
}

// Snippets returns the stored snippets in order.
func (c *Collector) Snippets() []string {
	out := make([]string, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.snippet
	}
	return out
}

// HTML concatenates every snippet, each followed by a newline.
func (c *Collector) HTML() template.HTML {
	var b strings.Builder
	for _, e := range c.entries {
		b.WriteString(e.snippet)
		b.WriteByte('\n')
	}
	return template.HTML(b.String())
}

// Reset drops every snippet.
func (c *Collector) Reset() {
	c.entries = nil
	c.keys = make(map[string]int)
}
