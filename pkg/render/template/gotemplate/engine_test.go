package gotemplate_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-formbuilder/pkg/render/template/gotemplate"
)

func newEngine(t *testing.T, opts ...gotemplate.Option) *gotemplate.Engine {
	t.Helper()
	files := fstest.MapFS{
		"hello.tpl":      {Data: []byte("Hello {{ name }}!")},
		"use-global.tpl": {Data: []byte("env={{ settings.env }}")},
		"js.tpl":         {Data: []byte("var s = '{{ value|jsstr }}';")},
		"count.tpl":      {Data: []byte("{{ count }}")},
	}
	engine, err := gotemplate.New(append([]gotemplate.Option{gotemplate.WithFS(files)}, opts...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	var sb strings.Builder
	got, err := engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, &sb)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Hello Ada!" {
		t.Fatalf("unexpected output %q", got)
	}
	if sb.String() != got {
		t.Fatalf("writer mismatch: %q", sb.String())
	}
}

func TestEngine_RenderTemplateEscapesValues(t *testing.T) {
	engine := newEngine(t)

	got, err := engine.Render("hello", map[string]any{"name": "<b>"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Hello &lt;b&gt;!" {
		t.Fatalf("expected autoescaped output, got %q", got)
	}
}

func TestEngine_KeepsNumericTypes(t *testing.T) {
	engine := newEngine(t)

	got, err := engine.RenderTemplate("count", map[string]any{"count": 6})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "6" {
		t.Fatalf("expected integer output, got %q", got)
	}
}

func TestEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t, gotemplate.WithGlobalData(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}))

	got, err := engine.RenderTemplate("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "env=staging" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngine_RenderString(t *testing.T) {
	engine := newEngine(t)

	got, err := engine.RenderString("{{ A }}-{{ B }}", struct{ A, B string }{A: "x", B: "y"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if got != "x-y" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngine_JSStringFilter(t *testing.T) {
	engine := newEngine(t)

	got, err := engine.RenderTemplate("js", map[string]any{"value": `it's </script>`})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `var s = 'it\'s \u003C/script\u003E';`
	if got != want {
		t.Fatalf("jsstr mismatch\nwant: %s\n got: %s", want, got)
	}
}

func TestEngine_RequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without base dir or fs")
	}
}

func TestEngine_MissingTemplate(t *testing.T) {
	engine := newEngine(t)
	if _, err := engine.RenderTemplate("nope", nil); err == nil {
		t.Fatalf("expected error for missing template")
	}
}
