package scripts_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/scripts"
)

func TestCollector_KeyedEntriesReplaceInPlace(t *testing.T) {
	c := scripts.New()
	c.AddKeyed("tinymce", "lib-v1")
	c.Add("a")
	c.Add("a")
	c.AddKeyed("tinymce", "lib-v2")
	c.AddKeyed("picker", "p")

	want := []string{"lib-v2", "a", "a", "p"}
	if diff := cmp.Diff(want, c.Snippets()); diff != "" {
		t.Fatalf("snippets mismatch (-want +got):\n%s", diff)
	}
	if !c.Has("tinymce") || c.Has("missing") {
		t.Fatalf("unexpected key bookkeeping")
	}
	if got := string(c.HTML()); got != "lib-v2\na\na\np\n" {
		t.Fatalf("unexpected html %q", got)
	}
}

func TestCollector_Reset(t *testing.T) {
	c := scripts.New()
	c.AddKeyed("k", "v")
	c.Reset()
	if c.Len() != 0 || c.Has("k") {
		t.Fatalf("expected empty collector after reset")
	}
}

func TestCollector_AddTemplateDatePicker(t *testing.T) {
	c := scripts.New()
	err := c.AddTemplate("picker:dob", scripts.TemplateDatePicker, map[string]any{
		"id":        "dob",
		"num_years": "6",
		"format":    "d mmmm yyyy",
		"min":       "new Date(1920, 0, 1)",
		"max":       "true",
	})
	if err != nil {
		t.Fatalf("add template: %v", err)
	}
	got := c.Snippets()[0]
	for _, want := range []string{
		"jQuery('#dob').pickadate({",
		"selectYears: '6'",
		"format: 'd mmmm yyyy'",
		"formatSubmit: 'yyyy/mm/dd'",
		"hiddenName: true,",
		"min: new Date(1920, 0, 1),",
		"max: true",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in snippet:\n%s", want, got)
		}
	}
	if strings.HasSuffix(got, "\n") {
		t.Fatalf("expected trailing newline to be trimmed")
	}
}

func TestCollector_AddTemplateOmitsBounds(t *testing.T) {
	c := scripts.New()
	if err := c.AddTemplate("", scripts.TemplateDatePicker, map[string]any{
		"id": "x", "num_years": "6", "format": "yyyy",
	}); err != nil {
		t.Fatalf("add template: %v", err)
	}
	got := c.Snippets()[0]
	if strings.Contains(got, "min:") || strings.Contains(got, "max:") {
		t.Fatalf("expected no bounds:\n%s", got)
	}
}

func TestCollector_AddTemplateRichText(t *testing.T) {
	c := scripts.New()
	if err := c.AddTemplate("tinymce", scripts.TemplateRichTextLibrary, map[string]any{"api_key": "k&1"}); err != nil {
		t.Fatalf("library: %v", err)
	}
	if err := c.AddTemplate("rt:body", scripts.TemplateRichTextInit, map[string]any{
		"name": "post[body]", "plugins": "lists", "toolbar": "bold", "height": "170",
	}); err != nil {
		t.Fatalf("init: %v", err)
	}
	snippets := c.Snippets()
	if !strings.Contains(snippets[0], "tinymce.min.js?apiKey=k%261") {
		t.Fatalf("unexpected library snippet %q", snippets[0])
	}
	if !strings.Contains(snippets[1], `selector: 'textarea[name="post[body]"]'`) {
		t.Fatalf("unexpected init snippet %q", snippets[1])
	}
}

func TestCollector_UnknownTemplate(t *testing.T) {
	c := scripts.New()
	if err := c.AddTemplate("", "missing", nil); err == nil {
		t.Fatalf("expected error for unknown template")
	}
	if c.Len() != 0 {
		t.Fatalf("failed render must not store a snippet")
	}
}
