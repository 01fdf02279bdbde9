package chrome_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formbuilder/pkg/chrome"
	"github.com/goliatone/go-formbuilder/pkg/form"
)

type stubSelector struct {
	selection *theme.Selection
	err       error
}

func (s *stubSelector) Select(_, _ string, _ ...theme.QueryOption) (*theme.Selection, error) {
	return s.selection, s.err
}

func acmeManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens: map[string]string{
			chrome.TokenField:  "acme-field",
			chrome.TokenSubmit: "acme-actions",
		},
		Variants: map[string]theme.Variant{
			"dark": {Tokens: map[string]string{chrome.TokenField: "acme-field dark"}},
		},
	}
}

func TestFromManifest_VariantOverridesBase(t *testing.T) {
	got := chrome.FromManifest(acmeManifest(), "dark")

	want := form.DefaultClasses()
	want.Field = "acme-field dark"
	want.Submit = "acme-actions"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("classes mismatch (-want +got):\n%s", diff)
	}

	if base := chrome.FromManifest(acmeManifest(), "missing"); base.Field != "acme-field" {
		t.Fatalf("unknown variant must keep base tokens, got %q", base.Field)
	}
	if diff := cmp.Diff(form.DefaultClasses(), chrome.FromManifest(nil, "")); diff != "" {
		t.Fatalf("nil manifest must yield defaults (-want +got):\n%s", diff)
	}
}

func TestResolve(t *testing.T) {
	selector := &stubSelector{selection: &theme.Selection{Theme: "acme", Variant: "dark", Manifest: acmeManifest()}}
	classes, err := chrome.Resolve(selector, "acme", "dark")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if classes.Field != "acme-field dark" {
		t.Fatalf("unexpected field class %q", classes.Field)
	}

	opt, err := chrome.Option(selector, "acme", "dark")
	if err != nil {
		t.Fatalf("option: %v", err)
	}
	f := form.New(opt)
	if f.Classes().Submit != "acme-actions" {
		t.Fatalf("option not applied: %+v", f.Classes())
	}

	boom := errors.New("boom")
	if _, err := chrome.Resolve(&stubSelector{err: boom}, "x", ""); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped selector error, got %v", err)
	}
	if _, err := chrome.Resolve(&stubSelector{selection: &theme.Selection{}}, "x", ""); err == nil {
		t.Fatalf("expected error for selection without manifest")
	}
}

func TestParseManifest(t *testing.T) {
	data := []byte(`
name: acme
version: 1.0.0
tokens:
  form.field: acme-field
variants:
  dark:
    form.field: acme-field dark
`)
	m, err := chrome.ParseManifest(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := chrome.FromManifest(m, "dark").Field; got != "acme-field dark" {
		t.Fatalf("unexpected field class %q", got)
	}
	if _, err := chrome.ParseManifest([]byte("name: [")); err == nil {
		t.Fatalf("expected yaml error")
	}
}
