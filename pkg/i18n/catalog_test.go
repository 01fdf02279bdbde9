package i18n_test

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/goodsign/monday"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/i18n"
)

func TestCatalog_LookupChain(t *testing.T) {
	c := i18n.NewCatalog("en")
	c.Add("en", map[string]string{"Yes": "Yes", "greeting": "Hello %s"})
	c.Add("fr", map[string]string{"Yes": "Oui"})
	c.Add("fr_CA", map[string]string{"Yes": "Ouais"})

	cases := []struct {
		locale string
		key    string
		want   string
	}{
		{"fr-CA", "Yes", "Ouais"},
		{"fr-BE", "Yes", "Oui"},
		{"de", "Yes", "Yes"},
		{"fr", "greeting", "Hello %s"},
	}
	for _, tc := range cases {
		got, err := c.Translate(tc.locale, tc.key)
		if err != nil {
			t.Fatalf("translate %s/%s: %v", tc.locale, tc.key, err)
		}
		if got != tc.want {
			t.Fatalf("translate %s/%s: want %q got %q", tc.locale, tc.key, tc.want, got)
		}
	}

	got, err := c.Translate("en", "greeting", "Ada")
	if err != nil || got != "Hello Ada" {
		t.Fatalf("formatted translate: %q %v", got, err)
	}
}

func TestCatalog_Missing(t *testing.T) {
	c := i18n.NewCatalog("")
	got, err := c.Translate("en", "nope")
	if !errors.Is(err, i18n.ErrMissingTranslation) {
		t.Fatalf("expected ErrMissingTranslation, got %v", err)
	}
	if got != "nope" {
		t.Fatalf("expected key fallback, got %q", got)
	}
}

func TestLoadFS(t *testing.T) {
	files := fstest.MapFS{
		"en.yaml":   {Data: []byte("form:\n  please_select: \"[please select]\"\nYes: \"Yes\"\n")},
		"de.json":   {Data: []byte(`{"form": {"please_select": "[bitte wählen]"}, "Yes": "Ja"}`)},
		"notes.txt": {Data: []byte("ignored")},
	}
	c, err := i18n.LoadFS(files, "en")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"de", "en"}, c.Locales()); diff != "" {
		t.Fatalf("locales mismatch (-want +got):\n%s", diff)
	}
	got, _ := c.Translate("de-AT", "form.please_select")
	if got != "[bitte wählen]" {
		t.Fatalf("unexpected translation %q", got)
	}
	got, _ = c.Translate("de", "Yes")
	if got != "Ja" {
		t.Fatalf("unexpected translation %q", got)
	}
}

func TestLoadFS_InvalidDocument(t *testing.T) {
	files := fstest.MapFS{"en.yaml": {Data: []byte("a: [unclosed")}}
	if _, err := i18n.LoadFS(files, "en"); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestNormalizeLang(t *testing.T) {
	cases := map[string]string{
		"en_gb": "en-GB",
		"EN":    "en",
		"":      "",
		" fr ":  "fr",
	}
	for in, want := range cases {
		if got := i18n.NormalizeLang(in); got != want {
			t.Fatalf("NormalizeLang(%q) = %q, want %q", in, got, want)
		}
	}
	if got := i18n.BaseLang("pt-BR"); got != "pt" {
		t.Fatalf("BaseLang = %q", got)
	}
}

func TestMondayLocale(t *testing.T) {
	cases := map[string]monday.Locale{
		"en-GB": monday.LocaleEnGB,
		"de-AT": monday.LocaleDeDE,
		"pt_BR": monday.LocalePtBR,
		"xx":    monday.LocaleEnUS,
		"":      monday.LocaleEnUS,
	}
	for in, want := range cases {
		if got := i18n.MondayLocale(in); got != want {
			t.Fatalf("MondayLocale(%q) = %v, want %v", in, got, want)
		}
	}
}
