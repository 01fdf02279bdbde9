package form_test

import (
	"testing"
	"time"

	"github.com/goliatone/go-formbuilder/pkg/form"
)

func TestDisplayFormat(t *testing.T) {
	cases := map[string]string{
		"d mmmm yyyy":   "j F Y",
		"dd/mm/yy":      "d/m/y",
		"dddd, ddd m d": "l, D n j",
		"mmm yyyy":      "M Y",
		"yyy":           "yy",
		"at noon":       "at noon",
	}
	for in, want := range cases {
		if got := form.DisplayFormat(in); got != want {
			t.Fatalf("DisplayFormat(%q) = %q, want %q", in, got, want)
		}
	}
	if got := form.DisplayFormat(form.DefaultPickerFormat); got != "j F Y" {
		t.Fatalf("default format maps to %q", got)
	}
}

func TestFormatDate(t *testing.T) {
	day := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		format string
		lang   string
		want   string
	}{
		{"d mmmm yyyy", "", "5 March 2024"},
		{"dddd, d mmm yy", "en", "Tuesday, 5 Mar 24"},
		{"dd/mm/yyyy", "", "05/03/2024"},
		{"d/m/yyyy", "", "5/3/2024"},
		{"d mmmm yyyy", "de", "5 März 2024"},
	}
	for _, tc := range cases {
		if got := form.FormatDate(day, tc.format, tc.lang); got != tc.want {
			t.Fatalf("FormatDate(%q, %q) = %q, want %q", tc.format, tc.lang, got, tc.want)
		}
	}
}
