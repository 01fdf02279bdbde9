package timezones_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/components/timezones"
	"github.com/goliatone/go-formbuilder/pkg/form"
)

func TestLoadZones_DedupesSortsAndSkipsComments(t *testing.T) {
	zones, err := timezones.LoadZones(strings.NewReader("\n# comment\nEurope/Paris\nUTC\nAmerica/New_York\nEurope/Paris\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"America/New_York", "Europe/Paris", "UTC"}, zones); diff != "" {
		t.Fatalf("zones mismatch (-want +got):\n%s", diff)
	}
	if _, err := timezones.LoadZones(nil); err == nil {
		t.Fatalf("expected error for nil reader")
	}
}

func TestDefaultZones(t *testing.T) {
	zones, err := timezones.DefaultZones()
	if err != nil {
		t.Fatalf("default zones: %v", err)
	}
	if len(zones) < 200 {
		t.Fatalf("expected the full list, got %d zones", len(zones))
	}
	seen := make(map[string]bool, len(zones))
	for _, z := range zones {
		seen[z] = true
	}
	for _, want := range []string{"America/New_York", "Europe/Paris", "UTC"} {
		if !seen[want] {
			t.Fatalf("expected %q in the embedded list", want)
		}
	}

	zones[0] = "mutated"
	again, _ := timezones.DefaultZones()
	if again[0] == "mutated" {
		t.Fatalf("DefaultZones must return a copy")
	}
}

func TestRegionAndCity(t *testing.T) {
	cases := []struct{ zone, region, city string }{
		{"America/Argentina/Buenos_Aires", "America", "Argentina/Buenos Aires"},
		{"Europe/Paris", "Europe", "Paris"},
		{"UTC", "", "UTC"},
	}
	for _, tc := range cases {
		if got := timezones.Region(tc.zone); got != tc.region {
			t.Fatalf("Region(%q) = %q, want %q", tc.zone, got, tc.region)
		}
		if got := timezones.City(tc.zone); got != tc.city {
			t.Fatalf("City(%q) = %q, want %q", tc.zone, got, tc.city)
		}
	}
}

func TestSearch(t *testing.T) {
	opts := timezones.NewOptions()
	got := timezones.Search([]string{"x/a/b", "a/b", "a/b/c", "c/d"}, "A/B", 10, opts)
	if diff := cmp.Diff([]string{"a/b", "a/b/c", "x/a/b"}, got); diff != "" {
		t.Fatalf("prefix matches should come first (-want +got):\n%s", diff)
	}
	if got := timezones.Search([]string{"a"}, "", 10, opts); got != nil {
		t.Fatalf("empty query should return nothing by default, got %v", got)
	}

	top := timezones.NewOptions(timezones.WithLimits(2, 3), timezones.WithEmptySearchMode(timezones.EmptySearchTop))
	if got := timezones.Search([]string{"a", "b", "c", "d"}, "", 0, top); len(got) != 2 {
		t.Fatalf("expected default limit of 2, got %v", got)
	}
	if got := timezones.Search([]string{"a", "b", "c", "d"}, "", 10, top); len(got) != 3 {
		t.Fatalf("expected max limit of 3, got %v", got)
	}
	if got := timezones.Search([]string{"a"}, "a", -1, top); got != nil {
		t.Fatalf("negative limit should return nothing, got %v", got)
	}
}

func TestChoices_GroupsByRegion(t *testing.T) {
	got := timezones.Choices([]string{"America/Chicago", "Europe/Paris", "America/New_York", "UTC"})
	want := []form.Choice{
		form.Opt("UTC", "UTC"),
		form.OptGroup("America", form.Opt("America/Chicago", "Chicago"), form.Opt("America/New_York", "New York")),
		form.OptGroup("Europe", form.Opt("Europe/Paris", "Paris")),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("choices mismatch (-want +got):\n%s", diff)
	}
}

func TestField_RendersGroupedSelect(t *testing.T) {
	f := form.New(form.WithIDGenerator(func(string) string { return "f" }))
	f.Add(timezones.Field("tz", "Timezone", form.WithDefault("Europe/Paris")))

	out, err := f.Input("tz")
	if err != nil {
		t.Fatalf("input: %v", err)
	}
	for _, want := range []string{`<optgroup label="Europe">`, `<option value="Europe/Paris" selected="selected">Paris</option>`} {
		if !strings.Contains(string(out), want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}
}
