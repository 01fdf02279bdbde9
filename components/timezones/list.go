package timezones

import (
	"bufio"
	"embed"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

//go:embed data/iana_timezones.txt
var dataFS embed.FS

var (
	defaultOnce  sync.Once
	defaultZones []string
	defaultErr   error
)

// DefaultZones returns a copy of the embedded zone list, sorted.
func DefaultZones() ([]string, error) {
	defaultOnce.Do(func() {
		f, err := dataFS.Open("data/iana_timezones.txt")
		if err != nil {
			defaultErr = fmt.Errorf("timezones: open embedded list: %w", err)
			return
		}
		defer func() { _ = f.Close() }()
		defaultZones, defaultErr = LoadZones(f)
	})
	if defaultErr != nil {
		return nil, defaultErr
	}
	return append([]string(nil), defaultZones...), nil
}

// LoadZones reads one zone per line. Blank lines and "#" comments are
// skipped; duplicates are dropped and the result is sorted.
func LoadZones(r io.Reader) ([]string, error) {
	if r == nil {
		return nil, errors.New("timezones: nil reader")
	}
	seen := make(map[string]struct{})
	var zones []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, dup := seen[line]; dup {
			continue
		}
		seen[line] = struct{}{}
		zones = append(zones, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("timezones: read list: %w", err)
	}
	sort.Strings(zones)
	return zones, nil
}

// Region is the part of a zone before the first slash. Zones without one
// ("UTC") have no region.
func Region(zone string) string {
	region, _, found := strings.Cut(zone, "/")
	if !found {
		return ""
	}
	return region
}

// City is the display name of a zone: the part after the region with
// underscores as spaces ("America/Argentina/Buenos_Aires" ->
// "Argentina/Buenos Aires").
func City(zone string) string {
	_, rest, found := strings.Cut(zone, "/")
	if !found {
		rest = zone
	}
	return strings.ReplaceAll(rest, "_", " ")
}
