package timezones

import (
	"sort"
	"strings"
)

// Search returns the zones containing query, case-insensitively, with
// prefix matches ahead of the rest. A zero limit means the default.
func Search(zones []string, query string, limit int, opts Options) []string {
	limit = opts.clamp(limit)
	if limit == 0 {
		return nil
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		if opts.EmptySearchMode != EmptySearchTop {
			return nil
		}
		return append([]string(nil), zones[:min(limit, len(zones))]...)
	}

	type match struct {
		zone   string
		prefix bool
	}
	var matches []match
	for _, zone := range zones {
		lower := strings.ToLower(zone)
		if strings.Contains(lower, query) {
			matches = append(matches, match{zone: zone, prefix: strings.HasPrefix(lower, query)})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].prefix != matches[j].prefix {
			return matches[i].prefix
		}
		return matches[i].zone < matches[j].zone
	})

	out := make([]string, 0, min(limit, len(matches)))
	for _, m := range matches {
		if len(out) == limit {
			break
		}
		out = append(out, m.zone)
	}
	return out
}
