package session

import (
	"net/url"
	"sort"
	"strings"
)

// OldInput holds the previous submission keyed by dotted field name.
type OldInput map[string]any

// Get returns the previously submitted value for name.
func (o OldInput) Get(name string) (any, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o[name]
	return v, ok
}

// OldInputFromValues converts submitted form values to dotted names
// ("user[address][city]" -> "user.address.city"). Names ending in "[]" and
// repeated names keep every value; the rest keep the first value. Names in
// except are skipped.
func OldInputFromValues(values url.Values, except ...string) OldInput {
	skip := make(map[string]struct{}, len(except))
	for _, name := range except {
		skip[name] = struct{}{}
	}

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make(OldInput, len(values))
	for _, key := range keys {
		list := values[key]
		multi := strings.HasSuffix(key, "[]")
		name := DottedName(key)
		if _, ok := skip[name]; ok || name == "" {
			continue
		}
		if _, ok := skip[key]; ok {
			continue
		}
		switch {
		case multi || len(list) > 1:
			if existing, ok := out[name].([]string); ok {
				list = append(existing, list...)
			}
			out[name] = append([]string(nil), list...)
		case len(list) == 1:
			out[name] = list[0]
		}
	}
	return out
}

// DottedName converts bracket notation to dotted notation.
func DottedName(name string) string {
	name = strings.TrimSuffix(strings.TrimSpace(name), "[]")
	name = strings.NewReplacer("][", ".", "[", ".", "]", "").Replace(name)
	return strings.Trim(name, ".")
}
