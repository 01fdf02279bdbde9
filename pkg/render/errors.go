package render

import (
	"sort"
	"strconv"
	"strings"
)

// ErrorMapping splits a validation payload into messages per registered form
// field (dotted names) and form level messages.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// FieldNames returns the mapped field names following order, then any
// remaining names sorted.
func (m ErrorMapping) FieldNames(order []string) []string {
	out := make([]string, 0, len(m.Fields))
	seen := make(map[string]struct{}, len(m.Fields))
	for _, name := range order {
		if _, ok := m.Fields[name]; ok {
			if _, dup := seen[name]; !dup {
				seen[name] = struct{}{}
				out = append(out, name)
			}
		}
	}
	rest := make([]string, 0)
	for name := range m.Fields {
		if _, ok := seen[name]; !ok {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

// MapErrorPayload maps payload keys onto the given field names. Keys may be
// dotted ("address.city"), bracketed ("address[city]"), JSON pointers
// ("/body/address/city") or carry array indexes ("tags.0"). Keys that match
// no field become form level messages so nothing is dropped.
func MapErrorPayload(fieldNames []string, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{Fields: make(map[string][]string)}
	if len(payload) == 0 {
		mapping.Fields = nil
		return mapping
	}

	known := make(map[string]struct{}, len(fieldNames))
	for _, name := range fieldNames {
		if name = strings.TrimSpace(name); name != "" {
			known[name] = struct{}{}
		}
	}

	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		messages := dedupeMessages(payload[key])
		if len(messages) == 0 {
			continue
		}
		field, ok := matchField(key, known)
		if !ok {
			mapping.Form = append(mapping.Form, messages...)
			continue
		}
		mapping.Fields[field] = dedupeMessages(append(mapping.Fields[field], messages...))
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = dedupeMessages(mapping.Form)
	return mapping
}

func dedupeMessages(messages []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		message = strings.TrimSpace(message)
		if message == "" {
			continue
		}
		if _, dup := seen[message]; dup {
			continue
		}
		seen[message] = struct{}{}
		out = append(out, message)
	}
	return out
}

func matchField(key string, known map[string]struct{}) (string, bool) {
	if isFormLevelKey(key) {
		return "", false
	}
	segments := splitPath(key)
	if len(segments) == 0 {
		return "", false
	}

	best := ""
	for _, candidate := range pathVariants(segments) {
		if match := longestPrefix(candidate, known); segmentCount(match) > segmentCount(best) {
			best = match
		}
	}
	return best, best != ""
}

func longestPrefix(segments []string, known map[string]struct{}) string {
	for end := len(segments); end > 0; end-- {
		joined := strings.Join(segments[:end], ".")
		if _, ok := known[joined]; ok {
			return joined
		}
	}
	return ""
}

func segmentCount(path string) int {
	if path == "" {
		return 0
	}
	return strings.Count(path, ".") + 1
}

// splitPath breaks pointer, bracket and dotted notations into segments.
// JSON pointer escapes (~1, ~0) are decoded.
func splitPath(raw string) []string {
	clean := strings.TrimSpace(raw)
	clean = strings.TrimLeft(clean, "#$/.")
	clean = strings.NewReplacer("[", ".", "]", "").Replace(clean)
	parts := strings.FieldsFunc(clean, func(r rune) bool { return r == '.' || r == '/' })

	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		out = append(out, part)
	}
	return out
}

func pathVariants(segments []string) [][]string {
	unwrapped := segments
	for len(unwrapped) > 0 {
		switch strings.ToLower(unwrapped[0]) {
		case "body", "request", "payload", "data", "attributes":
			unwrapped = unwrapped[1:]
			continue
		}
		break
	}
	return [][]string{
		segments,
		unwrapped,
		withoutIndexes(segments),
		withoutIndexes(unwrapped),
	}
}

func withoutIndexes(segments []string) []string {
	out := make([]string, 0, len(segments))
	for _, segment := range segments {
		if _, err := strconv.Atoi(segment); err == nil {
			continue
		}
		out = append(out, segment)
	}
	return out
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "base", "__all__", "non_field_errors", "non-field-errors":
		return true
	}
	return false
}
