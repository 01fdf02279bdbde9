package form

import (
	"html"
	"slices"
	"sort"
	"strings"
)

// InputName converts a dotted field name to bracket notation so nested values
// round trip through a form post: "a.b.c" becomes "a[b][c]".
func InputName(name string) string {
	parts := strings.Split(name, ".")
	if len(parts) == 1 {
		return name
	}
	var b strings.Builder
	b.WriteString(parts[0])
	for _, part := range parts[1:] {
		b.WriteByte('[')
		b.WriteString(part)
		b.WriteByte(']')
	}
	return b.String()
}

var interpretedAttrs = map[FieldType][]string{
	TypeHidden:     {"placeholder", "readonly", "disabled", "lang", "autocomplete", "step", "min", "max"},
	TypeText:       {"placeholder", "readonly", "disabled", "lang", "autocomplete", "step", "min", "max"},
	TypeEmail:      {"placeholder", "readonly", "disabled", "lang", "autocomplete", "step", "min", "max"},
	TypeNumber:     {"placeholder", "readonly", "disabled", "lang", "autocomplete", "step", "min", "max"},
	TypePassword:   {"placeholder", "readonly", "disabled", "lang", "autocomplete", "step", "min", "max"},
	TypeFile:       {"placeholder", "readonly", "disabled", "lang", "autocomplete", "step", "min", "max", "disk", "path_to", "width", "height"},
	TypeTextarea:   {"placeholder", "readonly", "disabled", "rows", "cols"},
	TypeRichText:   {"placeholder", "readonly", "disabled", "rows", "cols", "height"},
	TypeSelect:     {"readonly", "disabled", "default", "nullable", "use_radio"},
	TypeRadios:     {"readonly", "disabled", "use_radio"},
	TypeCheckboxes: {},
	TypeCheckbox:   {"readonly", "disabled"},
	TypeSubmit:     {"class"},
	TypeDateSelect: {"year_start", "year_end"},
	TypeDatePicker: {"placeholder", "readonly", "disabled", "format", "num_years", "min", "max"},
	TypeTimeSelect: {},
}

// InterpretedAttrs lists the attr keys a field type reads, besides the
// "help" and "sublabel" keys understood by every labelled field. Other keys
// are written on the control as plain HTML attributes.
func InterpretedAttrs(t FieldType) []string {
	return append([]string(nil), interpretedAttrs[t]...)
}

// tag accumulates an element's attributes in call order.
type tag struct {
	b strings.Builder
}

func openTag(name string) *tag {
	t := &tag{}
	t.b.WriteByte('<')
	t.b.WriteString(name)
	return t
}

// set writes key="value" with value escaped.
func (t *tag) set(key, value string) *tag {
	t.b.WriteByte(' ')
	t.b.WriteString(key)
	t.b.WriteString(`="`)
	t.b.WriteString(html.EscapeString(value))
	t.b.WriteByte('"')
	return t
}

// setIf writes the attribute only when value is not empty.
func (t *tag) setIf(key, value string) *tag {
	if value != "" {
		t.set(key, value)
	}
	return t
}

func (t *tag) String() string {
	return t.b.String() + ">"
}

// attrValue resolves a control attribute. Booleans render as key="key" when
// true and are omitted when false; nil and empty strings are omitted.
func (f *Form) attrValue(def FieldDefinition, key string) (string, bool) {
	var (
		v  any
		ok bool
	)
	switch key {
	case "placeholder":
		return f.placeholder(def)
	case "lang":
		v, ok = def.Attrs["lang"]
		if !ok && f.lang != "" {
			return f.lang, true
		}
	case "disabled":
		v, ok = def.Attrs["disabled"]
		if !ok && f.disableAll {
			return "disabled", true
		}
	default:
		v, ok = def.Attrs[key]
	}
	if !ok {
		return "", false
	}
	if b, isBool := v.(bool); isBool {
		if b {
			return key, true
		}
		return "", false
	}
	s := stringify(v)
	return s, s != ""
}

// placeholder applies the attr, per-form override, form wide default order.
// true means "use the label"; falsy values omit the attribute.
func (f *Form) placeholder(def FieldDefinition) (string, bool) {
	v, ok := def.Attrs["placeholder"]
	if !ok {
		v, ok = f.placeholders[def.Name]
	}
	if !ok {
		v = f.placeholderAll
	}
	if b, isBool := v.(bool); isBool && b {
		label := f.LabelFor(def.Name)
		return label, label != ""
	}
	if !truthy(v) {
		return "", false
	}
	return stringify(v), true
}

// setAttrs writes each named attribute that resolves to a value.
func (f *Form) setAttrs(t *tag, def FieldDefinition, keys ...string) {
	for _, key := range keys {
		if v, ok := f.attrValue(def, key); ok {
			t.set(key, v)
		}
	}
}

// ownAttrs are written by the controls themselves or read by the field
// wrapper, so they never pass through.
var ownAttrs = map[string]bool{
	"type": true, "name": true, "value": true, "id": true, "class": true,
	"checked": true, "selected": true, "help": true, "sublabel": true,
}

// setExtraAttrs writes the attrs the field type does not interpret, sorted by
// key. Event handler keys ("on...") and malformed names are skipped.
func (f *Form) setExtraAttrs(t *tag, def FieldDefinition) {
	if len(def.Attrs) == 0 {
		return
	}
	known := interpretedAttrs[def.Type]
	keys := make([]string, 0, len(def.Attrs))
	for key := range def.Attrs {
		if ownAttrs[key] || slices.Contains(known, key) || !passThroughName(key) {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if v, ok := f.attrValue(def, key); ok {
			t.set(key, v)
		}
	}
}

// passThroughName accepts [a-zA-Z_:][-a-zA-Z0-9_:.]* minus event handlers.
func passThroughName(key string) bool {
	if key == "" || strings.HasPrefix(strings.ToLower(key), "on") {
		return false
	}
	for i, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_', r == ':':
		case i > 0 && (r >= '0' && r <= '9' || r == '-' || r == '.'):
		default:
			return false
		}
	}
	return true
}
