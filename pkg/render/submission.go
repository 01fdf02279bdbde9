package render

import (
	"fmt"
	"html"
	"html/template"
	"strings"
)

// MethodFieldName carries the spoofed HTTP verb for forms that can only be
// submitted with POST.
const MethodFieldName = "_method"

// HiddenField is a hidden input emitted next to the visible controls.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// CSRFToken builds the hidden field carrying an anti-forgery token. The name
// must match what the receiving handler reads (for example "_token").
func CSRFToken(name, token string) HiddenField {
	return Hidden(name, token)
}

// MethodField builds the hidden method override for PUT, PATCH and DELETE
// submissions.
func MethodField(method string) HiddenField {
	return Hidden(MethodFieldName, strings.ToUpper(strings.TrimSpace(method)))
}

// SpoofedMethod reports whether method needs a MethodField, returning the
// normalised verb.
func SpoofedMethod(method string) (string, bool) {
	switch verb := strings.ToUpper(strings.TrimSpace(method)); verb {
	case "PUT", "PATCH", "DELETE":
		return verb, true
	default:
		return verb, false
	}
}

// HTML renders the input element. Fields without a name render nothing.
func (h HiddenField) HTML() template.HTML {
	if h.Name == "" {
		return ""
	}
	return template.HTML(`<input type="hidden" name="` + html.EscapeString(h.Name) +
		`" value="` + html.EscapeString(h.Value) + `">`)
}
