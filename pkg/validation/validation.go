// Package validation checks submitted values against the fields of a form:
// required fields, email addresses, numbers and their bounds, dates, and
// values offered by a choice list.
package validation

import (
	"fmt"
	"net/mail"
	"strconv"
	"strings"

	"github.com/araddon/dateparse"

	"github.com/goliatone/go-formbuilder/pkg/form"
	"github.com/goliatone/go-formbuilder/pkg/session"
)

// Issue is one failed rule.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result collects every issue found in a submission.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// Bag converts the issues to an error bag keyed by field name.
func (r Result) Bag() *session.ErrorBag {
	bag := session.NewErrorBag()
	for _, issue := range r.Issues {
		bag.Add(issue.Field, issue.Message)
	}
	return bag
}

// Validate checks input, keyed by dotted field name, against every field of
// f. Hidden, file and submit fields and disabled fields are not checked.
func Validate(f *form.Form, input session.OldInput) Result {
	result := Result{Valid: true}
	if f == nil {
		return result
	}
	for _, def := range f.Fields() {
		raw, _ := input.Get(def.Name)
		for _, msg := range Check(f, def.Name, values(raw)) {
			result.Valid = false
			result.Issues = append(result.Issues, Issue{Field: def.Name, Message: msg})
		}
	}
	return result
}

func values(raw any) []string {
	switch v := raw.(type) {
	case nil:
		return nil
	case string:
		return []string{v}
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out
	}
	return []string{fmt.Sprint(raw)}
}

// Check returns the messages for one field given its submitted values.
// Unknown fields have no messages.
func Check(f *form.Form, name string, submitted []string) []string {
	def, ok := f.Field(name)
	if !ok || skipped(f, def) {
		return nil
	}
	label := f.LabelFor(name)
	if label == "" {
		label = name
	}

	present := make([]string, 0, len(submitted))
	for _, v := range submitted {
		if v = strings.TrimSpace(v); v != "" {
			present = append(present, v)
		}
	}
	if len(present) == 0 {
		switch {
		case !f.IsRequired(name):
			return nil
		case def.Type == form.TypeCheckbox:
			return []string{fmt.Sprintf("%s must be accepted.", label)}
		default:
			return []string{fmt.Sprintf("%s is required.", label)}
		}
	}

	var msgs []string
	switch def.Type {
	case form.TypeEmail:
		for _, v := range present {
			if addr, err := mail.ParseAddress(v); err != nil || addr.Address != v {
				msgs = append(msgs, fmt.Sprintf("%s must be a valid email address.", label))
				break
			}
		}
	case form.TypeNumber:
		msgs = append(msgs, checkNumber(def, label, present[0])...)
	case form.TypeDatePicker, form.TypeDateSelect:
		if _, err := dateparse.ParseAny(present[0]); err != nil {
			msgs = append(msgs, fmt.Sprintf("%s must be a valid date.", label))
		}
	case form.TypeSelect, form.TypeRadios, form.TypeCheckboxes:
		allowed := choiceValues(def.Options)
		for _, v := range present {
			if _, ok := allowed[v]; !ok {
				msgs = append(msgs, fmt.Sprintf("%s must be one of the listed options.", label))
				break
			}
		}
	}
	return msgs
}

// skipped fields are never posted by a browser or carry no user input.
func skipped(f *form.Form, def form.FieldDefinition) bool {
	switch def.Type {
	case form.TypeHidden, form.TypeFile, form.TypeSubmit:
		return true
	}
	return f.IsDisabled(def.Name)
}

func checkNumber(def form.FieldDefinition, label, raw string) []string {
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return []string{fmt.Sprintf("%s must be a number.", label)}
	}
	var msgs []string
	if min, ok := bound(def.Attrs["min"]); ok && n < min {
		msgs = append(msgs, fmt.Sprintf("%s must be at least %s.", label, strconv.FormatFloat(min, 'f', -1, 64)))
	}
	if max, ok := bound(def.Attrs["max"]); ok && n > max {
		msgs = append(msgs, fmt.Sprintf("%s must not be greater than %s.", label, strconv.FormatFloat(max, 'f', -1, 64)))
	}
	return msgs
}

func bound(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(fmt.Sprint(v)), 64)
	return n, err == nil
}

func choiceValues(choices []form.Choice) map[string]struct{} {
	out := make(map[string]struct{})
	for _, c := range choices {
		if c.IsGroup() {
			for inner := range choiceValues(c.Group) {
				out[inner] = struct{}{}
			}
			continue
		}
		out[c.Value] = struct{}{}
	}
	return out
}
