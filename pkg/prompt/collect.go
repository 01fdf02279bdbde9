// Package prompt fills a form interactively on the terminal. Answers are
// validated as they are typed and returned keyed by field name, ready to be
// used as old input when the form is rendered.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/form"
	"github.com/goliatone/go-formbuilder/pkg/session"
	"github.com/goliatone/go-formbuilder/pkg/validation"
)

// ErrAborted signals the user interrupted the prompts.
var ErrAborted = errors.New("prompt: aborted")

// NoneLabel is offered first by optional selects.
const NoneLabel = "(none)"

// Collect asks for every field of f in registration order. Hidden fields
// keep their current value; file, submit and unchecked checkbox fields are
// left out of the result.
func Collect(ctx context.Context, f *form.Form, d Driver) (session.OldInput, error) {
	if f == nil || d == nil {
		return nil, errors.New("prompt: form and driver are required")
	}
	out := make(session.OldInput)
	for _, def := range f.Fields() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		value, ok, err := collectField(ctx, f, d, def)
		if err != nil {
			return nil, fmt.Errorf("prompt: field %q: %w", def.Name, err)
		}
		if ok {
			out[def.Name] = value
		}
	}
	return out, nil
}

func collectField(ctx context.Context, f *form.Form, d Driver, def form.FieldDefinition) (any, bool, error) {
	current := asString(f.Value(def.Name))
	message := f.LabelFor(def.Name)
	if message == "" {
		message = def.Name
	}
	if f.IsRequired(def.Name) {
		message += " *"
	}
	help, _ := def.Attrs["help"].(string)
	validate := func(s string) error {
		if msgs := validation.Check(f, def.Name, []string{s}); len(msgs) > 0 {
			return errors.New(msgs[0])
		}
		return nil
	}

	switch def.Type {
	case form.TypeHidden:
		return current, true, nil
	case form.TypeFile, form.TypeSubmit:
		return nil, false, nil
	case form.TypePassword:
		v, err := d.Password(ctx, InputConfig{Message: message, Help: help, Validator: validate})
		return v, err == nil, err
	case form.TypeTextarea, form.TypeRichText:
		v, err := d.TextArea(ctx, TextAreaConfig{Message: message, Default: current, Help: help})
		return v, err == nil, err
	case form.TypeCheckbox:
		checked, err := d.Confirm(ctx, ConfirmConfig{Message: message, Default: isOn(current), Help: help})
		if err != nil || !checked {
			return nil, false, err
		}
		return "1", true, nil
	case form.TypeSelect, form.TypeRadios:
		return selectOne(ctx, f, d, def, message, help, current)
	case form.TypeCheckboxes:
		return selectMany(ctx, d, def, message, help, f.Value(def.Name))
	default:
		v, err := d.Input(ctx, InputConfig{Message: message, Default: current, Help: help, Validator: validate})
		return v, err == nil, err
	}
}

func selectOne(ctx context.Context, f *form.Form, d Driver, def form.FieldDefinition, message, help, current string) (any, bool, error) {
	choices := flatten(def.Options)
	if !f.IsRequired(def.Name) {
		choices = append([]form.Choice{{Label: NoneLabel}}, choices...)
	}
	labels := make([]string, len(choices))
	defaultIndex := 0
	for i, c := range choices {
		labels[i] = c.Label
		if c.Value == current && current != "" {
			defaultIndex = i
		}
	}
	idx, err := d.Select(ctx, SelectConfig{Message: message, Options: labels, DefaultIndex: defaultIndex, Help: help})
	if err != nil {
		return nil, false, err
	}
	if idx < 0 || idx >= len(choices) {
		return nil, false, fmt.Errorf("selection %d out of range", idx)
	}
	return choices[idx].Value, true, nil
}

func selectMany(ctx context.Context, d Driver, def form.FieldDefinition, message, help string, current any) (any, bool, error) {
	choices := flatten(def.Options)
	selected := make(map[string]struct{})
	if list, ok := current.([]string); ok {
		for _, v := range list {
			selected[v] = struct{}{}
		}
	}
	labels := make([]string, len(choices))
	var defaults []int
	for i, c := range choices {
		labels[i] = c.Label
		if _, ok := selected[c.Value]; ok {
			defaults = append(defaults, i)
		}
	}
	indices, err := d.MultiSelect(ctx, SelectConfig{Message: message, Options: labels, Defaults: defaults, Help: help})
	if err != nil {
		return nil, false, err
	}
	values := make([]string, 0, len(indices))
	for _, idx := range indices {
		if idx >= 0 && idx < len(choices) {
			values = append(values, choices[idx].Value)
		}
	}
	return values, len(values) > 0, nil
}

func flatten(in []form.Choice) []form.Choice {
	out := make([]form.Choice, 0, len(in))
	for _, c := range in {
		if c.IsGroup() {
			for _, inner := range c.Group {
				inner.Label = c.Label + " / " + inner.Label
				out = append(out, inner)
			}
			continue
		}
		out = append(out, c)
	}
	return out
}

func asString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []string:
		return strings.Join(x, ",")
	}
	return fmt.Sprint(v)
}

func isOn(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}
