package definition

import (
	"errors"
	"fmt"
	"maps"
	"sort"
	"strings"

	"github.com/goliatone/go-formbuilder/components/timezones"
	"github.com/goliatone/go-formbuilder/pkg/form"
)

// ErrUnknownFieldType is returned for a field type that is neither a
// form.FieldType nor a known preset or alias.
var ErrUnknownFieldType = errors.New("definition: unknown field type")

type fieldBuilder func(spec FieldSpec, opts []form.FieldOption) form.FieldDefinition

func plain(build func(name, label string, opts ...form.FieldOption) form.FieldDefinition) fieldBuilder {
	return func(spec FieldSpec, opts []form.FieldOption) form.FieldDefinition {
		return build(spec.Name, spec.Label, opts...)
	}
}

func choices(build func(name, label string, choices []form.Choice, opts ...form.FieldOption) form.FieldDefinition) fieldBuilder {
	return func(spec FieldSpec, opts []form.FieldOption) form.FieldDefinition {
		return build(spec.Name, spec.Label, convertChoices(spec.Options), opts...)
	}
}

var builders = map[string]fieldBuilder{
	string(form.TypeHidden): func(spec FieldSpec, opts []form.FieldOption) form.FieldDefinition {
		return form.Hidden(spec.Name, spec.Default, opts...)
	},
	string(form.TypeText):       plain(form.Text),
	string(form.TypeEmail):      plain(form.Email),
	string(form.TypeNumber):     plain(form.Number),
	string(form.TypePassword):   plain(form.Password),
	string(form.TypeFile):       plain(form.File),
	string(form.TypeTextarea):   plain(form.Textarea),
	string(form.TypeRichText):   plain(form.RichText),
	string(form.TypeSelect):     choices(form.Select),
	string(form.TypeRadios):     choices(form.Radios),
	string(form.TypeCheckboxes): choices(form.Checkboxes),
	string(form.TypeCheckbox):   plain(form.Checkbox),
	string(form.TypeSubmit): func(spec FieldSpec, opts []form.FieldOption) form.FieldDefinition {
		return form.Submit(spec.Label, opts...)
	},
	string(form.TypeDateSelect): plain(form.DateSelect),
	string(form.TypeDatePicker): plain(form.DatePicker),
	string(form.TypeTimeSelect): plain(form.TimeSelect),
	"dob_select":                plain(form.DOBSelect),
	"dob_picker":                plain(form.DOBPicker),
	"yesno":                     plain(form.YesNo),
	"gender":                    plain(form.Gender),
	"salutation":                plain(form.Salutation),
	"timezone":                  plain(timezones.Field),
}

var aliases = map[string]string{
	"wysiwyg":      string(form.TypeRichText),
	"radiobuttons": string(form.TypeRadios),
	"radio":        string(form.TypeRadios),
	"date":         string(form.TypeDatePicker),
	"dob":          "dob_select",
}

// FieldTypeNames lists every accepted field type name, aliases included.
func FieldTypeNames() []string {
	names := make([]string, 0, len(builders)+len(aliases))
	for name := range builders {
		names = append(names, name)
	}
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normaliseType(raw string) string {
	t := strings.ToLower(strings.TrimSpace(raw))
	t = strings.ReplaceAll(t, "-", "_")
	if t == "" {
		return string(form.TypeText)
	}
	if target, ok := aliases[t]; ok {
		return target
	}
	return t
}

// FieldFromSpec converts a FieldSpec into a field definition. An empty type
// means text.
func FieldFromSpec(spec FieldSpec) (form.FieldDefinition, error) {
	typ := normaliseType(spec.Type)
	build, ok := builders[typ]
	if !ok {
		return form.FieldDefinition{}, fmt.Errorf("%w %q (field %q)", ErrUnknownFieldType, spec.Type, spec.Name)
	}
	if strings.TrimSpace(spec.Name) == "" && typ != string(form.TypeSubmit) {
		return form.FieldDefinition{}, fmt.Errorf("definition: %s field without a name", typ)
	}

	var opts []form.FieldOption
	if len(spec.Attrs) > 0 {
		attrs := make(map[string]any, len(spec.Attrs))
		maps.Copy(attrs, spec.Attrs)
		opts = append(opts, form.WithAttrs(attrs))
	}
	if spec.Default != nil && typ != string(form.TypeHidden) {
		opts = append(opts, form.WithDefault(spec.Default))
	}
	if spec.Required != nil {
		if *spec.Required {
			opts = append(opts, form.WithRequired())
		} else {
			opts = append(opts, form.WithOptional())
		}
	}
	return build(spec, opts), nil
}

func convertChoices(specs []ChoiceSpec) []form.Choice {
	if len(specs) == 0 {
		return nil
	}
	out := make([]form.Choice, 0, len(specs))
	for _, spec := range specs {
		if len(spec.Options) > 0 {
			group := form.OptGroup(spec.Label, convertChoices(spec.Options)...)
			group.Translate = spec.Translate
			out = append(out, group)
			continue
		}
		label := spec.Label
		if label == "" {
			label = fmt.Sprint(spec.Value)
		}
		choice := form.Opt(spec.Value, label)
		choice.Translate = spec.Translate
		out = append(out, choice)
	}
	return out
}

// FormOptions returns the form level options carried by the definition.
func (d Definition) FormOptions() []form.Option {
	var opts []form.Option
	if d.RequireAll != nil {
		opts = append(opts, form.WithRequireAll(*d.RequireAll))
	}
	if d.DisableAll != nil {
		opts = append(opts, form.WithDisableAll(*d.DisableAll))
	}
	if d.Handle != "" {
		opts = append(opts, form.WithHandle(d.Handle))
	}
	if d.Action != "" {
		opts = append(opts, form.WithAction(d.Action))
	}
	if d.Method != "" {
		opts = append(opts, form.WithMethod(d.Method))
	}
	if d.Lang != "" {
		opts = append(opts, form.WithLang(d.Lang))
	}
	if d.PlaceholderAll != nil {
		opts = append(opts, form.WithPlaceholderAll(d.PlaceholderAll))
	}
	if len(d.Labels) > 0 {
		opts = append(opts, form.WithLabels(d.Labels))
	}
	if len(d.Placeholders) > 0 {
		opts = append(opts, form.WithPlaceholders(d.Placeholders))
	}
	return opts
}

// Build creates a form from the definition. Options in opts are applied
// after the definition's own, so callers can override them.
func (d Definition) Build(opts ...form.Option) (*form.Form, error) {
	f := form.New(append(d.FormOptions(), opts...)...)
	if err := d.Apply(f); err != nil {
		return nil, err
	}
	return f, nil
}

// Apply registers the definition's fields on f in order. Nothing is
// registered when a field is invalid.
func (d Definition) Apply(f *form.Form) error {
	if f == nil {
		return errors.New("definition: nil form")
	}
	defs := make([]form.FieldDefinition, 0, len(d.Fields))
	for i, spec := range d.Fields {
		def, err := FieldFromSpec(spec)
		if err != nil {
			return fmt.Errorf("definition: %s field %d: %w", d.Handle, i, err)
		}
		defs = append(defs, def)
	}
	f.Add(defs...)
	return nil
}
