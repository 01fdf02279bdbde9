package form

import (
	"maps"
)

// FieldType is the closed set of controls a field can render as.
type FieldType string

const (
	TypeHidden     FieldType = "hidden"
	TypeText       FieldType = "text"
	TypeEmail      FieldType = "email"
	TypeNumber     FieldType = "number"
	TypePassword   FieldType = "password"
	TypeFile       FieldType = "file"
	TypeTextarea   FieldType = "textarea"
	TypeRichText   FieldType = "richtext"
	TypeSelect     FieldType = "select"
	TypeRadios     FieldType = "radios"
	TypeCheckboxes FieldType = "checkboxes"
	TypeCheckbox   FieldType = "checkbox"
	TypeSubmit     FieldType = "submit"
	TypeDateSelect FieldType = "dateselect"
	TypeDatePicker FieldType = "datepicker"
	TypeTimeSelect FieldType = "timeselect"
)

// FieldTypes lists every FieldType.
func FieldTypes() []FieldType {
	return []FieldType{
		TypeHidden, TypeText, TypeEmail, TypeNumber, TypePassword, TypeFile,
		TypeTextarea, TypeRichText, TypeSelect, TypeRadios, TypeCheckboxes,
		TypeCheckbox, TypeSubmit, TypeDateSelect, TypeDatePicker, TypeTimeSelect,
	}
}

// Valid reports whether t is a known type.
func (t FieldType) Valid() bool {
	_, ok := controls[t]
	return ok
}

// Requirement is the tri-state required flag of a field.
type Requirement int

const (
	// Inherit follows the form wide RequireAll setting.
	Inherit Requirement = iota
	Required
	Optional
)

func (r Requirement) String() string {
	switch r {
	case Required:
		return "required"
	case Optional:
		return "optional"
	default:
		return "inherit"
	}
}

// Choice is one option of a select or radio group. A choice with Group set
// renders as an <optgroup> labelled Label; its Value is ignored.
type Choice struct {
	Value string
	Label string
	Group []Choice

	// Translate passes Label through the form translator at render time.
	Translate bool
}

// Opt builds a choice. value is formatted like any attribute value.
func Opt(value any, label string) Choice {
	return Choice{Value: stringify(value), Label: label}
}

// OptGroup builds a one level option group.
func OptGroup(label string, choices ...Choice) Choice {
	return Choice{Label: label, Group: choices}
}

// IsGroup reports whether c is an option group.
func (c Choice) IsGroup() bool {
	return c.Group != nil
}

// FieldDefinition describes one registered field. Attrs holds both literal
// HTML attributes and control specific settings; see InterpretedAttrs.
type FieldDefinition struct {
	Name     string
	Type     FieldType
	Label    string
	Options  []Choice
	Default  any
	Required Requirement
	Attrs    map[string]any
}

// Attr returns the attribute value for key.
func (d FieldDefinition) Attr(key string) (any, bool) {
	v, ok := d.Attrs[key]
	return v, ok
}

func (d FieldDefinition) clone() FieldDefinition {
	out := d
	out.Attrs = make(map[string]any, len(d.Attrs))
	maps.Copy(out.Attrs, d.Attrs)
	out.Options = cloneChoices(d.Options)
	return out
}

func cloneChoices(in []Choice) []Choice {
	if in == nil {
		return nil
	}
	out := make([]Choice, len(in))
	for i, c := range in {
		out[i] = c
		if c.Group != nil {
			out[i].Group = cloneChoices(c.Group)
		}
	}
	return out
}

// FieldOption customises a definition built by a constructor.
type FieldOption func(*FieldDefinition)

// WithDefault sets the declared default value.
func WithDefault(value any) FieldOption {
	return func(d *FieldDefinition) {
		d.Default = value
	}
}

// WithRequired marks the field as required regardless of RequireAll.
func WithRequired() FieldOption {
	return func(d *FieldDefinition) {
		d.Required = Required
	}
}

// WithOptional marks the field as optional regardless of RequireAll.
func WithOptional() FieldOption {
	return func(d *FieldDefinition) {
		d.Required = Optional
	}
}

// WithRequirement sets the tri-state flag directly.
func WithRequirement(r Requirement) FieldOption {
	return func(d *FieldDefinition) {
		d.Required = r
	}
}

// WithAttr sets one attribute.
func WithAttr(key string, value any) FieldOption {
	return func(d *FieldDefinition) {
		if d.Attrs == nil {
			d.Attrs = make(map[string]any)
		}
		d.Attrs[key] = value
	}
}

// WithAttrs merges attrs into the definition.
func WithAttrs(attrs map[string]any) FieldOption {
	return func(d *FieldDefinition) {
		if d.Attrs == nil {
			d.Attrs = make(map[string]any, len(attrs))
		}
		maps.Copy(d.Attrs, attrs)
	}
}

// WithOptions replaces the choices.
func WithOptions(choices ...Choice) FieldOption {
	return func(d *FieldDefinition) {
		d.Options = choices
	}
}

// WithLabel replaces the label.
func WithLabel(label string) FieldOption {
	return func(d *FieldDefinition) {
		d.Label = label
	}
}
