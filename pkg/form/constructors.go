package form

// newField builds a definition with the documented defaults and applies opts.
func newField(name string, typ FieldType, label string, opts []FieldOption) FieldDefinition {
	def := FieldDefinition{
		Name:  name,
		Type:  typ,
		Label: label,
		Attrs: make(map[string]any),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&def)
		}
	}
	if def.Attrs == nil {
		def.Attrs = make(map[string]any)
	}
	return def
}

// Hidden builds a hidden input carrying value.
func Hidden(name string, value any, opts ...FieldOption) FieldDefinition {
	return newField(name, TypeHidden, "", append([]FieldOption{WithDefault(value)}, opts...))
}

// Text builds a text input.
func Text(name, label string, opts ...FieldOption) FieldDefinition {
	return newField(name, TypeText, label, opts)
}

// Email builds an email input.
func Email(name, label string, opts ...FieldOption) FieldDefinition {
	return newField(name, TypeEmail, label, opts)
}

// Number builds a number input. step, min and max attrs are rendered.
func Number(name, label string, opts ...FieldOption) FieldDefinition {
	return newField(name, TypeNumber, label, opts)
}

// Password builds a password input.
func Password(name, label string, opts ...FieldOption) FieldDefinition {
	return newField(name, TypePassword, label, opts)
}

// File builds a file input. With a default, a "disk" and a "path_to" attr the
// stored file is previewed with a remove control.
func File(name, label string, opts ...FieldOption) FieldDefinition {
	return newField(name, TypeFile, label, opts)
}

// Textarea builds a textarea with 4 rows unless a rows attr is given.
func Textarea(name, label string, opts ...FieldOption) FieldDefinition {
	def := newField(name, TypeTextarea, label, opts)
	if _, ok := def.Attrs["rows"]; !ok {
		def.Attrs["rows"] = 4
	}
	return def
}

// RichText builds a textarea enhanced with a rich-text editor.
func RichText(name, label string, opts ...FieldOption) FieldDefinition {
	def := newField(name, TypeRichText, label, opts)
	if _, ok := def.Attrs["rows"]; !ok {
		def.Attrs["rows"] = 4
	}
	return def
}

// Select builds a drop-down over choices.
func Select(name, label string, choices []Choice, opts ...FieldOption) FieldDefinition {
	return newField(name, TypeSelect, label, append([]FieldOption{WithOptions(choices...)}, opts...))
}

// Radios builds a radio group over choices.
func Radios(name, label string, choices []Choice, opts ...FieldOption) FieldDefinition {
	return newField(name, TypeRadios, label, append([]FieldOption{WithOptions(choices...)}, opts...))
}

// Checkboxes declares a checkbox group. The control renders empty.
func Checkboxes(name, label string, choices []Choice, opts ...FieldOption) FieldDefinition {
	return newField(name, TypeCheckboxes, label, append([]FieldOption{WithOptions(choices...)}, opts...))
}

// Checkbox builds a single checkbox submitting "1".
func Checkbox(name, label string, opts ...FieldOption) FieldDefinition {
	return newField(name, TypeCheckbox, label, opts)
}

// Submit builds the submit button. Its name is always "submit".
func Submit(label string, opts ...FieldOption) FieldDefinition {
	def := newField(SubmitName, TypeSubmit, label, opts)
	def.Name = SubmitName
	return def
}

// DateSelect declares a day/month/year select. The control renders empty.
func DateSelect(name, label string, opts ...FieldOption) FieldDefinition {
	return newField(name, TypeDateSelect, label, opts)
}

// DatePicker builds a text input enhanced with a pop-up calendar.
func DatePicker(name, label string, opts ...FieldOption) FieldDefinition {
	return newField(name, TypeDatePicker, label, opts)
}

// TimeSelect declares an hour/minute select. The control renders empty.
func TimeSelect(name, label string, opts ...FieldOption) FieldDefinition {
	return newField(name, TypeTimeSelect, label, opts)
}

// SubmitName is the registry name of the submit button.
const SubmitName = "submit"
