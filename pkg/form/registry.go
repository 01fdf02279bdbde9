package form

// registry keeps definitions in first registration order.
type registry struct {
	order     []string
	fields    map[string]FieldDefinition
	multipart bool
}

func (r *registry) put(name string, def FieldDefinition) {
	if r.fields == nil {
		r.fields = make(map[string]FieldDefinition)
	}
	if _, exists := r.fields[name]; !exists {
		r.order = append(r.order, name)
	}
	r.fields[name] = def
	if def.Type == TypeFile {
		r.multipart = true
	}
}

func (r *registry) get(name string) (FieldDefinition, bool) {
	def, ok := r.fields[name]
	return def, ok
}

// Register stores def under name. The stored copy owns its attrs and
// options; an explicit "name" attr is dropped. Registering an existing name
// replaces the definition but keeps its original position.
func (f *Form) Register(name string, def FieldDefinition) {
	def = def.clone()
	def.Name = name
	delete(def.Attrs, "name")
	f.fields.put(name, def)
}

// Add registers each definition under its own name.
func (f *Form) Add(defs ...FieldDefinition) {
	for _, def := range defs {
		f.Register(def.Name, def)
	}
}

// Field returns a copy of the definition registered under name.
func (f *Form) Field(name string) (FieldDefinition, bool) {
	def, ok := f.fields.get(name)
	if !ok {
		return FieldDefinition{}, false
	}
	return def.clone(), true
}

// Fields returns copies of every definition in registration order.
func (f *Form) Fields() []FieldDefinition {
	out := make([]FieldDefinition, 0, len(f.fields.order))
	for _, name := range f.fields.order {
		out = append(out, f.fields.fields[name].clone())
	}
	return out
}

// Names returns the registered names in order.
func (f *Form) Names() []string {
	return append([]string(nil), f.fields.order...)
}

// IsMultipart reports whether a file field was ever registered.
func (f *Form) IsMultipart() bool {
	return f.fields.multipart
}

// Hidden registers a hidden input.
func (f *Form) Hidden(name string, value any, opts ...FieldOption) { f.Add(Hidden(name, value, opts...)) }

// Text registers a text input.
func (f *Form) Text(name, label string, opts ...FieldOption) { f.Add(Text(name, label, opts...)) }

// Email registers an email input.
func (f *Form) Email(name, label string, opts ...FieldOption) { f.Add(Email(name, label, opts...)) }

// Number registers a number input.
func (f *Form) Number(name, label string, opts ...FieldOption) { f.Add(Number(name, label, opts...)) }

// Password registers a password input.
func (f *Form) Password(name, label string, opts ...FieldOption) {
	f.Add(Password(name, label, opts...))
}

// File registers a file input.
func (f *Form) File(name, label string, opts ...FieldOption) { f.Add(File(name, label, opts...)) }

// Textarea registers a textarea.
func (f *Form) Textarea(name, label string, opts ...FieldOption) {
	f.Add(Textarea(name, label, opts...))
}

// RichText registers a rich-text editor.
func (f *Form) RichText(name, label string, opts ...FieldOption) {
	f.Add(RichText(name, label, opts...))
}

// Select registers a drop-down.
func (f *Form) Select(name, label string, choices []Choice, opts ...FieldOption) {
	f.Add(Select(name, label, choices, opts...))
}

// Radios registers a radio group.
func (f *Form) Radios(name, label string, choices []Choice, opts ...FieldOption) {
	f.Add(Radios(name, label, choices, opts...))
}

// Checkboxes registers a checkbox group.
func (f *Form) Checkboxes(name, label string, choices []Choice, opts ...FieldOption) {
	f.Add(Checkboxes(name, label, choices, opts...))
}

// Checkbox registers a single checkbox.
func (f *Form) Checkbox(name, label string, opts ...FieldOption) {
	f.Add(Checkbox(name, label, opts...))
}

// Submit registers the submit button.
func (f *Form) Submit(label string, opts ...FieldOption) { f.Add(Submit(label, opts...)) }

// DateSelect registers a date select.
func (f *Form) DateSelect(name, label string, opts ...FieldOption) {
	f.Add(DateSelect(name, label, opts...))
}

// DatePicker registers a date picker.
func (f *Form) DatePicker(name, label string, opts ...FieldOption) {
	f.Add(DatePicker(name, label, opts...))
}

// TimeSelect registers a time select.
func (f *Form) TimeSelect(name, label string, opts ...FieldOption) {
	f.Add(TimeSelect(name, label, opts...))
}

// DOBSelect registers a date of birth select.
func (f *Form) DOBSelect(name, label string, opts ...FieldOption) {
	f.Add(DOBSelect(name, label, opts...))
}

// DOBPicker registers a date of birth picker.
func (f *Form) DOBPicker(name, label string, opts ...FieldOption) {
	f.Add(DOBPicker(name, label, opts...))
}

// YesNo registers a yes/no radio group.
func (f *Form) YesNo(name, label string, opts ...FieldOption) { f.Add(YesNo(name, label, opts...)) }

// Gender registers a gender choice.
func (f *Form) Gender(name, label string, opts ...FieldOption) { f.Add(Gender(name, label, opts...)) }

// Salutation registers a salutation select.
func (f *Form) Salutation(name, label string, opts ...FieldOption) {
	f.Add(Salutation(name, label, opts...))
}
