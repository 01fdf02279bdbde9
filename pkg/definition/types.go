package definition

// Definition is the serialisable description of a form. Unset form level
// flags keep whatever the caller configured.
type Definition struct {
	Handle         string            `json:"handle" yaml:"handle"`
	Action         string            `json:"action" yaml:"action"`
	Method         string            `json:"method" yaml:"method"`
	Lang           string            `json:"lang" yaml:"lang"`
	RequireAll     *bool             `json:"requireAll" yaml:"requireAll"`
	DisableAll     *bool             `json:"disableAll" yaml:"disableAll"`
	PlaceholderAll any               `json:"placeholderAll" yaml:"placeholderAll"`
	Labels         map[string]string `json:"labels" yaml:"labels"`
	Placeholders   map[string]any    `json:"placeholders" yaml:"placeholders"`
	Fields         []FieldSpec       `json:"fields" yaml:"fields"`

	// Source records the file the definition was read from.
	Source string `json:"-" yaml:"-"`
}

// FieldSpec describes one field. Type accepts every form.FieldType plus the
// preset and alias names listed by FieldTypeNames.
type FieldSpec struct {
	Name     string         `json:"name" yaml:"name"`
	Type     string         `json:"type" yaml:"type"`
	Label    string         `json:"label" yaml:"label"`
	Default  any            `json:"default" yaml:"default"`
	Required *bool          `json:"required" yaml:"required"`
	Attrs    map[string]any `json:"attrs" yaml:"attrs"`
	Options  []ChoiceSpec   `json:"options" yaml:"options"`
}

// ChoiceSpec is one option. A choice with nested Options is an option group.
type ChoiceSpec struct {
	Value     any          `json:"value" yaml:"value"`
	Label     string       `json:"label" yaml:"label"`
	Translate bool         `json:"translate" yaml:"translate"`
	Options   []ChoiceSpec `json:"options" yaml:"options"`
}

// FieldNames returns the field names in declaration order.
func (d Definition) FieldNames() []string {
	names := make([]string, 0, len(d.Fields))
	for _, f := range d.Fields {
		if f.Name != "" {
			names = append(names, f.Name)
		}
	}
	return names
}
