package form

import (
	"time"
)

// DOBYearEnd is the last year offered by date of birth controls.
const DOBYearEnd = 1920

// DOBSelect is a date select spanning the current year back to 1920.
func DOBSelect(name, label string, opts ...FieldOption) FieldDefinition {
	def := DateSelect(name, label, opts...)
	def.Attrs["year_start"] = time.Now().Year()
	def.Attrs["year_end"] = DOBYearEnd
	return def
}

// DOBPicker is a date picker bounded by 1 January 1920 and today.
func DOBPicker(name, label string, opts ...FieldOption) FieldDefinition {
	def := DatePicker(name, label, opts...)
	def.Attrs["min"] = time.Date(DOBYearEnd, time.January, 1, 0, 0, 0, 0, time.UTC)
	def.Attrs["max"] = "today"
	def.Attrs["num_years"] = 999
	return def
}

// YesNo is a radio group with "1" for Yes and "0" for No. A non-nil default
// is coerced to an integer.
func YesNo(name, label string, opts ...FieldOption) FieldDefinition {
	def := Radios(name, label, nil, opts...)
	def.Options = []Choice{
		{Value: "1", Label: "Yes", Translate: true},
		{Value: "0", Label: "No", Translate: true},
	}
	if def.Default != nil {
		def.Default = intval(def.Default)
	}
	return def
}

// Gender offers MALE and FEMALE as a select, or as radios when the
// "use_radio" attr is truthy.
func Gender(name, label string, opts ...FieldOption) FieldDefinition {
	def := Select(name, label, nil, opts...)
	if truthy(def.Attrs["use_radio"]) {
		def.Type = TypeRadios
	}
	def.Options = []Choice{
		{Value: "MALE", Label: "Male", Translate: true},
		{Value: "FEMALE", Label: "Female", Translate: true},
	}
	return def
}

// Salutation is a select over Mr, Mrs, Miss and Ms.
func Salutation(name, label string, opts ...FieldOption) FieldDefinition {
	def := Select(name, label, nil, opts...)
	def.Options = make([]Choice, 0, 4)
	for _, s := range []string{"Mr", "Mrs", "Miss", "Ms"} {
		def.Options = append(def.Options, Choice{Value: s, Label: s, Translate: true})
	}
	return def
}
