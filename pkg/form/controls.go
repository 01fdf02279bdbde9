package form

import (
	"fmt"
	"html"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/pkg/scripts"
)

// controlFunc renders the control of one field given its resolved value.
type controlFunc func(f *Form, def FieldDefinition, value any) (string, error)

var controls = map[FieldType]controlFunc{
	TypeHidden:     (*Form).inputControl,
	TypeText:       (*Form).inputControl,
	TypeEmail:      (*Form).inputControl,
	TypeNumber:     (*Form).inputControl,
	TypePassword:   (*Form).inputControl,
	TypeFile:       (*Form).fileControl,
	TypeTextarea:   (*Form).textareaControl,
	TypeRichText:   (*Form).richTextControl,
	TypeSelect:     (*Form).selectControl,
	TypeRadios:     (*Form).radiosControl,
	TypeCheckboxes: noControl,
	TypeCheckbox:   (*Form).checkboxControl,
	TypeSubmit:     (*Form).submitControl,
	TypeDateSelect: noControl,
	TypeDatePicker: (*Form).datePickerControl,
	TypeTimeSelect: noControl,
}

// Rich-text editor settings.
const (
	RichTextScriptKey     = "tinymce"
	RichTextPlugins       = "image link code lists"
	RichTextToolbar       = "bold italic | bullist numlist | removeformat | code"
	DefaultRichTextHeight = 170
	DefaultPickerYears    = 6
	deleteSuffix          = "_DELETE"
)

// noControl keeps declared-but-unbuilt types renderable: the wrapper is
// emitted around an empty control.
func noControl(*Form, FieldDefinition, any) (string, error) {
	return "", nil
}

var inputAttrs = []string{"placeholder", "readonly", "disabled", "lang", "autocomplete", "step", "min", "max"}

func (f *Form) inputControl(def FieldDefinition, value any) (string, error) {
	t := openTag("input").
		set("type", string(def.Type)).
		set("name", InputName(def.Name)).
		set("value", stringify(value)).
		setIf("class", f.ErrorClass(def.Name)).
		set("id", f.DOMID(def.Name))
	f.setAttrs(t, def, inputAttrs...)
	f.setExtraAttrs(t, def)
	return t.String(), nil
}

func (f *Form) fileControl(def FieldDefinition, _ any) (string, error) {
	id := f.DOMID(def.Name)
	preview := f.previewURL(def)

	var b strings.Builder
	if preview != "" {
		img := openTag("img").
			set("src", preview).
			set("class", f.classes.Thumbnail).
			set("id", id+"_PREVIEW").
			set("alt", "")
		if style := previewStyle(def); style != "" {
			img.set("style", style)
		}
		b.WriteString(img.String())
	}

	input := openTag("input").
		set("type", "file").
		set("name", InputName(def.Name)).
		setIf("class", f.ErrorClass(def.Name)).
		set("id", id)
	f.setAttrs(input, def, inputAttrs...)
	f.setExtraAttrs(input, def)
	b.WriteString(input.String())

	if preview == "" {
		return b.String(), nil
	}

	b.WriteString(openTag("input").
		set("type", "hidden").
		set("name", InputName(def.Name+deleteSuffix)).
		set("id", id+deleteSuffix).
		String())
	b.WriteString(openTag("a").
		set("href", "#").
		set("class", f.classes.ThumbnailRemove).
		set("id", id+"_REMOVE").
		String())
	b.WriteString("</a>")

	err := f.scripts.AddTemplate("file:"+id, scripts.TemplateFileRemove, map[string]any{
		"id":         id,
		"hide_input": true,
	})
	if err != nil {
		return "", fmt.Errorf("form: file %q script: %w", def.Name, err)
	}
	return b.String(), nil
}

// previewURL needs the declared default plus "disk" and "path_to" attrs.
// Resolver failures degrade to no preview.
func (f *Form) previewURL(def FieldDefinition) string {
	stored := strings.TrimSpace(stringify(def.Default))
	disk := strings.TrimSpace(stringify(def.Attrs["disk"]))
	pathTo := strings.TrimSpace(stringify(def.Attrs["path_to"]))
	if stored == "" || disk == "" || pathTo == "" || f.files == nil {
		return ""
	}
	path := strings.TrimRight(pathTo, "/") + "/" + strings.TrimLeft(stored, "/")
	url, err := f.files.Resolve(disk, path)
	if err != nil {
		f.logger.Debug("file preview unavailable",
			zap.String("field", def.Name),
			zap.String("disk", disk),
			zap.String("path", path),
			zap.Error(err),
		)
		return ""
	}
	return url
}

func previewStyle(def FieldDefinition) string {
	var parts []string
	if w := stringify(def.Attrs["width"]); w != "" {
		parts = append(parts, "max-width:"+cssLength(w))
	}
	if h := stringify(def.Attrs["height"]); h != "" {
		parts = append(parts, "max-height:"+cssLength(h))
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, ";") + ";"
}

func cssLength(v string) string {
	for _, r := range v {
		if (r < '0' || r > '9') && r != '.' {
			return v
		}
	}
	return v + "px"
}

func (f *Form) textareaControl(def FieldDefinition, value any) (string, error) {
	content, err := f.sanitizer.Purify(stringify(value))
	if err != nil {
		return "", fmt.Errorf("form: sanitize %q: %w", def.Name, err)
	}
	t := openTag("textarea").
		set("name", InputName(def.Name)).
		setIf("class", f.ErrorClass(def.Name)).
		set("id", f.DOMID(def.Name))
	f.setAttrs(t, def, "placeholder", "readonly", "disabled", "rows", "cols")
	f.setExtraAttrs(t, def)
	return t.String() + content + "</textarea>", nil
}

func (f *Form) richTextControl(def FieldDefinition, value any) (string, error) {
	markup, err := f.textareaControl(def, value)
	if err != nil {
		return "", err
	}
	err = f.scripts.AddTemplate(RichTextScriptKey, scripts.TemplateRichTextLibrary, map[string]any{
		"api_key": f.richTextKey,
	})
	if err != nil {
		return "", fmt.Errorf("form: richtext library script: %w", err)
	}

	height := stringify(def.Attrs["height"])
	if height == "" {
		height = fmt.Sprint(DefaultRichTextHeight)
	}
	err = f.scripts.AddTemplate("richtext:"+f.DOMID(def.Name), scripts.TemplateRichTextInit, map[string]any{
		"name":    InputName(def.Name),
		"plugins": RichTextPlugins,
		"toolbar": RichTextToolbar,
		"height":  height,
	})
	if err != nil {
		return "", fmt.Errorf("form: richtext %q script: %w", def.Name, err)
	}
	return markup, nil
}

func (f *Form) selectControl(def FieldDefinition, value any) (string, error) {
	t := openTag("select").
		set("name", InputName(def.Name)).
		setIf("class", f.ErrorClass(def.Name)).
		set("id", f.DOMID(def.Name))
	f.setExtraAttrs(t, def)

	var b strings.Builder
	b.WriteString(t.String())
	b.WriteByte('\n')

	if text, ok := def.Attrs["default"]; ok && text != nil {
		fmt.Fprintf(&b, "<option value=\"\">%s</option>\n", html.EscapeString(stringify(text)))
	} else if !f.IsRequired(def.Name) || truthy(def.Attrs["nullable"]) {
		fmt.Fprintf(&b, "<option value=\"\">%s</option>\n", html.EscapeString(f.translate("[please select]")))
	}

	for _, choice := range def.Options {
		if choice.IsGroup() {
			b.WriteString(openTag("optgroup").set("label", f.choiceLabel(choice)).String())
			b.WriteByte('\n')
			for _, inner := range choice.Group {
				f.writeOption(&b, def, inner, value)
			}
			b.WriteString("</optgroup>\n")
			continue
		}
		f.writeOption(&b, def, choice, value)
	}
	b.WriteString("</select>")
	return b.String(), nil
}

func (f *Form) writeOption(b *strings.Builder, def FieldDefinition, choice Choice, value any) {
	t := openTag("option").set("value", choice.Value)
	f.setAttrs(t, def, "readonly", "disabled")
	if looseEqual(choice.Value, value) {
		t.set("selected", "selected")
	}
	b.WriteString(t.String())
	b.WriteString(html.EscapeString(f.choiceLabel(choice)))
	b.WriteString("</option>\n")
}

func (f *Form) choiceLabel(c Choice) string {
	if c.Translate {
		return f.translate(c.Label)
	}
	return c.Label
}

func (f *Form) radiosControl(def FieldDefinition, value any) (string, error) {
	var b strings.Builder
	for _, choice := range flattenChoices(def.Options) {
		t := openTag("input").
			set("type", "radio").
			set("name", InputName(def.Name)).
			set("value", choice.Value).
			setIf("class", f.ErrorClass(def.Name))
		f.setAttrs(t, def, "readonly", "disabled")
		f.setExtraAttrs(t, def)
		if looseEqual(choice.Value, value) {
			t.set("checked", "checked")
		}
		b.WriteString("<label>")
		b.WriteString(t.String())
		b.WriteString(html.EscapeString(f.choiceLabel(choice)))
		b.WriteString("</label>\n")
	}
	return b.String(), nil
}

func flattenChoices(in []Choice) []Choice {
	out := make([]Choice, 0, len(in))
	for _, c := range in {
		if c.IsGroup() {
			out = append(out, c.Group...)
			continue
		}
		out = append(out, c)
	}
	return out
}

func (f *Form) checkboxControl(def FieldDefinition, value any) (string, error) {
	t := openTag("input").
		set("type", "checkbox").
		set("name", InputName(def.Name)).
		set("id", f.DOMID(def.Name)).
		set("value", "1").
		setIf("class", f.ErrorClass(def.Name))
	f.setAttrs(t, def, "readonly", "disabled")
	f.setExtraAttrs(t, def)
	if truthy(value) {
		t.set("checked", "checked")
	}
	return t.String(), nil
}

func (f *Form) submitControl(def FieldDefinition, _ any) (string, error) {
	t := openTag("button").set("type", "submit")
	if class, ok := f.attrValue(def, "class"); ok {
		t.set("class", class)
	}
	f.setExtraAttrs(t, def)
	return t.String() + html.EscapeString(f.LabelFor(def.Name)) + "</button>", nil
}

func (f *Form) datePickerControl(def FieldDefinition, value any) (string, error) {
	id := f.DOMID(def.Name)
	format := stringify(def.Attrs["format"])
	if format == "" {
		format = DefaultPickerFormat
	}

	display := ""
	if t, ok, err := toTime(value); err != nil {
		f.logger.Debug("unparsable date value", zap.String("field", def.Name), zap.Error(err))
		display = stringify(value)
	} else if ok {
		display = FormatDate(t, format, f.lang)
	}

	input := openTag("input").
		set("type", "text").
		set("name", InputName(def.Name)).
		set("value", display).
		setIf("class", f.ErrorClass(def.Name)).
		set("id", id)
	f.setAttrs(input, def, "placeholder", "readonly", "disabled")
	f.setExtraAttrs(input, def)

	years := stringify(def.Attrs["num_years"])
	if years == "" {
		years = fmt.Sprint(DefaultPickerYears)
	}
	data := map[string]any{
		"id":        id,
		"num_years": years,
		"format":    format,
	}
	for _, key := range []string{"min", "max"} {
		bound, ok, err := pickerBound(def.Attrs[key])
		if err != nil {
			f.logger.Debug("unparsable date bound", zap.String("field", def.Name), zap.String("bound", key), zap.Error(err))
		}
		if ok {
			data[key] = bound
		}
	}
	if err := f.scripts.AddTemplate("datepicker:"+id, scripts.TemplateDatePicker, data); err != nil {
		return "", fmt.Errorf("form: datepicker %q script: %w", def.Name, err)
	}
	return input.String(), nil
}
