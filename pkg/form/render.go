package form

import (
	"fmt"
	"html"
	"html/template"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/pkg/render"
)

// Render returns the complete form: error summary, opening tag, one block per
// field in registration order and the closing tag. Enhancement scripts are
// collected separately, see Scripts.
func (f *Form) Render() (template.HTML, error) {
	var b strings.Builder
	b.WriteString(string(f.Errors()))
	b.WriteString(string(f.Open()))
	for _, name := range f.fields.order {
		block, err := f.RenderField(name)
		if err != nil {
			return "", err
		}
		b.WriteString(string(block))
	}
	b.WriteString(string(f.Close()))
	return template.HTML(b.String()), nil
}

// RenderField returns the block of one field. Hidden fields render bare, the
// submit button sits in the submit wrapper and every other field gets the
// label and input wrappers. Unknown names render nothing.
func (f *Form) RenderField(name string) (template.HTML, error) {
	def, ok := f.fields.get(name)
	if !ok {
		f.logger.Debug("render skipped unknown field", zap.String("field", name))
		return "", nil
	}
	control, err := f.control(def)
	if err != nil {
		return "", err
	}

	switch def.Type {
	case TypeHidden:
		return template.HTML(control), nil
	case TypeSubmit:
		return template.HTML(fmt.Sprintf("<div class=\"%s\">\n%s</div>\n",
			html.EscapeString(f.classes.Submit), control)), nil
	}

	help, err := f.helpText(def)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<div class=\"%s __%s\">\n", html.EscapeString(f.classes.Field), def.Type)
	fmt.Fprintf(&b, "<div class=\"%s\">%s</div>\n", html.EscapeString(f.classes.Label), f.label(def))
	fmt.Fprintf(&b, "<div class=\"%s\">%s%s</div>", html.EscapeString(f.classes.Input), control, help)
	b.WriteString("</div>\n")
	return template.HTML(b.String()), nil
}

// Open returns the opening tag followed by the anti-forgery field and, for
// PUT, PATCH and DELETE, the method override.
func (f *Form) Open() template.HTML {
	method := f.method
	override, spoofed := render.SpoofedMethod(method)
	if spoofed {
		method = "post"
	}

	t := openTag("form").
		setIf("action", f.action).
		set("method", method)
	if f.IsMultipart() {
		t.set("enctype", "multipart/form-data")
	}
	t.set("class", f.classes.Form)

	var b strings.Builder
	b.WriteString(t.String())
	b.WriteByte('\n')
	if f.token != nil {
		if field := f.token.Field(); field != "" {
			b.WriteString(string(field))
			b.WriteByte('\n')
		}
	}
	if spoofed {
		b.WriteString(string(render.MethodField(override).HTML()))
		b.WriteByte('\n')
	}
	return template.HTML(b.String())
}

// Close returns the closing tag.
func (f *Form) Close() template.HTML {
	return "</form>\n"
}

// Errors returns the validation summary, or "" without messages.
func (f *Form) Errors() template.HTML {
	messages := f.ErrorMessages()
	if len(messages) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "<div class=\"%s\">\n<ul>\n", html.EscapeString(f.classes.ErrorWrap))
	for _, msg := range messages {
		fmt.Fprintf(&b, "<li>%s</li>\n", html.EscapeString(msg))
	}
	b.WriteString("</ul>\n</div>\n")
	return template.HTML(b.String())
}

// Label returns the <label> element of a field, or "" for unknown names.
func (f *Form) Label(name string) template.HTML {
	def, ok := f.fields.get(name)
	if !ok {
		return ""
	}
	return template.HTML(f.label(def))
}

func (f *Form) label(def FieldDefinition) string {
	var b strings.Builder
	t := openTag("label").
		set("for", f.DOMID(def.Name)).
		setIf("class", f.ErrorClass(def.Name))
	b.WriteString(t.String())
	b.WriteString(html.EscapeString(f.LabelFor(def.Name)))
	if sub := stringify(def.Attrs["sublabel"]); sub != "" {
		fmt.Fprintf(&b, " <span class=\"%s\">%s</span>", html.EscapeString(f.classes.Sublabel), html.EscapeString(sub))
	}
	if f.IsRequired(def.Name) {
		fmt.Fprintf(&b, "<span class=\"%s\">*</span>", html.EscapeString(f.classes.Required))
	}
	b.WriteString("</label>\n")
	return b.String()
}

// Input returns the control of a field without wrappers, or "" for unknown
// names.
func (f *Form) Input(name string) (template.HTML, error) {
	def, ok := f.fields.get(name)
	if !ok {
		return "", nil
	}
	control, err := f.control(def)
	if err != nil {
		return "", err
	}
	return template.HTML(control), nil
}

// Scripts returns the collected enhancement snippets.
func (f *Form) Scripts() template.HTML {
	return f.scripts.HTML()
}

func (f *Form) control(def FieldDefinition) (string, error) {
	fn, ok := controls[def.Type]
	if !ok {
		return "", fmt.Errorf("form: field %q has unknown type %q", def.Name, def.Type)
	}
	return fn(f, def, ResolveValue(f.old, def.Name, def.Default))
}

func (f *Form) helpText(def FieldDefinition) (string, error) {
	src := strings.TrimSpace(stringify(def.Attrs["help"]))
	if src == "" || f.help == nil {
		return "", nil
	}
	out, err := f.help.Render(src)
	if err != nil {
		return "", fmt.Errorf("form: help text %q: %w", def.Name, err)
	}
	if out == "" {
		return "", nil
	}
	return fmt.Sprintf("\n<div class=\"%s\">%s</div>", html.EscapeString(f.classes.Helper), out), nil
}
