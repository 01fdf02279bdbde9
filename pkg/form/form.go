package form

import (
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/pkg/i18n"
	"github.com/goliatone/go-formbuilder/pkg/sanitize"
	"github.com/goliatone/go-formbuilder/pkg/scripts"
)

// Classes are the CSS class names used by the wrapper markup.
type Classes struct {
	Form            string
	Error           string
	ErrorWrap       string
	Field           string
	Label           string
	Input           string
	Required        string
	Sublabel        string
	Helper          string
	Submit          string
	Thumbnail       string
	ThumbnailRemove string
}

// DefaultClasses returns the stock class names.
func DefaultClasses() Classes {
	return Classes{
		Form:            "formwrap",
		Error:           "__error",
		ErrorWrap:       "formerrors",
		Field:           "formfield",
		Label:           "formfield-label",
		Input:           "formfield-input",
		Required:        "formfield-required",
		Sublabel:        "formfield-sublabel",
		Helper:          "formfield-helper",
		Submit:          "formsubmit",
		Thumbnail:       "formfield-thumbnail",
		ThumbnailRemove: "formfield-remove",
	}
}

// Merge returns c with every non-empty class of o applied on top.
func (c Classes) Merge(o Classes) Classes {
	pick := func(base, override string) string {
		if strings.TrimSpace(override) != "" {
			return override
		}
		return base
	}
	return Classes{
		Form:            pick(c.Form, o.Form),
		Error:           pick(c.Error, o.Error),
		ErrorWrap:       pick(c.ErrorWrap, o.ErrorWrap),
		Field:           pick(c.Field, o.Field),
		Label:           pick(c.Label, o.Label),
		Input:           pick(c.Input, o.Input),
		Required:        pick(c.Required, o.Required),
		Sublabel:        pick(c.Sublabel, o.Sublabel),
		Helper:          pick(c.Helper, o.Helper),
		Submit:          pick(c.Submit, o.Submit),
		Thumbnail:       pick(c.Thumbnail, o.Thumbnail),
		ThumbnailRemove: pick(c.ThumbnailRemove, o.ThumbnailRemove),
	}
}

// Form is an ordered set of fields plus everything needed to render them.
type Form struct {
	handle          string
	action          string
	method          string
	lang            string
	classes         Classes
	requireAll      bool
	disableAll      bool
	placeholderAll  any
	labels          map[string]string
	placeholders    map[string]any
	translateErrors bool
	richTextKey     string

	fields registry
	errors ValidationErrors
	old    OldInputStore

	token      AntiForgery
	files      FileURLResolver
	sanitizer  HTMLSanitizer
	help       HelpRenderer
	translator Translator
	logger     *zap.Logger

	ids     map[string]string
	newID   func(handle string) string
	scripts *scripts.Collector
}

// Option configures a Form.
type Option func(*Form)

// New returns an empty form. Without options it posts to "" with the stock
// classes, requires every field and uses a bluemonday sanitizer.
func New(opts ...Option) *Form {
	f := &Form{
		method:          "post",
		classes:         DefaultClasses(),
		requireAll:      true,
		placeholderAll:  false,
		labels:          make(map[string]string),
		placeholders:    make(map[string]any),
		translateErrors: true,
		ids:             make(map[string]string),
		newID:           uniqueID,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	if f.sanitizer == nil {
		f.sanitizer = sanitize.NewPolicy()
	}
	if f.help == nil {
		f.help = sanitize.NewMarkdown(nil)
	}
	if f.logger == nil {
		f.logger = zap.NewNop()
	}
	if f.scripts == nil {
		f.scripts = scripts.New()
	}
	return f
}

func uniqueID(handle string) string {
	return handle + strings.ReplaceAll(uuid.NewString(), "-", "")[:13]
}

// WithHandle names the form. The handle selects the validation bag and
// prefixes DOM ids.
func WithHandle(handle string) Option {
	return func(f *Form) { f.handle = strings.TrimSpace(handle) }
}

// WithAction sets the submission URL.
func WithAction(action string) Option {
	return func(f *Form) { f.action = action }
}

// WithMethod sets the HTTP method. PUT, PATCH and DELETE are spoofed through
// a hidden _method input.
func WithMethod(method string) Option {
	return func(f *Form) {
		if m := strings.TrimSpace(method); m != "" {
			f.method = strings.ToLower(m)
		}
	}
}

// WithLang sets the form language used for lang attributes, translations and
// month names.
func WithLang(lang string) Option {
	return func(f *Form) { f.lang = i18n.NormalizeLang(lang) }
}

// WithClasses overrides class names; empty entries keep the default.
func WithClasses(classes Classes) Option {
	return func(f *Form) { f.classes = f.classes.Merge(classes) }
}

// WithRequireAll sets whether fields without an explicit requirement are
// required. Defaults to true.
func WithRequireAll(requireAll bool) Option {
	return func(f *Form) { f.requireAll = requireAll }
}

// WithDisableAll disables every control without a disabled attr.
func WithDisableAll(disableAll bool) Option {
	return func(f *Form) { f.disableAll = disableAll }
}

// WithPlaceholderAll sets the placeholder used by fields without one. true
// uses each field's label.
func WithPlaceholderAll(placeholder any) Option {
	return func(f *Form) { f.placeholderAll = placeholder }
}

// WithLabels overrides labels by field name.
func WithLabels(labels map[string]string) Option {
	return func(f *Form) {
		for name, label := range labels {
			f.labels[name] = label
		}
	}
}

// WithPlaceholders overrides placeholders by field name.
func WithPlaceholders(placeholders map[string]any) Option {
	return func(f *Form) {
		for name, placeholder := range placeholders {
			f.placeholders[name] = placeholder
		}
	}
}

// WithTranslateErrors toggles translation of validation messages.
func WithTranslateErrors(translate bool) Option {
	return func(f *Form) { f.translateErrors = translate }
}

// WithRichTextAPIKey sets the editor API key.
func WithRichTextAPIKey(key string) Option {
	return func(f *Form) { f.richTextKey = key }
}

// WithOldInput sets the previous submission.
func WithOldInput(old OldInputStore) Option {
	return func(f *Form) { f.old = old }
}

// WithErrors sets the validation messages. Nil or empty means no errors.
func WithErrors(errs ValidationErrors) Option {
	return func(f *Form) { f.errors = errs }
}

// WithAntiForgery sets the token field emitted after the opening tag.
func WithAntiForgery(token AntiForgery) Option {
	return func(f *Form) { f.token = token }
}

// WithFileURLResolver enables file previews.
func WithFileURLResolver(resolver FileURLResolver) Option {
	return func(f *Form) { f.files = resolver }
}

// WithSanitizer replaces the textarea content sanitizer.
func WithSanitizer(s HTMLSanitizer) Option {
	return func(f *Form) { f.sanitizer = s }
}

// WithHelpRenderer replaces the markdown help text renderer.
func WithHelpRenderer(h HelpRenderer) Option {
	return func(f *Form) { f.help = h }
}

// WithTranslator sets the translator for built-in labels and messages.
func WithTranslator(t Translator) Option {
	return func(f *Form) { f.translator = t }
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Form) { f.logger = logger }
}

// WithIDGenerator replaces the DOM id generator. It receives the handle.
func WithIDGenerator(gen func(handle string) string) Option {
	return func(f *Form) {
		if gen != nil {
			f.newID = gen
		}
	}
}

// WithScripts shares a script collector, for pages holding several forms.
func WithScripts(c *scripts.Collector) Option {
	return func(f *Form) { f.scripts = c }
}

// SetAction changes the submission URL after construction.
func (f *Form) SetAction(action string) { f.action = action }

// Handle returns the form handle.
func (f *Form) Handle() string { return f.handle }

// Lang returns the normalised form language.
func (f *Form) Lang() string { return f.lang }

// Method returns the configured method in lower case.
func (f *Form) Method() string { return f.method }

// Classes returns the class names in use.
func (f *Form) Classes() Classes { return f.classes }

// ScriptCollector exposes the collector receiving enhancement snippets.
func (f *Form) ScriptCollector() *scripts.Collector { return f.scripts }

// DOMID returns the stable DOM id of a registered field, generating it on
// first use. Unknown fields return "".
func (f *Form) DOMID(name string) string {
	if _, ok := f.fields.get(name); !ok {
		return ""
	}
	if id, ok := f.ids[name]; ok {
		return id
	}
	id := f.newID(f.handle)
	f.ids[name] = id
	return id
}

// IsRequired reports whether a registered field is required.
func (f *Form) IsRequired(name string) bool {
	def, ok := f.fields.get(name)
	if !ok {
		return false
	}
	switch def.Required {
	case Required:
		return true
	case Optional:
		return false
	default:
		return f.requireAll
	}
}

// IsDisabled reports whether the field renders disabled: its "disabled" attr
// when set, otherwise the form wide DisableAll.
func (f *Form) IsDisabled(name string) bool {
	def, ok := f.fields.get(name)
	if !ok {
		return false
	}
	_, disabled := f.attrValue(def, "disabled")
	return disabled
}

// LabelFor returns the label override or the declared label.
func (f *Form) LabelFor(name string) string {
	if label, ok := f.labels[name]; ok {
		return label
	}
	def, ok := f.fields.get(name)
	if !ok {
		return ""
	}
	return def.Label
}

// HasErrors reports whether any validation message is present.
func (f *Form) HasErrors() bool {
	return f.errors != nil && !f.errors.IsEmpty()
}

// HasError reports whether name has a validation message.
func (f *Form) HasError(name string) bool {
	return f.HasErrors() && f.errors.Has(name)
}

// ErrorClass returns the error class when name has a message, else "".
func (f *Form) ErrorClass(name string) string {
	if f.HasError(name) {
		return f.classes.Error
	}
	return ""
}

// ErrorMessages returns every validation message, translated when enabled.
func (f *Form) ErrorMessages() []string {
	if !f.HasErrors() {
		return nil
	}
	all := f.errors.All()
	out := make([]string, 0, len(all))
	for _, msg := range all {
		if f.translateErrors {
			msg = f.translate(msg)
		}
		out = append(out, msg)
	}
	return out
}

func (f *Form) translate(key string) string {
	if f.translator == nil || key == "" {
		return key
	}
	msg, err := f.translator.Translate(f.lang, key)
	if err != nil || msg == "" {
		return key
	}
	return msg
}
