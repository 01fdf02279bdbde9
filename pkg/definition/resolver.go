package definition

import (
	"sort"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formbuilder/pkg/form"
)

// TypeExtension names the schema extension that pins a field type.
const TypeExtension = "x-formgen-type"

// Matcher decides whether a field type applies to a schema property.
type Matcher func(name string, schema *openapi3.Schema) bool

type rule struct {
	fieldType string
	priority  int
	match     Matcher
	order     int
}

// TypeResolver picks field types for OpenAPI properties. Higher priority
// wins; ties fall back to registration order. Properties no rule matches are
// text inputs.
type TypeResolver struct {
	mu    sync.RWMutex
	rules []rule
}

// NewTypeResolver returns a resolver with the built-in rules registered.
func NewTypeResolver() *TypeResolver {
	r := &TypeResolver{}
	r.registerBuiltins()
	return r
}

// Register adds a rule mapping matching properties to fieldType.
func (r *TypeResolver) Register(fieldType string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	fieldType = strings.TrimSpace(fieldType)
	if fieldType == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules = append(r.rules, rule{
		fieldType: fieldType,
		priority:  priority,
		match:     matcher,
		order:     len(r.rules),
	})
}

// Resolve returns the field type for a property. The x-formgen-type
// extension is honoured before any rule.
func (r *TypeResolver) Resolve(name string, schema *openapi3.Schema) string {
	if schema == nil {
		return string(form.TypeText)
	}
	if explicit, ok := schema.Extensions[TypeExtension].(string); ok && strings.TrimSpace(explicit) != "" {
		return strings.TrimSpace(explicit)
	}
	if r == nil {
		return string(form.TypeText)
	}

	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(name, schema) {
			return entry.fieldType
		}
	}
	return string(form.TypeText)
}

func (r *TypeResolver) registerBuiltins() {
	r.Register(string(form.TypeFile), 100, func(_ string, s *openapi3.Schema) bool {
		return isType(s, openapi3.TypeString) && (s.Format == "binary" || s.Format == "base64")
	})
	r.Register(string(form.TypeEmail), 90, formatIs("email"))
	r.Register(string(form.TypePassword), 90, formatIs("password"))
	r.Register(string(form.TypeDatePicker), 80, func(_ string, s *openapi3.Schema) bool {
		return s.Format == "date" || s.Format == "date-time"
	})
	r.Register(string(form.TypeRichText), 80, formatIs("html"))
	r.Register("timezone", 80, formatIs("timezone"))
	r.Register(string(form.TypeCheckboxes), 70, func(_ string, s *openapi3.Schema) bool {
		return isType(s, openapi3.TypeArray) && s.Items != nil && s.Items.Value != nil && len(s.Items.Value.Enum) > 0
	})
	r.Register(string(form.TypeSelect), 60, func(_ string, s *openapi3.Schema) bool {
		return len(s.Enum) > 0
	})
	r.Register(string(form.TypeCheckbox), 50, func(_ string, s *openapi3.Schema) bool {
		return isType(s, openapi3.TypeBoolean)
	})
	r.Register(string(form.TypeNumber), 50, func(_ string, s *openapi3.Schema) bool {
		return isType(s, openapi3.TypeInteger) || isType(s, openapi3.TypeNumber)
	})
	r.Register(string(form.TypeTextarea), 20, func(_ string, s *openapi3.Schema) bool {
		return isType(s, openapi3.TypeString) && s.MaxLength != nil && *s.MaxLength > 255
	})
}

func formatIs(format string) Matcher {
	return func(_ string, s *openapi3.Schema) bool {
		return s.Format == format
	}
}

func isType(s *openapi3.Schema, typ string) bool {
	if s == nil || s.Type == nil {
		return false
	}
	for _, t := range s.Type.Slice() {
		if t == typ {
			return true
		}
	}
	return false
}
