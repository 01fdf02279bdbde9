package definition

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formbuilder/pkg/form"
)

// OrderExtension orders properties; properties without it sort by name after
// those with it.
const OrderExtension = "x-formgen-order"

// ErrOperationNotFound is returned when the document has no such operation.
var ErrOperationNotFound = errors.New("definition: openapi operation not found")

// OpenAPIOption configures FromOpenAPI.
type OpenAPIOption func(*openAPIConfig)

type openAPIConfig struct {
	resolver    *TypeResolver
	submitLabel string
}

// WithTypeResolver replaces the built-in property to field type rules.
func WithTypeResolver(r *TypeResolver) OpenAPIOption {
	return func(cfg *openAPIConfig) {
		if r != nil {
			cfg.resolver = r
		}
	}
}

// WithSubmitLabel sets the label of the appended submit button. An empty
// label omits the button.
func WithSubmitLabel(label string) OpenAPIOption {
	return func(cfg *openAPIConfig) {
		cfg.submitLabel = label
	}
}

type operationRef struct {
	id     string
	method string
	path   string
	op     *openapi3.Operation
}

func loadOperations(ctx context.Context, data []byte) ([]operationRef, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("definition: openapi document is empty")
	}
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("definition: load openapi document: %w", err)
	}
	if doc.Paths == nil {
		return nil, nil
	}

	var refs []operationRef
	for p, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if op == nil {
				continue
			}
			id := op.OperationID
			if id == "" {
				id = strings.ToLower(method) + ":" + p
			}
			refs = append(refs, operationRef{id: id, method: method, path: p, op: op})
		}
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].id < refs[j].id })
	return refs, nil
}

// OpenAPIOperations lists the operation ids of a document. Operations
// without an id are listed as "method:path".
func OpenAPIOperations(ctx context.Context, data []byte) ([]string, error) {
	refs, err := loadOperations(ctx, data)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(refs))
	for i, ref := range refs {
		ids[i] = ref.id
	}
	return ids, nil
}

// FromOpenAPI builds a definition from the request body of an operation.
// Nested object properties become dotted field names, required properties are
// required and every other property is optional. Read-only properties are
// skipped.
func FromOpenAPI(ctx context.Context, data []byte, operationID string, opts ...OpenAPIOption) (Definition, error) {
	cfg := &openAPIConfig{resolver: NewTypeResolver(), submitLabel: "Submit"}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	refs, err := loadOperations(ctx, data)
	if err != nil {
		return Definition{}, err
	}
	var ref *operationRef
	for i := range refs {
		if refs[i].id == operationID {
			ref = &refs[i]
			break
		}
	}
	if ref == nil {
		return Definition{}, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}

	def := Definition{
		Handle: handleFor(ref.id),
		Action: ref.path,
		Method: strings.ToLower(ref.method),
		Source: "openapi:" + ref.id,
	}
	if schema := requestSchema(ref.op.RequestBody); schema != nil {
		def.Fields = collectFields(cfg.resolver, "", schema)
	}
	if cfg.submitLabel != "" {
		def.Fields = append(def.Fields, FieldSpec{Type: string(form.TypeSubmit), Label: cfg.submitLabel})
	}
	return def, nil
}

func handleFor(id string) string {
	parts := strings.FieldsFunc(id, func(r rune) bool {
		return r == ':' || r == '/' || r == '{' || r == '}'
	})
	return strings.Join(parts, "_")
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range []string{"application/x-www-form-urlencoded", "multipart/form-data", "application/json"} {
		if mt, ok := content[mediaType]; ok && mt != nil && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	keys := make([]string, 0, len(content))
	for key := range content {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if mt := content[key]; mt != nil && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func collectFields(resolver *TypeResolver, prefix string, schema *openapi3.Schema) []FieldSpec {
	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	var fields []FieldSpec
	for _, name := range orderedProperties(schema.Properties) {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil || ref.Value.ReadOnly {
			continue
		}
		prop := ref.Value
		fullName := name
		if prefix != "" {
			fullName = prefix + "." + name
		}
		if isType(prop, openapi3.TypeObject) && len(prop.Properties) > 0 {
			fields = append(fields, collectFields(resolver, fullName, prop)...)
			continue
		}
		fields = append(fields, propertyField(resolver, fullName, name, prop, required[name]))
	}
	return fields
}

func orderedProperties(props openapi3.Schemas) []string {
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	position := func(name string) (float64, bool) {
		ref := props[name]
		if ref == nil || ref.Value == nil {
			return 0, false
		}
		switch v := ref.Value.Extensions[OrderExtension].(type) {
		case float64:
			return v, true
		case int:
			return float64(v), true
		}
		return 0, false
	}
	sort.Slice(names, func(i, j int) bool {
		pi, oki := position(names[i])
		pj, okj := position(names[j])
		switch {
		case oki && okj && pi != pj:
			return pi < pj
		case oki != okj:
			return oki
		}
		return names[i] < names[j]
	})
	return names
}

func propertyField(resolver *TypeResolver, fullName, name string, prop *openapi3.Schema, required bool) FieldSpec {
	spec := FieldSpec{
		Name:     fullName,
		Type:     resolver.Resolve(name, prop),
		Label:    prop.Title,
		Default:  prop.Default,
		Required: &required,
		Attrs:    make(map[string]any),
	}
	if spec.Label == "" {
		spec.Label = humanize(name)
	}
	if prop.Description != "" {
		spec.Attrs["help"] = prop.Description
	}
	if example, ok := prop.Example.(string); ok && example != "" {
		spec.Attrs["placeholder"] = example
	}
	if prop.Min != nil {
		spec.Attrs["min"] = *prop.Min
	}
	if prop.Max != nil {
		spec.Attrs["max"] = *prop.Max
	}
	if prop.MultipleOf != nil {
		spec.Attrs["step"] = *prop.MultipleOf
	}

	enum := prop.Enum
	if isType(prop, openapi3.TypeArray) && prop.Items != nil && prop.Items.Value != nil {
		enum = prop.Items.Value.Enum
	}
	for _, value := range enum {
		spec.Options = append(spec.Options, ChoiceSpec{Value: value, Label: fmt.Sprint(value)})
	}
	if len(spec.Attrs) == 0 {
		spec.Attrs = nil
	}
	return spec
}

func humanize(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || r == '.'
	})
	if len(words) == 0 {
		return name
	}
	label := strings.Join(words, " ")
	return strings.ToUpper(label[:1]) + label[1:]
}
