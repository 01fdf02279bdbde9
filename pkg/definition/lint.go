package definition

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

const extensionPrefix = "x-formgen-"

// Violation is one unsupported or malformed x-formgen extension.
type Violation struct {
	Location string
	Message  string
}

func (v Violation) String() string {
	return v.Location + " -> " + v.Message
}

// LintOpenAPI reports x-formgen extensions in request body schemas that
// FromOpenAPI would ignore or reject.
func LintOpenAPI(ctx context.Context, data []byte) ([]Violation, error) {
	refs, err := loadOperations(ctx, data)
	if err != nil {
		return nil, err
	}
	var out []Violation
	for _, ref := range refs {
		schema := requestSchema(ref.op.RequestBody)
		if schema == nil {
			continue
		}
		out = append(out, lintSchema([]string{"operation", ref.id, "requestBody"}, schema)...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Location == out[j].Location {
			return out[i].Message < out[j].Message
		}
		return out[i].Location < out[j].Location
	})
	return out, nil
}

func lintSchema(path []string, schema *openapi3.Schema) []Violation {
	out := lintExtensions(path, schema.Extensions)

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if ref := schema.Properties[name]; ref != nil && ref.Value != nil {
			out = append(out, lintSchema(appendPath(path, "properties."+name), ref.Value)...)
		}
	}
	if schema.Items != nil && schema.Items.Value != nil {
		out = append(out, lintSchema(appendPath(path, "items"), schema.Items.Value)...)
	}
	return out
}

func lintExtensions(path []string, extensions map[string]any) []Violation {
	keys := make([]string, 0, len(extensions))
	for key := range extensions {
		if strings.HasPrefix(key, extensionPrefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	location := strings.Join(path, " > ")
	var out []Violation
	for _, key := range keys {
		value := extensions[key]
		switch key {
		case TypeExtension:
			name, ok := value.(string)
			if !ok {
				out = append(out, Violation{location, fmt.Sprintf("%s must be a string, found %T", key, value)})
				continue
			}
			if _, known := builders[normaliseType(name)]; !known {
				out = append(out, Violation{location, fmt.Sprintf("unknown field type %q (supported: %s)", name, strings.Join(FieldTypeNames(), ", "))})
			}
		case OrderExtension:
			switch value.(type) {
			case float64, int:
			default:
				out = append(out, Violation{location, fmt.Sprintf("%s must be a number, found %T", key, value)})
			}
		default:
			out = append(out, Violation{location, fmt.Sprintf("unsupported extension %q (supported: %s, %s)", key, OrderExtension, TypeExtension)})
		}
	}
	return out
}

func appendPath(path []string, segment string) []string {
	next := append([]string(nil), path...)
	return append(next, segment)
}
