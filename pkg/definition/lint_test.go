package definition_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/definition"
)

const lintDoc = `
openapi: 3.0.3
info: {title: lint, version: "1"}
paths:
  /things:
    post:
      operationId: createThing
      requestBody:
        content:
          application/json:
            schema:
              type: object
              x-formgen-layout: grid
              properties:
                body:
                  type: string
                  x-formgen-type: wysiwyg
                kind:
                  type: string
                  x-formgen-type: carousel
                rank:
                  type: integer
                  x-formgen-order: first
                tags:
                  type: array
                  items:
                    type: string
                    x-formgen-type: 3
      responses:
        "201": {description: created}
`

func TestLintOpenAPI(t *testing.T) {
	got, err := definition.LintOpenAPI(context.Background(), []byte(lintDoc))
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	locations := make([]string, len(got))
	for i, v := range got {
		locations[i] = v.Location
	}
	want := []string{
		"operation > createThing > requestBody",
		"operation > createThing > requestBody > properties.kind",
		"operation > createThing > requestBody > properties.rank",
		"operation > createThing > requestBody > properties.tags > items",
	}
	if diff := cmp.Diff(want, locations); diff != "" {
		t.Fatalf("locations mismatch (-want +got):\n%s\n%v", diff, got)
	}
	if got[1].Message[:len(`unknown field type "carousel"`)] != `unknown field type "carousel"` {
		t.Fatalf("unexpected message %q", got[1].Message)
	}
}

func TestLintOpenAPI_CleanDocument(t *testing.T) {
	got, err := definition.LintOpenAPI(context.Background(), []byte(petstore))
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no violations, got %v", got)
	}
}
