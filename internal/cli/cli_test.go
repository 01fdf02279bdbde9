package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-formbuilder/pkg/prompt"
)

const contactYAML = `
handle: contact
action: /contact
fields:
  - {name: name, label: Name}
  - {name: email, type: email, label: Email}
  - {name: bio, type: richtext, label: Bio, required: false}
  - {type: submit, label: Send}
`

const petsYAML = `
openapi: 3.0.3
info: {title: Pets, version: "1.0"}
paths:
  /pets:
    post:
      operationId: createPet
      requestBody:
        content:
          application/json:
            schema:
              type: object
              required: [name]
              properties:
                name: {type: string}
`

func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"formgen.yaml": "log:\n  level: error\nform:\n  rich_text_api_key: abc\n",
		"contact.yaml": contactYAML,
		"pets.yaml":    petsYAML,
		"errors.json":  `{"/body/email": ["Email is invalid."], "": ["Please fix the errors below."]}`,
		"old.yaml":     "name: Ada\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func run(t *testing.T, dir string, opts []Option, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand(append([]Option{WithOutput(&stdout, &stderr)}, opts...)...)
	cmd.SetArgs(append([]string{"--config", filepath.Join(dir, "formgen.yaml")}, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func TestRender_Definition(t *testing.T) {
	dir := setup(t)
	out, err := run(t, dir, nil, "render", filepath.Join(dir, "contact.yaml"),
		"--errors", filepath.Join(dir, "errors.json"),
		"--old", filepath.Join(dir, "old.yaml"),
		"--action", "/override",
		"--scripts")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{
		`<li>Please fix the errors below.</li>`,
		`<li>Email is invalid.</li>`,
		`action="/override"`,
		`name="name" value="Ada"`,
		`tinymce.min.js?apiKey=abc`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRender_OpenAPIToFile(t *testing.T) {
	dir := setup(t)
	target := filepath.Join(dir, "out.html")
	if _, err := run(t, dir, nil, "render", filepath.Join(dir, "pets.yaml"), "--operation", "createPet", "-o", target); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), `action="/pets"`) || !strings.Contains(string(data), `name="name"`) {
		t.Fatalf("unexpected output:\n%s", data)
	}
}

type answerDriver struct{ prompt.Driver }

func (answerDriver) Input(_ context.Context, cfg prompt.InputConfig) (string, error) {
	if strings.HasPrefix(cfg.Message, "Email") {
		return "ada@example.com", nil
	}
	return "Grace", nil
}

func (answerDriver) TextArea(context.Context, prompt.TextAreaConfig) (string, error) {
	return "hello", nil
}

func TestRender_Interactive(t *testing.T) {
	dir := setup(t)
	out, err := run(t, dir, []Option{WithPromptDriver(answerDriver{})}, "render", filepath.Join(dir, "contact.yaml"), "-i")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, `value="Grace"`) || !strings.Contains(out, `value="ada@example.com"`) || !strings.Contains(out, ">hello</textarea>") {
		t.Fatalf("answers not rendered:\n%s", out)
	}
}

func TestInspect(t *testing.T) {
	dir := setup(t)
	out, err := run(t, dir, nil, "inspect", filepath.Join(dir, "contact.yaml"))
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	for _, want := range []string{"contact", "POST /contact", "email", "richtext", "no"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}

	ops, err := run(t, dir, nil, "inspect", "--openapi", filepath.Join(dir, "pets.yaml"))
	if err != nil {
		t.Fatalf("inspect openapi: %v", err)
	}
	if strings.TrimSpace(ops) != "createPet" {
		t.Fatalf("unexpected operations %q", ops)
	}
}

func TestRender_Errors(t *testing.T) {
	dir := setup(t)
	if _, err := run(t, dir, nil, "render", filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if _, err := run(t, dir, nil, "render", filepath.Join(dir, "pets.yaml"), "--operation", "nope"); err == nil {
		t.Fatalf("expected error for unknown operation")
	}
}
