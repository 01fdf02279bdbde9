package server

import (
	"bytes"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/internal/bootstrap"
	"github.com/goliatone/go-formbuilder/internal/config"
	"github.com/goliatone/go-formbuilder/pkg/definition"
	"github.com/goliatone/go-formbuilder/pkg/session"
)

const contactYAML = `
handle: contact
fields:
  - {name: name, label: Name}
  - {name: email, type: email, label: Email}
  - {name: secret, type: password, label: Secret, required: false}
  - {type: submit, label: Send}
`

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	def, err := definition.Parse([]byte(contactYAML), "contact.yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	env := &bootstrap.Env{
		Config: &config.Config{
			Server: config.ServerConfig{CSRFCookie: "_token", FlashTTL: time.Minute},
			Form:   config.FormConfig{RequireAll: true},
		},
		Logger: zap.NewNop(),
	}
	srv, err := New(env, definition.NewStore(def), session.NewMemoryStore())
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return srv, ts
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func get(t *testing.T, c *http.Client, u string) (*http.Response, string) {
	t.Helper()
	resp, err := c.Get(u)
	if err != nil {
		t.Fatalf("get %s: %v", u, err)
	}
	defer resp.Body.Close()
	var b bytes.Buffer
	if _, err := b.ReadFrom(resp.Body); err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, b.String()
}

func tokenFor(t *testing.T, c *http.Client, base string) string {
	t.Helper()
	u, _ := url.Parse(base)
	for _, cookie := range c.Jar.Cookies(u) {
		if cookie.Name == "_token" {
			return cookie.Value
		}
	}
	t.Fatalf("no csrf cookie set")
	return ""
}

func TestIndexAndHealth(t *testing.T) {
	_, ts := newTestServer(t)
	c := newClient(t)

	resp, body := get(t, c, ts.URL+"/")
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, `<a href="/forms/contact">contact</a>`) {
		t.Fatalf("unexpected index %d:\n%s", resp.StatusCode, body)
	}
	resp, _ = get(t, c, ts.URL+"/healthz")
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("healthz status %d", resp.StatusCode)
	}
}

func TestShow_UnknownFormIs404(t *testing.T) {
	_, ts := newTestServer(t)
	resp, _ := get(t, newClient(t), ts.URL+"/forms/missing")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestShow_RendersFormWithToken(t *testing.T) {
	_, ts := newTestServer(t)
	c := newClient(t)

	resp, body := get(t, c, ts.URL+"/forms/contact")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	token := tokenFor(t, c, ts.URL)
	for _, want := range []string{
		`action="/forms/contact"`,
		`<input type="hidden" name="_token" value="` + token + `">`,
		`<button type="submit">Send</button>`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in:\n%s", want, body)
		}
	}

	// the token is reused across renders
	get(t, c, ts.URL+"/forms/contact")
	if tokenFor(t, c, ts.URL) != token {
		t.Fatalf("csrf token should be stable")
	}
}

func TestSubmit_RejectsBadToken(t *testing.T) {
	_, ts := newTestServer(t)
	c := newClient(t)
	get(t, c, ts.URL+"/forms/contact")

	resp, err := c.PostForm(ts.URL+"/forms/contact", url.Values{
		"_token": {"forged"},
		"name":   {"Ada"},
		"email":  {"ada@example.com"},
	})
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestSubmit_InvalidFlashesErrorsAndOldInput(t *testing.T) {
	_, ts := newTestServer(t)
	c := newClient(t)
	get(t, c, ts.URL+"/forms/contact")
	token := tokenFor(t, c, ts.URL)

	resp, err := c.PostForm(ts.URL+"/forms/contact", url.Values{
		"_token": {token},
		"name":   {"Ada <Lovelace>"},
		"email":  {"not-an-email"},
		"secret": {"hunter2"},
		"submit": {"Send"},
	})
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther || resp.Header.Get("Location") != "/forms/contact" {
		t.Fatalf("expected redirect back, got %d %q", resp.StatusCode, resp.Header.Get("Location"))
	}

	_, body := get(t, c, ts.URL+"/forms/contact")
	for _, want := range []string{
		"<li>Email must be a valid email address.</li>",
		`value="Ada &lt;Lovelace&gt;"`,
		`value="not-an-email"`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in:\n%s", want, body)
		}
	}
	if strings.Contains(body, "hunter2") {
		t.Fatalf("password must not be flashed back")
	}

	// the flash is read once
	_, body = get(t, c, ts.URL+"/forms/contact")
	if strings.Contains(body, "must be a valid email") {
		t.Fatalf("flash should be consumed by the first render")
	}
}

func TestSubmit_ValidRedirectsWithNotice(t *testing.T) {
	_, ts := newTestServer(t)
	c := newClient(t)
	get(t, c, ts.URL+"/forms/contact")

	resp, err := c.PostForm(ts.URL+"/forms/contact", url.Values{
		"_token": {tokenFor(t, c, ts.URL)},
		"name":   {"Ada"},
		"email":  {"ada@example.com"},
	})
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther || resp.Header.Get("Location") != "/forms/contact?submitted=1" {
		t.Fatalf("unexpected response %d %q", resp.StatusCode, resp.Header.Get("Location"))
	}

	_, body := get(t, c, ts.URL+resp.Header.Get("Location"))
	if !strings.Contains(body, "your submission was received") {
		t.Fatalf("expected notice in:\n%s", body)
	}
}

func TestSetDefinitions_SwapsServedForms(t *testing.T) {
	srv, ts := newTestServer(t)
	c := newClient(t)

	next, err := definition.Parse([]byte("fields:\n  - {name: q, label: Query}\n"), "search.yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	srv.SetDefinitions(definition.NewStore(next))
	srv.SetDefinitions(nil)

	if resp, _ := get(t, c, ts.URL+"/forms/contact"); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("old form should be gone, got %d", resp.StatusCode)
	}
	if resp, _ := get(t, c, ts.URL+"/forms/search"); resp.StatusCode != http.StatusOK {
		t.Fatalf("new form should be served, got %d", resp.StatusCode)
	}
}

func TestNew_RequiresCollaborators(t *testing.T) {
	if _, err := New(nil, nil, session.NewMemoryStore()); err == nil {
		t.Fatalf("expected error without env")
	}
}
