package session

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"html/template"

	"github.com/goliatone/go-formbuilder/pkg/render"
)

// DefaultTokenField is the input name carrying the anti-forgery token.
const DefaultTokenField = "_token"

// NewToken returns a random URL safe token built from n bytes.
func NewToken(n int) (string, error) {
	if n <= 0 {
		n = 32
	}
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("session: generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// CSRF renders and verifies the anti-forgery hidden field.
type CSRF struct {
	FieldName string
	Token     string
}

// Field returns the hidden input markup.
func (c CSRF) Field() template.HTML {
	name := c.FieldName
	if name == "" {
		name = DefaultTokenField
	}
	return render.CSRFToken(name, c.Token).HTML()
}

// Verify compares submitted with the expected token in constant time.
func (c CSRF) Verify(submitted string) bool {
	if c.Token == "" || submitted == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(c.Token), []byte(submitted)) == 1
}
