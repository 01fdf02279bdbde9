package sanitize

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Markdown renders short help texts. Output always goes through a Policy.
type Markdown struct {
	md     goldmark.Markdown
	policy *Policy
}

// NewMarkdown returns a renderer with the GitHub flavoured extensions. A nil
// policy falls back to NewPolicy().
func NewMarkdown(policy *Policy) *Markdown {
	if policy == nil {
		policy = NewPolicy()
	}
	return &Markdown{
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy: policy,
	}
}

// Render converts src to sanitized HTML. A single paragraph is unwrapped so
// the text can sit inline next to a control.
func (m *Markdown) Render(src string) (string, error) {
	if strings.TrimSpace(src) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("sanitize: markdown: %w", err)
	}
	out := strings.TrimSpace(buf.String())
	if strings.HasPrefix(out, "<p>") && strings.HasSuffix(out, "</p>") && strings.Count(out, "<p>") == 1 {
		out = strings.TrimSuffix(strings.TrimPrefix(out, "<p>"), "</p>")
	}
	return m.policy.Purify(out)
}
