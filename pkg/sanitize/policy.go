// Package sanitize cleans user supplied markup before it is placed back into
// a form: textarea and rich-text content, plus markdown help text.
package sanitize

import (
	"errors"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// ErrNilPolicy is returned when a zero Policy is used.
var ErrNilPolicy = errors.New("sanitize: nil policy")

// Option tweaks the underlying bluemonday policy.
type Option func(*bluemonday.Policy)

// AllowElements permits extra elements without attributes.
func AllowElements(elements ...string) Option {
	return func(p *bluemonday.Policy) {
		p.AllowElements(elements...)
	}
}

// AllowAttrs permits attrs on the given elements.
func AllowAttrs(attrs []string, elements ...string) Option {
	return func(p *bluemonday.Policy) {
		p.AllowAttrs(attrs...).OnElements(elements...)
	}
}

// Policy strips scripts, event handlers and unsafe URLs while keeping the
// formatting tags produced by rich-text editors. Safe for concurrent use once
// built.
type Policy struct {
	policy *bluemonday.Policy
}

// NewPolicy builds the rich-text policy.
func NewPolicy(opts ...Option) *Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("style").OnElements("span", "p")
	p.AllowStyles("text-align").OnElements("p")
	p.AllowStyles("text-decoration").OnElements("span")
	p.AllowElements("u", "s")
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return &Policy{policy: p}
}

// Purify returns raw with unsafe markup removed.
func (p *Policy) Purify(raw string) (string, error) {
	if p == nil || p.policy == nil {
		return "", ErrNilPolicy
	}
	if strings.TrimSpace(raw) == "" {
		return raw, nil
	}
	return p.policy.Sanitize(raw), nil
}
