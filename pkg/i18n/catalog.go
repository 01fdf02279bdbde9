// Package i18n provides a small message catalog used to translate built-in
// option labels and validation messages, plus locale helpers for localized
// date formatting.
package i18n

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// ErrMissingTranslation is returned when no locale in the lookup chain has the
// key. The returned string is the key itself so callers can fall back.
var ErrMissingTranslation = errors.New("i18n: missing translation")

// Translator resolves a message key for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// Catalog holds messages per normalised locale. Lookups try the exact
// locale, then its base language, then the fallback locale. Safe for
// concurrent use.
type Catalog struct {
	mu       sync.RWMutex
	messages map[string]map[string]string
	fallback string
}

var _ Translator = (*Catalog)(nil)

// NewCatalog returns an empty catalog. fallback may be empty.
func NewCatalog(fallback string) *Catalog {
	return &Catalog{
		messages: make(map[string]map[string]string),
		fallback: NormalizeLang(fallback),
	}
}

// Add merges messages into locale.
func (c *Catalog) Add(locale string, messages map[string]string) {
	locale = NormalizeLang(locale)
	c.mu.Lock()
	defer c.mu.Unlock()
	bucket, ok := c.messages[locale]
	if !ok {
		bucket = make(map[string]string, len(messages))
		c.messages[locale] = bucket
	}
	for key, value := range messages {
		bucket[key] = value
	}
}

// Locales lists the locales with at least one message, sorted.
func (c *Catalog) Locales() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.messages))
	for locale := range c.messages {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// Translate looks key up and formats it with args using fmt verbs.
func (c *Catalog) Translate(locale, key string, args ...any) (string, error) {
	if c == nil {
		return key, ErrMissingTranslation
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, candidate := range lookupChain(NormalizeLang(locale), c.fallback) {
		bucket, ok := c.messages[candidate]
		if !ok {
			continue
		}
		msg, ok := bucket[key]
		if !ok {
			continue
		}
		if len(args) > 0 {
			msg = fmt.Sprintf(msg, args...)
		}
		return msg, nil
	}
	return key, fmt.Errorf("%w: %q (%s)", ErrMissingTranslation, key, locale)
}

func lookupChain(locale, fallback string) []string {
	chain := make([]string, 0, 3)
	add := func(s string) {
		if s == "" {
			return
		}
		for _, existing := range chain {
			if existing == s {
				return
			}
		}
		chain = append(chain, s)
	}
	add(locale)
	add(BaseLang(locale))
	add(fallback)
	add(BaseLang(fallback))
	return chain
}

// LoadFS reads every <locale>.yaml, <locale>.yml or <locale>.json file at the
// root of fsys. Nested keys are flattened with dots.
func LoadFS(fsys fs.FS, fallback string) (*Catalog, error) {
	if fsys == nil {
		return nil, errors.New("i18n: nil filesystem")
	}
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("i18n: read catalog dir: %w", err)
	}
	catalog := NewCatalog(fallback)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(path.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" && ext != ".json" {
			continue
		}
		data, err := fs.ReadFile(fsys, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("i18n: read %s: %w", entry.Name(), err)
		}
		messages, err := Parse(data, entry.Name())
		if err != nil {
			return nil, err
		}
		catalog.Add(strings.TrimSuffix(entry.Name(), path.Ext(entry.Name())), messages)
	}
	return catalog, nil
}

// Parse decodes a JSON or YAML message document into flat keys.
func Parse(data []byte, source string) (map[string]string, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		raw = nil
		if yerr := yaml.Unmarshal(data, &raw); yerr != nil {
			return nil, fmt.Errorf("i18n: parse %s: %w", source, yerr)
		}
	}
	out := make(map[string]string)
	flatten("", raw, out)
	return out, nil
}

func flatten(prefix string, in map[string]any, out map[string]string) {
	for key, value := range in {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		switch v := value.(type) {
		case map[string]any:
			flatten(full, v, out)
		case nil:
			out[full] = ""
		default:
			out[full] = fmt.Sprint(v)
		}
	}
}
