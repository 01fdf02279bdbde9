// Package session carries state across a redirect-after-post cycle: the
// previously submitted input, named validation error bags and the
// anti-forgery token. Flash stores keep that state for exactly one read.
package session

import (
	"encoding/json"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/render"
)

// DefaultBag is the bag used by forms without a handle.
const DefaultBag = "default"

// ErrorBag holds validation messages per field in insertion order. A nil bag
// is empty.
type ErrorBag struct {
	fields   []string
	messages map[string][]string
}

// NewErrorBag returns an empty bag.
func NewErrorBag() *ErrorBag {
	return &ErrorBag{messages: make(map[string][]string)}
}

// Add appends message to field. Blank messages are ignored.
func (b *ErrorBag) Add(field, message string) {
	if strings.TrimSpace(message) == "" {
		return
	}
	if b.messages == nil {
		b.messages = make(map[string][]string)
	}
	if _, ok := b.messages[field]; !ok {
		b.fields = append(b.fields, field)
	}
	b.messages[field] = append(b.messages[field], message)
}

// Has reports whether field has at least one message.
func (b *ErrorBag) Has(field string) bool {
	if b == nil {
		return false
	}
	return len(b.messages[field]) > 0
}

// Messages returns the messages of field.
func (b *ErrorBag) Messages(field string) []string {
	if b == nil {
		return nil
	}
	return append([]string(nil), b.messages[field]...)
}

// First returns the first message of field or "".
func (b *ErrorBag) First(field string) string {
	if !b.Has(field) {
		return ""
	}
	return b.messages[field][0]
}

// All returns every message, grouped by field in insertion order.
func (b *ErrorBag) All() []string {
	if b == nil {
		return nil
	}
	var out []string
	for _, field := range b.fields {
		out = append(out, b.messages[field]...)
	}
	return out
}

// Fields returns the field names with messages in insertion order.
func (b *ErrorBag) Fields() []string {
	if b == nil {
		return nil
	}
	return append([]string(nil), b.fields...)
}

// IsEmpty reports whether the bag has no messages.
func (b *ErrorBag) IsEmpty() bool {
	return b == nil || len(b.fields) == 0
}

// Len returns the number of messages.
func (b *ErrorBag) Len() int {
	if b == nil {
		return 0
	}
	n := 0
	for _, msgs := range b.messages {
		n += len(msgs)
	}
	return n
}

type bagEntry struct {
	Field    string   `json:"field"`
	Messages []string `json:"messages"`
}

// MarshalJSON keeps field order.
func (b *ErrorBag) MarshalJSON() ([]byte, error) {
	if b == nil {
		return []byte("null"), nil
	}
	entries := make([]bagEntry, 0, len(b.fields))
	for _, field := range b.fields {
		entries = append(entries, bagEntry{Field: field, Messages: b.messages[field]})
	}
	return json.Marshal(entries)
}

// UnmarshalJSON restores a bag written by MarshalJSON.
func (b *ErrorBag) UnmarshalJSON(data []byte) error {
	var entries []bagEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	*b = ErrorBag{messages: make(map[string][]string, len(entries))}
	for _, entry := range entries {
		for _, message := range entry.Messages {
			b.Add(entry.Field, message)
		}
	}
	return nil
}

// FormErrorKey collects messages that belong to no field.
const FormErrorKey = "_form"

// BagFromMapping builds a bag from a mapped validation payload. Form level
// messages come first under FormErrorKey, then fields following order.
func BagFromMapping(m render.ErrorMapping, order []string) *ErrorBag {
	bag := NewErrorBag()
	for _, msg := range m.Form {
		bag.Add(FormErrorKey, msg)
	}
	for _, name := range m.FieldNames(order) {
		for _, msg := range m.Fields[name] {
			bag.Add(name, msg)
		}
	}
	return bag
}

// ErrorBags groups bags by form handle.
type ErrorBags map[string]*ErrorBag

// Bag returns the bag for handle, or the default bag when handle is empty.
// Missing and empty bags return nil.
func (bs ErrorBags) Bag(handle string) *ErrorBag {
	if handle == "" {
		handle = DefaultBag
	}
	bag := bs[handle]
	if bag.IsEmpty() {
		return nil
	}
	return bag
}

// Put stores bag under handle (default when empty). Empty bags are dropped.
func (bs ErrorBags) Put(handle string, bag *ErrorBag) {
	if handle == "" {
		handle = DefaultBag
	}
	if bag.IsEmpty() {
		delete(bs, handle)
		return
	}
	bs[handle] = bag
}
