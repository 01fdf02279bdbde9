package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrFlashNotFound is returned by Pull when nothing is stored for an id or the
// entry expired.
var ErrFlashNotFound = errors.New("session: flash not found")

// Flash is the state carried from a failed submission to the next render.
type Flash struct {
	OldInput OldInput  `json:"old_input,omitempty"`
	Errors   ErrorBags `json:"errors,omitempty"`
}

// Store persists a Flash for one read.
type Store interface {
	Put(ctx context.Context, id string, flash *Flash, ttl time.Duration) error
	Pull(ctx context.Context, id string) (*Flash, error)
}

func encodeFlash(flash *Flash) ([]byte, error) {
	if flash == nil {
		flash = &Flash{}
	}
	data, err := json.Marshal(flash)
	if err != nil {
		return nil, fmt.Errorf("session: encode flash: %w", err)
	}
	return data, nil
}

func decodeFlash(data []byte) (*Flash, error) {
	var flash Flash
	if err := json.Unmarshal(data, &flash); err != nil {
		return nil, fmt.Errorf("session: decode flash: %w", err)
	}
	return &flash, nil
}

type memoryItem struct {
	data    []byte
	expires time.Time
}

// MemoryStore keeps flashes in process. Entries are encoded like the redis
// store so both return the same shapes.
type MemoryStore struct {
	mu    sync.Mutex
	items map[string]memoryItem
	now   func() time.Time
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string]memoryItem),
		now:   time.Now,
	}
}

// Put stores flash under id. A non-positive ttl never expires.
func (s *MemoryStore) Put(ctx context.Context, id string, flash *Flash, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := encodeFlash(flash)
	if err != nil {
		return err
	}
	item := memoryItem{data: data}
	if ttl > 0 {
		item.expires = s.now().Add(ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked()
	s.items[id] = item
	return nil
}

// Pull returns and removes the flash stored under id.
func (s *MemoryStore) Pull(ctx context.Context, id string) (*Flash, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	item, ok := s.items[id]
	delete(s.items, id)
	s.mu.Unlock()

	if !ok || s.expired(item) {
		return nil, ErrFlashNotFound
	}
	return decodeFlash(item.data)
}

func (s *MemoryStore) expired(item memoryItem) bool {
	return !item.expires.IsZero() && !s.now().Before(item.expires)
}

func (s *MemoryStore) pruneLocked() {
	for id, item := range s.items {
		if s.expired(item) {
			delete(s.items, id)
		}
	}
}
