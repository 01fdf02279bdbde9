package definition

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Parse decodes a JSON or YAML definition. source names the input in errors
// and supplies the handle when the document has none.
func Parse(data []byte, source string) (Definition, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Definition{}, fmt.Errorf("definition: %s is empty", source)
	}

	var def Definition
	if err := json.Unmarshal(data, &def); err != nil {
		def = Definition{}
		if yerr := yaml.Unmarshal(data, &def); yerr != nil {
			return Definition{}, fmt.Errorf("definition: parse %s: invalid JSON or YAML: %w", source, yerr)
		}
	}

	def.Handle = strings.TrimSpace(def.Handle)
	if def.Handle == "" {
		base := path.Base(source)
		def.Handle = strings.TrimSuffix(base, path.Ext(base))
	}
	def.Source = source

	for i, spec := range def.Fields {
		if _, ok := builders[normaliseType(spec.Type)]; !ok {
			return Definition{}, fmt.Errorf("definition: %s field %d: %w %q", source, i, ErrUnknownFieldType, spec.Type)
		}
	}
	return def, nil
}

func isDefinitionFile(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

// Store holds definitions keyed by handle. It is safe for concurrent use.
type Store struct {
	mu          sync.RWMutex
	definitions map[string]Definition
}

// NewStore returns a store holding defs. A later definition replaces an
// earlier one with the same handle.
func NewStore(defs ...Definition) *Store {
	s := &Store{definitions: make(map[string]Definition, len(defs))}
	for _, def := range defs {
		s.definitions[def.Handle] = def
	}
	return s
}

// LoadFS walks fsys and parses every JSON or YAML file. Two files declaring
// the same handle are an error. A nil fsys yields an empty store.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := NewStore()
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(p string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDefinitionFile(p) {
			return nil
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("definition: read %s: %w", p, err)
		}
		def, err := Parse(data, p)
		if err != nil {
			return err
		}
		if prev, exists := store.definitions[def.Handle]; exists {
			return fmt.Errorf("definition: duplicate handle %q (files %s and %s)", def.Handle, prev.Source, p)
		}
		store.definitions[def.Handle] = def
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Get returns the definition registered under handle.
func (s *Store) Get(handle string) (Definition, bool) {
	if s == nil {
		return Definition{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	def, ok := s.definitions[handle]
	return def, ok
}

// Put adds or replaces a definition.
func (s *Store) Put(def Definition) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.definitions == nil {
		s.definitions = make(map[string]Definition)
	}
	s.definitions[def.Handle] = def
}

// Handles returns the stored handles sorted.
func (s *Store) Handles() []string {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	handles := make([]string, 0, len(s.definitions))
	for handle := range s.definitions {
		handles = append(handles, handle)
	}
	sort.Strings(handles)
	return handles
}

// Len returns the number of definitions.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.definitions)
}
