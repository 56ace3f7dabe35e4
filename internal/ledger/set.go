package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Set is an ordered, deduplicated collection of used catalog ids. Order is
// first-seen insertion order; membership is what matters semantically, but
// the persisted form keeps the order stable across rewrites.
type Set struct {
	order   []string
	members map[string]struct{}
}

// NewSet builds a Set from the supplied ids, deduplicating as it goes.
func NewSet(ids ...string) *Set {
	s := &Set{members: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Load reads the ledger file. A missing file is an empty set; a present but
// malformed file is a loud error. Duplicate entries in the file are
// normalized away.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewSet(), nil
		}
		return nil, fmt.Errorf("read ledger %s: %w", path, err)
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("parse ledger %s: %w", path, err)
	}
	return NewSet(ids...), nil
}

// Store writes the set as a whole-file snapshot, replacing prior contents.
// The write goes through a temp file in the same directory so a crash cannot
// leave a half-written ledger behind.
func (s *Set) Store(path string) error {
	data, err := json.MarshalIndent(s.IDs(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create ledger directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".used-*.json")
	if err != nil {
		return fmt.Errorf("create temp ledger: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp ledger: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace ledger: %w", err)
	}
	return nil
}

// Add inserts an id unless it is already present. Blank ids are ignored.
func (s *Set) Add(id string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return
	}
	if s.members == nil {
		s.members = make(map[string]struct{})
	}
	if _, ok := s.members[id]; ok {
		return
	}
	s.members[id] = struct{}{}
	s.order = append(s.order, id)
}

// Contains reports membership.
func (s *Set) Contains(id string) bool {
	if s == nil {
		return false
	}
	_, ok := s.members[id]
	return ok
}

// Len returns the number of distinct ids.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// IDs returns the ids in first-seen order.
func (s *Set) IDs() []string {
	if s == nil {
		return []string{}
	}
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Clear empties the set in place.
func (s *Set) Clear() {
	s.order = s.order[:0]
	s.members = make(map[string]struct{})
}
