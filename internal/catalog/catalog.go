package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Item is a single catalog entry. The ID doubles as the display title, which
// is how the source data has always been keyed.
type Item struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// Load reads the catalog file. Two wire forms are accepted: the legacy pair
// form [["id", "description"], ...] and the object form
// [{"id": ..., "description": ...}, ...]. The catalog is required input; a
// missing file is an error, unlike the ledger.
func Load(path string) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	items, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	return items, nil
}

// Parse decodes catalog items from JSON and validates them.
func Parse(data []byte) ([]Item, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode entries: %w", err)
	}

	items := make([]Item, 0, len(raw))
	for i, entry := range raw {
		item, err := parseEntry(entry)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		items = append(items, item)
	}

	if err := Validate(items); err != nil {
		return nil, err
	}
	return items, nil
}

func parseEntry(entry json.RawMessage) (Item, error) {
	trimmed := strings.TrimSpace(string(entry))
	if strings.HasPrefix(trimmed, "[") {
		var pair []string
		if err := json.Unmarshal(entry, &pair); err != nil {
			return Item{}, fmt.Errorf("decode pair: %w", err)
		}
		if len(pair) != 2 {
			return Item{}, fmt.Errorf("pair must have 2 elements, got %d", len(pair))
		}
		return Item{ID: pair[0], Description: pair[1]}, nil
	}

	var item Item
	if err := json.Unmarshal(entry, &item); err != nil {
		return Item{}, fmt.Errorf("decode object: %w", err)
	}
	return item, nil
}

// Validate checks that every item has a non-empty, unique id.
func Validate(items []Item) error {
	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		id := strings.TrimSpace(item.ID)
		if id == "" {
			return fmt.Errorf("entry %d: empty id", i)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("entry %d: duplicate id %q", i, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// IDs returns the ids of the supplied items in order.
func IDs(items []Item) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return ids
}
