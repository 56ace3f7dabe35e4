package catalog_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mangareel/internal/catalog"
)

func TestParsePairForm(t *testing.T) {
	data := []byte(`[["Berserk", "Dark fantasy epic"], ["One Piece", "Pirates"]]`)
	items, err := catalog.Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != "Berserk" || items[0].Description != "Dark fantasy epic" {
		t.Fatalf("unexpected first item: %#v", items[0])
	}
}

func TestParseObjectForm(t *testing.T) {
	data := []byte(`[{"id": "Vagabond", "description": "Swordsman drama"}]`)
	items, err := catalog.Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(items) != 1 || items[0].ID != "Vagabond" {
		t.Fatalf("unexpected items: %#v", items)
	}
}

func TestParseMixedForms(t *testing.T) {
	data := []byte(`[["Berserk", "Dark fantasy"], {"id": "Vagabond", "description": "Swordsman"}]`)
	items, err := catalog.Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(items) != 2 || items[1].ID != "Vagabond" {
		t.Fatalf("unexpected items: %#v", items)
	}
}

func TestParseRejectsDuplicates(t *testing.T) {
	data := []byte(`[["Berserk", "a"], ["Berserk", "b"]]`)
	if _, err := catalog.Parse(data); err == nil || !strings.Contains(err.Error(), "duplicate id") {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestParseRejectsEmptyID(t *testing.T) {
	data := []byte(`[["", "empty"]]`)
	if _, err := catalog.Parse(data); err == nil || !strings.Contains(err.Error(), "empty id") {
		t.Fatalf("expected empty id error, got %v", err)
	}
}

func TestParseRejectsMalformedPair(t *testing.T) {
	data := []byte(`[["only-one-element"]]`)
	if _, err := catalog.Parse(data); err == nil {
		t.Fatal("expected error for short pair")
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := catalog.Load(filepath.Join(t.TempDir(), "absent.json"))
	if err == nil {
		t.Fatal("expected error for missing catalog")
	}
}

func TestLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manga_list.json")
	if err := os.WriteFile(path, []byte(`[["Berserk", "Dark fantasy"]]`), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	items, err := catalog.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := catalog.IDs(items); len(got) != 1 || got[0] != "Berserk" {
		t.Fatalf("unexpected ids: %v", got)
	}
}
