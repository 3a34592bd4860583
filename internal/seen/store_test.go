package seen_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"chine/internal/seen"
)

func TestStoreStartsEmptyWithoutFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen.json")

	store := seen.NewStore(path, nil)
	if store.Len() != 0 {
		t.Fatalf("expected empty store, got %d ids", store.Len())
	}
	if store.Contains("123") {
		t.Fatal("fresh store should not contain anything")
	}
}

func TestStoreToleratesCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	store := seen.NewStore(path, nil)
	if store.Len() != 0 {
		t.Fatalf("corrupt file should yield an empty set, got %d ids", store.Len())
	}
}

func TestStorePersistAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen.json")

	store := seen.NewStore(path, nil)
	store.Add("3001")
	store.Add("1002")
	store.Add("2003")
	store.Add("") // ignored
	if err := store.Persist(); err != nil {
		t.Fatalf("Persist returned error: %v", err)
	}

	reloaded := seen.NewStore(path, nil)
	if reloaded.Len() != 3 {
		t.Fatalf("expected 3 ids after reload, got %d", reloaded.Len())
	}
	for _, id := range []string{"1002", "2003", "3001"} {
		if !reloaded.Contains(id) {
			t.Fatalf("reloaded store missing %q", id)
		}
	}
}

func TestStorePersistSortsIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen.json")

	store := seen.NewStore(path, nil)
	store.Add("b")
	store.Add("a")
	store.Add("c")
	if err := store.Persist(); err != nil {
		t.Fatalf("Persist returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read persisted file: %v", err)
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		t.Fatalf("persisted file is not a JSON array: %v", err)
	}
	want := []string{"a", "b", "c"}
	for i, id := range want {
		if ids[i] != id {
			t.Fatalf("ids not sorted: got %v, want %v", ids, want)
		}
	}
}

func TestStorePersistCreatesStateDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state", "seen.json")

	store := seen.NewStore(path, nil)
	store.Add("42")
	if err := store.Persist(); err != nil {
		t.Fatalf("Persist returned error: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("persisted file missing: %v", err)
	}
}
