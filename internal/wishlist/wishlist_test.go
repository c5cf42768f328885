package wishlist

import (
	"testing"

	"github.com/desertthunder/mvx/internal/models"
	"github.com/desertthunder/mvx/internal/shared"
	"github.com/desertthunder/mvx/internal/store"
)

// setupTestStore creates a kv store over an in-memory database.
func setupTestStore(t *testing.T) *store.KVStore {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return store.NewKVStore(db, nil)
}

func TestManager(t *testing.T) {
	t.Run("Add Deduplicates By ID", func(t *testing.T) {
		mgr := NewManager(setupTestStore(t))

		mgr.Add(models.Movie{ID: 42, Title: "X"})
		mgr.Add(models.Movie{ID: 42, Title: "X again"})

		if mgr.Len() != 1 {
			t.Fatalf("expected 1 entry, got %d", mgr.Len())
		}
		if got := mgr.All()[0].Title; got != "X" {
			t.Errorf("first add should win, got title %q", got)
		}
	})

	t.Run("Remove Is Idempotent", func(t *testing.T) {
		mgr := NewManager(setupTestStore(t))

		mgr.Add(models.Movie{ID: 42})
		mgr.Remove(7)

		if mgr.Len() != 1 {
			t.Errorf("removing an absent id should not change the collection, got %d entries", mgr.Len())
		}

		mgr.Remove(42)
		mgr.Remove(42)

		if mgr.Len() != 0 {
			t.Errorf("expected empty collection, got %d entries", mgr.Len())
		}
	})

	t.Run("Contains", func(t *testing.T) {
		mgr := NewManager(setupTestStore(t))

		mgr.Add(models.Movie{ID: 42})

		if !mgr.Contains(42) {
			t.Error("expected Contains(42) to be true")
		}
		if mgr.Contains(7) {
			t.Error("expected Contains(7) to be false")
		}
	})

	t.Run("All Returns A Copy", func(t *testing.T) {
		mgr := NewManager(setupTestStore(t))

		mgr.Add(models.Movie{ID: 42, Title: "X"})

		all := mgr.All()
		all[0].Title = "mutated"

		if mgr.All()[0].Title != "X" {
			t.Error("caller mutation leaked into manager state")
		}
	})

	t.Run("Persists Across Instances", func(t *testing.T) {
		// Add two, remove one, then reload from the same store.
		s := setupTestStore(t)
		mgr := NewManager(s)

		mgr.Add(models.Movie{ID: 42, Title: "X"})
		mgr.Add(models.Movie{ID: 7, Title: "Y"})

		all := mgr.All()
		if len(all) != 2 || all[0].ID != 42 || all[1].ID != 7 {
			t.Fatalf("expected [42 7] in insertion order, got %+v", all)
		}

		mgr.Remove(42)

		reloaded := NewManager(s)
		all = reloaded.All()
		if len(all) != 1 || all[0].ID != 7 {
			t.Fatalf("expected [7] after reload, got %+v", all)
		}
	})

	t.Run("Clear", func(t *testing.T) {
		s := setupTestStore(t)
		mgr := NewManager(s)

		mgr.Add(models.Movie{ID: 42})
		mgr.Add(models.Movie{ID: 7})
		mgr.Clear()

		if mgr.Len() != 0 {
			t.Errorf("expected empty collection, got %d", mgr.Len())
		}

		if reloaded := NewManager(s); reloaded.Len() != 0 {
			t.Error("clear should persist")
		}
	})

	t.Run("Corrupt Persisted State Starts Empty", func(t *testing.T) {
		s := setupTestStore(t)
		s.Save(StorageKey, []byte(`{broken`))

		mgr := NewManager(s)
		if mgr.Len() != 0 {
			t.Errorf("expected empty collection from corrupt state, got %d", mgr.Len())
		}
	})
}
