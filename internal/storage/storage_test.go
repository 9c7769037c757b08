package storage_test

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/tebakkabupaten/mapquiz/internal/database"
	"github.com/tebakkabupaten/mapquiz/internal/migrations"
	"github.com/tebakkabupaten/mapquiz/internal/storage"
)

func sqliteStore(t *testing.T) storage.Store {
	t.Helper()
	db, err := database.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := migrations.Run(db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}
	return storage.NewSQLiteStore(db)
}

func TestStores(t *testing.T) {
	backends := map[string]func(t *testing.T) storage.Store{
		"memory": func(t *testing.T) storage.Store { return storage.NewMemoryStore() },
		"sqlite": sqliteStore,
	}

	for name, newStore := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := newStore(t)

			if _, err := s.Get(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
				t.Errorf("Get(missing) = %v, want ErrNotFound", err)
			}

			if err := s.Set(ctx, "a", "1"); err != nil {
				t.Fatalf("Set: %v", err)
			}
			if err := s.Set(ctx, "b", "2"); err != nil {
				t.Fatalf("Set: %v", err)
			}

			got, err := s.Get(ctx, "a")
			if err != nil || got != "1" {
				t.Errorf("Get(a) = (%q, %v), want (1, nil)", got, err)
			}

			// Overwrite.
			if err := s.Set(ctx, "a", "updated"); err != nil {
				t.Fatalf("Set overwrite: %v", err)
			}
			got, err = s.Get(ctx, "a")
			if err != nil || got != "updated" {
				t.Errorf("Get(a) after overwrite = (%q, %v), want (updated, nil)", got, err)
			}

			keys, err := s.Keys(ctx)
			if err != nil {
				t.Fatalf("Keys: %v", err)
			}
			sort.Strings(keys)
			if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
				t.Errorf("Keys = %v, want [a b]", keys)
			}
		})
	}
}
