package history

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/tebakkabupaten/mapquiz/internal/obfuscate"
	"github.com/tebakkabupaten/mapquiz/internal/quiz"
	"github.com/tebakkabupaten/mapquiz/internal/storage"
)

func newTestStore(t *testing.T) (*Store, *storage.MemoryStore) {
	t.Helper()
	kv := storage.NewMemoryStore()
	s, err := New(kv)
	if err != nil {
		t.Fatalf("creating history store: %v", err)
	}
	return s, kv
}

func TestSaveAndHistory(t *testing.T) {
	s, _ := newTestStore(t)
	s.now = func() time.Time {
		return time.Date(2026, 8, 29, 14, 5, 0, 0, time.UTC)
	}
	ctx := context.Background()

	verdicts := map[string]quiz.Verdict{
		"Semarang": quiz.VerdictCorrect,
		"Kudus":    quiz.VerdictWrong,
	}
	if err := s.Save(ctx, "Jawa Tengah", quiz.ModeCasual, verdicts, 0); err != nil {
		t.Fatalf("Save: %v", err)
	}

	items, err := s.History(ctx, "Jawa Tengah")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	item := items[0]
	if item.Mode != quiz.ModeCasual {
		t.Errorf("mode = %q, want casual", item.Mode)
	}
	if item.Date != "29/08/2026, 14:05" {
		t.Errorf("date = %q, want 29/08/2026, 14:05", item.Date)
	}
	if item.Result["Semarang"] != quiz.VerdictCorrect {
		t.Errorf("result = %v", item.Result)
	}
	if item.TimeSeconds != nil {
		t.Error("untimed mode recorded a time")
	}
}

func TestTimedModeRecordsElapsed(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, "Bali", quiz.ModeTimeTrial, nil, 95); err != nil {
		t.Fatalf("Save: %v", err)
	}

	items, err := s.History(ctx, "Bali")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if items[0].TimeSeconds == nil || *items[0].TimeSeconds != 95 {
		t.Errorf("time = %v, want 95", items[0].TimeSeconds)
	}
}

func TestCapAtFiveMostRecentFirst(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		verdicts := map[string]quiz.Verdict{
			fmt.Sprintf("game-%d", i): quiz.VerdictCorrect,
		}
		if err := s.Save(ctx, "Aceh", quiz.ModeCasual, verdicts, 0); err != nil {
			t.Fatalf("Save #%d: %v", i, err)
		}
	}

	items, err := s.History(ctx, "Aceh")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(items) != MaxItems {
		t.Fatalf("got %d items, want %d", len(items), MaxItems)
	}
	// Newest first: saves 5 down to 1, save 0 dropped.
	for i, item := range items {
		wantArea := fmt.Sprintf("game-%d", 5-i)
		if _, ok := item.Result[wantArea]; !ok {
			t.Errorf("item %d = %v, want area %s", i, item.Result, wantArea)
		}
	}
}

func TestHistoryAbsent(t *testing.T) {
	s, _ := newTestStore(t)

	items, err := s.History(context.Background(), "Papua")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("got %d items for unplayed province, want 0", len(items))
	}
}

func TestHistoryCorruptEntry(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()

	key := obfuscate.DeriveKey("Banten")
	if err := kv.Set(ctx, key, "corrupted nonsense"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	items, err := s.History(ctx, "Banten")
	if err != nil {
		t.Fatalf("History on corrupt entry errored: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("got %d items from corrupt entry, want 0", len(items))
	}

	// Saving over the corrupt entry starts a fresh list.
	if err := s.Save(ctx, "Banten", quiz.ModeCasual, nil, 0); err != nil {
		t.Fatalf("Save over corrupt entry: %v", err)
	}
	items, _ = s.History(ctx, "Banten")
	if len(items) != 1 {
		t.Errorf("got %d items after recovery save, want 1", len(items))
	}
}

func TestProvincesWithHistory(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, "Bali", quiz.ModeCasual, nil, 0); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save(ctx, "Riau", quiz.ModeSuddenDeath, nil, 0); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.ProvincesWithHistory(ctx, []string{"Aceh", "Bali", "Jambi", "Riau"})
	if err != nil {
		t.Fatalf("ProvincesWithHistory: %v", err)
	}
	if len(got) != 2 || got[0] != "Bali" || got[1] != "Riau" {
		t.Errorf("got %v, want [Bali Riau]", got)
	}
}

func TestStoredKeysAreOpaque(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, "Jawa Barat", quiz.ModeCasual, nil, 0); err != nil {
		t.Fatalf("Save: %v", err)
	}

	keys, err := kv.Keys(ctx)
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	for _, k := range keys {
		if k == "Jawa Barat" {
			t.Error("province label stored in plaintext")
		}
	}
}
