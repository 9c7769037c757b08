// Package history persists the per-province record of past play sessions.
// Entries are capped at the five most recent games and stored through the
// obfuscation layer, so neither the province labels nor the results are
// legible in the backing store.
package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tebakkabupaten/mapquiz/internal/obfuscate"
	"github.com/tebakkabupaten/mapquiz/internal/quiz"
	"github.com/tebakkabupaten/mapquiz/internal/storage"
)

// MaxItems is the number of games kept per province; older entries are
// silently dropped.
const MaxItems = 5

// Item is one finished game. Immutable once created.
type Item struct {
	Mode quiz.Mode `json:"mode"`
	// Date is the finish time formatted "dd/mm/yyyy, HH:MM" (24-hour).
	Date   string                  `json:"date"`
	Result map[string]quiz.Verdict `json:"result"`
	// TimeSeconds is set only for timed modes.
	TimeSeconds *int `json:"time,omitempty"`
}

// Store reads and writes capped per-province history lists.
type Store struct {
	kv    storage.Store
	codec *obfuscate.Codec
	now   func() time.Time
}

func New(kv storage.Store) (*Store, error) {
	codec, err := obfuscate.NewCodec()
	if err != nil {
		return nil, fmt.Errorf("initializing codec: %w", err)
	}
	return &Store{kv: kv, codec: codec, now: time.Now}, nil
}

// Save records a finished game for the province: prepends it to the existing
// list, truncates to MaxItems, and writes the re-encrypted list back under
// the province's derived key. elapsedSeconds is recorded only for timed
// modes.
func (s *Store) Save(ctx context.Context, province string, mode quiz.Mode, verdicts map[string]quiz.Verdict, elapsedSeconds int) error {
	item := Item{
		Mode:   mode,
		Date:   s.now().Format("02/01/2006, 15:04"),
		Result: verdicts,
	}
	if mode.Timed() {
		item.TimeSeconds = &elapsedSeconds
	}

	existing, err := s.History(ctx, province)
	if err != nil {
		return err
	}

	updated := append([]Item{item}, existing...)
	if len(updated) > MaxItems {
		updated = updated[:MaxItems]
	}

	encrypted, err := s.codec.Encrypt(updated)
	if err != nil {
		return fmt.Errorf("encrypting history: %w", err)
	}
	if err := s.kv.Set(ctx, obfuscate.DeriveKey(province), encrypted); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	return nil
}

// History returns the province's saved games, most recent first. Absent or
// undecryptable entries come back as an empty list, never an error.
func (s *Store) History(ctx context.Context, province string) ([]Item, error) {
	raw, err := s.kv.Get(ctx, obfuscate.DeriveKey(province))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}

	var items []Item
	if !s.codec.Decrypt(raw, &items) {
		// Corrupt or tampered entry: treat as empty history.
		return nil, nil
	}
	return items, nil
}

// ProvincesWithHistory filters candidates to those with a stored entry, by
// testing derived-key membership against the store's key set.
func (s *Store) ProvincesWithHistory(ctx context.Context, candidates []string) ([]string, error) {
	keys, err := s.kv.Keys(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing keys: %w", err)
	}
	present := make(map[string]bool, len(keys))
	for _, k := range keys {
		present[k] = true
	}

	var out []string
	for _, p := range candidates {
		if present[obfuscate.DeriveKey(p)] {
			out = append(out, p)
		}
	}
	return out, nil
}
