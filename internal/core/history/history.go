// Package history keeps the persisted most-recent-first list
// of accepted search queries.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/niksmo/visionframe/internal/core/domain"
	"github.com/niksmo/visionframe/internal/core/port"
)

// DefaultKey is the storage key of the search history list.
const DefaultKey = "@search_history"

// A Store is the write-through search history.
//
// Record and Clear wait for the first completed Load, so the persisted
// list is never replaced by a store that has not read it yet.
type Store struct {
	kv    port.KVStorage
	key   string
	limit int

	loadMu  sync.Mutex
	loaded  chan struct{}
	loadErr error

	writeMu sync.Mutex
	mu      sync.RWMutex
	entries []string
}

func NewStore(kv port.KVStorage, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{
		kv:      kv,
		key:     key,
		limit:   domain.MaxSearchHistory,
		loaded:  make(chan struct{}),
		entries: []string{},
	}
}

// Load reads the persisted history once per store lifetime.
//
// A missing key yields an empty history. Read failures and malformed
// data fall back to an empty history and return [domain.ErrPersistenceRead].
// A load interrupted by ctx leaves the store unloaded so it can be retried.
// Repeated calls after a completed load return the current history.
func (s *Store) Load(ctx context.Context) ([]string, error) {
	const op = "history.Store.Load"
	log := slog.With("op", op)

	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	if s.Loaded() {
		return s.Entries(), s.loadErr
	}

	entries, err := s.read(ctx)
	if err != nil {
		err = fmt.Errorf("%s: %w: %w", op, domain.ErrPersistenceRead, err)
		if ctx.Err() != nil {
			return s.Entries(), err
		}
		log.Warn("failed to read search history, falling back to empty", "err", err)
	}

	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()

	s.loadErr = err
	close(s.loaded)
	return slices.Clone(entries), err
}

// Loaded reports whether Load has completed.
func (s *Store) Loaded() bool {
	select {
	case <-s.loaded:
		return true
	default:
		return false
	}
}

// Ready is closed when Load completes.
func (s *Store) Ready() <-chan struct{} {
	return s.loaded
}

func (s *Store) waitLoaded(ctx context.Context) error {
	select {
	case <-s.loaded:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) read(ctx context.Context) ([]string, error) {
	raw, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			return []string{}, nil
		}
		return []string{}, err
	}

	var entries []string
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return []string{}, err
	}
	return s.normalize(entries), nil
}

// normalize drops empty and repeated entries and applies the limit
// to data that could have been written by an older client.
func (s *Store) normalize(entries []string) []string {
	out := make([]string, 0, min(len(entries), s.limit))
	for _, e := range entries {
		if e == "" || slices.Contains(out, e) {
			continue
		}
		out = append(out, e)
		if len(out) == s.limit {
			break
		}
	}
	return out
}

// Record moves query to the front of the history, truncates it
// to the limit and persists the full list before returning it.
//
// Record waits for Load.
// When persisting fails the in-memory history keeps the change
// and an error wrapping [domain.ErrPersistenceWrite] is returned.
func (s *Store) Record(ctx context.Context, query string) ([]string, error) {
	const op = "history.Store.Record"

	if query == "" {
		return s.Entries(), fmt.Errorf("%s: %w", op, domain.ErrEmptyQuery)
	}

	if err := s.waitLoaded(ctx); err != nil {
		return s.Entries(), fmt.Errorf("%s: %w", op, err)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	next := make([]string, 0, s.limit)
	next = append(next, query)
	for _, e := range s.entries {
		if e != query && len(next) < s.limit {
			next = append(next, e)
		}
	}
	s.entries = next
	s.mu.Unlock()

	if err := s.persist(ctx, next); err != nil {
		return slices.Clone(next), fmt.Errorf("%s: %w", op, err)
	}
	return slices.Clone(next), nil
}

// Clear empties the history and persists the empty list.
// It waits for Load.
func (s *Store) Clear(ctx context.Context) error {
	const op = "history.Store.Clear"

	if err := s.waitLoaded(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	s.entries = []string{}
	s.mu.Unlock()

	if err := s.persist(ctx, []string{}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Store) persist(ctx context.Context, entries []string) error {
	const op = "history.Store.persist"
	log := slog.With("op", op)

	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrPersistenceWrite, err)
	}
	if err := s.kv.Set(ctx, s.key, string(data)); err != nil {
		log.Warn("failed to persist search history", "err", err)
		return fmt.Errorf("%w: %w", domain.ErrPersistenceWrite, err)
	}
	return nil
}

// Entries returns a copy of the history, most recent first.
func (s *Store) Entries() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.entries)
}
