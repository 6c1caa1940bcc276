// Package favorites keeps the persisted set of favorite product ids.
package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/niksmo/visionframe/internal/core/domain"
	"github.com/niksmo/visionframe/internal/core/port"
)

// DefaultKey is the storage key of the favorites list.
const DefaultKey = "@visionframe_favorites"

// A Store is the write-through favorites set.
//
// Mutations are serialized by writeMu which is held across the
// persistence call, so at most one write per key is in flight.
// Readers take only mu and never wait for I/O.
type Store struct {
	kv  port.KVStorage
	key string

	loadMu  sync.Mutex
	loaded  chan struct{}
	loadErr error

	writeMu sync.Mutex
	mu      sync.RWMutex
	set     domain.FavoriteSet
}

func NewStore(kv port.KVStorage, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{
		kv:     kv,
		key:    key,
		loaded: make(chan struct{}),
		set:    domain.NewFavoriteSet(),
	}
}

// Load reads the persisted set once per store lifetime.
//
// A missing key yields an empty set. A read failure or malformed data
// also yields an empty set together with [domain.ErrPersistenceRead];
// the store is loaded in every case except a load interrupted by ctx,
// which can be retried. Repeated calls return the current set.
func (s *Store) Load(ctx context.Context) (domain.FavoriteSet, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	if s.Loaded() {
		return s.Set(), s.loadErr
	}

	err := s.load(ctx)
	if err != nil && ctx.Err() != nil {
		return s.Set(), err
	}
	s.loadErr = err
	close(s.loaded)
	return s.Set(), err
}

func (s *Store) load(ctx context.Context) error {
	const op = "favorites.Store.load"
	log := slog.With("op", op)

	raw, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			return nil
		}
		log.Warn("failed to read favorites, falling back to empty", "err", err)
		return fmt.Errorf("%s: %w: %w", op, domain.ErrPersistenceRead, err)
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		log.Warn("malformed favorites, falling back to empty", "err", err)
		return fmt.Errorf("%s: %w: %w", op, domain.ErrPersistenceRead, err)
	}

	s.mu.Lock()
	s.set = domain.NewFavoriteSet(ids...)
	s.mu.Unlock()

	log.Debug("favorites loaded", "count", len(ids))
	return nil
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

// Toggle flips membership of productID and persists the whole set
// before returning the new membership.
//
// Toggle waits for Load. When persisting fails the flip is kept in memory
// and an error wrapping [domain.ErrPersistenceWrite] is returned.
func (s *Store) Toggle(ctx context.Context, productID string) (bool, error) {
	const op = "favorites.Store.Toggle"

	select {
	case <-s.loaded:
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	next, isFavorite := s.set.Toggle(productID)
	s.set = next
	s.mu.Unlock()

	if err := s.persist(ctx, next); err != nil {
		return isFavorite, fmt.Errorf("%s: %w", op, err)
	}
	return isFavorite, nil
}

func (s *Store) persist(ctx context.Context, set domain.FavoriteSet) error {
	const op = "favorites.Store.persist"
	log := slog.With("op", op)

	data, err := json.Marshal(set.IDs())
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrPersistenceWrite, err)
	}
	if err := s.kv.Set(ctx, s.key, string(data)); err != nil {
		log.Warn("failed to persist favorites", "err", err)
		return fmt.Errorf("%w: %w", domain.ErrPersistenceWrite, err)
	}
	return nil
}

// IsFavorite is a pure in-memory lookup. It reports false while
// the store is not loaded; use Status to tell loading apart.
func (s *Store) IsFavorite(productID string) bool {
	return s.Status(productID) == domain.FavoriteYes
}

func (s *Store) Status(productID string) domain.FavoriteStatus {
	if !s.Loaded() {
		return domain.FavoriteUnknown
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.set.Has(productID) {
		return domain.FavoriteYes
	}
	return domain.FavoriteNo
}

// Set returns the current set.
func (s *Store) Set() domain.FavoriteSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.set
}

// IDs returns the favorite ids in insertion order and whether
// the store is loaded.
func (s *Store) IDs() ([]string, bool) {
	return s.Set().IDs(), s.Loaded()
}
