package db

import (
	"context"
	"sync"
	"sync/atomic"

	dbconn "ledgerlens-server/src/db"
	"ledgerlens-server/src/models"
)

const (
	allTransactionsKey = "transactions:all:"
	monthlyTotalsKey   = "transactions:monthly:"
)

// CachedStore serves the unfiltered reads from memory. Entries are keyed by
// the storage version, so rows added by another process are seen on the next
// read. A read that overlaps an insert in this process is not cached.
type CachedStore struct {
	Store
	cache      *dbconn.Cache
	generation atomic.Uint64

	mu      sync.Mutex
	current map[string]string // prefix -> key of the latest version
}

func NewCachedStore(store Store, cache *dbconn.Cache) *CachedStore {
	return &CachedStore{Store: store, cache: cache, current: map[string]string{}}
}

func (s *CachedStore) InsertIgnoringDuplicates(ctx context.Context, txns []models.ParsedTransaction) (int64, error) {
	s.generation.Add(1)
	n, err := s.Store.InsertIgnoringDuplicates(ctx, txns)
	s.Invalidate()
	return n, err
}

func (s *CachedStore) FetchAll(ctx context.Context) ([]models.StoredTransaction, error) {
	return cachedRead(ctx, s, allTransactionsKey, s.Store.FetchAll)
}

func (s *CachedStore) FetchMonthlyTotals(ctx context.Context) ([]models.MonthlyTotal, error) {
	return cachedRead(ctx, s, monthlyTotalsKey, s.Store.FetchMonthlyTotals)
}

// Invalidate drops every cached read and voids reads still in flight.
func (s *CachedStore) Invalidate() {
	s.generation.Add(1)
	s.cache.ClearAll()
}

func (s *CachedStore) Close() {
	s.Store.Close()
	s.cache.Close()
}

func cachedRead[T any](ctx context.Context, s *CachedStore, prefix string, fetch func(context.Context) ([]T, error)) ([]T, error) {
	gen := s.generation.Load()
	version, err := s.Store.Version(ctx)
	if err != nil {
		return nil, err
	}
	key := prefix + version

	if v, ok := s.cache.Get(key); ok {
		if cached, ok := v.([]T); ok {
			return clone(cached), nil
		}
	}
	rows, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	if s.generation.Load() == gen {
		s.remember(prefix, key)
		s.cache.Set(key, clone(rows))
	}
	return rows, nil
}

// remember records key as the live entry for prefix and drops the entry it
// replaces, so superseded versions do not pile up.
func (s *CachedStore) remember(prefix, key string) {
	s.mu.Lock()
	prev, ok := s.current[prefix]
	s.current[prefix] = key
	s.mu.Unlock()
	if ok && prev != key {
		s.cache.Del(prev)
	}
}

func clone[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}
