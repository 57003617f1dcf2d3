package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbconn "ledgerlens-server/src/db"
	"ledgerlens-server/src/models"
)

type countingStore struct {
	Store
	fetchAll int
	monthly  int
}

func (s *countingStore) FetchAll(ctx context.Context) ([]models.StoredTransaction, error) {
	s.fetchAll++
	return s.Store.FetchAll(ctx)
}

func (s *countingStore) FetchMonthlyTotals(ctx context.Context) ([]models.MonthlyTotal, error) {
	s.monthly++
	return s.Store.FetchMonthlyTotals(ctx)
}

func TestCachedStore_InvalidatesOnInsert(t *testing.T) {
	ctx := context.Background()
	cache, err := dbconn.NewCache()
	require.NoError(t, err)
	inner := &countingStore{Store: openTestStore(t)}
	store := NewCachedStore(inner, cache)
	defer cache.Close()

	txns := sampleTransactions()
	_, err = store.InsertIgnoringDuplicates(ctx, txns[:2])
	require.NoError(t, err)

	all, err := store.FetchAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	all[0].RecipientMerchant = "mutated"

	all, err = store.FetchAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Swiggy", all[0].RecipientMerchant)
	assert.Equal(t, 1, inner.fetchAll)

	_, err = store.FetchMonthlyTotals(ctx)
	require.NoError(t, err)
	_, err = store.FetchMonthlyTotals(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.monthly)

	n, err := store.InsertIgnoringDuplicates(ctx, txns)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	all, err = store.FetchAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)
	assert.Equal(t, 2, inner.fetchAll)
}

func newCachedStore(t *testing.T, inner Store) *CachedStore {
	t.Helper()
	cache, err := dbconn.NewCache()
	require.NoError(t, err)
	t.Cleanup(cache.Close)
	return NewCachedStore(inner, cache)
}

func TestCachedStore_SeesRowsFromAnotherWriter(t *testing.T) {
	ctx := context.Background()
	url := "sqlite://" + filepath.Join(t.TempDir(), "shared.db")
	reader, err := Open(ctx, url)
	require.NoError(t, err)
	t.Cleanup(reader.Close)
	writer, err := Open(ctx, url)
	require.NoError(t, err)
	t.Cleanup(writer.Close)

	store := newCachedStore(t, reader)
	txns := sampleTransactions()

	_, err = writer.InsertIgnoringDuplicates(ctx, txns[:1])
	require.NoError(t, err)
	all, err := store.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	totals, err := store.FetchMonthlyTotals(ctx)
	require.NoError(t, err)
	require.Len(t, totals, 1)

	_, err = writer.InsertIgnoringDuplicates(ctx, txns[1:])
	require.NoError(t, err)

	all, err = store.FetchAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)
	totals, err = store.FetchMonthlyTotals(ctx)
	require.NoError(t, err)
	assert.Len(t, totals, 2)
}

// slowStore returns its first FetchAll result only after release is closed.
type slowStore struct {
	Store
	started chan struct{}
	release chan struct{}
	calls   int
}

func (s *slowStore) FetchAll(ctx context.Context) ([]models.StoredTransaction, error) {
	txns, err := s.Store.FetchAll(ctx)
	s.calls++
	if s.calls == 1 {
		close(s.started)
		<-s.release
	}
	return txns, err
}

func TestCachedStore_ReadOverlappingInsertIsNotCached(t *testing.T) {
	ctx := context.Background()
	inner := &slowStore{Store: openTestStore(t), started: make(chan struct{}), release: make(chan struct{})}
	store := newCachedStore(t, inner)
	txns := sampleTransactions()

	_, err := store.InsertIgnoringDuplicates(ctx, txns[:1])
	require.NoError(t, err)

	type result struct {
		txns []models.StoredTransaction
		err  error
	}
	done := make(chan result, 1)
	go func() {
		all, err := store.FetchAll(ctx)
		done <- result{all, err}
	}()

	<-inner.started
	n, err := store.InsertIgnoringDuplicates(ctx, txns[1:])
	require.NoError(t, err)
	require.Equal(t, int64(3), n)
	close(inner.release)

	first := <-done
	require.NoError(t, first.err)
	assert.Len(t, first.txns, 1)

	all, err := store.FetchAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestCachedStore_InvalidateDropsEntries(t *testing.T) {
	ctx := context.Background()
	inner := &countingStore{Store: openTestStore(t)}
	store := newCachedStore(t, inner)

	_, err := store.InsertIgnoringDuplicates(ctx, sampleTransactions())
	require.NoError(t, err)

	_, err = store.FetchAll(ctx)
	require.NoError(t, err)
	store.Invalidate()
	_, err = store.FetchAll(ctx)
	require.NoError(t, err)
	_, err = store.FetchAll(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, inner.fetchAll)
}
