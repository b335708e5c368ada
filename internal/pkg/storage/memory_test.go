package storage

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCol = "entries"

func newRecord(content string, createdAt time.Time) *Record {
	return &Record{
		Content:   content,
		State:     StateActive,
		CreatedAt: createdAt,
	}
}

func TestMemoryStoreCreateGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	rec := newRecord("hello", time.Now().UTC())
	id, err := store.Create(ctx, testCol, rec)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := store.Get(ctx, testCol, id)
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Content)
	assert.Equal(t, StateActive, got.State)

	_, err = store.Get(ctx, testCol, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreFindOrderAndLimit(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	base := time.Now().UTC()
	var ids []string
	for i := 0; i < 5; i++ {
		rec := newRecord(fmt.Sprintf("post-%d", i), base.Add(time.Duration(i)*time.Minute))
		id, err := store.Create(ctx, testCol, rec)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	// 最新的两条
	got, err := store.Find(ctx, testCol, Query{States: []string{StateActive}, Limit: 2})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "post-4", got[0].Content)
	assert.Equal(t, "post-3", got[1].Content)

	// 置顶的旧帖排到最前
	require.NoError(t, store.SetPinned(ctx, testCol, ids[0], true))
	got, err = store.Find(ctx, testCol, Query{States: []string{StateActive}, Limit: 3})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "post-0", got[0].Content)
	assert.True(t, got[0].Pinned)
	assert.Equal(t, "post-4", got[1].Content)
}

func TestMemoryStoreFindFiltersState(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	activeID, err := store.Create(ctx, testCol, newRecord("active", time.Now().UTC()))
	require.NoError(t, err)
	archivedID, err := store.Create(ctx, testCol, newRecord("archived", time.Now().UTC()))
	require.NoError(t, err)

	applied, err := store.Transition(ctx, testCol, archivedID, StateActive, StateArchived)
	require.NoError(t, err)
	require.True(t, applied)

	got, err := store.Find(ctx, testCol, Query{States: []string{StateActive}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, activeID, got[0].ID)

	// 不带状态过滤时归档记录也可见
	got, err = store.Find(ctx, testCol, Query{})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestMemoryStoreIncrCountersConcurrent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	id, err := store.Create(ctx, testCol, newRecord("votes", time.Now().UTC()))
	require.NoError(t, err)

	const n = 100
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, _ = store.IncrCounters(ctx, testCol, id, map[string]int64{FieldUpvotes: 1})
		}()
	}
	wg.Wait()

	got, err := store.Get(ctx, testCol, id)
	require.NoError(t, err)
	assert.Equal(t, int64(n), got.Upvotes)
}

func TestMemoryStoreTransitionSingleWinner(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	id, err := store.Create(ctx, testCol, newRecord("target", time.Now().UTC()))
	require.NoError(t, err)

	const n = 20
	results := make(chan bool, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			applied, err := store.Transition(ctx, testCol, id, StateActive, StateArchived)
			if err == nil {
				results <- applied
			}
		}()
	}
	wg.Wait()
	close(results)

	winners := 0
	for applied := range results {
		if applied {
			winners++
		}
	}
	assert.Equal(t, 1, winners)

	got, err := store.Get(ctx, testCol, id)
	require.NoError(t, err)
	assert.Equal(t, StateArchived, got.State)
	assert.False(t, got.StateChangedAt.IsZero())
}

func TestMemoryStorePurge(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	oldID, err := store.Create(ctx, testCol, newRecord("old", time.Now().UTC().Add(-10*24*time.Hour)))
	require.NoError(t, err)
	freshID, err := store.Create(ctx, testCol, newRecord("fresh", time.Now().UTC()))
	require.NoError(t, err)

	// 直接构造一条迁移时间已过期的归档记录
	_, err = store.Create(ctx, testCol, &Record{
		ID:             "expired",
		Content:        "expired",
		State:          StateArchived,
		CreatedAt:      time.Now().UTC().Add(-10 * 24 * time.Hour),
		StateChangedAt: time.Now().UTC().Add(-8 * 24 * time.Hour),
	})
	require.NoError(t, err)

	purged, err := store.Purge(ctx, testCol, StateArchived, time.Now().UTC().Add(-7*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	// active 记录不受影响
	_, err = store.Get(ctx, testCol, oldID)
	assert.NoError(t, err)
	_, err = store.Get(ctx, testCol, freshID)
	assert.NoError(t, err)
	_, err = store.Get(ctx, testCol, "expired")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreCount(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	for i := 0; i < 3; i++ {
		_, err := store.Create(ctx, testCol, newRecord(fmt.Sprintf("p%d", i), time.Now().UTC()))
		require.NoError(t, err)
	}
	id, err := store.Create(ctx, testCol, newRecord("victim", time.Now().UTC()))
	require.NoError(t, err)
	_, err = store.Transition(ctx, testCol, id, StateActive, StateArchived)
	require.NoError(t, err)

	total, err := store.Count(ctx, testCol, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)

	archived, err := store.Count(ctx, testCol, []string{StateArchived})
	require.NoError(t, err)
	assert.Equal(t, int64(1), archived)
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	id, err := store.Create(ctx, testCol, newRecord("gone", time.Now().UTC()))
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, testCol, id))
	_, err = store.Get(ctx, testCol, id)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, store.Delete(ctx, testCol, id), ErrNotFound)
}
