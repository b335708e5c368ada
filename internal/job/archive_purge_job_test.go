package job

import (
	"Murmur/internal/api/config"
	"Murmur/internal/pkg/storage"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCols = config.CollectionsConfig{
	Entries:  "entries",
	Comments: "comments",
}

func TestArchivePurgeJob(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()

	now := time.Now().UTC()

	// 过期的归档条目，应被清理
	_, err := store.Create(ctx, testCols.Entries, &storage.Record{
		ID:             "stale",
		Content:        "stale",
		State:          storage.StateArchived,
		CreatedAt:      now.Add(-30 * 24 * time.Hour),
		StateChangedAt: now.Add(-8 * 24 * time.Hour),
	})
	require.NoError(t, err)

	// 刚归档的条目，仍在保留期内
	_, err = store.Create(ctx, testCols.Entries, &storage.Record{
		ID:             "recent",
		Content:        "recent",
		State:          storage.StateArchived,
		CreatedAt:      now.Add(-30 * 24 * time.Hour),
		StateChangedAt: now.Add(-1 * 24 * time.Hour),
	})
	require.NoError(t, err)

	// active 条目不论多旧都不清理
	_, err = store.Create(ctx, testCols.Entries, &storage.Record{
		ID:        "ancient-active",
		Content:   "ancient",
		State:     storage.StateActive,
		CreatedAt: now.Add(-365 * 24 * time.Hour),
	})
	require.NoError(t, err)

	// 过期的已删除评论
	_, err = store.Create(ctx, testCols.Comments, &storage.Record{
		ID:             "dead-comment",
		ParentID:       "stale",
		Content:        "gone",
		State:          storage.StateDeleted,
		CreatedAt:      now.Add(-30 * 24 * time.Hour),
		StateChangedAt: now.Add(-8 * 24 * time.Hour),
	})
	require.NoError(t, err)

	job := NewArchivePurgeJob(store, testCols, config.ModerationConfig{RetentionDays: 7})
	job.Run()

	_, err = store.Get(ctx, testCols.Entries, "stale")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = store.Get(ctx, testCols.Entries, "recent")
	assert.NoError(t, err)

	_, err = store.Get(ctx, testCols.Entries, "ancient-active")
	assert.NoError(t, err)

	_, err = store.Get(ctx, testCols.Comments, "dead-comment")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestArchivePurgeJobDisabled(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()

	_, err := store.Create(ctx, testCols.Entries, &storage.Record{
		ID:             "stale",
		Content:        "stale",
		State:          storage.StateArchived,
		CreatedAt:      time.Now().UTC().Add(-30 * 24 * time.Hour),
		StateChangedAt: time.Now().UTC().Add(-20 * 24 * time.Hour),
	})
	require.NoError(t, err)

	// RetentionDays 为 0 时不清理
	job := NewArchivePurgeJob(store, testCols, config.ModerationConfig{RetentionDays: 0})
	job.Run()

	_, err = store.Get(ctx, testCols.Entries, "stale")
	assert.NoError(t, err)
}
