package service

import (
	"Murmur/internal/api/config"
	"Murmur/internal/api/dto"
	"Murmur/internal/pkg/consts"
	"Murmur/internal/pkg/storage"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testMod = config.ModerationConfig{
	EntryThreshold:   3,
	CommentThreshold: 2,
	RetentionDays:    7,
}

func newModerationService(store storage.Store) ModerationService {
	return NewModerationService(store, testCols, testMod, nil)
}

func TestReportBelowThreshold(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	svc := newModerationService(store)

	ids := seedEntries(t, store, 1)

	for i := int64(1); i < testMod.EntryThreshold; i++ {
		result, err := svc.Report(ctx, consts.KindEntry, ids[0], "")
		require.NoError(t, err)
		assert.Equal(t, i, result.Reports)
		assert.False(t, result.Archived)
	}

	got, err := store.Get(ctx, testCols.Entries, ids[0])
	require.NoError(t, err)
	assert.Equal(t, storage.StateActive, got.State)
}

func TestReportThresholdArchives(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	svc := newModerationService(store)

	ids := seedEntries(t, store, 1)

	var result *dto.ReportResultDTO
	var err error
	for i := int64(0); i < testMod.EntryThreshold; i++ {
		result, err = svc.Report(ctx, consts.KindEntry, ids[0], "spam")
		require.NoError(t, err)
	}

	// 第 threshold 次举报触发归档
	assert.True(t, result.Archived)
	assert.Equal(t, testMod.EntryThreshold, result.Reports)

	got, err := store.Get(ctx, testCols.Entries, ids[0])
	require.NoError(t, err)
	assert.Equal(t, storage.StateArchived, got.State)
}

func TestReportAfterArchivedIsNoop(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	svc := newModerationService(store)

	ids := seedEntries(t, store, 1)

	for i := int64(0); i < testMod.EntryThreshold; i++ {
		_, err := svc.Report(ctx, consts.KindEntry, ids[0], "")
		require.NoError(t, err)
	}

	// 终态后的举报退化为无操作，计数不再增长
	result, err := svc.Report(ctx, consts.KindEntry, ids[0], "")
	require.NoError(t, err)
	assert.False(t, result.Archived)
	assert.Equal(t, testMod.EntryThreshold, result.Reports)

	got, err := store.Get(ctx, testCols.Entries, ids[0])
	require.NoError(t, err)
	assert.Equal(t, storage.StateArchived, got.State)
	assert.Equal(t, testMod.EntryThreshold, got.Reports)
}

func TestReportNotFound(t *testing.T) {
	ctx := context.Background()
	svc := newModerationService(newTestStore())

	_, err := svc.Report(ctx, consts.KindEntry, "missing", "")
	assert.ErrorIs(t, err, ErrEntryNotFound)

	_, err = svc.Report(ctx, consts.KindComment, "missing", "")
	assert.ErrorIs(t, err, ErrCommentNotFound)

	_, err = svc.Report(ctx, "unknown", "whatever", "")
	assert.ErrorIs(t, err, ErrParamInvalid)
}

func TestReportCommentDeletes(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	modSvc := newModerationService(store)
	commentSvc := NewCommentService(store, testCols)

	ids := seedEntries(t, store, 1)
	comment, err := commentSvc.Create(ctx, &dto.CommentCreateDTO{
		EntryID: ids[0],
		Content: "bad comment",
	})
	require.NoError(t, err)

	// 阈值之前评论保持 active
	var result *dto.ReportResultDTO
	for i := int64(1); i < testMod.CommentThreshold; i++ {
		result, err = modSvc.Report(ctx, consts.KindComment, comment.ID, "")
		require.NoError(t, err)
		assert.Equal(t, i, result.Reports)
		assert.False(t, result.Archived)
	}
	got, err := store.Get(ctx, testCols.Comments, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, storage.StateActive, got.State)

	// 第 threshold 次举报触发删除
	result, err = modSvc.Report(ctx, consts.KindComment, comment.ID, "")
	require.NoError(t, err)
	assert.True(t, result.Archived)
	assert.Equal(t, testMod.CommentThreshold, result.Reports)

	got, err = store.Get(ctx, testCols.Comments, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, storage.StateDeleted, got.State)

	// 终态后的举报退化为无操作
	result, err = modSvc.Report(ctx, consts.KindComment, comment.ID, "")
	require.NoError(t, err)
	assert.False(t, result.Archived)
	assert.Equal(t, testMod.CommentThreshold, result.Reports)

	got, err = store.Get(ctx, testCols.Comments, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, testMod.CommentThreshold, got.Reports)
}
