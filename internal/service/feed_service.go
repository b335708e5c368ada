package service

import (
	"Murmur/internal/api/config"
	"Murmur/internal/api/dto"
	"Murmur/internal/pkg/consts"
	"Murmur/internal/pkg/storage"
	"context"
)

type FeedService interface {
	ListEntries(ctx context.Context, limit int, includeHidden bool) ([]*dto.EntryDTO, error)
	ListComments(ctx context.Context, entryID string, includeHidden bool) ([]*dto.CommentDTO, error)
}

type feedServiceImpl struct {
	store storage.Store
	cols  config.CollectionsConfig
}

func NewFeedService(store storage.Store, cols config.CollectionsConfig) FeedService {
	return &feedServiceImpl{
		store: store,
		cols:  cols,
	}
}

// ListEntries 最新条目，置顶优先；默认只看 active，管理视图可放开
func (s *feedServiceImpl) ListEntries(ctx context.Context, limit int, includeHidden bool) ([]*dto.EntryDTO, error) {
	if limit <= 0 {
		limit = consts.DefaultFeedLimit
	}
	if limit > consts.MaxFeedLimit {
		limit = consts.MaxFeedLimit
	}

	q := storage.Query{Limit: int64(limit)}
	if !includeHidden {
		q.States = []string{storage.StateActive}
	}

	recs, err := s.store.Find(ctx, s.cols.Entries, q)
	if err != nil {
		return nil, mapStoreErr(ctx, err, UnExpectedError)
	}
	return toEntryDTOs(recs), nil
}

// ListComments 某条目下的评论，新的在前；条目不存在时报 404
func (s *feedServiceImpl) ListComments(ctx context.Context, entryID string, includeHidden bool) ([]*dto.CommentDTO, error) {
	if _, err := s.store.Get(ctx, s.cols.Entries, entryID); err != nil {
		return nil, mapStoreErr(ctx, err, ErrEntryNotFound)
	}

	q := storage.Query{
		ParentID: entryID,
		Limit:    consts.MaxFeedLimit,
	}
	if !includeHidden {
		q.States = []string{storage.StateActive}
	}

	recs, err := s.store.Find(ctx, s.cols.Comments, q)
	if err != nil {
		return nil, mapStoreErr(ctx, err, UnExpectedError)
	}
	return toCommentDTOs(recs), nil
}
