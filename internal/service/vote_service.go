package service

import (
	"Murmur/internal/api/config"
	"Murmur/internal/api/dto"
	"Murmur/internal/pkg/consts"
	"Murmur/internal/pkg/storage"
	"context"
)

type VoteService interface {
	Vote(ctx context.Context, kind, targetID string, direction int) (*dto.VoteCountDTO, error)
}

type voteServiceImpl struct {
	store storage.Store
	cols  config.CollectionsConfig
}

func NewVoteService(store storage.Store, cols config.CollectionsConfig) VoteService {
	return &voteServiceImpl{
		store: store,
		cols:  cols,
	}
}

// Vote 对目标做方向自增并返回最新计数
// 计数走存储层原子自增；匿名场景下不做按人去重，重复投票是
// 既有产品行为，不在服务端拦截。
func (s *voteServiceImpl) Vote(ctx context.Context, kind, targetID string, direction int) (*dto.VoteCountDTO, error) {
	if direction != 1 && direction != -1 {
		return nil, ErrVoteInvalid
	}

	collection, notFound, err := s.resolveKind(kind)
	if err != nil {
		return nil, err
	}

	rec, err := s.store.Get(ctx, collection, targetID)
	if err != nil {
		return nil, mapStoreErr(ctx, err, notFound)
	}
	if rec.State != storage.StateActive {
		if kind == consts.KindEntry {
			return nil, ErrEntryArchived
		}
		return nil, ErrCommentDeleted
	}

	field := storage.FieldUpvotes
	if direction < 0 {
		field = storage.FieldDownvotes
	}

	updated, err := s.store.IncrCounters(ctx, collection, targetID, map[string]int64{field: 1})
	if err != nil {
		return nil, mapStoreErr(ctx, err, notFound)
	}

	return &dto.VoteCountDTO{
		Upvotes:   updated.Upvotes,
		Downvotes: updated.Downvotes,
	}, nil
}

func (s *voteServiceImpl) resolveKind(kind string) (collection string, notFound error, err error) {
	switch kind {
	case consts.KindEntry:
		return s.cols.Entries, ErrEntryNotFound, nil
	case consts.KindComment:
		return s.cols.Comments, ErrCommentNotFound, nil
	default:
		return "", nil, ErrParamInvalid
	}
}
