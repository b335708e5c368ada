package service

import (
	"Murmur/internal/api/config"
	"Murmur/internal/api/dto"
	"Murmur/internal/pkg/consts"
	"Murmur/internal/pkg/storage"
	"Murmur/internal/pkg/util"
	"context"
	log "log/slog"
	"time"
	"unicode/utf8"
)

type CommentService interface {
	Create(ctx context.Context, createDTO *dto.CommentCreateDTO) (*dto.CommentDTO, error)
}

type commentServiceImpl struct {
	store storage.Store
	cols  config.CollectionsConfig
}

func NewCommentService(store storage.Store, cols config.CollectionsConfig) CommentService {
	return &commentServiceImpl{
		store: store,
		cols:  cols,
	}
}

// Create 在存在且仍为 active 的条目下新建评论
func (s *commentServiceImpl) Create(ctx context.Context, createDTO *dto.CommentCreateDTO) (*dto.CommentDTO, error) {
	parent, err := s.store.Get(ctx, s.cols.Entries, createDTO.EntryID)
	if err != nil {
		return nil, mapStoreErr(ctx, err, ErrEntryNotFound)
	}
	if parent.State != storage.StateActive {
		return nil, ErrEntryArchived
	}

	content := util.Sanitize(createDTO.Content)
	if content == "" {
		return nil, ErrCommentEmpty
	}
	if utf8.RuneCountInString(content) > consts.MaxCommentContentLen {
		return nil, ErrCommentTooLong
	}

	rec := &storage.Record{
		ParentID:  parent.ID,
		Content:   content,
		State:     storage.StateActive,
		CreatedAt: time.Now().UTC(),
	}
	if _, err = s.store.Create(ctx, s.cols.Comments, rec); err != nil {
		return nil, mapStoreErr(ctx, err, UnExpectedError)
	}

	log.InfoContext(ctx, "comment created", "id", rec.ID, "entry_id", parent.ID)
	return toCommentDTO(rec), nil
}
