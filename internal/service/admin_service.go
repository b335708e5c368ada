package service

import (
	"Murmur/internal/api/config"
	"Murmur/internal/api/dto"
	"Murmur/internal/pkg/consts"
	"Murmur/internal/pkg/security"
	"Murmur/internal/pkg/storage"
	"context"
	log "log/slog"
	"time"
)

type AdminService interface {
	Login(ctx context.Context, loginDTO *dto.AdminLoginDTO) (string, error)
	Data(ctx context.Context) (*dto.AdminDataDTO, error)
	TogglePin(ctx context.Context, entryID string) (bool, error)
	DeleteEntry(ctx context.Context, entryID string) error
}

type adminServiceImpl struct {
	store storage.Store
	cols  config.CollectionsConfig
	admin config.AdminConfig
}

func NewAdminService(store storage.Store, cols config.CollectionsConfig, admin config.AdminConfig) AdminService {
	return &adminServiceImpl{
		store: store,
		cols:  cols,
		admin: admin,
	}
}

// Login 校验管理口令并签发会话令牌，口令原文不写日志
func (s *adminServiceImpl) Login(ctx context.Context, loginDTO *dto.AdminLoginDTO) (string, error) {
	if s.admin.PasskeyHash == "" || s.admin.JWTSecret == "" {
		log.WarnContext(ctx, "admin login rejected, passkey or jwt secret not configured")
		return "", ErrPasskeyIncorrect
	}
	if err := security.CheckPasskeyHash(loginDTO.Passkey, s.admin.PasskeyHash); err != nil {
		return "", ErrPasskeyIncorrect
	}

	ttl := time.Duration(s.admin.TokenTTL) * time.Minute
	token, err := security.GenerateAdminToken(s.admin.JWTSecret, ttl)
	if err != nil {
		log.ErrorContext(ctx, "generate admin token failed", "err", err)
		return "", UnExpectedError
	}

	log.InfoContext(ctx, "admin login success")
	return token, nil
}

// Data 管理面板全量视图，含归档条目与已删除评论
func (s *adminServiceImpl) Data(ctx context.Context) (*dto.AdminDataDTO, error) {
	stats, err := s.collectStats(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := s.store.Find(ctx, s.cols.Entries, storage.Query{Limit: consts.MaxFeedLimit})
	if err != nil {
		return nil, mapStoreErr(ctx, err, UnExpectedError)
	}
	comments, err := s.store.Find(ctx, s.cols.Comments, storage.Query{Limit: consts.MaxFeedLimit})
	if err != nil {
		return nil, mapStoreErr(ctx, err, UnExpectedError)
	}

	return &dto.AdminDataDTO{
		Stats:    *stats,
		Entries:  toEntryDTOs(entries),
		Comments: toCommentDTOs(comments),
	}, nil
}

func (s *adminServiceImpl) collectStats(ctx context.Context) (*dto.AdminStatsDTO, error) {
	totalEntries, err := s.store.Count(ctx, s.cols.Entries, nil)
	if err != nil {
		return nil, mapStoreErr(ctx, err, UnExpectedError)
	}
	archived, err := s.store.Count(ctx, s.cols.Entries, []string{storage.StateArchived})
	if err != nil {
		return nil, mapStoreErr(ctx, err, UnExpectedError)
	}
	totalComments, err := s.store.Count(ctx, s.cols.Comments, nil)
	if err != nil {
		return nil, mapStoreErr(ctx, err, UnExpectedError)
	}
	deleted, err := s.store.Count(ctx, s.cols.Comments, []string{storage.StateDeleted})
	if err != nil {
		return nil, mapStoreErr(ctx, err, UnExpectedError)
	}

	return &dto.AdminStatsDTO{
		TotalEntries:    totalEntries,
		ArchivedEntries: archived,
		TotalComments:   totalComments,
		DeletedComments: deleted,
	}, nil
}

// TogglePin 置顶标记取反，返回新状态
func (s *adminServiceImpl) TogglePin(ctx context.Context, entryID string) (bool, error) {
	rec, err := s.store.Get(ctx, s.cols.Entries, entryID)
	if err != nil {
		return false, mapStoreErr(ctx, err, ErrEntryNotFound)
	}

	pinned := !rec.Pinned
	if err = s.store.SetPinned(ctx, s.cols.Entries, entryID, pinned); err != nil {
		return false, mapStoreErr(ctx, err, ErrEntryNotFound)
	}

	log.InfoContext(ctx, "entry pin toggled", "id", entryID, "pinned", pinned)
	return pinned, nil
}

// DeleteEntry 物理删除条目及其全部评论，连同条目引用的媒体对象
func (s *adminServiceImpl) DeleteEntry(ctx context.Context, entryID string) error {
	rec, err := s.store.Get(ctx, s.cols.Entries, entryID)
	if err != nil {
		return mapStoreErr(ctx, err, ErrEntryNotFound)
	}
	removeMedia(ctx, rec)

	comments, err := s.store.Find(ctx, s.cols.Comments, storage.Query{ParentID: entryID})
	if err != nil {
		return mapStoreErr(ctx, err, UnExpectedError)
	}
	for _, c := range comments {
		if err = s.store.Delete(ctx, s.cols.Comments, c.ID); err != nil {
			return mapStoreErr(ctx, err, UnExpectedError)
		}
	}

	if err = s.store.Delete(ctx, s.cols.Entries, entryID); err != nil {
		return mapStoreErr(ctx, err, ErrEntryNotFound)
	}

	log.InfoContext(ctx, "entry deleted by admin", "id", entryID, "comments", len(comments))
	return nil
}
