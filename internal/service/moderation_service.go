package service

import (
	"Murmur/internal/api/config"
	"Murmur/internal/api/dto"
	"Murmur/internal/pkg/consts"
	"Murmur/internal/pkg/kafka"
	"Murmur/internal/pkg/storage"
	"Murmur/internal/pkg/util"
	"context"
	log "log/slog"
	"time"
)

type ModerationService interface {
	Report(ctx context.Context, kind, targetID, reason string) (*dto.ReportResultDTO, error)
}

type moderationServiceImpl struct {
	store    storage.Store
	cols     config.CollectionsConfig
	mod      config.ModerationConfig
	producer kafka.Producer
}

func NewModerationService(store storage.Store, cols config.CollectionsConfig, mod config.ModerationConfig, producer kafka.Producer) ModerationService {
	return &moderationServiceImpl{
		store:    store,
		cols:     cols,
		mod:      mod,
		producer: producer,
	}
}

// Report 累加举报计数，达到阈值时把目标转入终态
// 终态由存储层条件更新保证只发生一次；并发举报下只有赢家
// 触发转移，其余请求只看到计数继续增长。
func (s *moderationServiceImpl) Report(ctx context.Context, kind, targetID, reason string) (*dto.ReportResultDTO, error) {
	collection, notFound, threshold, terminal, err := s.resolveKind(kind)
	if err != nil {
		return nil, err
	}

	rec, err := s.store.Get(ctx, collection, targetID)
	if err != nil {
		return nil, mapStoreErr(ctx, err, notFound)
	}

	// 举报原因只留痕不入库
	if reason = util.Sanitize(reason); reason != "" {
		log.InfoContext(ctx, "report received", "kind", kind, "id", targetID, "reason", reason)
	}

	// 已在终态的目标举报退化为无操作
	if rec.State != storage.StateActive {
		return &dto.ReportResultDTO{Reports: rec.Reports, Archived: false}, nil
	}

	updated, err := s.store.IncrCounters(ctx, collection, targetID, map[string]int64{
		storage.FieldReports: 1,
	})
	if err != nil {
		return nil, mapStoreErr(ctx, err, notFound)
	}

	result := &dto.ReportResultDTO{Reports: updated.Reports}
	if updated.Reports < threshold {
		return result, nil
	}

	applied, err := s.store.Transition(ctx, collection, targetID, storage.StateActive, terminal)
	if err != nil {
		return nil, mapStoreErr(ctx, err, notFound)
	}
	result.Archived = applied

	if applied {
		log.InfoContext(ctx, "report threshold reached", "kind", kind, "id", targetID, "reports", updated.Reports, "state", terminal)
		s.publishEvent(ctx, kind, targetID, updated.Reports, terminal)
	}
	return result, nil
}

// publishEvent 审核事件尽力投递，失败只记日志不影响主流程
func (s *moderationServiceImpl) publishEvent(ctx context.Context, kind, targetID string, reports int64, state string) {
	if s.producer == nil {
		return
	}
	evt := &kafka.ModerationEvent{
		Kind:    kind,
		ID:      targetID,
		Reports: reports,
		State:   state,
		At:      time.Now().UTC(),
	}
	if err := s.producer.PublishModeration(ctx, evt); err != nil {
		log.ErrorContext(ctx, "publish moderation event failed", "err", err, "id", targetID)
	}
}

func (s *moderationServiceImpl) resolveKind(kind string) (collection string, notFound error, threshold int64, terminal string, err error) {
	switch kind {
	case consts.KindEntry:
		return s.cols.Entries, ErrEntryNotFound, s.mod.EntryThreshold, storage.StateArchived, nil
	case consts.KindComment:
		return s.cols.Comments, ErrCommentNotFound, s.mod.CommentThreshold, storage.StateDeleted, nil
	default:
		return "", nil, 0, "", ErrParamInvalid
	}
}
