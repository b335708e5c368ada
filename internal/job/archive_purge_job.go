package job

import (
	"Murmur/internal/api/config"
	"Murmur/internal/pkg/logger"
	"Murmur/internal/pkg/minio"
	"Murmur/internal/pkg/storage"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// ArchivePurgeJob 清理超过保留期的归档条目与已删除评论
type ArchivePurgeJob struct {
	store storage.Store
	cols  config.CollectionsConfig
	mod   config.ModerationConfig
}

func NewArchivePurgeJob(store storage.Store, cols config.CollectionsConfig, mod config.ModerationConfig) *ArchivePurgeJob {
	return &ArchivePurgeJob{
		store: store,
		cols:  cols,
		mod:   mod,
	}
}

func (s *ArchivePurgeJob) Run() {
	ctx := logger.WithTraceID(context.Background(), "job-purge-"+uuid.NewString())

	retention := time.Duration(s.mod.RetentionDays) * 24 * time.Hour
	if retention <= 0 {
		return
	}
	cutoff := time.Now().UTC().Add(-retention)

	// 先清对象存储，再删记录，避免记录没了之后对象键找不回来
	s.removeExpiredMedia(ctx, cutoff)

	entries, err := s.store.Purge(ctx, s.cols.Entries, storage.StateArchived, cutoff)
	if err != nil {
		log.ErrorContext(ctx, "purge archived entries failed", "err", err)
		return
	}

	comments, err := s.store.Purge(ctx, s.cols.Comments, storage.StateDeleted, cutoff)
	if err != nil {
		log.ErrorContext(ctx, "purge deleted comments failed", "err", err)
		return
	}

	if entries > 0 || comments > 0 {
		log.InfoContext(ctx, "archive purge finished", "entries", entries, "comments", comments, "cutoff", cutoff)
	}
}

// removeExpiredMedia 删除即将被清理的归档条目引用的媒体对象
// 对象删除尽力而为，单个失败不影响后续的记录清理。
func (s *ArchivePurgeJob) removeExpiredMedia(ctx context.Context, cutoff time.Time) {
	if !minio.Enabled() {
		return
	}

	recs, err := s.store.Find(ctx, s.cols.Entries, storage.Query{States: []string{storage.StateArchived}})
	if err != nil {
		log.ErrorContext(ctx, "list archived entries for media cleanup failed", "err", err)
		return
	}

	for _, rec := range recs {
		changedAt := rec.StateChangedAt
		if changedAt.IsZero() {
			changedAt = rec.CreatedAt
		}
		if !changedAt.Before(cutoff) {
			continue
		}
		for _, key := range rec.MediaKeys() {
			if err := minio.DeleteFile(ctx, key); err != nil {
				log.WarnContext(ctx, "remove media object failed", "key", key, "err", err)
			}
		}
	}
}
