package service

import (
	"Murmur/internal/api/dto"
	"Murmur/internal/pkg/minio"
	"Murmur/internal/pkg/storage"
	"context"
	"errors"
	log "log/slog"

	"github.com/jinzhu/copier"
)

// mapStoreErr 把存储层错误翻译成业务错误，后端细节只进日志不出响应
func mapStoreErr(ctx context.Context, err error, notFound error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return notFound
	case errors.Is(err, storage.ErrNotConfigured):
		log.ErrorContext(ctx, "storage not configured", "err", err)
		return ErrStoreUnavailable
	default:
		log.ErrorContext(ctx, "storage backend error", "err", err)
		return UnExpectedError
	}
}

func toEntryDTO(rec *storage.Record) *dto.EntryDTO {
	var d dto.EntryDTO
	_ = copier.Copy(&d, rec)
	if d.Tags == nil {
		d.Tags = []string{}
	}

	// 对外暴露访问 URL 而不是对象键
	d.Images = make([]string, 0, len(rec.Images))
	for _, key := range rec.Images {
		d.Images = append(d.Images, minio.GetPublicURL(key))
	}
	d.Video = minio.GetPublicURL(rec.Video)
	return &d
}

// removeMedia 删除记录关联的对象存储文件，失败只记日志不阻断主流程
func removeMedia(ctx context.Context, rec *storage.Record) {
	if !minio.Enabled() {
		return
	}
	for _, key := range rec.MediaKeys() {
		if err := minio.DeleteFile(ctx, key); err != nil {
			log.WarnContext(ctx, "remove media object failed", "key", key, "err", err)
		}
	}
}

func toEntryDTOs(recs []*storage.Record) []*dto.EntryDTO {
	out := make([]*dto.EntryDTO, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toEntryDTO(rec))
	}
	return out
}

func toCommentDTO(rec *storage.Record) *dto.CommentDTO {
	var d dto.CommentDTO
	_ = copier.Copy(&d, rec)
	d.EntryID = rec.ParentID
	return &d
}

func toCommentDTOs(recs []*storage.Record) []*dto.CommentDTO {
	out := make([]*dto.CommentDTO, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toCommentDTO(rec))
	}
	return out
}
