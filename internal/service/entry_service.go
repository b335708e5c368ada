package service

import (
	"Murmur/internal/api/config"
	"Murmur/internal/api/dto"
	"Murmur/internal/pkg/consts"
	"Murmur/internal/pkg/minio"
	"Murmur/internal/pkg/storage"
	"Murmur/internal/pkg/util"
	"bytes"
	"context"
	"io"
	log "log/slog"
	"mime/multipart"
	"net/http"
	"path"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

type EntryService interface {
	Submit(ctx context.Context, submitDTO *dto.SubmitDTO, images []*multipart.FileHeader, video *multipart.FileHeader) (*dto.EntryDTO, error)
	IncrView(ctx context.Context, entryID string) error
}

type entryServiceImpl struct {
	store storage.Store
	cols  config.CollectionsConfig
}

func NewEntryService(store storage.Store, cols config.CollectionsConfig) EntryService {
	return &entryServiceImpl{
		store: store,
		cols:  cols,
	}
}

// Submit 校验、清洗并写入新条目
// 校验全部通过之前不产生任何写入；媒体先传对象存储再落记录，
// 中途失败客户端会看到错误并可重试（接受可能的重复提交）。
func (s *entryServiceImpl) Submit(ctx context.Context, submitDTO *dto.SubmitDTO, images []*multipart.FileHeader, video *multipart.FileHeader) (*dto.EntryDTO, error) {
	content := util.Sanitize(submitDTO.Content)
	if content == "" {
		return nil, ErrContentEmpty
	}
	if utf8.RuneCountInString(content) > consts.MaxEntryContentLen {
		return nil, ErrContentTooLong
	}

	tags := util.ParseTags(submitDTO.Tags)

	if len(images) > consts.MaxImagesPerEntry {
		return nil, ErrTooManyImages
	}
	for _, fh := range images {
		if err := checkImageHeader(fh); err != nil {
			return nil, err
		}
	}
	if video != nil {
		if !util.AllowedVideo(video.Filename) {
			return nil, ErrFileNotSupported
		}
		if video.Size > consts.MaxVideoSize {
			return nil, ErrFileTooLarge
		}
	}

	imageKeys := make([]string, 0, len(images))
	for _, fh := range images {
		key, err := s.uploadImage(ctx, fh)
		if err != nil {
			return nil, err
		}
		imageKeys = append(imageKeys, key)
	}

	var videoKey string
	if video != nil {
		key, err := s.uploadVideo(ctx, video)
		if err != nil {
			return nil, err
		}
		videoKey = key
	}

	rec := &storage.Record{
		Content:   content,
		Tags:      tags,
		Images:    imageKeys,
		Video:     videoKey,
		State:     storage.StateActive,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.store.Create(ctx, s.cols.Entries, rec); err != nil {
		return nil, mapStoreErr(ctx, err, UnExpectedError)
	}

	log.InfoContext(ctx, "entry submitted", "id", rec.ID, "tags", len(tags), "images", len(imageKeys))
	return toEntryDTO(rec), nil
}

// IncrView 浏览计数自增
func (s *entryServiceImpl) IncrView(ctx context.Context, entryID string) error {
	_, err := s.store.IncrCounters(ctx, s.cols.Entries, entryID, map[string]int64{
		storage.FieldViews: 1,
	})
	if err != nil {
		return mapStoreErr(ctx, err, ErrEntryNotFound)
	}
	return nil
}

func checkImageHeader(fh *multipart.FileHeader) error {
	if !util.AllowedImage(fh.Filename) {
		return ErrFileNotSupported
	}
	if fh.Size > consts.MaxImageSize {
		return ErrFileTooLarge
	}
	return nil
}

// uploadImage 解码校验后上传，防止带图片扩展名的非图片内容入库
func (s *entryServiceImpl) uploadImage(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	reader, err := fh.Open()
	if err != nil {
		return "", ErrParamInvalid
	}
	defer func() { _ = reader.Close() }()

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", ErrParamInvalid
	}

	if _, _, err = util.ProbeImage(data); err != nil {
		return "", ErrFileNotSupported
	}

	contentType := http.DetectContentType(data)
	objectName := objectName(fh.Filename)
	key, err := minio.UploadFile(ctx, objectName, bytes.NewReader(data), int64(len(data)), contentType)
	if err != nil {
		log.ErrorContext(ctx, "image upload failed", "err", err)
		return "", UnExpectedError
	}
	return key, nil
}

func (s *entryServiceImpl) uploadVideo(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	reader, err := fh.Open()
	if err != nil {
		return "", ErrParamInvalid
	}
	defer func() { _ = reader.Close() }()

	contentType := "video/mp4"
	if strings.EqualFold(path.Ext(fh.Filename), ".webm") {
		contentType = "video/webm"
	}

	objectName := objectName(fh.Filename)
	key, err := minio.UploadFile(ctx, objectName, reader, fh.Size, contentType)
	if err != nil {
		log.ErrorContext(ctx, "video upload failed", "err", err)
		return "", UnExpectedError
	}
	return key, nil
}

func objectName(filename string) string {
	return time.Now().Format("2006/01/02/") + uuid.NewString() + strings.ToLower(path.Ext(filename))
}
