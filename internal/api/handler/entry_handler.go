package handler

import (
	"Murmur/internal/api/dto"
	"Murmur/internal/pkg/response"
	"Murmur/internal/service"
	"mime/multipart"
	"strconv"

	"github.com/gin-gonic/gin"
)

type EntryHandler struct {
	entrySvc service.EntryService
	feedSvc  service.FeedService
}

func NewEntryHandler(entrySvc service.EntryService, feedSvc service.FeedService) *EntryHandler {
	return &EntryHandler{
		entrySvc: entrySvc,
		feedSvc:  feedSvc,
	}
}

// Submit 支持纯 JSON 与带媒体的 multipart 两种提交方式
func (s *EntryHandler) Submit(c *gin.Context) {
	var submitDTO dto.SubmitDTO
	if err := c.ShouldBind(&submitDTO); err != nil {
		response.Error(c, err)
		return
	}

	images, video := extractMedia(c)

	entry, err := s.entrySvc.Submit(c.Request.Context(), &submitDTO, images, video)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{"id": entry.ID})
}

func (s *EntryHandler) ListEntries(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	entries, err := s.feedSvc.ListEntries(c.Request.Context(), limit, false)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"entries": entries})
}

func (s *EntryHandler) IncrView(c *gin.Context) {
	entryID := c.Param("entry_id")

	if err := s.entrySvc.IncrView(c.Request.Context(), entryID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, nil)
}

// extractMedia 从 multipart 表单中取出图片与视频文件头
// 非 multipart 请求返回空值，数量与类型校验留给服务层
func extractMedia(c *gin.Context) ([]*multipart.FileHeader, *multipart.FileHeader) {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil, nil
	}

	images := form.File["images"]

	var video *multipart.FileHeader
	if vs := form.File["video"]; len(vs) > 0 {
		video = vs[0]
	}
	return images, video
}
