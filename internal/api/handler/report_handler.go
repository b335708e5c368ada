package handler

import (
	"Murmur/internal/api/dto"
	"Murmur/internal/pkg/consts"
	"Murmur/internal/pkg/response"
	"Murmur/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	moderationSvc service.ModerationService
}

func NewReportHandler(moderationSvc service.ModerationService) *ReportHandler {
	return &ReportHandler{
		moderationSvc: moderationSvc,
	}
}

func (s *ReportHandler) ReportEntry(c *gin.Context) {
	var reportDTO dto.EntryReportDTO
	if err := c.ShouldBindJSON(&reportDTO); err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.moderationSvc.Report(c.Request.Context(), consts.KindEntry, reportDTO.EntryID, reportDTO.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"reports": result.Reports, "archived": result.Archived})
}

func (s *ReportHandler) ReportComment(c *gin.Context) {
	var reportDTO dto.CommentReportDTO
	if err := c.ShouldBindJSON(&reportDTO); err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.moderationSvc.Report(c.Request.Context(), consts.KindComment, reportDTO.CommentID, reportDTO.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"reports": result.Reports, "deleted": result.Archived})
}
