package handler

import (
	"Murmur/internal/api/dto"
	"Murmur/internal/pkg/response"
	"Murmur/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentSvc service.CommentService
	feedSvc    service.FeedService
}

func NewCommentHandler(commentSvc service.CommentService, feedSvc service.FeedService) *CommentHandler {
	return &CommentHandler{
		commentSvc: commentSvc,
		feedSvc:    feedSvc,
	}
}

func (s *CommentHandler) Create(c *gin.Context) {
	var createDTO dto.CommentCreateDTO
	if err := c.ShouldBindJSON(&createDTO); err != nil {
		response.Error(c, err)
		return
	}

	comment, err := s.commentSvc.Create(c.Request.Context(), &createDTO)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{"comment": comment, "id": comment.ID})
}

func (s *CommentHandler) ListComments(c *gin.Context) {
	entryID := c.Param("entry_id")

	comments, err := s.feedSvc.ListComments(c.Request.Context(), entryID, false)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"comments": comments})
}
