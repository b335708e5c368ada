package handler

import (
	"Murmur/internal/api/dto"
	"Murmur/internal/pkg/consts"
	"Murmur/internal/pkg/response"
	"Murmur/internal/service"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct {
	voteSvc service.VoteService
}

func NewVoteHandler(voteSvc service.VoteService) *VoteHandler {
	return &VoteHandler{
		voteSvc: voteSvc,
	}
}

func (s *VoteHandler) VoteEntry(c *gin.Context) {
	var voteDTO dto.EntryVoteDTO
	if err := c.ShouldBindJSON(&voteDTO); err != nil {
		response.Error(c, err)
		return
	}

	counts, err := s.voteSvc.Vote(c.Request.Context(), consts.KindEntry, voteDTO.EntryID, voteDTO.Vote)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"upvotes": counts.Upvotes, "downvotes": counts.Downvotes})
}

func (s *VoteHandler) VoteComment(c *gin.Context) {
	var voteDTO dto.CommentVoteDTO
	if err := c.ShouldBindJSON(&voteDTO); err != nil {
		response.Error(c, err)
		return
	}

	counts, err := s.voteSvc.Vote(c.Request.Context(), consts.KindComment, voteDTO.CommentID, voteDTO.Vote)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"upvotes": counts.Upvotes, "downvotes": counts.Downvotes})
}
