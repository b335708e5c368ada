package dto

// EntryVoteDTO 条目投票，方向只接受 +1 / -1
type EntryVoteDTO struct {
	EntryID string `json:"entry_id" binding:"required"`
	Vote    int    `json:"vote" binding:"required,oneof=-1 1"`
}

// CommentVoteDTO 评论投票
type CommentVoteDTO struct {
	CommentID string `json:"comment_id" binding:"required"`
	Vote      int    `json:"vote" binding:"required,oneof=-1 1"`
}

// VoteCountDTO 投票后的最新计数
type VoteCountDTO struct {
	Upvotes   int64 `json:"upvotes"`
	Downvotes int64 `json:"downvotes"`
}
