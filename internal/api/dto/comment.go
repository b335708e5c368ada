package dto

import "time"

// CommentCreateDTO 发评论
type CommentCreateDTO struct {
	EntryID string `json:"entry_id" binding:"required"`
	Content string `json:"content"`
}

// CommentDTO 评论视图
type CommentDTO struct {
	ID        string    `json:"id"`
	EntryID   string    `json:"entry_id"`
	Content   string    `json:"content"`
	Upvotes   int64     `json:"upvotes"`
	Downvotes int64     `json:"downvotes"`
	Reports   int64     `json:"reports"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"ts"`
}
