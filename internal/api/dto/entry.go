package dto

import "time"

// SubmitDTO 发帖表单，媒体文件走 multipart 另行读取
type SubmitDTO struct {
	Content string `form:"content" json:"content"`
	Tags    string `form:"tags" json:"tags"`
}

// EntryDTO 条目视图
type EntryDTO struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	Images    []string  `json:"images"`
	Video     string    `json:"video,omitempty"`
	Upvotes   int64     `json:"upvotes"`
	Downvotes int64     `json:"downvotes"`
	Reports   int64     `json:"reports"`
	Views     int64     `json:"views"`
	Pinned    bool      `json:"is_pinned"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"ts"`
}
