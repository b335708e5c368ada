package dto

// EntryReportDTO 举报条目，reason 可选且不单独落盘
type EntryReportDTO struct {
	EntryID string `json:"entry_id" binding:"required"`
	Reason  string `json:"reason"`
}

// CommentReportDTO 举报评论
// EntryID 为前端兼容字段，服务端以 comment 自身的归属为准
type CommentReportDTO struct {
	CommentID string `json:"comment_id" binding:"required"`
	EntryID   string `json:"entry_id"`
	Reason    string `json:"reason"`
}

// ReportResultDTO 举报结果，Archived 表示本次举报触发了终态迁移
type ReportResultDTO struct {
	Reports  int64 `json:"reports"`
	Archived bool  `json:"archived"`
}
