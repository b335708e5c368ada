package dto

// AdminLoginDTO 管理口令换取会话令牌
type AdminLoginDTO struct {
	Passkey string `json:"passkey" binding:"required"`
}

// AdminStatsDTO 管理面板统计
type AdminStatsDTO struct {
	TotalEntries    int64 `json:"total_entries"`
	ArchivedEntries int64 `json:"archived_entries"`
	TotalComments   int64 `json:"total_comments"`
	DeletedComments int64 `json:"deleted_comments"`
}

// AdminDataDTO 管理面板全量视图，含隐藏状态的记录
type AdminDataDTO struct {
	Stats    AdminStatsDTO `json:"stats"`
	Entries  []*EntryDTO   `json:"entries"`
	Comments []*CommentDTO `json:"comments"`
}
