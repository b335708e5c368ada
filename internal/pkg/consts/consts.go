package consts

// 投票/举报目标类型
const (
	KindEntry   = "entry"
	KindComment = "comment"
)

// 内容约束
const (
	MaxEntryContentLen = 2000
	// 评论沿用线上既有的 500 字上限，有意短于条目正文
	MaxCommentContentLen = 500
)

// 媒体约束
const (
	MaxImagesPerEntry = 3
	MaxImageSize      = 10 << 20  // 10MB
	MaxVideoSize      = 100 << 20 // 100MB
)

// Feed 分页
const (
	DefaultFeedLimit = 20
	MaxFeedLimit     = 100
)

// AllowedImageExts 允许的图片扩展名
var AllowedImageExts = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
}

// AllowedVideoExts 允许的视频扩展名
var AllowedVideoExts = map[string]struct{}{
	".mp4":  {},
	".webm": {},
}
