package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	Gone                = 410
	InternalServerError = 500
)

var (
	ErrParamInvalid     = errors.New("参数错误")
	ErrContentEmpty     = errors.New("内容不能为空")
	ErrContentTooLong   = errors.New("内容超出长度限制")
	ErrCommentEmpty     = errors.New("评论不能为空")
	ErrCommentTooLong   = errors.New("评论超出长度限制")
	ErrTooManyImages    = errors.New("图片数量超出限制")
	ErrFileTooLarge     = errors.New("文件大小超出限制")
	ErrFileNotSupported = errors.New("不支持的文件类型")
	ErrVoteInvalid      = errors.New("无效的投票方向")
	ErrEntryNotFound    = errors.New("帖子不存在")
	ErrCommentNotFound  = errors.New("评论不存在")
	ErrEntryArchived    = errors.New("帖子已归档")
	ErrCommentDeleted   = errors.New("评论已删除")
	ErrPasskeyIncorrect = errors.New("口令错误")
	ErrTokenInvalid     = errors.New("token 无效或已过期")
	ErrStoreUnavailable = errors.New("存储服务不可用")
	UnExpectedError     = errors.New("系统异常，请稍后重试")
)

// ErrorMap 业务错误到 HTTP 状态码的映射
var ErrorMap = map[error]int{
	ErrParamInvalid:     BadRequest,
	ErrContentEmpty:     BadRequest,
	ErrContentTooLong:   BadRequest,
	ErrCommentEmpty:     BadRequest,
	ErrCommentTooLong:   BadRequest,
	ErrTooManyImages:    BadRequest,
	ErrFileTooLarge:     BadRequest,
	ErrFileNotSupported: BadRequest,
	ErrVoteInvalid:      BadRequest,
	ErrEntryNotFound:    NotFound,
	ErrCommentNotFound:  NotFound,
	ErrEntryArchived:    Gone,
	ErrCommentDeleted:   Gone,
	ErrPasskeyIncorrect: Unauthorized,
	ErrTokenInvalid:     Unauthorized,
	ErrStoreUnavailable: InternalServerError,
	UnExpectedError:     InternalServerError,
}
