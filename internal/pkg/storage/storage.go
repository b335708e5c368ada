package storage

import (
	"Murmur/internal/api/config"
	"context"
	"errors"
	"fmt"
	"time"
)

// 存储层的可区分失败类别。凭据值一律不进入错误信息。
var (
	// ErrNotConfigured 缺少后端地址或凭据
	ErrNotConfigured = errors.New("storage is not configured")
	// ErrNotFound 目标记录不存在
	ErrNotFound = errors.New("record not found")
	// ErrBackend 后端调用失败或超时
	ErrBackend = errors.New("storage backend failure")
)

// 生命周期状态。active -> archived/deleted 为单向终态迁移。
const (
	StateActive   = "active"
	StateArchived = "archived"
	StateDeleted  = "deleted"
)

// 计数器字段名，IncrCounters 的 deltas 以此为键
const (
	FieldUpvotes   = "upvotes"
	FieldDownvotes = "downvotes"
	FieldReports   = "reports"
	FieldViews     = "views"
)

// Record 存储层通用文档，条目与评论共用同一形状
type Record struct {
	ID             string    `bson:"_id,omitempty"`
	ParentID       string    `bson:"parent_id,omitempty"`
	Content        string    `bson:"content"`
	Tags           []string  `bson:"tags,omitempty"`
	Images         []string  `bson:"images,omitempty"`
	Video          string    `bson:"video,omitempty"`
	Upvotes        int64     `bson:"upvotes"`
	Downvotes      int64     `bson:"downvotes"`
	Reports        int64     `bson:"reports"`
	Views          int64     `bson:"views"`
	Pinned         bool      `bson:"pinned"`
	State          string    `bson:"state"`
	CreatedAt      time.Time `bson:"created_at"`
	StateChangedAt time.Time `bson:"state_changed_at,omitempty"`
}

// MediaKeys 记录引用的全部对象存储键
func (r *Record) MediaKeys() []string {
	keys := make([]string, 0, len(r.Images)+1)
	keys = append(keys, r.Images...)
	if r.Video != "" {
		keys = append(keys, r.Video)
	}
	return keys
}

// Query 查询条件
// States 为空表示不过滤状态（管理视图），Limit <= 0 表示不限制
type Query struct {
	ParentID string
	States   []string
	Limit    int64
}

// Store 统一的存储适配接口
// 计数器修改必须走后端的原子自增，禁止读改写整个文档。
type Store interface {
	// Create 写入新记录并返回服务端分配的 ID
	Create(ctx context.Context, collection string, rec *Record) (string, error)
	// Get 按 ID 取单条记录
	Get(ctx context.Context, collection, id string) (*Record, error)
	// Find 按条件查询，置顶优先、创建时间倒序
	Find(ctx context.Context, collection string, q Query) ([]*Record, error)
	// Count 统计指定状态的记录数，states 为空统计全部
	Count(ctx context.Context, collection string, states []string) (int64, error)
	// IncrCounters 原子自增计数器并返回更新后的记录
	IncrCounters(ctx context.Context, collection, id string, deltas map[string]int64) (*Record, error)
	// Transition 条件状态迁移，仅当当前状态为 from 时生效，返回是否生效
	Transition(ctx context.Context, collection, id, from, to string) (bool, error)
	// SetPinned 设置置顶标记
	SetPinned(ctx context.Context, collection, id string, pinned bool) error
	// Delete 物理删除单条记录
	Delete(ctx context.Context, collection, id string) error
	// Purge 物理删除指定状态下迁移时间早于 before 的记录，返回删除数量
	Purge(ctx context.Context, collection, state string, before time.Time) (int64, error)
	// Close 释放后端连接
	Close(ctx context.Context) error
}

// New 按配置选择存储实现，启动时决定，业务代码不感知具体后端
func New(ctx context.Context, cfg *config.Config) (Store, error) {
	timeout := time.Duration(cfg.Storage.OpTimeout) * time.Second
	switch cfg.Storage.Driver {
	case "mongo":
		return NewMongoStore(ctx, cfg.Mongo, timeout)
	case "redis":
		return NewRedisStore(ctx, cfg.Redis, timeout)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: unknown storage driver %q", ErrNotConfigured, cfg.Storage.Driver)
	}
}

func backendErr(err error) error {
	return fmt.Errorf("%w: %v", ErrBackend, err)
}
