package storage

import (
	"Murmur/internal/api/config"
	"context"
	log "log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/redis/go-redis/v9/maintnotifications"
)

// transitionScript 状态迁移的 CAS 脚本，保证单向终态只生效一次
const transitionScript = `if redis.call('HGET', KEYS[1], 'state') == ARGV[1] then redis.call('HSET', KEYS[1], 'state', ARGV[2], 'state_changed_at', ARGV[3]) return 1 else return 0 end`

// redisStore 键值型后端实现
// 每条记录一个 hash，计数器走 HIncrBy；每个集合维护一个按创建时间
// 打分的 ZSET 作为倒序索引，评论另有 per-parent 索引。
type redisStore struct {
	rdb       *redis.Client
	opTimeout time.Duration
}

// NewRedisStore 初始化 Redis 客户端连接
func NewRedisStore(ctx context.Context, cfg config.RedisConfig, opTimeout time.Duration) (Store, error) {
	if cfg.Addr == "" {
		return nil, ErrNotConfigured
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,

		MaintNotificationsConfig: &maintnotifications.Config{
			Mode: maintnotifications.ModeDisabled,
		},
	})

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return nil, backendErr(err)
	}

	log.Info("Redis store initialized successfully", "db", cfg.DB)
	return &redisStore{rdb: rdb, opTimeout: opTimeout}, nil
}

func (s *redisStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.opTimeout)
}

func recKey(collection, id string) string {
	return collection + ":" + id
}

func idxKey(collection string) string {
	return collection + ":index"
}

func parentIdxKey(collection, parentID string) string {
	return collection + ":parent:" + parentID
}

func pinKey(collection string) string {
	return collection + ":pinned"
}

func encodeRecord(rec *Record) map[string]interface{} {
	tags, _ := json.Marshal(rec.Tags)
	images, _ := json.Marshal(rec.Images)

	fields := map[string]interface{}{
		"parent_id":  rec.ParentID,
		"content":    rec.Content,
		"tags":       string(tags),
		"images":     string(images),
		"video":      rec.Video,
		"upvotes":    rec.Upvotes,
		"downvotes":  rec.Downvotes,
		"reports":    rec.Reports,
		"views":      rec.Views,
		"pinned":     boolField(rec.Pinned),
		"state":      rec.State,
		"created_at": rec.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
	if !rec.StateChangedAt.IsZero() {
		fields["state_changed_at"] = rec.StateChangedAt.UTC().Format(time.RFC3339Nano)
	}
	return fields
}

func decodeRecord(id string, fields map[string]string) *Record {
	rec := &Record{
		ID:       id,
		ParentID: fields["parent_id"],
		Content:  fields["content"],
		Video:    fields["video"],
		State:    fields["state"],
		Pinned:   fields["pinned"] == "1",
	}
	_ = json.Unmarshal([]byte(fields["tags"]), &rec.Tags)
	_ = json.Unmarshal([]byte(fields["images"]), &rec.Images)
	rec.Upvotes, _ = strconv.ParseInt(fields["upvotes"], 10, 64)
	rec.Downvotes, _ = strconv.ParseInt(fields["downvotes"], 10, 64)
	rec.Reports, _ = strconv.ParseInt(fields["reports"], 10, 64)
	rec.Views, _ = strconv.ParseInt(fields["views"], 10, 64)
	rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, fields["created_at"])
	if v := fields["state_changed_at"]; v != "" {
		rec.StateChangedAt, _ = time.Parse(time.RFC3339Nano, v)
	}
	return rec
}

func boolField(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func (s *redisStore) Create(ctx context.Context, collection string, rec *Record) (string, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	score := float64(rec.CreatedAt.UnixNano())

	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, recKey(collection, rec.ID), encodeRecord(rec))
	pipe.ZAdd(ctx, idxKey(collection), redis.Z{Score: score, Member: rec.ID})
	if rec.ParentID != "" {
		pipe.ZAdd(ctx, parentIdxKey(collection, rec.ParentID), redis.Z{Score: score, Member: rec.ID})
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return "", backendErr(err)
	}
	return rec.ID, nil
}

func (s *redisStore) Get(ctx context.Context, collection, id string) (*Record, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	fields, err := s.rdb.HGetAll(ctx, recKey(collection, id)).Result()
	if err != nil {
		return nil, backendErr(err)
	}
	if len(fields) == 0 {
		return nil, ErrNotFound
	}
	return decodeRecord(id, fields), nil
}

// loadMany 批量 HGetAll，中途被删的记录直接跳过
func (s *redisStore) loadMany(ctx context.Context, collection string, ids []string) ([]*Record, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	pipe := s.rdb.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.HGetAll(ctx, recKey(collection, id))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, backendErr(err)
	}

	recs := make([]*Record, 0, len(ids))
	for i, cmd := range cmds {
		fields, err := cmd.Result()
		if err != nil || len(fields) == 0 {
			continue
		}
		recs = append(recs, decodeRecord(ids[i], fields))
	}
	return recs, nil
}

func matchState(rec *Record, states []string) bool {
	if len(states) == 0 {
		return true
	}
	for _, st := range states {
		if rec.State == st {
			return true
		}
	}
	return false
}

func (s *redisStore) Find(ctx context.Context, collection string, q Query) ([]*Record, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if q.ParentID != "" {
		return s.findByParent(ctx, collection, q)
	}
	return s.findFeed(ctx, collection, q)
}

func (s *redisStore) findByParent(ctx context.Context, collection string, q Query) ([]*Record, error) {
	ids, err := s.rdb.ZRevRange(ctx, parentIdxKey(collection, q.ParentID), 0, -1).Result()
	if err != nil {
		return nil, backendErr(err)
	}
	recs, err := s.loadMany(ctx, collection, ids)
	if err != nil {
		return nil, err
	}

	out := make([]*Record, 0, len(recs))
	for _, rec := range recs {
		if !matchState(rec, q.States) {
			continue
		}
		out = append(out, rec)
		if q.Limit > 0 && int64(len(out)) >= q.Limit {
			break
		}
	}
	return out, nil
}

// findFeed 置顶记录先行，其余按索引分批倒序扫描直到凑满 limit
func (s *redisStore) findFeed(ctx context.Context, collection string, q Query) ([]*Record, error) {
	pinnedIDs, err := s.rdb.SMembers(ctx, pinKey(collection)).Result()
	if err != nil {
		return nil, backendErr(err)
	}
	pinned, err := s.loadMany(ctx, collection, pinnedIDs)
	if err != nil {
		return nil, err
	}
	sort.Slice(pinned, func(i, j int) bool {
		return pinned[i].CreatedAt.After(pinned[j].CreatedAt)
	})

	isPinned := make(map[string]struct{}, len(pinned))
	out := make([]*Record, 0)
	for _, rec := range pinned {
		isPinned[rec.ID] = struct{}{}
		if !matchState(rec, q.States) {
			continue
		}
		out = append(out, rec)
		if q.Limit > 0 && int64(len(out)) >= q.Limit {
			return out, nil
		}
	}

	batch := q.Limit
	if batch <= 0 {
		batch = 100
	}
	for offset := int64(0); ; offset += batch {
		ids, err := s.rdb.ZRevRange(ctx, idxKey(collection), offset, offset+batch-1).Result()
		if err != nil {
			return nil, backendErr(err)
		}
		if len(ids) == 0 {
			return out, nil
		}

		recs, err := s.loadMany(ctx, collection, ids)
		if err != nil {
			return nil, err
		}
		for _, rec := range recs {
			if _, ok := isPinned[rec.ID]; ok {
				continue
			}
			if !matchState(rec, q.States) {
				continue
			}
			out = append(out, rec)
			if q.Limit > 0 && int64(len(out)) >= q.Limit {
				return out, nil
			}
		}
	}
}

func (s *redisStore) Count(ctx context.Context, collection string, states []string) (int64, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if len(states) == 0 {
		n, err := s.rdb.ZCard(ctx, idxKey(collection)).Result()
		if err != nil {
			return 0, backendErr(err)
		}
		return n, nil
	}

	ids, err := s.rdb.ZRange(ctx, idxKey(collection), 0, -1).Result()
	if err != nil {
		return 0, backendErr(err)
	}
	recs, err := s.loadMany(ctx, collection, ids)
	if err != nil {
		return 0, err
	}
	var n int64
	for _, rec := range recs {
		if matchState(rec, states) {
			n++
		}
	}
	return n, nil
}

// IncrCounters 通过 HIncrBy 保证并发自增不丢更新
func (s *redisStore) IncrCounters(ctx context.Context, collection, id string, deltas map[string]int64) (*Record, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	key := recKey(collection, id)
	exists, err := s.rdb.Exists(ctx, key).Result()
	if err != nil {
		return nil, backendErr(err)
	}
	if exists == 0 {
		return nil, ErrNotFound
	}

	pipe := s.rdb.TxPipeline()
	for field, delta := range deltas {
		pipe.HIncrBy(ctx, key, field, delta)
	}
	getCmd := pipe.HGetAll(ctx, key)
	if _, err = pipe.Exec(ctx); err != nil {
		return nil, backendErr(err)
	}

	fields, err := getCmd.Result()
	if err != nil {
		return nil, backendErr(err)
	}
	return decodeRecord(id, fields), nil
}

func (s *redisStore) Transition(ctx context.Context, collection, id, from, to string) (bool, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	key := recKey(collection, id)
	exists, err := s.rdb.Exists(ctx, key).Result()
	if err != nil {
		return false, backendErr(err)
	}
	if exists == 0 {
		return false, ErrNotFound
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	applied, err := s.rdb.Eval(ctx, transitionScript, []string{key}, from, to, now).Int64()
	if err != nil {
		return false, backendErr(err)
	}
	return applied == 1, nil
}

func (s *redisStore) SetPinned(ctx context.Context, collection, id string, pinned bool) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	key := recKey(collection, id)
	exists, err := s.rdb.Exists(ctx, key).Result()
	if err != nil {
		return backendErr(err)
	}
	if exists == 0 {
		return ErrNotFound
	}

	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, key, "pinned", boolField(pinned))
	if pinned {
		pipe.SAdd(ctx, pinKey(collection), id)
	} else {
		pipe.SRem(ctx, pinKey(collection), id)
	}
	if _, err = pipe.Exec(ctx); err != nil {
		return backendErr(err)
	}
	return nil
}

func (s *redisStore) Delete(ctx context.Context, collection, id string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rec, err := s.Get(ctx, collection, id)
	if err != nil {
		return err
	}

	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, recKey(collection, id))
	pipe.ZRem(ctx, idxKey(collection), id)
	pipe.SRem(ctx, pinKey(collection), id)
	if rec.ParentID != "" {
		pipe.ZRem(ctx, parentIdxKey(collection, rec.ParentID), id)
	}
	if _, err = pipe.Exec(ctx); err != nil {
		return backendErr(err)
	}
	return nil
}

func (s *redisStore) Purge(ctx context.Context, collection, state string, before time.Time) (int64, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ids, err := s.rdb.ZRange(ctx, idxKey(collection), 0, -1).Result()
	if err != nil {
		return 0, backendErr(err)
	}
	recs, err := s.loadMany(ctx, collection, ids)
	if err != nil {
		return 0, err
	}

	var purged int64
	for _, rec := range recs {
		if rec.State != state {
			continue
		}
		changedAt := rec.StateChangedAt
		if changedAt.IsZero() {
			changedAt = rec.CreatedAt
		}
		if !changedAt.Before(before) {
			continue
		}
		if err = s.Delete(ctx, collection, rec.ID); err != nil {
			return purged, err
		}
		purged++
	}
	return purged, nil
}

func (s *redisStore) Close(_ context.Context) error {
	return s.rdb.Close()
}
