package storage

import (
	"Murmur/internal/api/config"
	"context"
	"errors"
	log "log/slog"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoStore 文档型后端实现
type mongoStore struct {
	client    *mongo.Client
	db        *mongo.Database
	opTimeout time.Duration
}

// NewMongoStore 建立连接并检查连通性
func NewMongoStore(ctx context.Context, cfg config.MongoConfig, opTimeout time.Duration) (Store, error) {
	if cfg.URL == "" || cfg.Database == "" {
		return nil, ErrNotConfigured
	}

	connCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connCtx, options.Client().ApplyURI(cfg.URL))
	if err != nil {
		return nil, backendErr(err)
	}

	if err = client.Ping(connCtx, nil); err != nil {
		return nil, backendErr(err)
	}

	log.Info("MongoDB store initialized successfully", "db", cfg.Database)
	return &mongoStore{
		client:    client,
		db:        client.Database(cfg.Database),
		opTimeout: opTimeout,
	}, nil
}

func (s *mongoStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.opTimeout)
}

func (s *mongoStore) Create(ctx context.Context, collection string, rec *Record) (string, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if _, err := s.db.Collection(collection).InsertOne(ctx, rec); err != nil {
		return "", backendErr(err)
	}
	return rec.ID, nil
}

func (s *mongoStore) Get(ctx context.Context, collection, id string) (*Record, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var rec Record
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, backendErr(err)
	}
	return &rec, nil
}

func (s *mongoStore) Find(ctx context.Context, collection string, q Query) ([]*Record, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	filter := bson.M{}
	if q.ParentID != "" {
		filter["parent_id"] = q.ParentID
	}
	if len(q.States) > 0 {
		filter["state"] = bson.M{"$in": q.States}
	}

	// 置顶优先，其余按创建时间倒序
	opts := options.Find().
		SetSort(bson.D{{Key: "pinned", Value: -1}, {Key: "created_at", Value: -1}})
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}

	cursor, err := s.db.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return nil, backendErr(err)
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	recs := make([]*Record, 0)
	if err = cursor.All(ctx, &recs); err != nil {
		return nil, backendErr(err)
	}
	return recs, nil
}

func (s *mongoStore) Count(ctx context.Context, collection string, states []string) (int64, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	filter := bson.M{}
	if len(states) > 0 {
		filter["state"] = bson.M{"$in": states}
	}
	n, err := s.db.Collection(collection).CountDocuments(ctx, filter)
	if err != nil {
		return 0, backendErr(err)
	}
	return n, nil
}

// IncrCounters 通过 $inc 保证并发自增不丢更新
func (s *mongoStore) IncrCounters(ctx context.Context, collection, id string, deltas map[string]int64) (*Record, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	inc := bson.M{}
	for field, delta := range deltas {
		inc[field] = delta
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var rec Record
	err := s.db.Collection(collection).
		FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$inc": inc}, opts).
		Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, backendErr(err)
	}
	return &rec, nil
}

// Transition 条件更新实现单向迁移，并发下只有一个调用者能命中
func (s *mongoStore) Transition(ctx context.Context, collection, id, from, to string) (bool, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	filter := bson.M{"_id": id, "state": from}
	update := bson.M{"$set": bson.M{"state": to, "state_changed_at": time.Now().UTC()}}
	result, err := s.db.Collection(collection).UpdateOne(ctx, filter, update)
	if err != nil {
		return false, backendErr(err)
	}
	return result.MatchedCount > 0, nil
}

func (s *mongoStore) SetPinned(ctx context.Context, collection, id string, pinned bool) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	result, err := s.db.Collection(collection).
		UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"pinned": pinned}})
	if err != nil {
		return backendErr(err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoStore) Delete(ctx context.Context, collection, id string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	result, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return backendErr(err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoStore) Purge(ctx context.Context, collection, state string, before time.Time) (int64, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	filter := bson.M{"state": state, "state_changed_at": bson.M{"$lt": before}}
	result, err := s.db.Collection(collection).DeleteMany(ctx, filter)
	if err != nil {
		return 0, backendErr(err)
	}
	return result.DeletedCount, nil
}

func (s *mongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
