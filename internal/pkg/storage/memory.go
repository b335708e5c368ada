package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memoryStore 进程内实现，供测试与本地开发使用
// 互斥锁保证计数器自增与状态迁移的原子性，语义与线上后端一致。
type memoryStore struct {
	mu   sync.Mutex
	cols map[string]map[string]*memRecord
	seq  int64
}

type memRecord struct {
	rec *Record
	seq int64
}

func NewMemoryStore() Store {
	return &memoryStore{
		cols: make(map[string]map[string]*memRecord),
	}
}

func (s *memoryStore) col(collection string) map[string]*memRecord {
	c, ok := s.cols[collection]
	if !ok {
		c = make(map[string]*memRecord)
		s.cols[collection] = c
	}
	return c
}

func clone(rec *Record) *Record {
	cp := *rec
	cp.Tags = append([]string(nil), rec.Tags...)
	cp.Images = append([]string(nil), rec.Images...)
	return &cp
}

func (s *memoryStore) Create(_ context.Context, collection string, rec *Record) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	s.seq++
	s.col(collection)[rec.ID] = &memRecord{rec: clone(rec), seq: s.seq}
	return rec.ID, nil
}

func (s *memoryStore) Get(_ context.Context, collection, id string) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.col(collection)[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(m.rec), nil
}

func (s *memoryStore) Find(_ context.Context, collection string, q Query) ([]*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]*memRecord, 0)
	for _, m := range s.col(collection) {
		if q.ParentID != "" && m.rec.ParentID != q.ParentID {
			continue
		}
		if !matchState(m.rec, q.States) {
			continue
		}
		matched = append(matched, m)
	}

	// 置顶优先，其余按创建时间倒序；同一时刻按写入顺序倒序
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if a.rec.Pinned != b.rec.Pinned {
			return a.rec.Pinned
		}
		if !a.rec.CreatedAt.Equal(b.rec.CreatedAt) {
			return a.rec.CreatedAt.After(b.rec.CreatedAt)
		}
		return a.seq > b.seq
	})

	out := make([]*Record, 0, len(matched))
	for _, m := range matched {
		out = append(out, clone(m.rec))
		if q.Limit > 0 && int64(len(out)) >= q.Limit {
			break
		}
	}
	return out, nil
}

func (s *memoryStore) Count(_ context.Context, collection string, states []string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for _, m := range s.col(collection) {
		if matchState(m.rec, states) {
			n++
		}
	}
	return n, nil
}

func (s *memoryStore) IncrCounters(_ context.Context, collection, id string, deltas map[string]int64) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.col(collection)[id]
	if !ok {
		return nil, ErrNotFound
	}
	for field, delta := range deltas {
		switch field {
		case FieldUpvotes:
			m.rec.Upvotes += delta
		case FieldDownvotes:
			m.rec.Downvotes += delta
		case FieldReports:
			m.rec.Reports += delta
		case FieldViews:
			m.rec.Views += delta
		}
	}
	return clone(m.rec), nil
}

func (s *memoryStore) Transition(_ context.Context, collection, id, from, to string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.col(collection)[id]
	if !ok {
		return false, ErrNotFound
	}
	if m.rec.State != from {
		return false, nil
	}
	m.rec.State = to
	m.rec.StateChangedAt = time.Now().UTC()
	return true, nil
}

func (s *memoryStore) SetPinned(_ context.Context, collection, id string, pinned bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.col(collection)[id]
	if !ok {
		return ErrNotFound
	}
	m.rec.Pinned = pinned
	return nil
}

func (s *memoryStore) Delete(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.col(collection)
	if _, ok := c[id]; !ok {
		return ErrNotFound
	}
	delete(c, id)
	return nil
}

func (s *memoryStore) Purge(_ context.Context, collection, state string, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.col(collection)
	var purged int64
	for id, m := range c {
		if m.rec.State != state {
			continue
		}
		changedAt := m.rec.StateChangedAt
		if changedAt.IsZero() {
			changedAt = m.rec.CreatedAt
		}
		if changedAt.Before(before) {
			delete(c, id)
			purged++
		}
	}
	return purged, nil
}

func (s *memoryStore) Close(_ context.Context) error {
	return nil
}
