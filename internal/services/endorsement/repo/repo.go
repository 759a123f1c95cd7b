// Package repo persists endorsement state in the key/value store
//
// layout: hash post:{pid} fields endorsed ("0"/"1"), endorsedBy (uid),
// endorsedAt (unix ms)
package repo

import (
	"context"
	"strconv"
	"time"

	"studyhall/internal/core/forum"
	"studyhall/internal/platform/store"
	"studyhall/internal/services/endorsement/domain"
)

const (
	fieldEndorsed   = "endorsed"
	fieldEndorsedBy = "endorsedBy"
	fieldEndorsedAt = "endorsedAt"
)

func postKey(pid int64) string { return "post:" + strconv.FormatInt(pid, 10) }

// Storage owns the endorsement fields
type Storage interface {
	Get(ctx context.Context, pid int64) (domain.State, error)
	GetBatch(ctx context.Context, pids []int64) (map[int64]domain.State, error)
	Grant(ctx context.Context, pid, by int64, atMS int64) error
	Revoke(ctx context.Context, pid int64) error
}

type rd struct{ kv store.Redis }

// NewRD constructs the redis-backed storage
func NewRD(kv store.Redis) Storage {
	if kv == nil {
		panic("endorsement: nil redis")
	}
	return &rd{kv: kv}
}

func (s *rd) Get(ctx context.Context, pid int64) (domain.State, error) {
	fields, err := s.kv.HashGetAll(ctx, postKey(pid))
	if err != nil {
		return domain.State{}, err
	}
	return stateFromFields(fields), nil
}

func (s *rd) GetBatch(ctx context.Context, pids []int64) (map[int64]domain.State, error) {
	out := make(map[int64]domain.State, len(pids))
	for _, pid := range pids {
		st, err := s.Get(ctx, pid)
		if err != nil {
			return nil, err
		}
		out[pid] = st
	}
	return out, nil
}

func (s *rd) Grant(ctx context.Context, pid, by int64, atMS int64) error {
	return s.kv.HashSet(ctx, postKey(pid), map[string]any{
		fieldEndorsed:   "1",
		fieldEndorsedBy: strconv.FormatInt(by, 10),
		fieldEndorsedAt: strconv.FormatInt(atMS, 10),
	})
}

func (s *rd) Revoke(ctx context.Context, pid int64) error {
	return s.kv.HashDel(ctx, postKey(pid), fieldEndorsed, fieldEndorsedBy, fieldEndorsedAt)
}

// stateFromFields coerces the stored loose encodings to a strict State
func stateFromFields(fields map[string]string) domain.State {
	st := domain.State{IsEndorsed: forum.AsBool(fields[fieldEndorsed])}
	if !st.IsEndorsed {
		return st
	}
	st.EndorsedBy, _ = strconv.ParseInt(fields[fieldEndorsedBy], 10, 64)
	if ms, err := strconv.ParseInt(fields[fieldEndorsedAt], 10, 64); err == nil && ms > 0 {
		at := time.UnixMilli(ms).UTC()
		st.EndorsedAt = &at
	}
	return st
}
