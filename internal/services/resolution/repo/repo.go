// Package repo persists resolution state in the key/value store
//
// layout: hash topic:{tid} field isResolved ("0"/"1"), zsets topics:resolved
// and topics:unresolved holding tid scored by last-change ms
package repo

import (
	"context"
	"strconv"

	"studyhall/internal/core/forum"
	"studyhall/internal/platform/store"
)

const (
	resolvedIndex   = "topics:resolved"
	unresolvedIndex = "topics:unresolved"
	fieldResolved   = "isResolved"
)

func topicKey(tid int64) string { return "topic:" + strconv.FormatInt(tid, 10) }

// Storage owns the resolution fields and indices
type Storage interface {
	IsResolved(ctx context.Context, tid int64) (bool, error)
	IsResolvedBatch(ctx context.Context, tids []int64) (map[int64]bool, error)

	// SetResolved writes the boolean then moves tid between the two indices
	// two commands, not a transaction; see the service for the consistency note
	SetResolved(ctx context.Context, tid int64, resolved bool, atMS int64) error

	// Membership reports which indices currently hold tid
	Membership(ctx context.Context, tid int64) (resolved, unresolved bool, err error)
}

type rd struct{ kv store.Redis }

// NewRD constructs the redis-backed storage
func NewRD(kv store.Redis) Storage {
	if kv == nil {
		panic("resolution: nil redis")
	}
	return &rd{kv: kv}
}

func (s *rd) IsResolved(ctx context.Context, tid int64) (bool, error) {
	v, err := s.kv.HashGet(ctx, topicKey(tid), fieldResolved)
	if err != nil {
		return false, err
	}
	return forum.AsBool(v), nil
}

func (s *rd) IsResolvedBatch(ctx context.Context, tids []int64) (map[int64]bool, error) {
	out := make(map[int64]bool, len(tids))
	for _, tid := range tids {
		v, err := s.IsResolved(ctx, tid)
		if err != nil {
			return nil, err
		}
		out[tid] = v
	}
	return out, nil
}

func (s *rd) SetResolved(ctx context.Context, tid int64, resolved bool, atMS int64) error {
	val := "0"
	from, to := resolvedIndex, unresolvedIndex
	if resolved {
		val = "1"
		from, to = unresolvedIndex, resolvedIndex
	}

	if err := s.kv.HashSet(ctx, topicKey(tid), map[string]any{fieldResolved: val}); err != nil {
		return err
	}
	member := strconv.FormatInt(tid, 10)
	if err := s.kv.SortedSetRemove(ctx, from, member); err != nil {
		return err
	}
	return s.kv.SortedSetAdd(ctx, to, float64(atMS), member)
}

func (s *rd) Membership(ctx context.Context, tid int64) (bool, bool, error) {
	member := strconv.FormatInt(tid, 10)
	res, err := s.kv.SortedSetIsMember(ctx, resolvedIndex, member)
	if err != nil {
		return false, false, err
	}
	unres, err := s.kv.SortedSetIsMember(ctx, unresolvedIndex, member)
	if err != nil {
		return false, false, err
	}
	return res, unres, nil
}
