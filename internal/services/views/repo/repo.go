// Package repo persists view tracking in the key-value store.
//
// layout: zset post:{pid}:viewers (member uid, score first-view ms) and a
// reverse zset uid:{uid}:viewed_posts (member pid, score first-view ms)
package repo

import (
	"context"
	"strconv"

	"studyhall/internal/platform/store"
)

func viewersKey(pid int64) string { return "post:" + strconv.FormatInt(pid, 10) + ":viewers" }

func viewedKey(uid int64) string { return "uid:" + strconv.FormatInt(uid, 10) + ":viewed_posts" }

// Viewer is one recorded first view
type Viewer struct {
	UID        int64
	ViewedAtMS int64
}

// Storage owns the view tracking keys
type Storage interface {
	HasViewed(ctx context.Context, uid, pid int64) (bool, error)
	RecordView(ctx context.Context, uid, pid int64, atMS int64) error
	Viewers(ctx context.Context, pid int64) ([]Viewer, error)
	Count(ctx context.Context, pid int64) (int64, error)
}

// NewRD binds the storage to a key-value client
func NewRD(kv store.Redis) Storage {
	if kv == nil {
		panic("views repo: nil redis")
	}
	return &rd{kv: kv}
}

type rd struct{ kv store.Redis }

func (s *rd) HasViewed(ctx context.Context, uid, pid int64) (bool, error) {
	return s.kv.SortedSetIsMember(ctx, viewersKey(pid), strconv.FormatInt(uid, 10))
}

func (s *rd) RecordView(ctx context.Context, uid, pid int64, atMS int64) error {
	score := float64(atMS)
	if err := s.kv.SortedSetAdd(ctx, viewersKey(pid), score, strconv.FormatInt(uid, 10)); err != nil {
		return err
	}
	return s.kv.SortedSetAdd(ctx, viewedKey(uid), score, strconv.FormatInt(pid, 10))
}

// Viewers returns recorded views oldest first
func (s *rd) Viewers(ctx context.Context, pid int64) ([]Viewer, error) {
	members, err := s.kv.SortedSetRangeWithScores(ctx, viewersKey(pid))
	if err != nil {
		return nil, err
	}
	out := make([]Viewer, 0, len(members))
	for _, m := range members {
		uid, err := strconv.ParseInt(m.Member, 10, 64)
		if err != nil {
			continue
		}
		out = append(out, Viewer{UID: uid, ViewedAtMS: int64(m.Score)})
	}
	return out, nil
}

func (s *rd) Count(ctx context.Context, pid int64) (int64, error) {
	return s.kv.SortedSetCard(ctx, viewersKey(pid))
}
