// Package repo persists the anonymity flag in the key-value store.
//
// layout: field isAnonymous ("0"/"1") on the topic:{tid} and post:{pid} hashes
package repo

import (
	"context"
	"strconv"

	"studyhall/internal/core/forum"
	"studyhall/internal/platform/store"
)

const fieldAnonymous = "isAnonymous"

func topicKey(tid int64) string { return "topic:" + strconv.FormatInt(tid, 10) }

func postKey(pid int64) string { return "post:" + strconv.FormatInt(pid, 10) }

// Storage owns the anonymity flag on both entity kinds
type Storage interface {
	SetTopicAnon(ctx context.Context, tid int64) error
	SetPostAnon(ctx context.Context, pid int64) error
	TopicAnonBatch(ctx context.Context, tids []int64) (map[int64]bool, error)
	PostAnonBatch(ctx context.Context, pids []int64) (map[int64]bool, error)
}

// NewRD binds the storage to a key-value client
func NewRD(kv store.Redis) Storage {
	if kv == nil {
		panic("anonymity repo: nil redis")
	}
	return &rd{kv: kv}
}

type rd struct{ kv store.Redis }

func (s *rd) SetTopicAnon(ctx context.Context, tid int64) error {
	return s.kv.HashSet(ctx, topicKey(tid), map[string]any{fieldAnonymous: "1"})
}

func (s *rd) SetPostAnon(ctx context.Context, pid int64) error {
	return s.kv.HashSet(ctx, postKey(pid), map[string]any{fieldAnonymous: "1"})
}

func (s *rd) TopicAnonBatch(ctx context.Context, tids []int64) (map[int64]bool, error) {
	out := make(map[int64]bool, len(tids))
	for _, tid := range tids {
		v, err := s.kv.HashGet(ctx, topicKey(tid), fieldAnonymous)
		if err != nil {
			return nil, err
		}
		out[tid] = forum.AsBool(v)
	}
	return out, nil
}

func (s *rd) PostAnonBatch(ctx context.Context, pids []int64) (map[int64]bool, error) {
	out := make(map[int64]bool, len(pids))
	for _, pid := range pids {
		v, err := s.kv.HashGet(ctx, postKey(pid), fieldAnonymous)
		if err != nil {
			return nil, err
		}
		out[pid] = forum.AsBool(v)
	}
	return out, nil
}
