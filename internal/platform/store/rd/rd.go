// Package rd provides a redis client over go-redis implementing the store seam
package rd

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// ScoredMember is one member of an ordered set with its score
type ScoredMember struct {
	Member string
	Score  float64
}

// Config configures redis connectivity
type Config struct {
	Addr string
	DB   int
}

// RD is a thin wrapper over a go-redis client
type RD struct {
	c *redis.Client
}

// Open creates a client; connectivity is verified by the caller via Ping
func Open(cfg Config) *RD {
	return &RD{c: redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})}
}

// New wraps an existing go-redis client (tests hand in a miniredis-backed one)
func New(c *redis.Client) *RD { return &RD{c: c} }

func (r *RD) Ping(ctx context.Context) error { return r.c.Ping(ctx).Err() }

func (r *RD) Close() error { return r.c.Close() }

// HashGet returns the field value, or "" when the key or field is absent
func (r *RD) HashGet(ctx context.Context, key, field string) (string, error) {
	v, err := r.c.HGet(ctx, key, field).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return v, err
}

func (r *RD) HashGetAll(ctx context.Context, key string) (map[string]string, error) {
	return r.c.HGetAll(ctx, key).Result()
}

func (r *RD) HashSet(ctx context.Context, key string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.c.HSet(ctx, key, fields).Err()
}

func (r *RD) HashDel(ctx context.Context, key string, fields ...string) error {
	if len(fields) == 0 {
		return nil
	}
	return r.c.HDel(ctx, key, fields...).Err()
}

func (r *RD) SortedSetAdd(ctx context.Context, key string, score float64, member string) error {
	return r.c.ZAdd(ctx, key, redis.Z{Score: score, Member: member}).Err()
}

func (r *RD) SortedSetRemove(ctx context.Context, key string, member string) error {
	return r.c.ZRem(ctx, key, member).Err()
}

// SortedSetIsMember reports membership via ZScore; absence is not an error
func (r *RD) SortedSetIsMember(ctx context.Context, key, member string) (bool, error) {
	_, err := r.c.ZScore(ctx, key, member).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *RD) SortedSetCard(ctx context.Context, key string) (int64, error) {
	return r.c.ZCard(ctx, key).Result()
}

// SortedSetRangeWithScores returns all members in ascending score order
func (r *RD) SortedSetRangeWithScores(ctx context.Context, key string) ([]ScoredMember, error) {
	zs, err := r.c.ZRangeWithScores(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]ScoredMember, 0, len(zs))
	for _, z := range zs {
		m, _ := z.Member.(string)
		out = append(out, ScoredMember{Member: m, Score: z.Score})
	}
	return out, nil
}
