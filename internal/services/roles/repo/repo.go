// Package repo provides the identity store lookups behind the role resolver
package repo

import (
	"context"

	"studyhall/internal/modkit/repokit"
	"studyhall/internal/platform/store"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the three independent capability lookups
type Storage interface {
	IsAdministrator(ctx context.Context, uid int64) (bool, error)
	InGroup(ctx context.Context, group string, uid int64) (bool, error)
}

func (s *pg) IsAdministrator(ctx context.Context, uid int64) (bool, error) {
	return store.Scalar[bool](ctx, s.q,
		`SELECT COALESCE((SELECT administrator FROM users WHERE uid = $1), false)`, uid)
}

func (s *pg) InGroup(ctx context.Context, group string, uid int64) (bool, error) {
	return store.Scalar[bool](ctx, s.q,
		`SELECT EXISTS (SELECT 1 FROM group_members WHERE group_name = $1 AND uid = $2)`,
		group, uid)
}
