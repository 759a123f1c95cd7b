package domain

import "context"

// ResolverPort computes the capability vector for a user
// the guest sentinel (uid <= 0) yields the zero vector without lookups
type ResolverPort interface {
	Resolve(ctx context.Context, uid int64) (Capabilities, error)
}
