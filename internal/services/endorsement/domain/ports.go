package domain

import (
	"context"

	"studyhall/internal/core/forum"
)

// ManagerPort owns the endorsed-by-instructor flag and audit trail
type ManagerPort interface {
	// Set grants or revokes endorsement for pid on behalf of actorUID
	// the grant path is strictly admin-only; a grant notifies the post
	// author, a revoke clears the audit fields silently
	Set(ctx context.Context, actorUID, pid int64, grant bool) (State, error)

	// AutoEndorse self-endorses a freshly created post when its author is
	// an admin; failures are swallowed so creation never breaks
	AutoEndorse(ctx context.Context, pc forum.PostCreate) (forum.PostCreate, error)

	// Normalize batch-fetches missing endorsement fields and coerces the
	// flag to a strict bool for display. Fail-soft
	Normalize(ctx context.Context, view forum.PostListView) (forum.PostListView, error)

	// MenuActions appends a grant or revoke tool entry for admin viewers
	MenuActions(ctx context.Context, tools forum.PostTools) (forum.PostTools, error)
}
