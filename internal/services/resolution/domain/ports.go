package domain

import (
	"context"

	"studyhall/internal/core/forum"
)

// StatePort owns the resolved/unresolved boolean and its two ordered indices
type StatePort interface {
	// SetDefault forces isResolved=false on a freshly created topic and
	// seeds the unresolved index so the exactly-one-index invariant holds
	// from birth
	SetDefault(ctx context.Context, tc forum.TopicCreate) (forum.TopicCreate, error)

	// Toggle flips the resolution state of tid on behalf of actorUID
	// fails with not-logged-in for guests and no-privileges for non-staff
	Toggle(ctx context.Context, actorUID, tid int64) (ToggleResult, error)

	// OnReply forces a resolved topic back to unresolved when a non-staff
	// user replies; staff replies and already-unresolved topics are no-ops
	OnReply(ctx context.Context, post forum.Post) error

	// AnnotateAndSort attaches isResolved to each topic and, for staff
	// viewing the feedback category, moves unresolved topics first
	// never raises; failures degrade to best-effort annotation
	AnnotateAndSort(ctx context.Context, view forum.TopicListView) (forum.TopicListView, error)
}
