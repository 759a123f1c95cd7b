package domain

import "context"

// TrackerPort is the view tracking surface offered to other modules
type TrackerPort interface {
	// Log records that viewer saw post pid. First views by students are
	// recorded; staff views and repeat views are acknowledged but not stored
	Log(ctx context.Context, viewerUID, pid int64) (LogResult, error)

	// Viewers returns the roster of students who viewed pid, oldest first.
	// Restricted to staff
	Viewers(ctx context.Context, viewerUID, pid int64) (ViewersResult, error)

	// Count returns how many distinct users have viewed pid
	Count(ctx context.Context, viewerUID, pid int64) (int64, error)
}
