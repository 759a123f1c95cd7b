package domain

import "context"

// NotifierPort dispatches a notification to a single user
// callers treat dispatch as fire-and-forget; failures are logged, never raised
type NotifierPort interface {
	Dispatch(ctx context.Context, n Notification) error
}
