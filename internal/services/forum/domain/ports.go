// Package domain defines the read contract over the external content store
package domain

import (
	"context"

	"studyhall/internal/core/forum"
)

// ReaderPort reads topics, posts, and user identity from the content store
// the overlay services never write through this port; content is owned
// elsewhere
type ReaderPort interface {
	// TopicByID returns the content fields of one topic
	TopicByID(ctx context.Context, tid int64) (forum.Topic, error)

	// PostByID returns the content fields of one post
	PostByID(ctx context.Context, pid int64) (forum.Post, error)

	// PostExists reports whether pid refers to a stored post
	PostExists(ctx context.Context, pid int64) (bool, error)

	// UserByID resolves one user's display identity
	// returns a not found error for deleted users
	UserByID(ctx context.Context, uid int64) (forum.Author, error)

	// UsersByIDs resolves display identities in bulk
	// deleted users are simply absent from the result map
	UsersByIDs(ctx context.Context, uids []int64) (map[int64]forum.Author, error)
}
