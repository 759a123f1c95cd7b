// Package domain holds the anonymity contract types
package domain

import (
	"context"

	"studyhall/internal/core/forum"
)

// FilterPort marks content anonymous at creation time and scrubs
// author identity at read time for viewers other than the author and staff
type FilterPort interface {
	MarkTopic(ctx context.Context, tc forum.TopicCreate) (forum.TopicCreate, error)
	MarkPost(ctx context.Context, pc forum.PostCreate) (forum.PostCreate, error)

	ObfuscateTopic(ctx context.Context, view forum.TopicView) (forum.TopicView, error)
	ObfuscateTopics(ctx context.Context, view forum.TopicListView) (forum.TopicListView, error)
	ObfuscatePosts(ctx context.Context, view forum.PostListView) (forum.PostListView, error)
	ObfuscateSummaries(ctx context.Context, view forum.SummaryListView) (forum.SummaryListView, error)
}
