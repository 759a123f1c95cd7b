package forum

// Payload shapes threaded through the read/create filter hooks
// each filter takes and returns one of these, only touching the overlay
// fields, so the chain for an event stays a pure value transform

// TopicCreate is the payload for the topic.create hook
// Anonymous carries the caller-supplied flag from the creation request
type TopicCreate struct {
	Topic     Topic
	Anonymous bool
}

// PostCreate is the payload for the post.create hook
type PostCreate struct {
	Post      Post
	Anonymous bool
}

// TopicView is the payload for the topic.get hook
type TopicView struct {
	ViewerUID int64
	Topic     Topic
}

// TopicListView is the payload for the topics.get hook
type TopicListView struct {
	ViewerUID int64
	Topics    []Topic
}

// PostListView is the payload for the posts.get hook
type PostListView struct {
	ViewerUID int64
	Posts     []Post
}

// SummaryListView is the payload for the posts.summary hook
type SummaryListView struct {
	ViewerUID int64
	Posts     []PostSummary
}

// PostTools is the payload for the post.tools hook
type PostTools struct {
	ViewerUID int64
	PID       int64
	Actions   []MenuAction
}
