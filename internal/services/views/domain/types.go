// Package domain holds the view tracking contract types
package domain

import "time"

// LogInput is the body for recording a post view
type LogInput struct {
	Pid int64 `json:"pid" validate:"required,gt=0"`
}

// PidInput targets a post for viewer listing or counting
type PidInput struct {
	Pid int64 `json:"pid" validate:"required,gt=0"`
}

// LogResult reports whether a view was recorded and why not otherwise.
// Reason is "staff-view" or "already-viewed" when Logged is false
type LogResult struct {
	Logged    bool       `json:"logged"`
	Reason    string     `json:"reason,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// ViewerSummary is one student who viewed a post, in first-view order.
// Displayname falls back to the username when the account has none
type ViewerSummary struct {
	UID         int64     `json:"uid"`
	Username    string    `json:"username"`
	Userslug    string    `json:"userslug"`
	Displayname string    `json:"displayname"`
	Picture     string    `json:"picture,omitempty"`
	ViewedAt    time.Time `json:"viewedAt"`
}

// ViewersResult carries the viewer roster plus its count.
// Viewers whose accounts have since been deleted are absent from both
type ViewersResult struct {
	Viewers []ViewerSummary `json:"viewers"`
	Count   int64           `json:"count"`
}
