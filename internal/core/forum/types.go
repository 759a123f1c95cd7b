// Package forum holds the data shapes shared by the overlay services
//
// topics and posts are owned by the external content store; these structs
// carry only the fields this engine reads, annotates, or rewrites
package forum

import (
	"strconv"
	"strings"
	"time"
)

// Author is the display identity attached to a topic or post
type Author struct {
	UID         int64  `json:"uid"`
	Username    string `json:"username"`
	Userslug    string `json:"userslug"`
	Displayname string `json:"displayname"`
	Picture     string `json:"picture"`
}

// Anonymous is the placeholder identity shown for anonymous content
// when the viewer is neither the author nor staff
var Anonymous = Author{UID: 0, Username: "Anonymous", Userslug: "", Picture: ""}

// Topic is a content-store topic plus the overlay fields
type Topic struct {
	TID         int64  `json:"tid"`
	CID         int64  `json:"cid"`
	UID         int64  `json:"uid"`
	Title       string `json:"title"`
	IsResolved  bool   `json:"isResolved"`
	IsAnonymous bool   `json:"isAnonymous"`
	Author      Author `json:"user"`
}

// Post is a content-store post plus the overlay fields
type Post struct {
	PID         int64      `json:"pid"`
	TID         int64      `json:"tid"`
	UID         int64      `json:"uid"`
	IsEndorsed  bool       `json:"isEndorsed"`
	EndorsedBy  int64      `json:"endorsedBy,omitempty"`
	EndorsedAt  *time.Time `json:"endorsedAt,omitempty"`
	IsAnonymous bool       `json:"isAnonymous"`
	Author      Author     `json:"user"`
}

// PostSummary is the lightweight projection some read paths carry
// it has no endorsement fields, only identity and the anonymity flag
type PostSummary struct {
	PID         int64  `json:"pid"`
	TID         int64  `json:"tid"`
	UID         int64  `json:"uid"`
	IsAnonymous bool   `json:"isAnonymous"`
	Author      Author `json:"user"`
}

// MenuAction is one entry in a post's tools dropdown
type MenuAction struct {
	ID   string `json:"id"`
	Icon string `json:"icon"`
	Name string `json:"name"`
}

// AsBool coerces the loose truthy encodings seen in stored hash fields and
// creation payloads ("1", 1, true, "true") to a strict bool
// nil, "", "0", 0 and anything unrecognized are false
func AsBool(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return false
		}
		if b, err := strconv.ParseBool(s); err == nil {
			return b
		}
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			return n != 0
		}
		return false
	case int:
		return x != 0
	case int64:
		return x != 0
	case float64:
		return x != 0
	default:
		return false
	}
}
