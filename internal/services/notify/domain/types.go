// Package domain defines the notification dispatch contract
package domain

// Notification is one single-event notification to a user
type Notification struct {
	Ntype     string `json:"ntype"`
	BodyShort string `json:"bodyShort"`
	PID       int64  `json:"pid"`
	TID       int64  `json:"tid"`
	FromUID   int64  `json:"fromUid"`
	ToUID     int64  `json:"toUid"`
	Path      string `json:"path"`
}
