// Package domain defines the endorsement contract
package domain

import "time"

// State is the endorsement boolean plus its audit fields
// EndorsedBy and EndorsedAt are zero/nil while not endorsed
type State struct {
	IsEndorsed bool       `json:"isEndorsed"`
	EndorsedBy int64      `json:"endorsedBy,omitempty"`
	EndorsedAt *time.Time `json:"endorsedAt,omitempty"`
}

// SetInput is the transport payload for endorsement.set
type SetInput struct {
	Pid   int64 `json:"pid" validate:"required,gt=0"`
	Grant *bool `json:"grant" validate:"required"`
}
