// Package domain defines the resolution state contract
package domain

// ToggleResult is the outcome of a resolution toggle
type ToggleResult struct {
	IsResolved bool `json:"isResolved"`
}

// ToggleInput is the transport payload for resolution.toggle
type ToggleInput struct {
	Tid int64 `json:"tid" validate:"required,gt=0"`
}
