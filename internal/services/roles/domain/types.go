// Package domain defines capability types for the role resolver
package domain

// Capabilities is the per-request capability vector for one user
// computed fresh per call, never persisted
type Capabilities struct {
	IsAdmin     bool `json:"isAdmin"`
	IsGlobalMod bool `json:"isGlobalMod"`
	IsTA        bool `json:"isTA"`
}

// Staff reports whether any capability grants staff standing
func (c Capabilities) Staff() bool { return c.IsAdmin || c.IsGlobalMod || c.IsTA }
