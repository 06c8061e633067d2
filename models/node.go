package models

import "time"

// Node is one retrieval node belonging to an operator address, as reported by
// the stats API and enriched with geo/version information on the way out.
type Node struct {
	ID       string    `json:"id"`
	IP       string    `json:"ip"`
	State    string    `json:"state"` // "active", "inactive", "down"
	Version  string    `json:"version"`
	LastSeen time.Time `json:"last_seen"`

	// Geo estimation of the node IP
	Country string  `json:"country"`
	City    string  `json:"city"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`

	VersionStatus   string `json:"version_status"`
	IsUpgradeNeeded bool   `json:"is_upgrade_needed"`
	UpgradeMessage  string `json:"upgrade_message,omitempty"`
}
