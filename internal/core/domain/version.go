package domain

import "time"

// Version is one row of a record's version history: a snapshot of the
// versioned fields (or the assigned target's key, for derived relations)
// with its activation window. Exactly one version per record is active.
type Version struct {
	VersionID     int64          `json:"versionID"`
	Active        bool           `json:"active"`
	EffectiveTime time.Time      `json:"effectiveTime"`
	ExpiryTime    *time.Time     `json:"expiryTime,omitempty"`
	Values        map[string]any `json:"values"`
}
