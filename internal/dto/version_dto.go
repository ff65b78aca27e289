package dto

import (
	"time"

	"github.com/westbrown1/ripple/internal/core/domain"
)

// VersionResponse defines one row of a version history: the versioned
// values with the window in which they were (or are) in force.
type VersionResponse struct {
	VersionID     int64          `json:"versionID"`
	Active        bool           `json:"active"`
	EffectiveTime time.Time      `json:"effectiveTime"`
	ExpiryTime    *time.Time     `json:"expiryTime,omitempty"`
	Values        map[string]any `json:"values"`
}

// ToVersionResponse converts a domain.Version to VersionResponse DTO
func ToVersionResponse(v *domain.Version) VersionResponse {
	return VersionResponse{
		VersionID:     v.VersionID,
		Active:        v.Active,
		EffectiveTime: v.EffectiveTime,
		ExpiryTime:    v.ExpiryTime,
		Values:        v.Values,
	}
}

// ToListVersionResponse converts a slice of domain.Version to a slice of VersionResponse DTOs
func ToListVersionResponse(versions []domain.Version) []VersionResponse {
	res := make([]VersionResponse, len(versions))
	for i := range versions {
		res[i] = ToVersionResponse(&versions[i])
	}
	return res
}
