package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is one side's view of a relationship: its balance plus the credit
// limits currently in force. The limit fields live in a versioned group; all
// four are nil until the first limit write lands, and the effective/expiry
// times describe the active version, not the account row.
type Account struct {
	Name                string           `json:"name"`                          // Primary Key
	IsActive            bool             `json:"isActive"`                      // Settlement flag
	Balance             *decimal.Decimal `json:"balance,omitempty"`             // Nullable running balance
	Relationship        *string          `json:"relationship,omitempty"`        // Nullable FK -> relationships.id
	Node                *string          `json:"node,omitempty"`                // Nullable FK -> nodes.name
	UpperLimit          *decimal.Decimal `json:"upperLimit,omitempty"`          // Versioned
	LowerLimit          *decimal.Decimal `json:"lowerLimit,omitempty"`          // Versioned
	LimitsEffectiveTime *time.Time       `json:"limitsEffectiveTime,omitempty"` // Active version's effective time
	LimitsExpiryTime    *time.Time       `json:"limitsExpiryTime,omitempty"`    // Active version's expiry, usually nil
}
