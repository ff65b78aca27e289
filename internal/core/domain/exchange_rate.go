package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is a named conversion rate owned by a client. The numeric
// value is versioned: Rate and the two times describe the active version and
// are nil before the first value is written.
type ExchangeRate struct {
	Name          string           `json:"name"`                    // Primary Key
	Client        *string          `json:"client,omitempty"`        // Nullable FK -> clients.name
	Rate          *decimal.Decimal `json:"rate,omitempty"`          // Versioned value
	EffectiveTime *time.Time       `json:"effectiveTime,omitempty"` // Active version's effective time
	ExpiryTime    *time.Time       `json:"expiryTime,omitempty"`    // Active version's expiry, usually nil
}
