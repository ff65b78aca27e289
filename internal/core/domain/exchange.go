package domain

// Exchange pairs two accounts for conversion, keyed by the pair. Rate names
// the exchange rate assigned through the versioned association; it is nil
// before the first assignment and when the assigned rate was since deleted.
type Exchange struct {
	SourceAccount string  `json:"sourceAccount"` // Primary Key part, FK -> accounts.name
	TargetAccount string  `json:"targetAccount"` // Primary Key part, FK -> accounts.name
	Rate          *string `json:"rate,omitempty"`
}
