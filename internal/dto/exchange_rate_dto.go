package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/westbrown1/ripple/internal/core/domain"
)

// CreateExchangeRateRequest defines the data needed to create a new named
// rate. Supplying a rate value writes the first value version together with
// the row.
type CreateExchangeRateRequest struct {
	Name          string           `json:"name" binding:"required"`
	Client        *string          `json:"client"`
	Rate          *decimal.Decimal `json:"rate"`
	EffectiveTime *time.Time       `json:"effectiveTime"`
	ExpiryTime    *time.Time       `json:"expiryTime"`
}

// UpdateExchangeRateRequest defines the changes applicable to a named rate.
// Absent fields are left untouched; a new rate value rotates the active
// value version.
type UpdateExchangeRateRequest struct {
	Name          *string          `json:"name"`
	Client        *string          `json:"client"`
	Rate          *decimal.Decimal `json:"rate"`
	EffectiveTime *time.Time       `json:"effectiveTime"`
	ExpiryTime    *time.Time       `json:"expiryTime"`
}

// ListExchangeRatesRequest defines the filter criteria for listing rates.
type ListExchangeRatesRequest struct {
	Client *string `form:"client"`
}

// ExchangeRateResponse defines the data returned for a named rate. The
// value fields are omitted until the first value version is written.
type ExchangeRateResponse struct {
	Name          string           `json:"name"`
	Client        *string          `json:"client,omitempty"`
	Rate          *decimal.Decimal `json:"rate,omitempty"`
	EffectiveTime *time.Time       `json:"effectiveTime,omitempty"`
	ExpiryTime    *time.Time       `json:"expiryTime,omitempty"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to ExchangeRateResponse DTO
func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		Name:          rate.Name,
		Client:        rate.Client,
		Rate:          rate.Rate,
		EffectiveTime: rate.EffectiveTime,
		ExpiryTime:    rate.ExpiryTime,
	}
}

// ToListExchangeRateResponse converts a slice of domain.ExchangeRate to a slice of ExchangeRateResponse DTOs
func ToListExchangeRateResponse(rates []domain.ExchangeRate) []ExchangeRateResponse {
	res := make([]ExchangeRateResponse, len(rates))
	for i := range rates {
		res[i] = ToExchangeRateResponse(&rates[i])
	}
	return res
}
