package dto

import (
	"github.com/westbrown1/ripple/internal/core/domain"
)

// CreateExchangeRequest defines the data needed to pair two accounts for
// conversion. Supplying a rate assigns it together with the row.
type CreateExchangeRequest struct {
	SourceAccount string  `json:"sourceAccount" binding:"required"`
	TargetAccount string  `json:"targetAccount" binding:"required"`
	Rate          *string `json:"rate"`
}

// UpdateExchangeRequest reassigns the exchange's rate. The rate is the only
// mutable field; the account pair is the identity.
type UpdateExchangeRequest struct {
	Rate string `json:"rate" binding:"required"`
}

// ExchangeResponse defines the data returned for an exchange. Rate is
// omitted before the first assignment and when the assigned rate was since
// deleted.
type ExchangeResponse struct {
	SourceAccount string  `json:"sourceAccount"`
	TargetAccount string  `json:"targetAccount"`
	Rate          *string `json:"rate,omitempty"`
}

// ToExchangeResponse converts a domain.Exchange to ExchangeResponse DTO
func ToExchangeResponse(ex *domain.Exchange) ExchangeResponse {
	return ExchangeResponse{
		SourceAccount: ex.SourceAccount,
		TargetAccount: ex.TargetAccount,
		Rate:          ex.Rate,
	}
}

// ToListExchangeResponse converts a slice of domain.Exchange to a slice of ExchangeResponse DTOs
func ToListExchangeResponse(exs []domain.Exchange) []ExchangeResponse {
	res := make([]ExchangeResponse, len(exs))
	for i := range exs {
		res[i] = ToExchangeResponse(&exs[i])
	}
	return res
}
