package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/westbrown1/ripple/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
// Supplying either limit (or a limit timestamp) writes the first limit
// version together with the row.
type CreateAccountRequest struct {
	Name                string           `json:"name" binding:"required"`
	IsActive            *bool            `json:"isActive"`
	Balance             *decimal.Decimal `json:"balance"`
	Relationship        *string          `json:"relationship"`
	Node                *string          `json:"node"`
	UpperLimit          *decimal.Decimal `json:"upperLimit"`
	LowerLimit          *decimal.Decimal `json:"lowerLimit"`
	LimitsEffectiveTime *time.Time       `json:"limitsEffectiveTime"`
	LimitsExpiryTime    *time.Time       `json:"limitsExpiryTime"`
}

// UpdateAccountRequest defines the changes applicable to an account. Absent
// fields are left untouched; limit fields rotate the active limit version.
type UpdateAccountRequest struct {
	Name                *string          `json:"name"`
	IsActive            *bool            `json:"isActive"`
	Balance             *decimal.Decimal `json:"balance"`
	Relationship        *string          `json:"relationship"`
	Node                *string          `json:"node"`
	UpperLimit          *decimal.Decimal `json:"upperLimit"`
	LowerLimit          *decimal.Decimal `json:"lowerLimit"`
	LimitsEffectiveTime *time.Time       `json:"limitsEffectiveTime"`
	LimitsExpiryTime    *time.Time       `json:"limitsExpiryTime"`
}

// ListAccountsRequest defines the filter criteria for listing accounts.
type ListAccountsRequest struct {
	Relationship *string `form:"relationship"`
	Node         *string `form:"node"`
	IsActive     *bool   `form:"is_active"`
}

// AccountResponse defines the data returned for an account. The limit
// fields are omitted until the first limit version is written.
type AccountResponse struct {
	Name                string           `json:"name"`
	IsActive            bool             `json:"isActive"`
	Balance             *decimal.Decimal `json:"balance,omitempty"`
	Relationship        *string          `json:"relationship,omitempty"`
	Node                *string          `json:"node,omitempty"`
	UpperLimit          *decimal.Decimal `json:"upperLimit,omitempty"`
	LowerLimit          *decimal.Decimal `json:"lowerLimit,omitempty"`
	LimitsEffectiveTime *time.Time       `json:"limitsEffectiveTime,omitempty"`
	LimitsExpiryTime    *time.Time       `json:"limitsExpiryTime,omitempty"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acct *domain.Account) AccountResponse {
	return AccountResponse{
		Name:                acct.Name,
		IsActive:            acct.IsActive,
		Balance:             acct.Balance,
		Relationship:        acct.Relationship,
		Node:                acct.Node,
		UpperLimit:          acct.UpperLimit,
		LowerLimit:          acct.LowerLimit,
		LimitsEffectiveTime: acct.LimitsEffectiveTime,
		LimitsExpiryTime:    acct.LimitsExpiryTime,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accts))
	for i := range accts {
		res[i] = ToAccountResponse(&accts[i])
	}
	return res
}
