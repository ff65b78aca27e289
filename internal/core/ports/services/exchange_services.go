package services

import (
	"context"

	"github.com/westbrown1/ripple/internal/core/domain"
	"github.com/westbrown1/ripple/internal/dto"
)

// ExchangeRateReaderSvc defines read operations for exchange rate data
type ExchangeRateReaderSvc interface {
	// GetExchangeRate retrieves a specific exchange rate by name.
	GetExchangeRate(ctx context.Context, name string) (*domain.ExchangeRate, error)

	// ListExchangeRates retrieves rates matching the request's criteria.
	ListExchangeRates(ctx context.Context, req dto.ListExchangeRatesRequest) ([]domain.ExchangeRate, error)

	// ListExchangeRateValues returns the rate's value version history,
	// oldest first, retired versions included.
	ListExchangeRateValues(ctx context.Context, name string) ([]domain.Version, error)
}

// ExchangeRateWriterSvc defines write operations for exchange rate data
type ExchangeRateWriterSvc interface {
	// CreateExchangeRate persists a new named rate; supplying a value writes
	// the first value version in the same transaction.
	CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest) (*domain.ExchangeRate, error)

	// UpdateExchangeRate applies the supplied changes; a new value rotates
	// the active value version.
	UpdateExchangeRate(ctx context.Context, name string, req dto.UpdateExchangeRateRequest) (*domain.ExchangeRate, error)

	// DeleteExchangeRate removes a rate by name. Value history is retained.
	DeleteExchangeRate(ctx context.Context, name string) error
}

// ExchangeRateSvcFacade combines all exchange rate-related service interfaces
type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
	ExchangeRateWriterSvc
}

// ExchangeReaderSvc defines read operations for exchange data
type ExchangeReaderSvc interface {
	// GetExchange retrieves the exchange between two accounts.
	GetExchange(ctx context.Context, sourceAccount, targetAccount string) (*domain.Exchange, error)

	// ListExchanges retrieves all exchanges.
	ListExchanges(ctx context.Context) ([]domain.Exchange, error)

	// ListAssignedRates returns the exchange's rate assignment history,
	// oldest first, retired assignments included.
	ListAssignedRates(ctx context.Context, sourceAccount, targetAccount string) ([]domain.Version, error)
}

// ExchangeWriterSvc defines write operations for exchange data
type ExchangeWriterSvc interface {
	// CreateExchange persists a new exchange; supplying a rate assigns it in
	// the same transaction.
	CreateExchange(ctx context.Context, req dto.CreateExchangeRequest) (*domain.Exchange, error)

	// UpdateExchange reassigns the exchange's rate, retiring the previous
	// assignment.
	UpdateExchange(ctx context.Context, sourceAccount, targetAccount string, req dto.UpdateExchangeRequest) (*domain.Exchange, error)

	// DeleteExchange removes an exchange. Assignment history is retained.
	DeleteExchange(ctx context.Context, sourceAccount, targetAccount string) error
}

// ExchangeSvcFacade combines all exchange-related service interfaces
type ExchangeSvcFacade interface {
	ExchangeReaderSvc
	ExchangeWriterSvc
}
