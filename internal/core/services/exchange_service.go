package services

import (
	"context"
	"fmt"

	"github.com/westbrown1/ripple/internal/core/domain"
	portsrepo "github.com/westbrown1/ripple/internal/core/ports/repositories"
	portssvc "github.com/westbrown1/ripple/internal/core/ports/services"
	"github.com/westbrown1/ripple/internal/dto"
	"github.com/westbrown1/ripple/internal/schema"
)

// exchangeService provides business logic for exchanges. The rate field is
// a derived relation; assigning one retires the previous assignment in the
// store.
type exchangeService struct {
	store portsrepo.RecordStore
}

// NewExchangeService creates a new exchange service backed by the given
// store.
func NewExchangeService(store portsrepo.RecordStore) portssvc.ExchangeSvcFacade {
	return &exchangeService{store: store}
}

func (s *exchangeService) CreateExchange(ctx context.Context, req dto.CreateExchangeRequest) (*domain.Exchange, error) {
	fields := schema.Record{
		"source_account": req.SourceAccount,
		"target_account": req.TargetAccount,
	}
	if req.Rate != nil {
		fields["rate"] = *req.Rate
	}
	rec, err := s.store.Create(ctx, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to create exchange in service: %w", err)
	}
	ex := recordToExchange(rec)
	return &ex, nil
}

func (s *exchangeService) GetExchange(ctx context.Context, sourceAccount, targetAccount string) (*domain.Exchange, error) {
	rec, err := s.store.Get(ctx, sourceAccount, targetAccount)
	if err != nil {
		return nil, fmt.Errorf("failed to get exchange in service: %w", err)
	}
	ex := recordToExchange(rec)
	return &ex, nil
}

func (s *exchangeService) ListExchanges(ctx context.Context) ([]domain.Exchange, error) {
	recs, err := s.store.Filter(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list exchanges in service: %w", err)
	}
	exs := make([]domain.Exchange, len(recs))
	for i, rec := range recs {
		exs[i] = recordToExchange(rec)
	}
	return exs, nil
}

func (s *exchangeService) ListAssignedRates(ctx context.Context, sourceAccount, targetAccount string) ([]domain.Version, error) {
	versions, err := s.store.VersionHistory(ctx, sourceAccount, targetAccount)
	if err != nil {
		return nil, fmt.Errorf("failed to list assigned rates in service: %w", err)
	}
	return versionsToDomain(versions), nil
}

func (s *exchangeService) UpdateExchange(ctx context.Context, sourceAccount, targetAccount string, req dto.UpdateExchangeRequest) (*domain.Exchange, error) {
	rec, err := s.store.Update(ctx, []string{sourceAccount, targetAccount}, schema.Record{"rate": req.Rate})
	if err != nil {
		return nil, fmt.Errorf("failed to update exchange in service: %w", err)
	}
	ex := recordToExchange(rec)
	return &ex, nil
}

func (s *exchangeService) DeleteExchange(ctx context.Context, sourceAccount, targetAccount string) error {
	if err := s.store.Delete(ctx, sourceAccount, targetAccount); err != nil {
		return fmt.Errorf("failed to delete exchange in service: %w", err)
	}
	return nil
}
