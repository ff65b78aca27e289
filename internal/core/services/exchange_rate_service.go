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

// exchangeRateService provides business logic for named exchange rates. The
// numeric value is versioned; writes that carry one rotate the value version
// in the store.
type exchangeRateService struct {
	store portsrepo.RecordStore
}

// NewExchangeRateService creates a new exchange rate service backed by the
// given store.
func NewExchangeRateService(store portsrepo.RecordStore) portssvc.ExchangeRateSvcFacade {
	return &exchangeRateService{store: store}
}

func (s *exchangeRateService) CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest) (*domain.ExchangeRate, error) {
	fields := schema.Record{"name": req.Name}
	if req.Client != nil {
		fields["client"] = *req.Client
	}
	if req.Rate != nil {
		fields["rate"] = *req.Rate
	}
	if req.EffectiveTime != nil {
		fields["effective_time"] = *req.EffectiveTime
	}
	if req.ExpiryTime != nil {
		fields["expiry_time"] = *req.ExpiryTime
	}
	rec, err := s.store.Create(ctx, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to create exchange rate in service: %w", err)
	}
	rate := recordToExchangeRate(rec)
	return &rate, nil
}

func (s *exchangeRateService) GetExchangeRate(ctx context.Context, name string) (*domain.ExchangeRate, error) {
	rec, err := s.store.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get exchange rate in service: %w", err)
	}
	rate := recordToExchangeRate(rec)
	return &rate, nil
}

func (s *exchangeRateService) ListExchangeRates(ctx context.Context, req dto.ListExchangeRatesRequest) ([]domain.ExchangeRate, error) {
	criteria := schema.Record{}
	if req.Client != nil {
		criteria["client"] = *req.Client
	}
	recs, err := s.store.Filter(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("failed to list exchange rates in service: %w", err)
	}
	rates := make([]domain.ExchangeRate, len(recs))
	for i, rec := range recs {
		rates[i] = recordToExchangeRate(rec)
	}
	return rates, nil
}

func (s *exchangeRateService) ListExchangeRateValues(ctx context.Context, name string) ([]domain.Version, error) {
	versions, err := s.store.VersionHistory(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to list exchange rate values in service: %w", err)
	}
	return versionsToDomain(versions), nil
}

func (s *exchangeRateService) UpdateExchangeRate(ctx context.Context, name string, req dto.UpdateExchangeRateRequest) (*domain.ExchangeRate, error) {
	changes := schema.Record{}
	if req.Name != nil {
		changes["name"] = *req.Name
	}
	if req.Client != nil {
		changes["client"] = *req.Client
	}
	if req.Rate != nil {
		changes["rate"] = *req.Rate
	}
	if req.EffectiveTime != nil {
		changes["effective_time"] = *req.EffectiveTime
	}
	if req.ExpiryTime != nil {
		changes["expiry_time"] = *req.ExpiryTime
	}
	rec, err := s.store.Update(ctx, []string{name}, changes)
	if err != nil {
		return nil, fmt.Errorf("failed to update exchange rate in service: %w", err)
	}
	rate := recordToExchangeRate(rec)
	return &rate, nil
}

func (s *exchangeRateService) DeleteExchangeRate(ctx context.Context, name string) error {
	if err := s.store.Delete(ctx, name); err != nil {
		return fmt.Errorf("failed to delete exchange rate in service: %w", err)
	}
	return nil
}
