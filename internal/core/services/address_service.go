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

// addressService provides business logic for addresses.
type addressService struct {
	store portsrepo.RecordStore
}

// NewAddressService creates a new address service backed by the given store.
func NewAddressService(store portsrepo.RecordStore) portssvc.AddressSvcFacade {
	return &addressService{store: store}
}

func (s *addressService) CreateAddress(ctx context.Context, req dto.CreateAddressRequest) (*domain.Address, error) {
	fields := schema.Record{"address": req.Address}
	if req.Client != nil {
		fields["client"] = *req.Client
	}
	if req.Nodes != nil {
		fields["nodes"] = req.Nodes
	}
	rec, err := s.store.Create(ctx, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to create address in service: %w", err)
	}
	addr := recordToAddress(rec)
	return &addr, nil
}

func (s *addressService) GetAddress(ctx context.Context, address string) (*domain.Address, error) {
	rec, err := s.store.Get(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to get address in service: %w", err)
	}
	addr := recordToAddress(rec)
	return &addr, nil
}

func (s *addressService) ListAddresses(ctx context.Context, req dto.ListAddressesRequest) ([]domain.Address, error) {
	criteria := schema.Record{}
	if req.Client != nil {
		criteria["client"] = *req.Client
	}
	recs, err := s.store.Filter(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses in service: %w", err)
	}
	addrs := make([]domain.Address, len(recs))
	for i, rec := range recs {
		addrs[i] = recordToAddress(rec)
	}
	return addrs, nil
}

func (s *addressService) UpdateAddress(ctx context.Context, address string, req dto.UpdateAddressRequest) (*domain.Address, error) {
	changes := schema.Record{}
	if req.Address != nil {
		changes["address"] = *req.Address
	}
	if req.Client != nil {
		changes["client"] = *req.Client
	}
	if req.Nodes != nil {
		changes["nodes"] = *req.Nodes
	}
	rec, err := s.store.Update(ctx, []string{address}, changes)
	if err != nil {
		return nil, fmt.Errorf("failed to update address in service: %w", err)
	}
	addr := recordToAddress(rec)
	return &addr, nil
}

func (s *addressService) DeleteAddress(ctx context.Context, address string) error {
	if err := s.store.Delete(ctx, address); err != nil {
		return fmt.Errorf("failed to delete address in service: %w", err)
	}
	return nil
}
