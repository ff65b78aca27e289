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

// accountRequestService provides business logic for account requests.
type accountRequestService struct {
	store portsrepo.RecordStore
}

// NewAccountRequestService creates a new account request service backed by
// the given store.
func NewAccountRequestService(store portsrepo.RecordStore) portssvc.AccountRequestSvcFacade {
	return &accountRequestService{store: store}
}

func (s *accountRequestService) CreateAccountRequest(ctx context.Context, req dto.CreateAccountRequestRequest) (*domain.AccountRequest, error) {
	fields := schema.Record{"relationship": req.Relationship}
	if req.Note != nil {
		fields["note"] = *req.Note
	}
	if req.SourceAddress != nil {
		fields["source_address"] = *req.SourceAddress
	}
	if req.DestAddress != nil {
		fields["dest_address"] = *req.DestAddress
	}
	rec, err := s.store.Create(ctx, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to create account request in service: %w", err)
	}
	ar := recordToAccountRequest(rec)
	return &ar, nil
}

func (s *accountRequestService) GetAccountRequest(ctx context.Context, relationshipID string) (*domain.AccountRequest, error) {
	rec, err := s.store.Get(ctx, relationshipID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account request in service: %w", err)
	}
	ar := recordToAccountRequest(rec)
	return &ar, nil
}

func (s *accountRequestService) ListAccountRequests(ctx context.Context, req dto.ListAccountRequestsRequest) ([]domain.AccountRequest, error) {
	criteria := schema.Record{}
	if req.SourceAddress != nil {
		criteria["source_address"] = *req.SourceAddress
	}
	if req.DestAddress != nil {
		criteria["dest_address"] = *req.DestAddress
	}
	recs, err := s.store.Filter(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("failed to list account requests in service: %w", err)
	}
	ars := make([]domain.AccountRequest, len(recs))
	for i, rec := range recs {
		ars[i] = recordToAccountRequest(rec)
	}
	return ars, nil
}

func (s *accountRequestService) UpdateAccountRequest(ctx context.Context, relationshipID string, req dto.UpdateAccountRequestRequest) (*domain.AccountRequest, error) {
	changes := schema.Record{}
	if req.Note != nil {
		changes["note"] = *req.Note
	}
	if req.SourceAddress != nil {
		changes["source_address"] = *req.SourceAddress
	}
	if req.DestAddress != nil {
		changes["dest_address"] = *req.DestAddress
	}
	rec, err := s.store.Update(ctx, []string{relationshipID}, changes)
	if err != nil {
		return nil, fmt.Errorf("failed to update account request in service: %w", err)
	}
	ar := recordToAccountRequest(rec)
	return &ar, nil
}

func (s *accountRequestService) DeleteAccountRequest(ctx context.Context, relationshipID string) error {
	if err := s.store.Delete(ctx, relationshipID); err != nil {
		return fmt.Errorf("failed to delete account request in service: %w", err)
	}
	return nil
}
