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

// clientService provides business logic for clients.
type clientService struct {
	store portsrepo.RecordStore
}

// NewClientService creates a new client service backed by the given store.
func NewClientService(store portsrepo.RecordStore) portssvc.ClientSvcFacade {
	return &clientService{store: store}
}

func (s *clientService) CreateClient(ctx context.Context, req dto.CreateClientRequest) (*domain.Client, error) {
	rec, err := s.store.Create(ctx, schema.Record{"name": req.Name})
	if err != nil {
		return nil, fmt.Errorf("failed to create client in service: %w", err)
	}
	client := recordToClient(rec)
	return &client, nil
}

func (s *clientService) GetClient(ctx context.Context, name string) (*domain.Client, error) {
	rec, err := s.store.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get client in service: %w", err)
	}
	client := recordToClient(rec)
	return &client, nil
}

func (s *clientService) ListClients(ctx context.Context) ([]domain.Client, error) {
	recs, err := s.store.Filter(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients in service: %w", err)
	}
	clients := make([]domain.Client, len(recs))
	for i, rec := range recs {
		clients[i] = recordToClient(rec)
	}
	return clients, nil
}

func (s *clientService) UpdateClient(ctx context.Context, name string, req dto.UpdateClientRequest) (*domain.Client, error) {
	changes := schema.Record{}
	if req.Name != nil {
		changes["name"] = *req.Name
	}
	rec, err := s.store.Update(ctx, []string{name}, changes)
	if err != nil {
		return nil, fmt.Errorf("failed to update client in service: %w", err)
	}
	client := recordToClient(rec)
	return &client, nil
}

func (s *clientService) DeleteClient(ctx context.Context, name string) error {
	if err := s.store.Delete(ctx, name); err != nil {
		return fmt.Errorf("failed to delete client in service: %w", err)
	}
	return nil
}
