package services

import (
	"context"

	"github.com/westbrown1/ripple/internal/core/domain"
	"github.com/westbrown1/ripple/internal/dto"
)

// ClientReaderSvc defines read operations for client data
type ClientReaderSvc interface {
	// GetClient retrieves a specific client by name.
	GetClient(ctx context.Context, name string) (*domain.Client, error)

	// ListClients retrieves all registered clients.
	ListClients(ctx context.Context) ([]domain.Client, error)
}

// ClientWriterSvc defines write operations for client data
type ClientWriterSvc interface {
	// CreateClient persists a new client.
	CreateClient(ctx context.Context, req dto.CreateClientRequest) (*domain.Client, error)

	// UpdateClient applies the supplied changes to an existing client.
	UpdateClient(ctx context.Context, name string, req dto.UpdateClientRequest) (*domain.Client, error)

	// DeleteClient removes a client by name.
	DeleteClient(ctx context.Context, name string) error
}

// ClientSvcFacade combines all client-related service interfaces
type ClientSvcFacade interface {
	ClientReaderSvc
	ClientWriterSvc
}
