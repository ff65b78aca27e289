package services

import (
	"context"

	"github.com/westbrown1/ripple/internal/core/domain"
	"github.com/westbrown1/ripple/internal/dto"
)

// NodeReaderSvc defines read operations for node data
type NodeReaderSvc interface {
	// GetNode retrieves a specific node by name.
	GetNode(ctx context.Context, name string) (*domain.Node, error)

	// ListNodes retrieves nodes matching the request's criteria.
	ListNodes(ctx context.Context, req dto.ListNodesRequest) ([]domain.Node, error)
}

// NodeWriterSvc defines write operations for node data
type NodeWriterSvc interface {
	// CreateNode persists a new node with its address links.
	CreateNode(ctx context.Context, req dto.CreateNodeRequest) (*domain.Node, error)

	// UpdateNode applies the supplied changes to an existing node.
	UpdateNode(ctx context.Context, name string, req dto.UpdateNodeRequest) (*domain.Node, error)

	// DeleteNode removes a node by name.
	DeleteNode(ctx context.Context, name string) error
}

// NodeSvcFacade combines all node-related service interfaces
type NodeSvcFacade interface {
	NodeReaderSvc
	NodeWriterSvc
}

// AddressReaderSvc defines read operations for address data
type AddressReaderSvc interface {
	// GetAddress retrieves a specific address by its string form.
	GetAddress(ctx context.Context, address string) (*domain.Address, error)

	// ListAddresses retrieves addresses matching the request's criteria.
	ListAddresses(ctx context.Context, req dto.ListAddressesRequest) ([]domain.Address, error)
}

// AddressWriterSvc defines write operations for address data
type AddressWriterSvc interface {
	// CreateAddress persists a new address with its node links.
	CreateAddress(ctx context.Context, req dto.CreateAddressRequest) (*domain.Address, error)

	// UpdateAddress applies the supplied changes to an existing address.
	UpdateAddress(ctx context.Context, address string, req dto.UpdateAddressRequest) (*domain.Address, error)

	// DeleteAddress removes an address by its string form.
	DeleteAddress(ctx context.Context, address string) error
}

// AddressSvcFacade combines all address-related service interfaces
type AddressSvcFacade interface {
	AddressReaderSvc
	AddressWriterSvc
}
