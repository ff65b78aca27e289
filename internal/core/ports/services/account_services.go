package services

import (
	"context"

	"github.com/westbrown1/ripple/internal/core/domain"
	"github.com/westbrown1/ripple/internal/dto"
)

// RelationshipReaderSvc defines read operations for relationship data
type RelationshipReaderSvc interface {
	// GetRelationship retrieves a relationship by its generated id.
	GetRelationship(ctx context.Context, id string) (*domain.Relationship, error)

	// ListRelationships retrieves all relationships.
	ListRelationships(ctx context.Context) ([]domain.Relationship, error)
}

// RelationshipWriterSvc defines write operations for relationship data
type RelationshipWriterSvc interface {
	// CreateRelationship opens a new relationship and returns its generated id.
	CreateRelationship(ctx context.Context) (*domain.Relationship, error)

	// DeleteRelationship removes a relationship by id.
	DeleteRelationship(ctx context.Context, id string) error
}

// RelationshipSvcFacade combines all relationship-related service interfaces
type RelationshipSvcFacade interface {
	RelationshipReaderSvc
	RelationshipWriterSvc
}

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccount retrieves a specific account by name.
	GetAccount(ctx context.Context, name string) (*domain.Account, error)

	// ListAccounts retrieves accounts matching the request's criteria.
	ListAccounts(ctx context.Context, req dto.ListAccountsRequest) ([]domain.Account, error)

	// ListAccountLimits returns the account's limit version history, oldest
	// first, retired versions included.
	ListAccountLimits(ctx context.Context, name string) ([]domain.Version, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new account; supplying limit fields writes the
	// first limit version in the same transaction.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)

	// UpdateAccount applies the supplied changes; limit fields rotate the
	// active limit version.
	UpdateAccount(ctx context.Context, name string, req dto.UpdateAccountRequest) (*domain.Account, error)

	// DeleteAccount removes an account by name. Limit history is retained.
	DeleteAccount(ctx context.Context, name string) error
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}

// AccountRequestReaderSvc defines read operations for account request data
type AccountRequestReaderSvc interface {
	// GetAccountRequest retrieves the request pending on a relationship.
	GetAccountRequest(ctx context.Context, relationshipID string) (*domain.AccountRequest, error)

	// ListAccountRequests retrieves requests matching the request's criteria.
	ListAccountRequests(ctx context.Context, req dto.ListAccountRequestsRequest) ([]domain.AccountRequest, error)
}

// AccountRequestWriterSvc defines write operations for account request data
type AccountRequestWriterSvc interface {
	// CreateAccountRequest records a new request against a relationship.
	CreateAccountRequest(ctx context.Context, req dto.CreateAccountRequestRequest) (*domain.AccountRequest, error)

	// UpdateAccountRequest applies the supplied changes to a pending request.
	UpdateAccountRequest(ctx context.Context, relationshipID string, req dto.UpdateAccountRequestRequest) (*domain.AccountRequest, error)

	// DeleteAccountRequest removes the request pending on a relationship.
	DeleteAccountRequest(ctx context.Context, relationshipID string) error
}

// AccountRequestSvcFacade combines all account request-related service interfaces
type AccountRequestSvcFacade interface {
	AccountRequestReaderSvc
	AccountRequestWriterSvc
}
