package services

import (
	"context"
	"fmt"

	"github.com/westbrown1/ripple/internal/core/domain"
	portsrepo "github.com/westbrown1/ripple/internal/core/ports/repositories"
	portssvc "github.com/westbrown1/ripple/internal/core/ports/services"
	"github.com/westbrown1/ripple/internal/schema"
)

// relationshipService provides business logic for relationships.
type relationshipService struct {
	store portsrepo.RecordStore
}

// NewRelationshipService creates a new relationship service backed by the
// given store.
func NewRelationshipService(store portsrepo.RecordStore) portssvc.RelationshipSvcFacade {
	return &relationshipService{store: store}
}

func (s *relationshipService) CreateRelationship(ctx context.Context) (*domain.Relationship, error) {
	// A relationship has no caller-supplied fields; the store generates the id.
	rec, err := s.store.Create(ctx, schema.Record{})
	if err != nil {
		return nil, fmt.Errorf("failed to create relationship in service: %w", err)
	}
	rel := recordToRelationship(rec)
	return &rel, nil
}

func (s *relationshipService) GetRelationship(ctx context.Context, id string) (*domain.Relationship, error) {
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get relationship in service: %w", err)
	}
	rel := recordToRelationship(rec)
	return &rel, nil
}

func (s *relationshipService) ListRelationships(ctx context.Context) ([]domain.Relationship, error) {
	recs, err := s.store.Filter(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list relationships in service: %w", err)
	}
	rels := make([]domain.Relationship, len(recs))
	for i, rec := range recs {
		rels[i] = recordToRelationship(rec)
	}
	return rels, nil
}

func (s *relationshipService) DeleteRelationship(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete relationship in service: %w", err)
	}
	return nil
}
