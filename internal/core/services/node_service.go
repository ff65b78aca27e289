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

// nodeService provides business logic for nodes.
type nodeService struct {
	store portsrepo.RecordStore
}

// NewNodeService creates a new node service backed by the given store.
func NewNodeService(store portsrepo.RecordStore) portssvc.NodeSvcFacade {
	return &nodeService{store: store}
}

func (s *nodeService) CreateNode(ctx context.Context, req dto.CreateNodeRequest) (*domain.Node, error) {
	fields := schema.Record{"name": req.Name}
	if req.Client != nil {
		fields["client"] = *req.Client
	}
	if req.Addresses != nil {
		fields["addresses"] = req.Addresses
	}
	rec, err := s.store.Create(ctx, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to create node in service: %w", err)
	}
	node := recordToNode(rec)
	return &node, nil
}

func (s *nodeService) GetNode(ctx context.Context, name string) (*domain.Node, error) {
	rec, err := s.store.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get node in service: %w", err)
	}
	node := recordToNode(rec)
	return &node, nil
}

func (s *nodeService) ListNodes(ctx context.Context, req dto.ListNodesRequest) ([]domain.Node, error) {
	criteria := schema.Record{}
	if req.Client != nil {
		criteria["client"] = *req.Client
	}
	recs, err := s.store.Filter(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("failed to list nodes in service: %w", err)
	}
	nodes := make([]domain.Node, len(recs))
	for i, rec := range recs {
		nodes[i] = recordToNode(rec)
	}
	return nodes, nil
}

func (s *nodeService) UpdateNode(ctx context.Context, name string, req dto.UpdateNodeRequest) (*domain.Node, error) {
	changes := schema.Record{}
	if req.Name != nil {
		changes["name"] = *req.Name
	}
	if req.Client != nil {
		changes["client"] = *req.Client
	}
	if req.Addresses != nil {
		changes["addresses"] = *req.Addresses
	}
	rec, err := s.store.Update(ctx, []string{name}, changes)
	if err != nil {
		return nil, fmt.Errorf("failed to update node in service: %w", err)
	}
	node := recordToNode(rec)
	return &node, nil
}

func (s *nodeService) DeleteNode(ctx context.Context, name string) error {
	if err := s.store.Delete(ctx, name); err != nil {
		return fmt.Errorf("failed to delete node in service: %w", err)
	}
	return nil
}
