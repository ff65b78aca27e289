package dto

import (
	"github.com/westbrown1/ripple/internal/core/domain"
)

// CreateNodeRequest defines the data needed to create a new node.
type CreateNodeRequest struct {
	Name      string   `json:"name" binding:"required"`
	Client    *string  `json:"client"`
	Addresses []string `json:"addresses"`
}

// UpdateNodeRequest defines the changes applicable to a node. Absent fields
// are left untouched; an empty addresses array unlinks every address.
type UpdateNodeRequest struct {
	Name      *string   `json:"name"`
	Client    *string   `json:"client"`
	Addresses *[]string `json:"addresses"`
}

// ListNodesRequest defines the filter criteria for listing nodes.
type ListNodesRequest struct {
	Client *string `form:"client"`
}

// NodeResponse defines the data returned for a node.
type NodeResponse struct {
	Name      string   `json:"name"`
	Client    *string  `json:"client,omitempty"`
	Addresses []string `json:"addresses"`
}

// ToNodeResponse converts a domain.Node to NodeResponse DTO
func ToNodeResponse(node *domain.Node) NodeResponse {
	return NodeResponse{
		Name:      node.Name,
		Client:    node.Client,
		Addresses: node.Addresses,
	}
}

// ToListNodeResponse converts a slice of domain.Node to a slice of NodeResponse DTOs
func ToListNodeResponse(nodes []domain.Node) []NodeResponse {
	res := make([]NodeResponse, len(nodes))
	for i := range nodes {
		res[i] = ToNodeResponse(&nodes[i])
	}
	return res
}
