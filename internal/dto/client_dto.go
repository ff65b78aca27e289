package dto

import (
	"github.com/westbrown1/ripple/internal/core/domain"
)

// CreateClientRequest defines the data needed to register a new client.
type CreateClientRequest struct {
	Name string `json:"name" binding:"required"`
}

// UpdateClientRequest defines the changes applicable to a client. Absent
// fields are left untouched.
type UpdateClientRequest struct {
	Name *string `json:"name"`
}

// ClientResponse defines the data returned for a client.
type ClientResponse struct {
	Name string `json:"name"`
}

// ToClientResponse converts a domain.Client to ClientResponse DTO
func ToClientResponse(client *domain.Client) ClientResponse {
	return ClientResponse{
		Name: client.Name,
	}
}

// ToListClientResponse converts a slice of domain.Client to a slice of ClientResponse DTOs
func ToListClientResponse(clients []domain.Client) []ClientResponse {
	res := make([]ClientResponse, len(clients))
	for i := range clients {
		res[i] = ToClientResponse(&clients[i])
	}
	return res
}
