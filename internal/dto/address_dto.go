package dto

import (
	"github.com/westbrown1/ripple/internal/core/domain"
)

// CreateAddressRequest defines the data needed to create a new address.
type CreateAddressRequest struct {
	Address string   `json:"address" binding:"required"`
	Client  *string  `json:"client"`
	Nodes   []string `json:"nodes"`
}

// UpdateAddressRequest defines the changes applicable to an address. Absent
// fields are left untouched; an empty nodes array unlinks every node.
type UpdateAddressRequest struct {
	Address *string   `json:"address"`
	Client  *string   `json:"client"`
	Nodes   *[]string `json:"nodes"`
}

// ListAddressesRequest defines the filter criteria for listing addresses.
type ListAddressesRequest struct {
	Client *string `form:"client"`
}

// AddressResponse defines the data returned for an address.
type AddressResponse struct {
	Address string   `json:"address"`
	Client  *string  `json:"client,omitempty"`
	Nodes   []string `json:"nodes"`
}

// ToAddressResponse converts a domain.Address to AddressResponse DTO
func ToAddressResponse(addr *domain.Address) AddressResponse {
	return AddressResponse{
		Address: addr.Address,
		Client:  addr.Client,
		Nodes:   addr.Nodes,
	}
}

// ToListAddressResponse converts a slice of domain.Address to a slice of AddressResponse DTOs
func ToListAddressResponse(addrs []domain.Address) []AddressResponse {
	res := make([]AddressResponse, len(addrs))
	for i := range addrs {
		res[i] = ToAddressResponse(&addrs[i])
	}
	return res
}
