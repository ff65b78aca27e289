package dto

import (
	"github.com/westbrown1/ripple/internal/core/domain"
)

// RelationshipResponse defines the data returned for a relationship.
type RelationshipResponse struct {
	RelationshipID string `json:"relationshipID"`
}

// ToRelationshipResponse converts a domain.Relationship to RelationshipResponse DTO
func ToRelationshipResponse(rel *domain.Relationship) RelationshipResponse {
	return RelationshipResponse{
		RelationshipID: rel.RelationshipID,
	}
}

// ToListRelationshipResponse converts a slice of domain.Relationship to a slice of RelationshipResponse DTOs
func ToListRelationshipResponse(rels []domain.Relationship) []RelationshipResponse {
	res := make([]RelationshipResponse, len(rels))
	for i := range rels {
		res[i] = ToRelationshipResponse(&rels[i])
	}
	return res
}

// CreateAccountRequestRequest defines the data needed to open an account
// request against a relationship.
type CreateAccountRequestRequest struct {
	Relationship  string  `json:"relationship" binding:"required"`
	Note          *string `json:"note"`
	SourceAddress *string `json:"sourceAddress"`
	DestAddress   *string `json:"destAddress"`
}

// UpdateAccountRequestRequest defines the changes applicable to a pending
// account request. Absent fields are left untouched.
type UpdateAccountRequestRequest struct {
	Note          *string `json:"note"`
	SourceAddress *string `json:"sourceAddress"`
	DestAddress   *string `json:"destAddress"`
}

// ListAccountRequestsRequest defines the filter criteria for listing
// account requests.
type ListAccountRequestsRequest struct {
	SourceAddress *string `form:"source_address"`
	DestAddress   *string `form:"dest_address"`
}

// AccountRequestResponse defines the data returned for an account request.
type AccountRequestResponse struct {
	Relationship  string  `json:"relationship"`
	Note          *string `json:"note,omitempty"`
	SourceAddress *string `json:"sourceAddress,omitempty"`
	DestAddress   *string `json:"destAddress,omitempty"`
}

// ToAccountRequestResponse converts a domain.AccountRequest to AccountRequestResponse DTO
func ToAccountRequestResponse(ar *domain.AccountRequest) AccountRequestResponse {
	return AccountRequestResponse{
		Relationship:  ar.RelationshipID,
		Note:          ar.Note,
		SourceAddress: ar.SourceAddress,
		DestAddress:   ar.DestAddress,
	}
}

// ToListAccountRequestResponse converts a slice of domain.AccountRequest to a slice of AccountRequestResponse DTOs
func ToListAccountRequestResponse(ars []domain.AccountRequest) []AccountRequestResponse {
	res := make([]AccountRequestResponse, len(ars))
	for i := range ars {
		res[i] = ToAccountRequestResponse(&ars[i])
	}
	return res
}
