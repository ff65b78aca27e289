package domain

// Relationship is a credit line between two parties. It carries no fields
// of its own; its generated id is the handle accounts and requests hang off.
type Relationship struct {
	RelationshipID string `json:"relationshipID"` // Primary Key, server-generated
}

// AccountRequest is a pending proposal to open an account on a relationship.
// One request per relationship, hence the relationship reference is the key.
type AccountRequest struct {
	RelationshipID string  `json:"relationshipID"`          // Primary Key, FK -> relationships
	Note           *string `json:"note,omitempty"`          // Free-form message to the counterparty
	SourceAddress  *string `json:"sourceAddress,omitempty"` // FK -> addresses.address
	DestAddress    *string `json:"destAddress,omitempty"`   // FK -> addresses.address
}
