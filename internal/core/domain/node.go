package domain

// Node is a routing point in the credit network.
type Node struct {
	Name      string   `json:"name"`             // Primary Key
	Client    *string  `json:"client,omitempty"` // Nullable FK -> clients.name
	Addresses []string `json:"addresses"`        // Linked address keys, sorted
}
