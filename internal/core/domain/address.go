package domain

// Address is a payment endpoint reachable through one or more nodes.
type Address struct {
	Address string   `json:"address"`          // Primary Key
	Client  *string  `json:"client,omitempty"` // Nullable FK -> clients.name
	Nodes   []string `json:"nodes"`            // Linked node keys, sorted
}
