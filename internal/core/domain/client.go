package domain

// Client represents a participant organization that owns nodes, addresses
// and exchange rates. The name is the natural key.
type Client struct {
	Name string `json:"name"` // Primary Key
}
