package pgsql

import (
	"fmt"

	"github.com/westbrown1/ripple/internal/schema"
)

// BuildRegistry declares the schema of every entity the server exposes and
// finalizes the set. Node is declared before Address even though each side
// carries a many-to-many field naming the other; the node side is patched
// in afterwards, which is exactly the forward-reference case two-phase
// registration exists for.
func BuildRegistry() (*schema.Registry, error) {
	reg := schema.NewRegistry()

	entities := []*schema.Entity{
		{
			Name:  "client",
			Table: "clients",
			Keys:  []string{"name"},
			Fields: []schema.Field{
				{Name: "name", Column: "name", Type: schema.TypeString},
			},
		},
		{
			Name:    "relationship",
			Table:   "relationships",
			Keys:    []string{"id"},
			AutoKey: true,
			Fields: []schema.Field{
				{Name: "id", Column: "id", Type: schema.TypeString},
			},
		},
		{
			Name:  "node",
			Table: "nodes",
			Keys:  []string{"name"},
			Fields: []schema.Field{
				{Name: "name", Column: "name", Type: schema.TypeString},
			},
			ForeignKeys: []schema.ForeignKey{
				{Field: "client", Column: "client_id", Target: "client"},
			},
		},
		{
			Name:  "address",
			Table: "addresses",
			Keys:  []string{"address"},
			Fields: []schema.Field{
				{Name: "address", Column: "address", Type: schema.TypeString},
			},
			ForeignKeys: []schema.ForeignKey{
				{Field: "client", Column: "client_id", Target: "client"},
			},
			ManyToMany: []schema.ManyToMany{
				{Field: "nodes", Table: "node_addresses", OwnColumn: "address_id", TargetColumn: "node_id", Target: "node"},
			},
		},
		{
			Name:  "account",
			Table: "accounts",
			Keys:  []string{"name"},
			Fields: []schema.Field{
				{Name: "name", Column: "name", Type: schema.TypeString},
				{Name: "is_active", Column: "is_active", Type: schema.TypeBool},
				{Name: "balance", Column: "balance", Type: schema.TypeDecimal},
			},
			ForeignKeys: []schema.ForeignKey{
				{Field: "relationship", Column: "relationship_id", Target: "relationship"},
				{Field: "node", Column: "node_id", Target: "node"},
			},
			Versioned: &schema.VersionedGroup{
				Table:        "account_limits",
				ParentColumn: "account_id",
				Fields: []schema.VersionField{
					{Name: "upper_limit", Column: "upper_limit", Type: schema.TypeDecimal},
					{Name: "lower_limit", Column: "lower_limit", Type: schema.TypeDecimal},
				},
				EffectiveField: "limits_effective_time",
				ExpiryField:    "limits_expiry_time",
			},
		},
		{
			Name:  "account_request",
			Table: "account_requests",
			Keys:  []string{"relationship"},
			Fields: []schema.Field{
				{Name: "note", Column: "note", Type: schema.TypeString},
			},
			ForeignKeys: []schema.ForeignKey{
				{Field: "relationship", Column: "relationship_id", Target: "relationship"},
				{Field: "source_address", Column: "source_address_id", Target: "address"},
				{Field: "dest_address", Column: "dest_address_id", Target: "address"},
			},
		},
		{
			Name:  "exchange_rate",
			Table: "exchange_rates",
			Keys:  []string{"name"},
			Fields: []schema.Field{
				{Name: "name", Column: "name", Type: schema.TypeString},
			},
			ForeignKeys: []schema.ForeignKey{
				{Field: "client", Column: "client_id", Target: "client"},
			},
			Versioned: &schema.VersionedGroup{
				Table:        "exchange_rate_values",
				ParentColumn: "exchange_rate_id",
				Fields: []schema.VersionField{
					{Name: "rate", Column: "value", Type: schema.TypeDecimal},
				},
				EffectiveField: "effective_time",
				ExpiryField:    "expiry_time",
			},
		},
		{
			Name:  "exchange",
			Table: "exchanges",
			Keys:  []string{"source_account", "target_account"},
			ForeignKeys: []schema.ForeignKey{
				{Field: "source_account", Column: "source_account_id", Target: "account"},
				{Field: "target_account", Column: "target_account_id", Target: "account"},
			},
			Derived: &schema.DerivedRelation{
				Field:        "rate",
				Table:        "exchange_exchange_rates",
				ParentColumn: "exchange_id",
				TargetColumn: "rate_id",
				Target:       "exchange_rate",
			},
		},
	}
	for _, e := range entities {
		if err := reg.Register(e); err != nil {
			return nil, fmt.Errorf("failed to build entity registry: %w", err)
		}
	}

	err := reg.PatchManyToMany("node", schema.ManyToMany{
		Field:        "addresses",
		Table:        "node_addresses",
		OwnColumn:    "node_id",
		TargetColumn: "address_id",
		Target:       "address",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build entity registry: %w", err)
	}

	if err := reg.Finalize(); err != nil {
		return nil, fmt.Errorf("failed to build entity registry: %w", err)
	}
	return reg, nil
}
