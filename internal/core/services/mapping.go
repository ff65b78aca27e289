package services

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/westbrown1/ripple/internal/core/domain"
	"github.com/westbrown1/ripple/internal/schema"
)

// The converters below lift generic records into the typed domain structs.
// Nullable and versioned fields come back as pointers, nil when the record
// carries no value (or, for versioned fields, no active version).

func stringPtr(rec schema.Record, name string) *string {
	if v, ok := rec.GetString(name); ok {
		return &v
	}
	return nil
}

func decimalPtr(rec schema.Record, name string) *decimal.Decimal {
	if v, ok := rec.GetDecimal(name); ok {
		return &v
	}
	return nil
}

func timePtr(rec schema.Record, name string) *time.Time {
	if v, ok := rec.GetTime(name); ok {
		return &v
	}
	return nil
}

func stringValue(rec schema.Record, name string) string {
	v, _ := rec.GetString(name)
	return v
}

func boolValue(rec schema.Record, name string) bool {
	v, _ := rec.GetBool(name)
	return v
}

func stringsValue(rec schema.Record, name string) []string {
	v, _ := rec.GetStrings(name)
	if v == nil {
		v = []string{}
	}
	return v
}

func recordToClient(rec schema.Record) domain.Client {
	return domain.Client{
		Name: stringValue(rec, "name"),
	}
}

func recordToRelationship(rec schema.Record) domain.Relationship {
	return domain.Relationship{
		RelationshipID: stringValue(rec, "id"),
	}
}

func recordToNode(rec schema.Record) domain.Node {
	return domain.Node{
		Name:      stringValue(rec, "name"),
		Client:    stringPtr(rec, "client"),
		Addresses: stringsValue(rec, "addresses"),
	}
}

func recordToAddress(rec schema.Record) domain.Address {
	return domain.Address{
		Address: stringValue(rec, "address"),
		Client:  stringPtr(rec, "client"),
		Nodes:   stringsValue(rec, "nodes"),
	}
}

func recordToAccount(rec schema.Record) domain.Account {
	return domain.Account{
		Name:                stringValue(rec, "name"),
		IsActive:            boolValue(rec, "is_active"),
		Balance:             decimalPtr(rec, "balance"),
		Relationship:        stringPtr(rec, "relationship"),
		Node:                stringPtr(rec, "node"),
		UpperLimit:          decimalPtr(rec, "upper_limit"),
		LowerLimit:          decimalPtr(rec, "lower_limit"),
		LimitsEffectiveTime: timePtr(rec, "limits_effective_time"),
		LimitsExpiryTime:    timePtr(rec, "limits_expiry_time"),
	}
}

func recordToAccountRequest(rec schema.Record) domain.AccountRequest {
	return domain.AccountRequest{
		RelationshipID: stringValue(rec, "relationship"),
		Note:           stringPtr(rec, "note"),
		SourceAddress:  stringPtr(rec, "source_address"),
		DestAddress:    stringPtr(rec, "dest_address"),
	}
}

func recordToExchangeRate(rec schema.Record) domain.ExchangeRate {
	return domain.ExchangeRate{
		Name:          stringValue(rec, "name"),
		Client:        stringPtr(rec, "client"),
		Rate:          decimalPtr(rec, "rate"),
		EffectiveTime: timePtr(rec, "effective_time"),
		ExpiryTime:    timePtr(rec, "expiry_time"),
	}
}

func recordToExchange(rec schema.Record) domain.Exchange {
	return domain.Exchange{
		SourceAccount: stringValue(rec, "source_account"),
		TargetAccount: stringValue(rec, "target_account"),
		Rate:          stringPtr(rec, "rate"),
	}
}

func versionToDomain(v schema.Version) domain.Version {
	return domain.Version{
		VersionID:     v.ID,
		Active:        v.Active,
		EffectiveTime: v.EffectiveTime,
		ExpiryTime:    v.ExpiryTime,
		Values:        map[string]any(v.Fields),
	}
}

func versionsToDomain(versions []schema.Version) []domain.Version {
	out := make([]domain.Version, len(versions))
	for i, v := range versions {
		out[i] = versionToDomain(v)
	}
	return out
}
