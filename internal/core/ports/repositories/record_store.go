package repositories

import (
	"context"

	"github.com/westbrown1/ripple/internal/schema"
)

// RecordReader defines the read operations of a record accessor.
type RecordReader interface {
	// Get looks up one record by natural key.
	Get(ctx context.Context, keys ...string) (schema.Record, error)

	// Filter returns the records matching the equality criteria. Criteria on
	// versioned, derived or many-to-many fields are rejected.
	Filter(ctx context.Context, criteria schema.Record) ([]schema.Record, error)

	// ActiveVersion returns the active version of the record's versioned
	// group or derived assignment.
	ActiveVersion(ctx context.Context, keys ...string) (*schema.Version, error)

	// VersionHistory returns every version ever written for the record,
	// oldest first.
	VersionHistory(ctx context.Context, keys ...string) ([]schema.Version, error)
}

// RecordWriter defines the write operations of a record accessor.
type RecordWriter interface {
	// Create writes a new record and returns it fully resolved.
	Create(ctx context.Context, fields schema.Record) (schema.Record, error)

	// Update applies changes to the record identified by keys and returns
	// the updated record.
	Update(ctx context.Context, keys []string, changes schema.Record) (schema.Record, error)

	// Delete removes the record identified by keys. Version history is
	// retained.
	Delete(ctx context.Context, keys ...string) error
}

// RecordStore combines all record accessor operations.
// This is a facade for clients that need access to all operations
type RecordStore interface {
	RecordReader
	RecordWriter
}
