package schema

import (
	"time"

	"github.com/shopspring/decimal"
)

// Record is the generic field currency of the record accessor: logical field
// name to value. Value types follow the field's declared FieldType (string,
// bool, decimal.Decimal, time.Time); many-to-many fields carry []string.
// Versioned and derived fields are present only when an active version
// exists for the parent.
type Record map[string]any

// Has reports whether the record carries a value for name.
func (r Record) Has(name string) bool {
	_, ok := r[name]
	return ok
}

// GetString returns the string value for name.
func (r Record) GetString(name string) (string, bool) {
	v, ok := r[name].(string)
	return v, ok
}

// GetBool returns the bool value for name.
func (r Record) GetBool(name string) (bool, bool) {
	v, ok := r[name].(bool)
	return v, ok
}

// GetDecimal returns the decimal value for name.
func (r Record) GetDecimal(name string) (decimal.Decimal, bool) {
	v, ok := r[name].(decimal.Decimal)
	return v, ok
}

// GetTime returns the time value for name.
func (r Record) GetTime(name string) (time.Time, bool) {
	v, ok := r[name].(time.Time)
	return v, ok
}

// GetStrings returns the key set of a many-to-many field.
func (r Record) GetStrings(name string) ([]string, bool) {
	v, ok := r[name].([]string)
	return v, ok
}

// Version is a request-scoped capture of one version record. Operations that
// read a versioned field take the capture at their start and keep using it;
// a later rotation only ever flips the captured row's active flag in
// storage, never its content, so the snapshot stays valid for the operation
// that holds it.
type Version struct {
	ID            int64
	EffectiveTime time.Time
	ExpiryTime    *time.Time
	Active        bool
	Fields        Record
}
