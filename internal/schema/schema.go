// Package schema declares the per-entity mapping metadata that drives the
// generic record accessor: natural keys, logical-field-to-column
// translation, foreign keys, many-to-many links, versioned attribute groups
// and derived relations. Schemas are plain typed values built at startup and
// validated once by Registry.Finalize before any accessor uses them.
package schema

// FieldType tells the accessor how to scan and bind a logical field's value.
type FieldType int

const (
	TypeString FieldType = iota
	TypeBool
	TypeDecimal
	TypeTime
)

// FieldClass is the dispatch outcome for a logical field name. Every field
// reference entering the accessor is classified exactly once at the boundary.
type FieldClass int

const (
	ClassUnknown FieldClass = iota
	ClassDirect
	ClassForeignKey
	ClassManyToMany
	ClassVersioned
	ClassDerived
)

// Field maps a logical field straight onto a column of the entity's own row.
type Field struct {
	Name   string
	Column string
	Type   FieldType
}

// ForeignKey maps a logical field onto a column holding another entity's row
// id. Callers always supply and receive the referenced entity's natural key;
// the accessor translates between key and row id.
type ForeignKey struct {
	Field  string
	Column string
	Target string
}

// ManyToMany maps a logical field onto an association table between this
// entity and the target. The association rows have no identity of their own;
// callers see only the set of target keys.
type ManyToMany struct {
	Field        string
	Table        string
	OwnColumn    string
	TargetColumn string
	Target       string
}

// VersionField is one value column of a versioned group. Value fields are
// copied forward from the prior active version on every rotation unless the
// caller overrides them in the same operation.
type VersionField struct {
	Name   string
	Column string
	Type   FieldType
}

// VersionedGroup redirects a set of logical fields through an auxiliary
// version table. The table always carries the fixed columns is_active,
// effective_time and expiry_time plus ParentColumn referencing the owning
// row. EffectiveField and ExpiryField are the logical names under which the
// two timestamps are exposed on the parent entity; effective_time is stamped
// fresh on every rotation and never copied forward, expiry_time is left null
// unless the caller sets it.
type VersionedGroup struct {
	Table          string
	ParentColumn   string
	Fields         []VersionField
	EffectiveField string
	ExpiryField    string
}

// DerivedRelation is a versioned group whose value is a reference to another
// entity rather than a scalar: the association table links the parent to the
// target and the single active row decides which target currently applies.
type DerivedRelation struct {
	Field        string
	Table        string
	ParentColumn string
	TargetColumn string
	Target       string
}

// Entity is the full schema of one entity type.
//
// Keys is the ordered list of natural-key fields; each must be a direct or a
// foreign-key field. AutoKey marks entities whose single key is generated by
// the accessor when absent from a create (the relationship id case).
type Entity struct {
	Name        string
	Table       string
	Keys        []string
	AutoKey     bool
	Fields      []Field
	ForeignKeys []ForeignKey
	ManyToMany  []ManyToMany
	Versioned   *VersionedGroup
	Derived     *DerivedRelation
}

// Field returns the direct field declaration for name.
func (e *Entity) Field(name string) (Field, bool) {
	for _, f := range e.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// ForeignKey returns the foreign-key declaration for name.
func (e *Entity) ForeignKey(name string) (ForeignKey, bool) {
	for _, fk := range e.ForeignKeys {
		if fk.Field == name {
			return fk, true
		}
	}
	return ForeignKey{}, false
}

// ManyToManyField returns the many-to-many declaration for name.
func (e *Entity) ManyToManyField(name string) (ManyToMany, bool) {
	for _, m := range e.ManyToMany {
		if m.Field == name {
			return m, true
		}
	}
	return ManyToMany{}, false
}

// VersionField returns the versioned value-field declaration for name.
func (e *Entity) VersionField(name string) (VersionField, bool) {
	if e.Versioned == nil {
		return VersionField{}, false
	}
	for _, f := range e.Versioned.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return VersionField{}, false
}

// VersionedNames lists every logical field served by the versioned group,
// value fields and the two exposed timestamps alike. A write to any of them
// rotates the group; a filter on any of them is rejected.
func (e *Entity) VersionedNames() []string {
	if e.Versioned == nil {
		return nil
	}
	names := make([]string, 0, len(e.Versioned.Fields)+2)
	for _, f := range e.Versioned.Fields {
		names = append(names, f.Name)
	}
	names = append(names, e.Versioned.EffectiveField, e.Versioned.ExpiryField)
	return names
}

// Classify dispatches a logical field name to its storage treatment.
func (e *Entity) Classify(name string) FieldClass {
	if _, ok := e.Field(name); ok {
		return ClassDirect
	}
	if _, ok := e.ForeignKey(name); ok {
		return ClassForeignKey
	}
	if _, ok := e.ManyToManyField(name); ok {
		return ClassManyToMany
	}
	for _, n := range e.VersionedNames() {
		if n == name {
			return ClassVersioned
		}
	}
	if e.Derived != nil && e.Derived.Field == name {
		return ClassDerived
	}
	return ClassUnknown
}

// IsKey reports whether name is one of the entity's natural-key fields.
func (e *Entity) IsKey(name string) bool {
	for _, k := range e.Keys {
		if k == name {
			return true
		}
	}
	return false
}
