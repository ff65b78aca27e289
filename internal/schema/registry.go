package schema

import "fmt"

// Registry holds the schemas of every entity type. Registration is
// two-phase: entities are registered in any order (an entity may name a
// target that is not registered yet), mutual references are patched in with
// PatchManyToMany, and Finalize validates the whole set and freezes it.
// Accessors must only be built from a finalized registry.
type Registry struct {
	entities map[string]*Entity
	names    []string
	final    bool
}

// NewRegistry returns an empty, unfinalized registry.
func NewRegistry() *Registry {
	return &Registry{entities: make(map[string]*Entity)}
}

// Register adds an entity schema. Registering a duplicate name or adding to
// a finalized registry is an error.
func (r *Registry) Register(e *Entity) error {
	if r.final {
		return fmt.Errorf("registry is finalized, cannot register %q", e.Name)
	}
	if e.Name == "" {
		return fmt.Errorf("entity name must not be empty")
	}
	if _, exists := r.entities[e.Name]; exists {
		return fmt.Errorf("entity %q is already registered", e.Name)
	}
	r.entities[e.Name] = e
	r.names = append(r.names, e.Name)
	return nil
}

// PatchManyToMany adds a many-to-many field to an already registered entity.
// This is the second phase of registration for mutual references: the node
// side is declared without its addresses field, the address side registers,
// and the node side is patched afterwards.
func (r *Registry) PatchManyToMany(entity string, m ManyToMany) error {
	if r.final {
		return fmt.Errorf("registry is finalized, cannot patch %q", entity)
	}
	e, ok := r.entities[entity]
	if !ok {
		return fmt.Errorf("cannot patch unregistered entity %q", entity)
	}
	if e.Classify(m.Field) != ClassUnknown {
		return fmt.Errorf("entity %q already has a field %q", entity, m.Field)
	}
	e.ManyToMany = append(e.ManyToMany, m)
	return nil
}

// Finalize validates every registered schema and freezes the registry. It
// checks that keys exist and are direct or foreign-key fields, that every
// referenced target is registered and usable as a reference (single-field
// key), and that no logical name is claimed by two field classes.
func (r *Registry) Finalize() error {
	if r.final {
		return fmt.Errorf("registry is already finalized")
	}
	for _, name := range r.names {
		if err := r.validate(r.entities[name]); err != nil {
			return fmt.Errorf("entity %q: %w", name, err)
		}
	}
	r.final = true
	return nil
}

// Finalized reports whether Finalize has run successfully.
func (r *Registry) Finalized() bool {
	return r.final
}

// Lookup returns the schema registered under name.
func (r *Registry) Lookup(name string) (*Entity, bool) {
	e, ok := r.entities[name]
	return e, ok
}

// Entities lists the registered entity names in registration order.
func (r *Registry) Entities() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

func (r *Registry) validate(e *Entity) error {
	if e.Table == "" {
		return fmt.Errorf("table must not be empty")
	}
	if len(e.Keys) == 0 {
		return fmt.Errorf("at least one key field is required")
	}

	seen := make(map[string]FieldClass)
	claim := func(name string, class FieldClass) error {
		if name == "" {
			return fmt.Errorf("logical field name must not be empty")
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("logical field %q declared more than once", name)
		}
		seen[name] = class
		return nil
	}

	for _, f := range e.Fields {
		if err := claim(f.Name, ClassDirect); err != nil {
			return err
		}
		if f.Column == "" {
			return fmt.Errorf("direct field %q has no column", f.Name)
		}
	}
	for _, fk := range e.ForeignKeys {
		if err := claim(fk.Field, ClassForeignKey); err != nil {
			return err
		}
		if fk.Column == "" {
			return fmt.Errorf("foreign key %q has no column", fk.Field)
		}
		if err := r.checkTarget(fk.Target); err != nil {
			return fmt.Errorf("foreign key %q: %w", fk.Field, err)
		}
	}
	for _, m := range e.ManyToMany {
		if err := claim(m.Field, ClassManyToMany); err != nil {
			return err
		}
		if m.Table == "" || m.OwnColumn == "" || m.TargetColumn == "" {
			return fmt.Errorf("many-to-many %q is missing its association table layout", m.Field)
		}
		if err := r.checkTarget(m.Target); err != nil {
			return fmt.Errorf("many-to-many %q: %w", m.Field, err)
		}
		if err := r.checkJoinTarget(m.Target); err != nil {
			return fmt.Errorf("many-to-many %q: %w", m.Field, err)
		}
	}
	if v := e.Versioned; v != nil {
		if v.Table == "" || v.ParentColumn == "" {
			return fmt.Errorf("versioned group is missing its table layout")
		}
		if v.EffectiveField == "" || v.ExpiryField == "" {
			return fmt.Errorf("versioned group must expose effective and expiry fields")
		}
		for _, f := range v.Fields {
			if err := claim(f.Name, ClassVersioned); err != nil {
				return err
			}
			if f.Column == "" {
				return fmt.Errorf("versioned field %q has no column", f.Name)
			}
		}
		if err := claim(v.EffectiveField, ClassVersioned); err != nil {
			return err
		}
		if err := claim(v.ExpiryField, ClassVersioned); err != nil {
			return err
		}
	}
	if d := e.Derived; d != nil {
		if err := claim(d.Field, ClassDerived); err != nil {
			return err
		}
		if d.Table == "" || d.ParentColumn == "" || d.TargetColumn == "" {
			return fmt.Errorf("derived relation %q is missing its association table layout", d.Field)
		}
		if err := r.checkTarget(d.Target); err != nil {
			return fmt.Errorf("derived relation %q: %w", d.Field, err)
		}
		if err := r.checkJoinTarget(d.Target); err != nil {
			return fmt.Errorf("derived relation %q: %w", d.Field, err)
		}
	}

	for _, k := range e.Keys {
		switch seen[k] {
		case ClassDirect, ClassForeignKey:
		default:
			return fmt.Errorf("key field %q must be a direct or foreign-key field", k)
		}
	}
	if e.AutoKey {
		if len(e.Keys) != 1 {
			return fmt.Errorf("auto-key entities must have exactly one key field")
		}
		if seen[e.Keys[0]] != ClassDirect {
			return fmt.Errorf("auto-key field %q must be a direct field", e.Keys[0])
		}
	}
	return nil
}

// checkTarget verifies a referenced entity exists and can serve as a
// reference target. Composite-key entities cannot be referenced: a foreign
// key column holds one row id resolved through one key value.
func (r *Registry) checkTarget(target string) error {
	t, ok := r.entities[target]
	if !ok {
		return fmt.Errorf("target entity %q is not registered", target)
	}
	if len(t.Keys) != 1 {
		return fmt.Errorf("target entity %q has a composite key and cannot be referenced", target)
	}
	return nil
}

// checkJoinTarget verifies a target whose key is projected through an
// association-table join exposes that key as a direct column.
func (r *Registry) checkJoinTarget(target string) error {
	t := r.entities[target]
	if t.Classify(t.Keys[0]) != ClassDirect {
		return fmt.Errorf("target entity %q must expose a direct key field", target)
	}
	return nil
}
