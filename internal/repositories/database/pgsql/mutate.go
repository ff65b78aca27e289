package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/westbrown1/ripple/internal/apperrors"
	"github.com/westbrown1/ripple/internal/schema"
)

// writeSet is one create or update call's fields split by storage
// treatment, in schema declaration order so the generated SQL is stable.
type writeSet struct {
	direct    []directValue
	fks       []fkValue
	m2m       []m2mValue
	overrides schema.Record
	derived   *string
}

type directValue struct {
	field schema.Field
	value any
}

type fkValue struct {
	fk  schema.ForeignKey
	key *string
}

type m2mValue struct {
	m2m  schema.ManyToMany
	keys []string
}

// Create validates the natural key, resolves every reference and writes the
// row. Versioned fields supplied here roll the group's first version right
// after the row lands; many-to-many sets and a derived reference link after
// that. The full record is re-read inside the same transaction.
func (a *RecordAccessor) Create(ctx context.Context, fields schema.Record) (schema.Record, error) {
	if a.policy != nil {
		if err := a.policy(OpCreate, fields); err != nil {
			return nil, err
		}
	}
	e := a.entity
	in := make(schema.Record, len(fields))
	for k, v := range fields {
		in[k] = v
	}
	for _, k := range e.Keys {
		if v, ok := in.GetString(k); !ok || v == "" {
			if e.AutoKey {
				in[k] = a.newID()
				continue
			}
			return nil, fmt.Errorf("%w: %s requires key field %s", apperrors.ErrValidation, e.Name, k)
		}
	}
	ws, err := a.classifyWrite(in, OpCreate)
	if err != nil {
		return nil, err
	}

	var created schema.Record
	err = a.inWriteTx(ctx, func(q Querier) error {
		id, err := a.insertRow(ctx, q, in, ws)
		if err != nil {
			return err
		}
		if len(ws.overrides) > 0 {
			if err := a.insertVersion(ctx, q, id, nil, ws.overrides); err != nil {
				return err
			}
		}
		for _, mv := range ws.m2m {
			if err := a.insertLinks(ctx, q, mv.m2m, id, mv.keys); err != nil {
				return err
			}
		}
		if ws.derived != nil {
			if err := a.assignDerived(ctx, q, id, *ws.derived); err != nil {
				return err
			}
		}
		row, err := a.fetchRowByID(ctx, q, id)
		if err != nil {
			return err
		}
		created, err = a.assemble(ctx, q, row)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update applies changes to the record identified by keys. The parent row
// is locked first; fields routed through the versioned group roll exactly
// one new version per call before any other field is applied, then direct
// and foreign-key columns update, many-to-many sets are replaced and a
// derived reference is reassigned. The updated record is re-read inside the
// same transaction.
func (a *RecordAccessor) Update(ctx context.Context, keys []string, changes schema.Record) (schema.Record, error) {
	if a.policy != nil {
		if err := a.policy(OpUpdate, changes); err != nil {
			return nil, err
		}
	}
	ws, err := a.classifyWrite(changes, OpUpdate)
	if err != nil {
		return nil, err
	}

	var updated schema.Record
	err = a.inWriteTx(ctx, func(q Querier) error {
		row, err := a.fetchRow(ctx, q, keys, true)
		if err != nil {
			return err
		}
		if len(ws.overrides) > 0 {
			if err := a.rotateVersion(ctx, q, row.id, ws.overrides); err != nil {
				return err
			}
		}
		if err := a.updateRow(ctx, q, row.id, ws); err != nil {
			return err
		}
		for _, mv := range ws.m2m {
			if err := a.replaceLinks(ctx, q, mv.m2m, row.id, mv.keys); err != nil {
				return err
			}
		}
		if ws.derived != nil {
			if err := a.assignDerived(ctx, q, row.id, *ws.derived); err != nil {
				return err
			}
		}
		fresh, err := a.fetchRowByID(ctx, q, row.id)
		if err != nil {
			return err
		}
		updated, err = a.assemble(ctx, q, fresh)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// inWriteTx runs fn inside the bound transaction when one is set, otherwise
// inside a transaction the accessor opens and settles itself.
func (a *RecordAccessor) inWriteTx(ctx context.Context, fn func(q Querier) error) error {
	if a.tx != nil {
		return fn(a.tx)
	}
	tx, err := a.Begin(ctx)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = a.Rollback(ctx, tx)
		return err
	}
	return a.Commit(ctx, tx)
}

// classifyWrite dispatches each supplied field to its storage treatment.
// Unknown names are rejected, as is a change to a generated key.
func (a *RecordAccessor) classifyWrite(fields schema.Record, op Op) (*writeSet, error) {
	e := a.entity
	ws := &writeSet{overrides: schema.Record{}}
	for _, f := range e.Fields {
		v, ok := fields[f.Name]
		if !ok {
			continue
		}
		if op == OpUpdate && e.AutoKey && e.IsKey(f.Name) {
			return nil, fmt.Errorf("%w: %s.%s is generated and cannot change", apperrors.ErrValidation, e.Name, f.Name)
		}
		ws.direct = append(ws.direct, directValue{field: f, value: v})
	}
	for _, fk := range e.ForeignKeys {
		v, ok := fields[fk.Field]
		if !ok {
			continue
		}
		switch val := v.(type) {
		case nil:
			ws.fks = append(ws.fks, fkValue{fk: fk})
		case string:
			key := val
			ws.fks = append(ws.fks, fkValue{fk: fk, key: &key})
		default:
			return nil, fmt.Errorf("%w: %s.%s must be a %s key", apperrors.ErrValidation, e.Name, fk.Field, fk.Target)
		}
	}
	for _, m := range e.ManyToMany {
		v, ok := fields[m.Field]
		if !ok {
			continue
		}
		if v == nil {
			ws.m2m = append(ws.m2m, m2mValue{m2m: m, keys: []string{}})
			continue
		}
		keys, ok := fields.GetStrings(m.Field)
		if !ok {
			return nil, fmt.Errorf("%w: %s.%s must be a set of %s keys", apperrors.ErrValidation, e.Name, m.Field, m.Target)
		}
		ws.m2m = append(ws.m2m, m2mValue{m2m: m, keys: keys})
	}
	for _, name := range e.VersionedNames() {
		if v, ok := fields[name]; ok {
			ws.overrides[name] = v
		}
	}
	if e.Derived != nil {
		if v, ok := fields[e.Derived.Field]; ok {
			key, isString := v.(string)
			if !isString || key == "" {
				return nil, fmt.Errorf("%w: %s.%s must name a %s", apperrors.ErrValidation, e.Name, e.Derived.Field, e.Derived.Target)
			}
			ws.derived = &key
		}
	}
	for name := range fields {
		if e.Classify(name) == schema.ClassUnknown {
			return nil, fmt.Errorf("%w: unknown field %s.%s", apperrors.ErrValidation, e.Name, name)
		}
	}
	return ws, nil
}

// insertRow writes the entity row carrying only the supplied fields, so
// absent columns fall back to their storage defaults, and returns the new
// storage id.
func (a *RecordAccessor) insertRow(ctx context.Context, q Querier, in schema.Record, ws *writeSet) (string, error) {
	e := a.entity
	var id string
	if e.AutoKey {
		id, _ = in.GetString(e.Keys[0])
	} else {
		id = a.newID()
	}
	cols := []string{"id"}
	args := []any{id}
	for _, dv := range ws.direct {
		if dv.field.Column == "id" {
			continue
		}
		cols = append(cols, dv.field.Column)
		args = append(args, dv.value)
	}
	for _, fkv := range ws.fks {
		var v any
		if fkv.key != nil {
			targetID, err := a.resolveReference(ctx, q, fkv.fk.Target, *fkv.key, fkv.fk.Field)
			if err != nil {
				return "", err
			}
			v = targetID
		}
		cols = append(cols, fkv.fk.Column)
		args = append(args, v)
	}
	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		e.Table, strings.Join(cols, ", "), strings.Join(placeholders, ", "))
	if _, err := q.Exec(ctx, query, args...); err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return "", fmt.Errorf("%w: %s %q", apperrors.ErrDuplicate, e.Name, strings.Join(a.keyValues(in), "/"))
		}
		return "", fmt.Errorf("failed to insert %s: %w", e.Name, err)
	}
	return id, nil
}

// updateRow applies the direct and foreign-key assignments to the locked
// row. A no-op write set leaves the row untouched.
func (a *RecordAccessor) updateRow(ctx context.Context, q Querier, id string, ws *writeSet) error {
	e := a.entity
	var sets []string
	var args []any
	for _, dv := range ws.direct {
		args = append(args, dv.value)
		sets = append(sets, fmt.Sprintf("%s = $%d", dv.field.Column, len(args)))
	}
	for _, fkv := range ws.fks {
		var v any
		if fkv.key != nil {
			targetID, err := a.resolveReference(ctx, q, fkv.fk.Target, *fkv.key, fkv.fk.Field)
			if err != nil {
				return err
			}
			v = targetID
		}
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", fkv.fk.Column, len(args)))
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d", e.Table, strings.Join(sets, ", "), len(args))
	if _, err := q.Exec(ctx, query, args...); err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return fmt.Errorf("%w: %s", apperrors.ErrDuplicate, e.Name)
		}
		return fmt.Errorf("failed to update %s: %w", e.Name, err)
	}
	return nil
}

// insertLinks writes one association row per referenced key.
func (a *RecordAccessor) insertLinks(ctx context.Context, q Querier, m schema.ManyToMany, id string, keys []string) error {
	query := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2)", m.Table, m.OwnColumn, m.TargetColumn)
	for _, key := range keys {
		targetID, err := a.resolveReference(ctx, q, m.Target, key, m.Field)
		if err != nil {
			return err
		}
		if _, err := q.Exec(ctx, query, id, targetID); err != nil {
			if pgErrorCode(err) == pgUniqueViolation {
				return fmt.Errorf("%w: %s.%s lists %q twice", apperrors.ErrValidation, a.entity.Name, m.Field, key)
			}
			return fmt.Errorf("failed to link %s.%s: %w", a.entity.Name, m.Field, err)
		}
	}
	return nil
}

// replaceLinks swaps the association rows behind a many-to-many field for
// the supplied key set.
func (a *RecordAccessor) replaceLinks(ctx context.Context, q Querier, m schema.ManyToMany, id string, keys []string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", m.Table, m.OwnColumn)
	if _, err := q.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to clear %s.%s: %w", a.entity.Name, m.Field, err)
	}
	return a.insertLinks(ctx, q, m, id, keys)
}

// resolveReference maps a referenced entity's key to its storage id,
// reporting a missing target as a reference error on field.
func (a *RecordAccessor) resolveReference(ctx context.Context, q Querier, target, key, field string) (string, error) {
	id, err := a.targetID(ctx, q, target, key)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", fmt.Errorf("%w: %s %q referenced by %s", apperrors.ErrReferenceNotFound, target, key, field)
		}
		return "", err
	}
	return id, nil
}

// keyValues projects the natural-key values out of a record for messages.
func (a *RecordAccessor) keyValues(in schema.Record) []string {
	vals := make([]string, len(a.entity.Keys))
	for i, k := range a.entity.Keys {
		vals[i], _ = in.GetString(k)
	}
	return vals
}
