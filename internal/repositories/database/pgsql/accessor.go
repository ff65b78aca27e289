package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/westbrown1/ripple/internal/apperrors"
	"github.com/westbrown1/ripple/internal/schema"
)

// PostgreSQL error codes the accessor translates into domain errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Op identifies the accessor operation a field policy is screening.
type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpFilter Op = "filter"
)

// FieldPolicy runs against the caller-supplied fields before the generic
// dispatch. It gives an entity a place for field rules the schema cannot
// express; returning an error aborts the operation.
type FieldPolicy func(op Op, fields schema.Record) error

// Option configures a RecordAccessor.
type Option func(*RecordAccessor)

// WithClock overrides the clock used to stamp version effective times.
func WithClock(now func() time.Time) Option {
	return func(a *RecordAccessor) { a.now = now }
}

// WithIDFunc overrides the generator for entity row ids.
func WithIDFunc(newID func() string) Option {
	return func(a *RecordAccessor) { a.newID = newID }
}

// WithFieldPolicy installs a per-entity field policy.
func WithFieldPolicy(p FieldPolicy) Option {
	return func(a *RecordAccessor) { a.policy = p }
}

// RecordAccessor is the generic keyed CRUD surface for one entity type,
// driven entirely by its schema. Direct fields read and write the entity's
// own row; foreign keys resolve to the referenced entity's natural key;
// many-to-many fields resolve to key sets through the association table;
// versioned and derived fields route through the entity's version group.
type RecordAccessor struct {
	BaseRepository
	registry *schema.Registry
	entity   *schema.Entity
	tx       pgx.Tx
	policy   FieldPolicy
	now      func() time.Time
	newID    func() string
}

// NewRecordAccessor builds the accessor for entity. The registry must be
// finalized first so every reference the schema declares is known valid.
func NewRecordAccessor(db DB, reg *schema.Registry, entity string, opts ...Option) (*RecordAccessor, error) {
	if !reg.Finalized() {
		return nil, fmt.Errorf("registry must be finalized before accessors are built")
	}
	e, ok := reg.Lookup(entity)
	if !ok {
		return nil, fmt.Errorf("entity %q is not registered", entity)
	}
	a := &RecordAccessor{
		BaseRepository: BaseRepository{DB: db},
		registry:       reg,
		entity:         e,
		now:            time.Now,
		newID:          func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Entity returns the schema this accessor serves.
func (a *RecordAccessor) Entity() *schema.Entity {
	return a.entity
}

// WithTx returns a copy of the accessor bound to tx. Every operation on the
// copy runs inside tx and commit stays with the caller.
func (a *RecordAccessor) WithTx(tx pgx.Tx) *RecordAccessor {
	bound := *a
	bound.tx = tx
	return &bound
}

func (a *RecordAccessor) q() Querier {
	if a.tx != nil {
		return a.tx
	}
	return a.DB
}

// Get looks up one record by natural key. Direct fields come off the row,
// foreign keys resolve to the referenced entity's key, many-to-many fields
// to the related key set, and versioned or derived fields to the active
// version when one exists (absent otherwise, never an error).
func (a *RecordAccessor) Get(ctx context.Context, keys ...string) (schema.Record, error) {
	q := a.q()
	row, err := a.fetchRow(ctx, q, keys, false)
	if err != nil {
		return nil, err
	}
	return a.assemble(ctx, q, row)
}

// Filter returns every record matching the equality criteria, ordered by
// natural key. Criteria may name direct and foreign-key fields only:
// versioned, derived and many-to-many fields cannot be pushed to storage as
// an equality predicate and are rejected whatever their value, an empty one
// included. A foreign-key criterion naming a nonexistent referenced entity
// matches nothing.
func (a *RecordAccessor) Filter(ctx context.Context, criteria schema.Record) ([]schema.Record, error) {
	if a.policy != nil {
		if err := a.policy(OpFilter, criteria); err != nil {
			return nil, err
		}
	}
	e := a.entity
	for name := range criteria {
		switch e.Classify(name) {
		case schema.ClassDirect, schema.ClassForeignKey:
		case schema.ClassUnknown:
			return nil, fmt.Errorf("%w: unknown field %s.%s", apperrors.ErrValidation, e.Name, name)
		default:
			return nil, fmt.Errorf("%w: %s.%s", apperrors.ErrUnsupportedFilter, e.Name, name)
		}
	}

	q := a.q()
	var conds []string
	var args []any
	for _, f := range e.Fields {
		v, ok := criteria[f.Name]
		if !ok {
			continue
		}
		args = append(args, v)
		conds = append(conds, fmt.Sprintf("%s = $%d", f.Column, len(args)))
	}
	for _, fk := range e.ForeignKeys {
		v, ok := criteria[fk.Field]
		if !ok {
			continue
		}
		key, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s.%s must be a %s key", apperrors.ErrValidation, e.Name, fk.Field, fk.Target)
		}
		id, err := a.targetID(ctx, q, fk.Target, key)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return []schema.Record{}, nil
			}
			return nil, err
		}
		args = append(args, id)
		conds = append(conds, fmt.Sprintf("%s = $%d", fk.Column, len(args)))
	}

	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(a.selectColumns(), ", "), e.Table)
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY " + strings.Join(a.keyColumns(), ", ")

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to filter %s: %w", e.Name, err)
	}
	defer rows.Close()

	var matched []*entityRow
	for rows.Next() {
		row, err := a.scanEntityRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", e.Name, err)
		}
		matched = append(matched, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s: %w", e.Name, err)
	}
	rows.Close()

	records := make([]schema.Record, 0, len(matched))
	for _, row := range matched {
		rec, err := a.assemble(ctx, q, row)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// Delete removes the entity row by natural key. Version history is retained
// for audit; pure association links cascade in storage, and a delete that
// other entity rows still reference is rejected.
func (a *RecordAccessor) Delete(ctx context.Context, keys ...string) error {
	q := a.q()
	where, args, err := a.keyPredicate(ctx, q, keys)
	if err != nil {
		return err
	}
	tag, err := q.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE %s", a.entity.Table, where), args...)
	if err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return fmt.Errorf("%w: %s %q is still referenced", apperrors.ErrValidation, a.entity.Name, strings.Join(keys, "/"))
		}
		return fmt.Errorf("failed to delete %s: %w", a.entity.Name, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s %q", apperrors.ErrNotFound, a.entity.Name, strings.Join(keys, "/"))
	}
	return nil
}

// entityRow is one scanned storage row before reference resolution.
type entityRow struct {
	id     string
	fields schema.Record
	fkIDs  map[string]string
}

// fetchRow loads the entity row matching keys. forUpdate locks the row so
// concurrent writers to the same parent serialize on it.
func (a *RecordAccessor) fetchRow(ctx context.Context, q Querier, keys []string, forUpdate bool) (*entityRow, error) {
	where, args, err := a.keyPredicate(ctx, q, keys)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s", strings.Join(a.selectColumns(), ", "), a.entity.Table, where)
	if forUpdate {
		query += " FOR UPDATE"
	}
	row, err := a.scanEntityRow(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s %q", apperrors.ErrNotFound, a.entity.Name, strings.Join(keys, "/"))
		}
		return nil, fmt.Errorf("failed to fetch %s: %w", a.entity.Name, err)
	}
	return row, nil
}

// fetchRowByID reloads a row by storage id, used to return the full record
// after a write inside the same transaction.
func (a *RecordAccessor) fetchRowByID(ctx context.Context, q Querier, id string) (*entityRow, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", strings.Join(a.selectColumns(), ", "), a.entity.Table)
	row, err := a.scanEntityRow(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrNotFound, a.entity.Name)
		}
		return nil, fmt.Errorf("failed to fetch %s: %w", a.entity.Name, err)
	}
	return row, nil
}

// assemble resolves a scanned row into the caller-facing record.
func (a *RecordAccessor) assemble(ctx context.Context, q Querier, row *entityRow) (schema.Record, error) {
	e := a.entity
	rec := row.fields
	for _, fk := range e.ForeignKeys {
		id, ok := row.fkIDs[fk.Field]
		if !ok {
			rec[fk.Field] = nil
			continue
		}
		key, err := a.targetKey(ctx, q, fk.Target, id)
		if err != nil {
			return nil, err
		}
		rec[fk.Field] = key
	}
	if e.Versioned != nil {
		v, err := a.activeVersion(ctx, q, row.id)
		if err != nil {
			return nil, err
		}
		if v != nil {
			for _, f := range e.Versioned.Fields {
				rec[f.Name] = v.Fields[f.Name]
			}
			rec[e.Versioned.EffectiveField] = v.EffectiveTime
			if v.ExpiryTime != nil {
				rec[e.Versioned.ExpiryField] = *v.ExpiryTime
			} else {
				rec[e.Versioned.ExpiryField] = nil
			}
		}
	}
	for _, m := range e.ManyToMany {
		keys, err := a.relatedKeys(ctx, q, m, row.id)
		if err != nil {
			return nil, err
		}
		rec[m.Field] = keys
	}
	if e.Derived != nil {
		v, err := a.activeDerived(ctx, q, row.id)
		if err != nil {
			return nil, err
		}
		if v != nil {
			rec[e.Derived.Field] = v.Fields[e.Derived.Field]
		}
	}
	return rec, nil
}

// keyPredicate translates natural-key values into a WHERE clause. Key parts
// declared as foreign keys resolve through the referenced entity first; a
// miss there means the requested record cannot exist.
func (a *RecordAccessor) keyPredicate(ctx context.Context, q Querier, keys []string) (string, []any, error) {
	e := a.entity
	if len(keys) != len(e.Keys) {
		return "", nil, fmt.Errorf("%w: %s key is (%s), got %d value(s)",
			apperrors.ErrValidation, e.Name, strings.Join(e.Keys, ", "), len(keys))
	}
	conds := make([]string, len(e.Keys))
	args := make([]any, len(e.Keys))
	for i, k := range e.Keys {
		if fk, ok := e.ForeignKey(k); ok {
			id, err := a.targetID(ctx, q, fk.Target, keys[i])
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return "", nil, fmt.Errorf("%w: %s %q", apperrors.ErrNotFound, e.Name, strings.Join(keys, "/"))
				}
				return "", nil, err
			}
			conds[i] = fmt.Sprintf("%s = $%d", fk.Column, i+1)
			args[i] = id
			continue
		}
		f, _ := e.Field(k)
		conds[i] = fmt.Sprintf("%s = $%d", f.Column, i+1)
		args[i] = keys[i]
	}
	return strings.Join(conds, " AND "), args, nil
}

// selectColumns lists the id plus every direct and foreign-key column in
// declaration order.
func (a *RecordAccessor) selectColumns() []string {
	e := a.entity
	cols := []string{"id"}
	for _, f := range e.Fields {
		if f.Column == "id" {
			continue
		}
		cols = append(cols, f.Column)
	}
	for _, fk := range e.ForeignKeys {
		cols = append(cols, fk.Column)
	}
	return cols
}

// keyColumns lists the storage columns backing the natural key.
func (a *RecordAccessor) keyColumns() []string {
	e := a.entity
	cols := make([]string, len(e.Keys))
	for i, k := range e.Keys {
		if fk, ok := e.ForeignKey(k); ok {
			cols[i] = fk.Column
			continue
		}
		f, _ := e.Field(k)
		cols[i] = f.Column
	}
	return cols
}

type rowScan interface {
	Scan(dest ...any) error
}

// scanEntityRow scans one row in selectColumns order.
func (a *RecordAccessor) scanEntityRow(s rowScan) (*entityRow, error) {
	e := a.entity
	var id string
	dests := []any{&id}
	var direct []schema.Field
	for _, f := range e.Fields {
		if f.Column == "id" {
			continue
		}
		direct = append(direct, f)
		dests = append(dests, holderFor(f.Type))
	}
	fkHolders := make([]*sql.NullString, len(e.ForeignKeys))
	for i := range e.ForeignKeys {
		fkHolders[i] = new(sql.NullString)
		dests = append(dests, fkHolders[i])
	}
	if err := s.Scan(dests...); err != nil {
		return nil, err
	}
	row := &entityRow{id: id, fields: schema.Record{}, fkIDs: make(map[string]string)}
	for i, f := range direct {
		row.fields[f.Name] = holderValue(dests[1+i])
	}
	for _, f := range e.Fields {
		if f.Column == "id" {
			row.fields[f.Name] = id
		}
	}
	for i, fk := range e.ForeignKeys {
		if fkHolders[i].Valid {
			row.fkIDs[fk.Field] = fkHolders[i].String
		}
	}
	return row, nil
}

// targetID resolves a referenced entity's natural key to its storage id.
// When the referenced entity is itself keyed by a foreign key, resolution
// recurses through that reference first.
func (a *RecordAccessor) targetID(ctx context.Context, q Querier, target, key string) (string, error) {
	t, ok := a.registry.Lookup(target)
	if !ok {
		return "", fmt.Errorf("entity %q is not registered", target)
	}
	var col string
	arg := key
	if fk, ok := t.ForeignKey(t.Keys[0]); ok {
		refID, err := a.targetID(ctx, q, fk.Target, key)
		if err != nil {
			return "", err
		}
		col, arg = fk.Column, refID
	} else {
		f, _ := t.Field(t.Keys[0])
		col = f.Column
	}
	var id string
	err := q.QueryRow(ctx, fmt.Sprintf("SELECT id FROM %s WHERE %s = $1", t.Table, col), arg).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("%w: %s %q", apperrors.ErrNotFound, target, key)
		}
		return "", fmt.Errorf("failed to resolve %s %q: %w", target, key, err)
	}
	return id, nil
}

// targetKey projects a referenced row's storage id back to its natural key.
func (a *RecordAccessor) targetKey(ctx context.Context, q Querier, target, id string) (string, error) {
	t, ok := a.registry.Lookup(target)
	if !ok {
		return "", fmt.Errorf("entity %q is not registered", target)
	}
	if fk, ok := t.ForeignKey(t.Keys[0]); ok {
		var refID string
		err := q.QueryRow(ctx, fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", fk.Column, t.Table), id).Scan(&refID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return "", fmt.Errorf("%w: %s", apperrors.ErrNotFound, target)
			}
			return "", fmt.Errorf("failed to resolve %s key: %w", target, err)
		}
		return a.targetKey(ctx, q, fk.Target, refID)
	}
	f, _ := t.Field(t.Keys[0])
	var key string
	err := q.QueryRow(ctx, fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", f.Column, t.Table), id).Scan(&key)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("%w: %s", apperrors.ErrNotFound, target)
		}
		return "", fmt.Errorf("failed to resolve %s key: %w", target, err)
	}
	return key, nil
}

// relatedKeys lists the natural keys on the far side of a many-to-many
// field, ordered for a stable result.
func (a *RecordAccessor) relatedKeys(ctx context.Context, q Querier, m schema.ManyToMany, id string) ([]string, error) {
	t, ok := a.registry.Lookup(m.Target)
	if !ok {
		return nil, fmt.Errorf("entity %q is not registered", m.Target)
	}
	f, _ := t.Field(t.Keys[0])
	query := fmt.Sprintf("SELECT t.%s FROM %s a JOIN %s t ON t.id = a.%s WHERE a.%s = $1 ORDER BY t.%s",
		f.Column, m.Table, t.Table, m.TargetColumn, m.OwnColumn, f.Column)
	rows, err := q.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s.%s: %w", a.entity.Name, m.Field, err)
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("failed to scan %s.%s: %w", a.entity.Name, m.Field, err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s.%s: %w", a.entity.Name, m.Field, err)
	}
	return keys, nil
}

// holderFor returns a scan destination for a field's declared type.
func holderFor(t schema.FieldType) any {
	switch t {
	case schema.TypeBool:
		return new(sql.NullBool)
	case schema.TypeDecimal:
		return new(decimal.NullDecimal)
	case schema.TypeTime:
		return new(sql.NullTime)
	default:
		return new(sql.NullString)
	}
}

// holderValue unwraps a scan destination, nil for SQL NULL.
func holderValue(h any) any {
	switch v := h.(type) {
	case *sql.NullString:
		if v.Valid {
			return v.String
		}
	case *sql.NullBool:
		if v.Valid {
			return v.Bool
		}
	case *decimal.NullDecimal:
		if v.Valid {
			return v.Decimal
		}
	case *sql.NullTime:
		if v.Valid {
			return v.Time
		}
	}
	return nil
}

// pgErrorCode extracts the PostgreSQL error code when err carries one.
func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
