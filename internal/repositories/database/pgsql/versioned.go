package pgsql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/westbrown1/ripple/internal/apperrors"
	"github.com/westbrown1/ripple/internal/schema"
)

// ActiveVersion returns the single active version of the record's versioned
// group, or the active assignment for entities with a derived relation.
func (a *RecordAccessor) ActiveVersion(ctx context.Context, keys ...string) (*schema.Version, error) {
	q := a.q()
	row, err := a.fetchRow(ctx, q, keys, false)
	if err != nil {
		return nil, err
	}
	var v *schema.Version
	switch {
	case a.entity.Versioned != nil:
		v, err = a.activeVersion(ctx, q, row.id)
	case a.entity.Derived != nil:
		v, err = a.activeDerived(ctx, q, row.id)
	default:
		return nil, fmt.Errorf("entity %q has no versioned group", a.entity.Name)
	}
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, fmt.Errorf("%w: %s %q has no active version", apperrors.ErrNotFound, a.entity.Name, strings.Join(keys, "/"))
	}
	return v, nil
}

// VersionHistory returns every version ever written for the record, oldest
// first, retired versions included.
func (a *RecordAccessor) VersionHistory(ctx context.Context, keys ...string) ([]schema.Version, error) {
	q := a.q()
	row, err := a.fetchRow(ctx, q, keys, false)
	if err != nil {
		return nil, err
	}
	switch {
	case a.entity.Versioned != nil:
		g := a.entity.Versioned
		query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 ORDER BY id",
			strings.Join(versionColumns(g), ", "), g.Table, g.ParentColumn)
		return a.scanVersions(ctx, q, query, row.id)
	case a.entity.Derived != nil:
		return a.derivedVersions(ctx, q, row.id, false)
	}
	return nil, fmt.Errorf("entity %q has no versioned group", a.entity.Name)
}

// activeVersion loads the active version for a parent row, nil when the
// group has never been written. More than one active row is the violation
// this whole layer exists to prevent and aborts the operation loudly.
func (a *RecordAccessor) activeVersion(ctx context.Context, q Querier, parentID string) (*schema.Version, error) {
	g := a.entity.Versioned
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 AND is_active = TRUE",
		strings.Join(versionColumns(g), ", "), g.Table, g.ParentColumn)
	versions, err := a.scanVersions(ctx, q, query, parentID)
	if err != nil {
		return nil, err
	}
	switch len(versions) {
	case 0:
		return nil, nil
	case 1:
		return &versions[0], nil
	default:
		return nil, fmt.Errorf("%w: %d active rows in %s for one %s",
			apperrors.ErrInvariantViolation, len(versions), g.Table, a.entity.Name)
	}
}

// rotateVersion retires the active version and inserts its successor as one
// unit. The version captured at the start of the operation is the one
// deactivated, by id, so a concurrent rotation surfaces instead of being
// absorbed silently.
func (a *RecordAccessor) rotateVersion(ctx context.Context, q Querier, parentID string, overrides schema.Record) error {
	prior, err := a.activeVersion(ctx, q, parentID)
	if err != nil {
		return err
	}
	if prior != nil {
		g := a.entity.Versioned
		tag, err := q.Exec(ctx, fmt.Sprintf("UPDATE %s SET is_active = FALSE WHERE id = $1", g.Table), prior.ID)
		if err != nil {
			return fmt.Errorf("failed to retire %s version %d: %w", a.entity.Name, prior.ID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: captured %s version %d is gone", apperrors.ErrInvariantViolation, a.entity.Name, prior.ID)
		}
	}
	return a.insertVersion(ctx, q, parentID, prior, overrides)
}

// insertVersion writes a new active version row. Value fields copy forward
// from the prior capture unless overridden in the same call; effective_time
// is stamped fresh and expiry_time starts null, either one open to an
// explicit override.
func (a *RecordAccessor) insertVersion(ctx context.Context, q Querier, parentID string, prior *schema.Version, overrides schema.Record) error {
	g := a.entity.Versioned
	effective := a.now().UTC()
	if v, ok := overrides.GetTime(g.EffectiveField); ok {
		effective = v
	}
	var expiry any
	if v, ok := overrides.GetTime(g.ExpiryField); ok {
		expiry = v
	}
	cols := []string{g.ParentColumn, "is_active", "effective_time", "expiry_time"}
	args := []any{parentID, true, effective, expiry}
	for _, f := range g.Fields {
		var v any
		if prior != nil {
			v = prior.Fields[f.Name]
		}
		if ov, ok := overrides[f.Name]; ok {
			v = ov
		}
		cols = append(cols, f.Column)
		args = append(args, v)
	}
	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		g.Table, strings.Join(cols, ", "), strings.Join(placeholders, ", "))
	if _, err := q.Exec(ctx, query, args...); err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return fmt.Errorf("%w: concurrent version write on %s", apperrors.ErrInvariantViolation, g.Table)
		}
		return fmt.Errorf("failed to insert %s version: %w", a.entity.Name, err)
	}
	return nil
}

// scanVersions collects version rows in versionColumns order.
func (a *RecordAccessor) scanVersions(ctx context.Context, q Querier, query string, args ...any) ([]schema.Version, error) {
	g := a.entity.Versioned
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s versions: %w", a.entity.Name, err)
	}
	defer rows.Close()

	var out []schema.Version
	for rows.Next() {
		var v schema.Version
		var expiry sql.NullTime
		dests := []any{&v.ID, &v.Active, &v.EffectiveTime, &expiry}
		holders := make([]any, len(g.Fields))
		for i, f := range g.Fields {
			holders[i] = holderFor(f.Type)
			dests = append(dests, holders[i])
		}
		if err := rows.Scan(dests...); err != nil {
			return nil, fmt.Errorf("failed to scan %s version: %w", a.entity.Name, err)
		}
		if expiry.Valid {
			t := expiry.Time
			v.ExpiryTime = &t
		}
		v.Fields = make(schema.Record, len(g.Fields))
		for i, f := range g.Fields {
			v.Fields[f.Name] = holderValue(holders[i])
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s versions: %w", a.entity.Name, err)
	}
	return out, nil
}

// versionColumns lists a version table's columns in scan order.
func versionColumns(g *schema.VersionedGroup) []string {
	cols := []string{"id", "is_active", "effective_time", "expiry_time"}
	for _, f := range g.Fields {
		cols = append(cols, f.Column)
	}
	return cols
}
