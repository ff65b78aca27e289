package pgsql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/westbrown1/ripple/internal/apperrors"
	"github.com/westbrown1/ripple/internal/schema"
)

// activeDerived loads the active association row for a parent, nil when
// nothing was ever assigned. The referenced entity's key sits in the
// version's fields under the derived field's name; it is absent when the
// target row has since been deleted.
func (a *RecordAccessor) activeDerived(ctx context.Context, q Querier, parentID string) (*schema.Version, error) {
	versions, err := a.derivedVersions(ctx, q, parentID, true)
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
			apperrors.ErrInvariantViolation, len(versions), a.entity.Derived.Table, a.entity.Name)
	}
}

// assignDerived points the parent at the target named by key: the target is
// resolved first, the captured active association row is retired, and a new
// active row lands with a fresh effective time. Prior assignments stay in
// the table as history.
func (a *RecordAccessor) assignDerived(ctx context.Context, q Querier, parentID, key string) error {
	d := a.entity.Derived
	targetID, err := a.resolveReference(ctx, q, d.Target, key, d.Field)
	if err != nil {
		return err
	}
	prior, err := a.activeDerived(ctx, q, parentID)
	if err != nil {
		return err
	}
	if prior != nil {
		tag, err := q.Exec(ctx, fmt.Sprintf("UPDATE %s SET is_active = FALSE WHERE id = $1", d.Table), prior.ID)
		if err != nil {
			return fmt.Errorf("failed to retire %s.%s assignment %d: %w", a.entity.Name, d.Field, prior.ID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: captured %s.%s assignment %d is gone", apperrors.ErrInvariantViolation, a.entity.Name, d.Field, prior.ID)
		}
	}
	query := fmt.Sprintf("INSERT INTO %s (%s, %s, is_active, effective_time) VALUES ($1, $2, TRUE, $3)",
		d.Table, d.ParentColumn, d.TargetColumn)
	if _, err := q.Exec(ctx, query, parentID, targetID, a.now().UTC()); err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return fmt.Errorf("%w: concurrent assignment write on %s", apperrors.ErrInvariantViolation, d.Table)
		}
		return fmt.Errorf("failed to assign %s.%s: %w", a.entity.Name, d.Field, err)
	}
	return nil
}

// derivedVersions collects association rows oldest first, projecting the
// target's natural key through a left join so deleted targets keep their
// slot in the history.
func (a *RecordAccessor) derivedVersions(ctx context.Context, q Querier, parentID string, activeOnly bool) ([]schema.Version, error) {
	d := a.entity.Derived
	t, ok := a.registry.Lookup(d.Target)
	if !ok {
		return nil, fmt.Errorf("entity %q is not registered", d.Target)
	}
	f, _ := t.Field(t.Keys[0])
	query := fmt.Sprintf("SELECT a.id, a.is_active, a.effective_time, a.expiry_time, t.%s FROM %s a LEFT JOIN %s t ON t.id = a.%s WHERE a.%s = $1",
		f.Column, d.Table, t.Table, d.TargetColumn, d.ParentColumn)
	if activeOnly {
		query += " AND a.is_active = TRUE"
	}
	query += " ORDER BY a.id"

	rows, err := q.Query(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s.%s assignments: %w", a.entity.Name, d.Field, err)
	}
	defer rows.Close()

	var out []schema.Version
	for rows.Next() {
		var v schema.Version
		var expiry sql.NullTime
		var key sql.NullString
		if err := rows.Scan(&v.ID, &v.Active, &v.EffectiveTime, &expiry, &key); err != nil {
			return nil, fmt.Errorf("failed to scan %s.%s assignment: %w", a.entity.Name, d.Field, err)
		}
		if expiry.Valid {
			t := expiry.Time
			v.ExpiryTime = &t
		}
		v.Fields = schema.Record{}
		if key.Valid {
			v.Fields[d.Field] = key.String
		} else {
			v.Fields[d.Field] = nil
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s.%s assignments: %w", a.entity.Name, d.Field, err)
	}
	return out, nil
}
