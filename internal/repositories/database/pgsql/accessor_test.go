package pgsql_test

import (
	"context"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/westbrown1/ripple/internal/apperrors"
	"github.com/westbrown1/ripple/internal/repositories/database/pgsql"
	"github.com/westbrown1/ripple/internal/schema"
)

var testTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// newTestAccessor wires an accessor for entity against a scripted pgx mock,
// with a fixed clock and sequential row ids so every statement is exact.
func newTestAccessor(t *testing.T, entity string, opts ...pgsql.Option) (*pgsql.RecordAccessor, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	reg, err := pgsql.BuildRegistry()
	require.NoError(t, err)

	seq := 0
	opts = append([]pgsql.Option{
		pgsql.WithClock(func() time.Time { return testTime }),
		pgsql.WithIDFunc(func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		}),
	}, opts...)
	a, err := pgsql.NewRecordAccessor(mock, reg, entity, opts...)
	require.NoError(t, err)
	return a, mock
}

func TestGet_Client(t *testing.T) {
	a, mock := newTestAccessor(t, "client")

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name FROM clients WHERE name = $1")).
		WithArgs("acme").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name"}).AddRow("c-1", "acme"))

	rec, err := a.Get(context.Background(), "acme")
	require.NoError(t, err)
	name, _ := rec.GetString("name")
	assert.Equal(t, "acme", name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_NotFound(t *testing.T) {
	a, mock := newTestAccessor(t, "client")

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name FROM clients WHERE name = $1")).
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)

	_, err := a.Get(context.Background(), "ghost")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_NodeResolvesReferences(t *testing.T) {
	a, mock := newTestAccessor(t, "node")

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, client_id FROM nodes WHERE name = $1")).
		WithArgs("alpha").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "client_id"}).AddRow("n-1", "alpha", "c-1"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT name FROM clients WHERE id = $1")).
		WithArgs("c-1").
		WillReturnRows(pgxmock.NewRows([]string{"name"}).AddRow("acme"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT t.address FROM node_addresses a JOIN addresses t ON t.id = a.address_id WHERE a.node_id = $1 ORDER BY t.address")).
		WithArgs("n-1").
		WillReturnRows(pgxmock.NewRows([]string{"address"}).AddRow("10.0.0.1").AddRow("10.0.0.2"))

	rec, err := a.Get(context.Background(), "alpha")
	require.NoError(t, err)
	client, _ := rec.GetString("client")
	assert.Equal(t, "acme", client)
	addresses, _ := rec.GetStrings("addresses")
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, addresses)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_AccountWithoutVersionsReturnsAbsentLimits(t *testing.T) {
	a, mock := newTestAccessor(t, "account")

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, is_active, balance, relationship_id, node_id FROM accounts WHERE name = $1")).
		WithArgs("savings").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "is_active", "balance", "relationship_id", "node_id"}).
			AddRow("a-1", "savings", true, "10", "r-1", "n-1"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM relationships WHERE id = $1")).
		WithArgs("r-1").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("r-1"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT name FROM nodes WHERE id = $1")).
		WithArgs("n-1").
		WillReturnRows(pgxmock.NewRows([]string{"name"}).AddRow("alpha"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, is_active, effective_time, expiry_time, upper_limit, lower_limit FROM account_limits WHERE account_id = $1 AND is_active = TRUE")).
		WithArgs("a-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "is_active", "effective_time", "expiry_time", "upper_limit", "lower_limit"}))

	rec, err := a.Get(context.Background(), "savings")
	require.NoError(t, err)
	balance, _ := rec.GetDecimal("balance")
	assert.True(t, balance.Equal(decimal.NewFromInt(10)))
	assert.False(t, rec.Has("upper_limit"))
	assert.False(t, rec.Has("lower_limit"))
	assert.False(t, rec.Has("limits_effective_time"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFilter_RejectsIndirectFields(t *testing.T) {
	tests := []struct {
		name     string
		entity   string
		criteria schema.Record
	}{
		{name: "versioned value field", entity: "account", criteria: schema.Record{"upper_limit": decimal.NewFromInt(10)}},
		{name: "versioned value field with empty value", entity: "account", criteria: schema.Record{"upper_limit": nil}},
		{name: "versioned timestamp", entity: "account", criteria: schema.Record{"limits_effective_time": nil}},
		{name: "rotated rate value", entity: "exchange_rate", criteria: schema.Record{"rate": nil}},
		{name: "derived relation", entity: "exchange", criteria: schema.Record{"rate": "USD/EUR"}},
		{name: "many-to-many set", entity: "node", criteria: schema.Record{"addresses": []string{"10.0.0.1"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, mock := newTestAccessor(t, tt.entity)
			_, err := a.Filter(context.Background(), tt.criteria)
			assert.ErrorIs(t, err, apperrors.ErrUnsupportedFilter)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestFilter_RejectsUnknownField(t *testing.T) {
	a, mock := newTestAccessor(t, "client")

	_, err := a.Filter(context.Background(), schema.Record{"colour": "red"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFilter_MissingReferenceMatchesNothing(t *testing.T) {
	a, mock := newTestAccessor(t, "node")

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM clients WHERE name = $1")).
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)

	recs, err := a.Filter(context.Background(), schema.Record{"client": "ghost"})
	require.NoError(t, err)
	assert.Empty(t, recs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFilter_ByDirectAndReferenceFields(t *testing.T) {
	a, mock := newTestAccessor(t, "account")

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM relationships WHERE id = $1")).
		WithArgs("r-1").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("r-1"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, is_active, balance, relationship_id, node_id FROM accounts WHERE is_active = $1 AND relationship_id = $2 ORDER BY name")).
		WithArgs(true, "r-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "is_active", "balance", "relationship_id", "node_id"}).
			AddRow("a-1", "savings", true, "10", "r-1", nil))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM relationships WHERE id = $1")).
		WithArgs("r-1").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("r-1"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, is_active, effective_time, expiry_time, upper_limit, lower_limit FROM account_limits WHERE account_id = $1 AND is_active = TRUE")).
		WithArgs("a-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "is_active", "effective_time", "expiry_time", "upper_limit", "lower_limit"}))

	recs, err := a.Filter(context.Background(), schema.Record{"is_active": true, "relationship": "r-1"})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	name, _ := recs[0].GetString("name")
	assert.Equal(t, "savings", name)
	assert.Nil(t, recs[0]["node"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	t.Run("deletes the row by key", func(t *testing.T) {
		a, mock := newTestAccessor(t, "client")
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM clients WHERE name = $1")).
			WithArgs("acme").
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		require.NoError(t, a.Delete(context.Background(), "acme"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		a, mock := newTestAccessor(t, "client")
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM clients WHERE name = $1")).
			WithArgs("ghost").
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		err := a.Delete(context.Background(), "ghost")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("still referenced", func(t *testing.T) {
		a, mock := newTestAccessor(t, "client")
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM clients WHERE name = $1")).
			WithArgs("acme").
			WillReturnError(&pgconn.PgError{Code: "23503"})

		err := a.Delete(context.Background(), "acme")
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGet_WrongKeyArity(t *testing.T) {
	a, mock := newTestAccessor(t, "exchange")

	_, err := a.Get(context.Background(), "only-one-part")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFieldPolicyRunsBeforeDispatch(t *testing.T) {
	policyErr := fmt.Errorf("%w: balance is set by the ledger", apperrors.ErrValidation)
	policy := func(op pgsql.Op, fields schema.Record) error {
		if op != pgsql.OpFilter && fields.Has("balance") {
			return policyErr
		}
		return nil
	}
	a, mock := newTestAccessor(t, "account", pgsql.WithFieldPolicy(policy))

	_, err := a.Update(context.Background(), []string{"savings"}, schema.Record{"balance": decimal.NewFromInt(5)})
	assert.ErrorIs(t, err, policyErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}
