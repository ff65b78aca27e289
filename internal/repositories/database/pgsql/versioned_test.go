package pgsql_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/westbrown1/ripple/internal/apperrors"
	"github.com/westbrown1/ripple/internal/schema"
)

const (
	selectAccountForUpdate = "SELECT id, name, is_active, balance, relationship_id, node_id FROM accounts WHERE name = $1 FOR UPDATE"
	selectAccountByID      = "SELECT id, name, is_active, balance, relationship_id, node_id FROM accounts WHERE id = $1"
	selectActiveLimits     = "SELECT id, is_active, effective_time, expiry_time, upper_limit, lower_limit FROM account_limits WHERE account_id = $1 AND is_active = TRUE"
	insertLimits           = "INSERT INTO account_limits (account_id, is_active, effective_time, expiry_time, upper_limit, lower_limit) VALUES ($1, $2, $3, $4, $5, $6)"
	retireLimits           = "UPDATE account_limits SET is_active = FALSE WHERE id = $1"
)

func accountRow() *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "name", "is_active", "balance", "relationship_id", "node_id"}).
		AddRow("a-1", "savings", true, "10", "r-1", nil)
}

func limitsColumns() []string {
	return []string{"id", "is_active", "effective_time", "expiry_time", "upper_limit", "lower_limit"}
}

func expectAccountReread(mock pgxmock.PgxPoolIface, activeLimits *pgxmock.Rows) {
	mock.ExpectQuery(regexp.QuoteMeta(selectAccountByID)).
		WithArgs("a-1").
		WillReturnRows(accountRow())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM relationships WHERE id = $1")).
		WithArgs("r-1").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("r-1"))
	mock.ExpectQuery(regexp.QuoteMeta(selectActiveLimits)).
		WithArgs("a-1").
		WillReturnRows(activeLimits)
}

func TestUpdate_FirstLimitWriteCreatesVersion(t *testing.T) {
	a, mock := newTestAccessor(t, "account")

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(selectAccountForUpdate)).
		WithArgs("savings").
		WillReturnRows(accountRow())
	mock.ExpectQuery(regexp.QuoteMeta(selectActiveLimits)).
		WithArgs("a-1").
		WillReturnRows(pgxmock.NewRows(limitsColumns()))
	mock.ExpectExec(regexp.QuoteMeta(insertLimits)).
		WithArgs("a-1", true, testTime, nil, decimal.NewFromInt(100), nil).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	expectAccountReread(mock, pgxmock.NewRows(limitsColumns()).
		AddRow(int64(1), true, testTime, nil, "100", nil))
	mock.ExpectCommit()

	rec, err := a.Update(context.Background(), []string{"savings"}, schema.Record{
		"upper_limit": decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	upper, _ := rec.GetDecimal("upper_limit")
	assert.True(t, upper.Equal(decimal.NewFromInt(100)))
	assert.Nil(t, rec["lower_limit"])
	effective, _ := rec.GetTime("limits_effective_time")
	assert.Equal(t, testTime, effective)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_RotationCopiesValuesForward(t *testing.T) {
	a, mock := newTestAccessor(t, "account")
	earlier := testTime.Add(-24 * time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(selectAccountForUpdate)).
		WithArgs("savings").
		WillReturnRows(accountRow())
	mock.ExpectQuery(regexp.QuoteMeta(selectActiveLimits)).
		WithArgs("a-1").
		WillReturnRows(pgxmock.NewRows(limitsColumns()).
			AddRow(int64(7), true, earlier, nil, "100", "-50"))
	mock.ExpectExec(regexp.QuoteMeta(retireLimits)).
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(regexp.QuoteMeta(insertLimits)).
		WithArgs("a-1", true, testTime, nil, decimal.NewFromInt(100), decimal.NewFromInt(-20)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	expectAccountReread(mock, pgxmock.NewRows(limitsColumns()).
		AddRow(int64(8), true, testTime, nil, "100", "-20"))
	mock.ExpectCommit()

	rec, err := a.Update(context.Background(), []string{"savings"}, schema.Record{
		"lower_limit": decimal.NewFromInt(-20),
	})
	require.NoError(t, err)
	upper, _ := rec.GetDecimal("upper_limit")
	assert.True(t, upper.Equal(decimal.NewFromInt(100)), "inherited upper bound")
	lower, _ := rec.GetDecimal("lower_limit")
	assert.True(t, lower.Equal(decimal.NewFromInt(-20)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_OneRotationBeforeDirectFields(t *testing.T) {
	a, mock := newTestAccessor(t, "account")
	expiry := testTime.Add(30 * 24 * time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(selectAccountForUpdate)).
		WithArgs("savings").
		WillReturnRows(accountRow())
	mock.ExpectQuery(regexp.QuoteMeta(selectActiveLimits)).
		WithArgs("a-1").
		WillReturnRows(pgxmock.NewRows(limitsColumns()).
			AddRow(int64(7), true, testTime.Add(-time.Hour), nil, "100", "-50"))
	mock.ExpectExec(regexp.QuoteMeta(retireLimits)).
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(regexp.QuoteMeta(insertLimits)).
		WithArgs("a-1", true, testTime, expiry, decimal.NewFromInt(200), decimal.NewFromInt(-20)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE accounts SET balance = $1 WHERE id = $2")).
		WithArgs(decimal.NewFromInt(42), "a-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	expectAccountReread(mock, pgxmock.NewRows(limitsColumns()).
		AddRow(int64(8), true, testTime, expiry, "200", "-20"))
	mock.ExpectCommit()

	rec, err := a.Update(context.Background(), []string{"savings"}, schema.Record{
		"balance":            decimal.NewFromInt(42),
		"upper_limit":        decimal.NewFromInt(200),
		"lower_limit":        decimal.NewFromInt(-20),
		"limits_expiry_time": expiry,
	})
	require.NoError(t, err)
	upper, _ := rec.GetDecimal("upper_limit")
	assert.True(t, upper.Equal(decimal.NewFromInt(200)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_TwoActiveVersionsAbort(t *testing.T) {
	a, mock := newTestAccessor(t, "account")

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(selectAccountForUpdate)).
		WithArgs("savings").
		WillReturnRows(accountRow())
	mock.ExpectQuery(regexp.QuoteMeta(selectActiveLimits)).
		WithArgs("a-1").
		WillReturnRows(pgxmock.NewRows(limitsColumns()).
			AddRow(int64(7), true, testTime, nil, "100", "-50").
			AddRow(int64(8), true, testTime, nil, "90", "-40"))
	mock.ExpectRollback()

	_, err := a.Update(context.Background(), []string{"savings"}, schema.Record{
		"upper_limit": decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, apperrors.ErrInvariantViolation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_AccountWithLimitsRollsFirstVersion(t *testing.T) {
	a, mock := newTestAccessor(t, "account")

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM relationships WHERE id = $1")).
		WithArgs("r-1").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("r-1"))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO accounts (id, name, relationship_id) VALUES ($1, $2, $3)")).
		WithArgs("id-1", "savings", "r-1").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(regexp.QuoteMeta(insertLimits)).
		WithArgs("id-1", true, testTime, nil, decimal.NewFromInt(100), nil).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery(regexp.QuoteMeta(selectAccountByID)).
		WithArgs("id-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "is_active", "balance", "relationship_id", "node_id"}).
			AddRow("id-1", "savings", true, nil, "r-1", nil))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM relationships WHERE id = $1")).
		WithArgs("r-1").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("r-1"))
	mock.ExpectQuery(regexp.QuoteMeta(selectActiveLimits)).
		WithArgs("id-1").
		WillReturnRows(pgxmock.NewRows(limitsColumns()).
			AddRow(int64(1), true, testTime, nil, "100", nil))
	mock.ExpectCommit()

	rec, err := a.Create(context.Background(), schema.Record{
		"name":         "savings",
		"relationship": "r-1",
		"upper_limit":  decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	upper, _ := rec.GetDecimal("upper_limit")
	assert.True(t, upper.Equal(decimal.NewFromInt(100)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_ExchangeRateValueRotation(t *testing.T) {
	a, mock := newTestAccessor(t, "exchange_rate")
	rate := decimal.RequireFromString("1.25")

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, client_id FROM exchange_rates WHERE name = $1 FOR UPDATE")).
		WithArgs("USD/EUR").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "client_id"}).AddRow("er-1", "USD/EUR", "c-1"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, is_active, effective_time, expiry_time, value FROM exchange_rate_values WHERE exchange_rate_id = $1 AND is_active = TRUE")).
		WithArgs("er-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "is_active", "effective_time", "expiry_time", "value"}).
			AddRow(int64(3), true, testTime.Add(-time.Hour), nil, "1.10"))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE exchange_rate_values SET is_active = FALSE WHERE id = $1")).
		WithArgs(int64(3)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO exchange_rate_values (exchange_rate_id, is_active, effective_time, expiry_time, value) VALUES ($1, $2, $3, $4, $5)")).
		WithArgs("er-1", true, testTime, nil, rate).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, client_id FROM exchange_rates WHERE id = $1")).
		WithArgs("er-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "client_id"}).AddRow("er-1", "USD/EUR", "c-1"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT name FROM clients WHERE id = $1")).
		WithArgs("c-1").
		WillReturnRows(pgxmock.NewRows([]string{"name"}).AddRow("acme"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, is_active, effective_time, expiry_time, value FROM exchange_rate_values WHERE exchange_rate_id = $1 AND is_active = TRUE")).
		WithArgs("er-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "is_active", "effective_time", "expiry_time", "value"}).
			AddRow(int64(4), true, testTime, nil, "1.25"))
	mock.ExpectCommit()

	rec, err := a.Update(context.Background(), []string{"USD/EUR"}, schema.Record{"rate": rate})
	require.NoError(t, err)
	got, _ := rec.GetDecimal("rate")
	assert.True(t, got.Equal(rate))
	effective, _ := rec.GetTime("effective_time")
	assert.Equal(t, testTime, effective)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActiveVersion_Account(t *testing.T) {
	a, mock := newTestAccessor(t, "account")

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, is_active, balance, relationship_id, node_id FROM accounts WHERE name = $1")).
		WithArgs("savings").
		WillReturnRows(accountRow())
	mock.ExpectQuery(regexp.QuoteMeta(selectActiveLimits)).
		WithArgs("a-1").
		WillReturnRows(pgxmock.NewRows(limitsColumns()).
			AddRow(int64(7), true, testTime, nil, "100", "-50"))

	v, err := a.ActiveVersion(context.Background(), "savings")
	require.NoError(t, err)
	assert.Equal(t, int64(7), v.ID)
	assert.True(t, v.Active)
	upper, _ := v.Fields.GetDecimal("upper_limit")
	assert.True(t, upper.Equal(decimal.NewFromInt(100)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActiveVersion_NoneYet(t *testing.T) {
	a, mock := newTestAccessor(t, "account")

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, is_active, balance, relationship_id, node_id FROM accounts WHERE name = $1")).
		WithArgs("savings").
		WillReturnRows(accountRow())
	mock.ExpectQuery(regexp.QuoteMeta(selectActiveLimits)).
		WithArgs("a-1").
		WillReturnRows(pgxmock.NewRows(limitsColumns()))

	_, err := a.ActiveVersion(context.Background(), "savings")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVersionHistory_Account(t *testing.T) {
	a, mock := newTestAccessor(t, "account")
	earlier := testTime.Add(-24 * time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, is_active, balance, relationship_id, node_id FROM accounts WHERE name = $1")).
		WithArgs("savings").
		WillReturnRows(accountRow())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, is_active, effective_time, expiry_time, upper_limit, lower_limit FROM account_limits WHERE account_id = $1 ORDER BY id")).
		WithArgs("a-1").
		WillReturnRows(pgxmock.NewRows(limitsColumns()).
			AddRow(int64(7), false, earlier, nil, "100", "-50").
			AddRow(int64(8), true, testTime, nil, "100", "-20"))

	history, err := a.VersionHistory(context.Background(), "savings")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.False(t, history[0].Active)
	assert.True(t, history[1].Active)
	assert.Equal(t, earlier, history[0].EffectiveTime)
	lower, _ := history[1].Fields.GetDecimal("lower_limit")
	assert.True(t, lower.Equal(decimal.NewFromInt(-20)))
	assert.NoError(t, mock.ExpectationsWereMet())
}
