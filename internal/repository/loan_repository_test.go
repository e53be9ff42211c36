package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cajacoop/caja-engine/internal/domain"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func sampleTime() time.Time {
	return time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
}

func TestLoanRepositoryMarkRowPaid(t *testing.T) {
	t.Run("settles the row", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewLoanRepository(db)

		rowID := uuid.New()
		mock.ExpectExec("UPDATE loan_detail").
			WithArgs(rowID, int64(42)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.MarkRowPaid(context.Background(), rowID, 42)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row surfaces as no rows", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewLoanRepository(db)

		rowID := uuid.New()
		mock.ExpectExec("UPDATE loan_detail").
			WithArgs(rowID, int64(42)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.MarkRowPaid(context.Background(), rowID, 42)

		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestLoanRepositoryCreateSchedule(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLoanRepository(db)

	rows := []*domain.LoanScheduleRow{
		{ID: uuid.New(), LoanNumber: 10, FeeNumber: 1, FeeValue: decimal.NewFromInt(250)},
		{ID: uuid.New(), LoanNumber: 10, FeeNumber: 2, FeeValue: decimal.NewFromInt(250)},
	}

	mock.ExpectBegin()
	for range rows {
		mock.ExpectExec("INSERT INTO loan_detail").
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	err := repo.CreateSchedule(context.Background(), rows)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoanRepositoryCreateScheduleRollsBackOnFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLoanRepository(db)

	rows := []*domain.LoanScheduleRow{
		{ID: uuid.New(), LoanNumber: 10, FeeNumber: 1, FeeValue: decimal.NewFromInt(250)},
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO loan_detail").
		WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	err := repo.CreateSchedule(context.Background(), rows)

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoanRepositoryGetOpenByAccount(t *testing.T) {
	t.Run("no open loan yields nil", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewLoanRepository(db)

		mock.ExpectQuery("SELECT (.+) FROM loan").
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "number", "account_number", "date", "value", "term", "rate", "debt", "is_end",
			}))

		loan, err := repo.GetOpenByAccount(context.Background(), 1)

		require.NoError(t, err)
		assert.Nil(t, loan)
	})

	t.Run("returns the open loan", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewLoanRepository(db)

		id := uuid.New()
		mock.ExpectQuery("SELECT (.+) FROM loan").
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "number", "account_number", "date", "value", "term", "rate", "debt", "is_end",
			}).AddRow(id, int64(10), int64(1), sampleTime(), "500", 10, "0.05", "300", false))

		loan, err := repo.GetOpenByAccount(context.Background(), 1)

		require.NoError(t, err)
		require.NotNil(t, loan)
		assert.Equal(t, int64(10), loan.Number)
		assert.True(t, loan.Debt.Equal(decimal.NewFromInt(300)))
	})
}

func TestLoanRepositorySumOutstandingPrincipal(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLoanRepository(db)

	mock.ExpectQuery("SELECT COALESCE").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("1234.56"))

	total, err := repo.SumOutstandingPrincipal(context.Background())

	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("1234.56")))
}

func TestLoanRepositoryUpdateHead(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLoanRepository(db)

	mock.ExpectExec("UPDATE loan").
		WithArgs(int64(10), sqlmock.AnyArg(), true).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateHead(context.Background(), 10, decimal.Zero, true)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
