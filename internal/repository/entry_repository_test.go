package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cajacoop/caja-engine/internal/domain"
)

func TestBuildEntryFilters(t *testing.T) {
	tests := []struct {
		name          string
		filter        domain.EntryFilter
		expectedWhere string
		expectedArgs  int
	}{
		{
			name:          "no filters",
			filter:        domain.EntryFilter{},
			expectedWhere: "",
			expectedArgs:  0,
		},
		{
			name:          "account only",
			filter:        domain.EntryFilter{Account: 5},
			expectedWhere: " WHERE e.account_number = $1",
			expectedArgs:  1,
		},
		{
			name: "account and date range",
			filter: domain.EntryFilter{
				Account:   5,
				StartDate: sampleTime(),
				EndDate:   sampleTime().AddDate(0, 1, 0),
			},
			expectedWhere: " WHERE e.account_number = $1 AND e.date >= $2 AND e.date <= $3",
			expectedArgs:  3,
		},
		{
			name:          "cash payment type adds no positional args",
			filter:        domain.EntryFilter{PaymentType: domain.BillTypeCash},
			expectedWhere: " WHERE d.cash > 0",
			expectedArgs:  0,
		},
		{
			name:          "mixed requires both instruments",
			filter:        domain.EntryFilter{PaymentType: domain.BillTypeMixed},
			expectedWhere: " WHERE d.cash > 0 AND d.transfer > 0",
			expectedArgs:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := buildEntryFilters(tt.filter)
			assert.Equal(t, tt.expectedWhere, where)
			assert.Len(t, args, tt.expectedArgs)
		})
	}
}

func TestEntryRepositoryCount(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEntryRepository(db)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count", "cash", "transfer", "total"}).
			AddRow(3, "60", "40", "100"))

	counter, err := repo.Count(context.Background(), domain.EntryFilter{Account: 5})

	require.NoError(t, err)
	assert.Equal(t, int64(3), counter.Count)
	assert.True(t, counter.Cash.Equal(decimal.NewFromInt(60)))
	assert.True(t, counter.Total.Equal(decimal.NewFromInt(100)))
}

func TestEntryRepositorySumTendered(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEntryRepository(db)

	mock.ExpectQuery("SELECT COALESCE").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"cash", "transfer"}).AddRow("150.50", "75.25"))

	cash, transfer, err := repo.SumTendered(context.Background(), 1)

	require.NoError(t, err)
	assert.True(t, cash.Equal(decimal.RequireFromString("150.50")))
	assert.True(t, transfer.Equal(decimal.RequireFromString("75.25")))
}

func TestEntryRepositoryListContributions(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEntryRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM entry_detail").
		WithArgs(domain.ChargeTypeContribution, domain.ChargeTypePeriodOpening, int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"entry_number", "account_number", "date", "value"}).
			AddRow(int64(100), int64(1), sampleTime(), "20").
			AddRow(int64(101), int64(1), sampleTime().AddDate(0, 1, 0), "20"))

	contributions, err := repo.ListContributions(context.Background(), 1, domain.ContributionChargeTypes)

	require.NoError(t, err)
	require.Len(t, contributions, 2)
	assert.Equal(t, int64(100), contributions[0].EntryNumber)
	assert.True(t, contributions[0].Value.Equal(decimal.NewFromInt(20)))
}

func TestEntryRepositoryCreateHeader(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEntryRepository(db)

	mock.ExpectExec("INSERT INTO entry").
		WithArgs(int64(500), int64(1), sqlmock.AnyArg(), sqlmock.AnyArg(), "office", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.CreateHeader(context.Background(), &domain.EntryHeader{
		Number:        500,
		AccountNumber: 1,
		Date:          sampleTime(),
		Amount:        decimal.NewFromInt(20),
		Place:         "office",
		PeriodID:      1,
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
