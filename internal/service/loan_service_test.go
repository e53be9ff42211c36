package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cajacoop/caja-engine/internal/domain"
	apperrors "github.com/cajacoop/caja-engine/pkg/errors"
	"github.com/cajacoop/caja-engine/tests/mocks"
)

func TestCreateLoan(t *testing.T) {
	t.Run("debt starts at loan value and rows get identities", func(t *testing.T) {
		repo := new(mocks.MockLoanRepository)
		svc := NewLoanService(repo, nil, nil)

		repo.On("CreateHead", mock.Anything, mock.MatchedBy(func(loan *domain.Loan) bool {
			return loan.Number == 10 && loan.Debt.Equal(decimal.NewFromInt(500)) && loan.ID != uuid.Nil
		})).Return(nil)
		repo.On("CreateSchedule", mock.Anything, mock.MatchedBy(func(rows []*domain.LoanScheduleRow) bool {
			return len(rows) == 2 && rows[0].LoanNumber == 10 && rows[0].ID != uuid.Nil
		})).Return(nil)

		definition, err := svc.CreateLoan(context.Background(), &domain.CreateLoanRequest{
			AccountNumber: 1,
			Number:        10,
			Value:         decimal.NewFromInt(500),
			Term:          2,
			Schedule: []*domain.LoanScheduleRow{
				{FeeNumber: 1, FeeValue: decimal.NewFromInt(250)},
				{FeeNumber: 2, FeeValue: decimal.NewFromInt(250)},
			},
		})

		require.NoError(t, err)
		assert.True(t, definition.Loan.Debt.Equal(decimal.NewFromInt(500)))
		assert.False(t, definition.Loan.IsEnd)
		repo.AssertExpectations(t)
	})

	t.Run("empty schedule is rejected", func(t *testing.T) {
		svc := NewLoanService(new(mocks.MockLoanRepository), nil, nil)

		_, err := svc.CreateLoan(context.Background(), &domain.CreateLoanRequest{
			Number: 10,
			Value:  decimal.NewFromInt(500),
			Term:   2,
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("negative schedule amounts are rejected", func(t *testing.T) {
		svc := NewLoanService(new(mocks.MockLoanRepository), nil, nil)

		_, err := svc.CreateLoan(context.Background(), &domain.CreateLoanRequest{
			Number: 10,
			Value:  decimal.NewFromInt(500),
			Term:   1,
			Schedule: []*domain.LoanScheduleRow{
				{FeeNumber: 1, FeeValue: decimal.NewFromInt(-250)},
			},
		})

		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestMarkRowsPaid(t *testing.T) {
	t.Run("missing row aborts the batch", func(t *testing.T) {
		repo := new(mocks.MockLoanRepository)
		svc := NewLoanService(repo, nil, nil)

		rowID := uuid.New()
		repo.On("MarkRowPaid", mock.Anything, rowID, int64(44)).Return(sql.ErrNoRows)

		err := svc.MarkRowsPaid(context.Background(), []domain.ScheduleRowPayment{
			{RowID: rowID, EntryNumber: 44, FeeValue: decimal.NewFromInt(100)},
		})

		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("negative fee value is rejected before any write", func(t *testing.T) {
		repo := new(mocks.MockLoanRepository)
		svc := NewLoanService(repo, nil, nil)

		err := svc.MarkRowsPaid(context.Background(), []domain.ScheduleRowPayment{
			{RowID: uuid.New(), EntryNumber: 44, FeeValue: decimal.NewFromInt(-1)},
		})

		assert.ErrorIs(t, err, apperrors.ErrValidation)
		repo.AssertNotCalled(t, "MarkRowPaid")
	})
}

func TestRecomputeDebt(t *testing.T) {
	t.Run("debt drops by the rows just paid", func(t *testing.T) {
		repo := new(mocks.MockLoanRepository)
		svc := NewLoanService(repo, nil, nil)

		expected := decimal.RequireFromString("66.67")
		repo.On("UpdateHead", mock.Anything, int64(10), mock.MatchedBy(func(debt decimal.Decimal) bool {
			return debt.Equal(expected)
		}), false).Return(nil)

		newDebt, err := svc.RecomputeDebt(context.Background(), &domain.LoanPaymentData{
			LoanNumber:  10,
			CurrentDebt: decimal.NewFromInt(100),
			RowsToPay: []domain.ScheduleRowPayment{
				{RowID: uuid.New(), FeeValue: decimal.RequireFromString("33.33")},
			},
		})

		require.NoError(t, err)
		assert.True(t, newDebt.Equal(expected))
		repo.AssertExpectations(t)
	})

	t.Run("final payment closes the loan", func(t *testing.T) {
		repo := new(mocks.MockLoanRepository)
		svc := NewLoanService(repo, nil, nil)

		repo.On("UpdateHead", mock.Anything, int64(10), mock.MatchedBy(func(debt decimal.Decimal) bool {
			return debt.IsZero()
		}), true).Return(nil)

		newDebt, err := svc.RecomputeDebt(context.Background(), &domain.LoanPaymentData{
			LoanNumber:  10,
			CurrentDebt: decimal.NewFromInt(100),
			IsFinished:  true,
			RowsToPay: []domain.ScheduleRowPayment{
				{RowID: uuid.New(), FeeValue: decimal.NewFromInt(100)},
			},
		})

		require.NoError(t, err)
		assert.True(t, newDebt.IsZero())
	})

	t.Run("overpayment is an inconsistent state", func(t *testing.T) {
		repo := new(mocks.MockLoanRepository)
		svc := NewLoanService(repo, nil, nil)

		_, err := svc.RecomputeDebt(context.Background(), &domain.LoanPaymentData{
			LoanNumber:  10,
			CurrentDebt: decimal.NewFromInt(50),
			RowsToPay: []domain.ScheduleRowPayment{
				{RowID: uuid.New(), FeeValue: decimal.NewFromInt(100)},
			},
		})

		assert.ErrorIs(t, err, apperrors.ErrInconsistentState)
		repo.AssertNotCalled(t, "UpdateHead")
	})
}

func TestRestructure(t *testing.T) {
	repo := new(mocks.MockLoanRepository)
	svc := NewLoanService(repo, nil, nil)

	zeroed := &domain.LoanScheduleRow{ID: uuid.New(), LoanNumber: 10, FeeNumber: 2}
	active := &domain.LoanScheduleRow{
		ID:         uuid.New(),
		LoanNumber: 10,
		FeeNumber:  1,
		FeeValue:   decimal.NewFromInt(80),
		FeeTotal:   decimal.NewFromInt(85),
		Interest:   decimal.NewFromInt(5),
	}

	repo.On("UpdateHeadTerm", mock.Anything, int64(10), 1, mock.Anything).Return(nil)
	repo.On("RewriteScheduleRow", mock.Anything, mock.MatchedBy(func(row *domain.LoanScheduleRow) bool {
		return row.ID == active.ID && !row.IsDisabled
	})).Return(nil)
	repo.On("RewriteScheduleRow", mock.Anything, mock.MatchedBy(func(row *domain.LoanScheduleRow) bool {
		return row.ID == zeroed.ID && row.IsDisabled
	})).Return(nil)
	repo.On("CreatePayment", mock.Anything, mock.MatchedBy(func(payment *domain.LoanPayment) bool {
		return payment.LoanNumber == 10 && payment.ID != uuid.Nil
	})).Return(nil)

	err := svc.Restructure(context.Background(), &domain.RestructureLoanRequest{
		LoanNumber: 10,
		Term:       1,
		Debt:       decimal.NewFromInt(80),
		Schedule:   []*domain.LoanScheduleRow{active, zeroed},
		Payment:    domain.LoanPayment{Amount: decimal.NewFromInt(20), PriorDebt: decimal.NewFromInt(100)},
	})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestDeriveLoanStatus(t *testing.T) {
	now := date(2024, time.July, 2)

	tests := []struct {
		name     string
		loan     *domain.Loan
		schedule []*domain.LoanScheduleRow
		expected string
	}{
		{
			name:     "finished loan is paid",
			loan:     &domain.Loan{IsEnd: true},
			expected: domain.LoanStatusPaid,
		},
		{
			name: "overdue unpaid row is late",
			loan: &domain.Loan{},
			schedule: []*domain.LoanScheduleRow{
				scheduleRow(date(2024, time.June, 15), "100", "5", false, false),
			},
			expected: domain.LoanStatusLate,
		},
		{
			name: "disabled overdue row does not count",
			loan: &domain.Loan{},
			schedule: []*domain.LoanScheduleRow{
				scheduleRow(date(2024, time.June, 15), "100", "5", false, true),
				scheduleRow(date(2024, time.August, 15), "100", "5", false, false),
			},
			expected: domain.LoanStatusCurrent,
		},
		{
			name: "all rows in the future is current",
			loan: &domain.Loan{},
			schedule: []*domain.LoanScheduleRow{
				scheduleRow(date(2024, time.July, 15), "100", "5", false, false),
			},
			expected: domain.LoanStatusCurrent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DeriveLoanStatus(tt.loan, tt.schedule, now))
		})
	}
}

func TestRollupLoanStatus(t *testing.T) {
	tests := []struct {
		name     string
		loans    []*domain.Loan
		expected string
	}{
		{"no loans is free", nil, domain.PartnerLoanStatusFree},
		{"all paid is free", []*domain.Loan{{Status: domain.LoanStatusPaid}}, domain.PartnerLoanStatusFree},
		{"open loan is debt", []*domain.Loan{{Status: domain.LoanStatusPaid}, {Status: domain.LoanStatusCurrent}}, domain.PartnerLoanStatusDebt},
		{"any late loan wins", []*domain.Loan{{Status: domain.LoanStatusCurrent}, {Status: domain.LoanStatusLate}}, domain.PartnerLoanStatusLate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RollupLoanStatus(tt.loans))
		})
	}
}
