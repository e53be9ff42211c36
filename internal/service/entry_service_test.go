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

	"github.com/cajacoop/caja-engine/internal/config"
	"github.com/cajacoop/caja-engine/internal/domain"
	apperrors "github.com/cajacoop/caja-engine/pkg/errors"
	"github.com/cajacoop/caja-engine/tests/mocks"
)

func testConfig() *config.Config {
	return &config.Config{
		Business: config.BusinessConfig{
			ContributionAmount:  "20",
			AdministrationFee:   "10",
			StrategicFundBase:   "5",
			StrategicFundRate:   "0.50",
			ContributionPenalty: "1",
			LoanPenaltyRate:     "0.02",
			ProgramStartDate:    "2021-01-01",
		},
	}
}

func entryFixture(t *testing.T) (*EntryService, *mocks.MockEntryRepository, *mocks.MockPartnerRepository, *mocks.MockLoanRepository) {
	t.Helper()
	entryRepo := new(mocks.MockEntryRepository)
	partnerRepo := new(mocks.MockPartnerRepository)
	loanRepo := new(mocks.MockLoanRepository)
	cfg := testConfig()
	loans := NewLoanService(loanRepo, nil, cfg)
	return NewEntryService(entryRepo, partnerRepo, loanRepo, loans, cfg), entryRepo, partnerRepo, loanRepo
}

func TestGetEntryCharges(t *testing.T) {
	t.Run("unknown account", func(t *testing.T) {
		svc, _, partnerRepo, _ := entryFixture(t)
		partnerRepo.On("GetAccount", mock.Anything, int64(9)).Return(nil, sql.ErrNoRows)

		_, err := svc.GetEntryCharges(context.Background(), 9)

		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("savings charges only when no open loan", func(t *testing.T) {
		svc, _, partnerRepo, loanRepo := entryFixture(t)

		account := testAccount(time.Now().AddDate(0, -2, 0), "100", 1)
		partnerRepo.On("GetAccount", mock.Anything, int64(1)).Return(account, nil)
		loanRepo.On("GetOpenByAccount", mock.Anything, int64(1)).Return(nil, nil)

		charges, err := svc.GetEntryCharges(context.Background(), 1)

		require.NoError(t, err)
		require.NotEmpty(t, charges)
		for _, line := range charges {
			assert.NotEqual(t, domain.ChargeTypeLoanContribution, line.TypeID)
		}
	})

	t.Run("open loan appends loan charges", func(t *testing.T) {
		svc, _, partnerRepo, loanRepo := entryFixture(t)

		// up to date on savings so only loan charges appear
		account := testAccount(time.Now().AddDate(0, -1, 0), "100", 1)
		loan := &domain.Loan{Number: 7, AccountNumber: 1}
		overdue := []*domain.LoanScheduleRow{
			scheduleRow(time.Now().AddDate(0, -1, 0), "100", "5", false, false),
		}

		partnerRepo.On("GetAccount", mock.Anything, int64(1)).Return(account, nil)
		loanRepo.On("GetOpenByAccount", mock.Anything, int64(1)).Return(loan, nil)
		loanRepo.On("GetSchedule", mock.Anything, int64(7)).Return(overdue, nil)

		charges, err := svc.GetEntryCharges(context.Background(), 1)

		require.NoError(t, err)
		principal := chargeByType(t, charges, domain.ChargeTypeLoanContribution)
		assert.True(t, principal.Value.Equal(decimal.NewFromInt(100)))
	})
}

func TestPostEntry(t *testing.T) {
	header := domain.EntryHeader{
		Number:        500,
		AccountNumber: 1,
		Date:          time.Now(),
		Amount:        decimal.NewFromInt(20),
		PeriodID:      1,
	}

	t.Run("contribution line moves the account saving", func(t *testing.T) {
		svc, entryRepo, partnerRepo, _ := entryFixture(t)

		account := testAccount(time.Now().AddDate(0, -2, 0), "100", 1)
		entryRepo.On("CreateHeader", mock.Anything, mock.Anything).Return(nil)
		partnerRepo.On("GetAccount", mock.Anything, int64(1)).Return(account, nil)
		partnerRepo.On("UpdateAccountSaving", mock.Anything, int64(1), mock.MatchedBy(func(saving decimal.Decimal) bool {
			return saving.Equal(decimal.NewFromInt(140))
		})).Return(nil)
		entryRepo.On("CreateDetail", mock.Anything, mock.MatchedBy(func(detail *domain.EntryDetail) bool {
			return detail.EntryNumber == 500
		})).Return(nil)
		entryRepo.On("CreateBillDetail", mock.Anything, mock.MatchedBy(func(detail *domain.EntryBillDetail) bool {
			return detail.EntryNumber == 500
		})).Return(nil)

		err := svc.PostEntry(context.Background(), &domain.NewEntry{
			Header: header,
			Details: []domain.EntryDetail{
				{TypeID: domain.ChargeTypeContribution, Value: decimal.NewFromInt(20)},
			},
			BillDetail: domain.EntryBillDetail{Cash: decimal.NewFromInt(20)},
		})

		require.NoError(t, err)
		entryRepo.AssertExpectations(t)
		partnerRepo.AssertExpectations(t)
	})

	t.Run("loan payment settles rows and recomputes debt", func(t *testing.T) {
		svc, entryRepo, _, loanRepo := entryFixture(t)

		rowID := uuid.New()
		entryRepo.On("CreateHeader", mock.Anything, mock.Anything).Return(nil)
		entryRepo.On("CreateDetail", mock.Anything, mock.Anything).Return(nil)
		entryRepo.On("CreateBillDetail", mock.Anything, mock.Anything).Return(nil)
		loanRepo.On("MarkRowPaid", mock.Anything, rowID, int64(500)).Return(nil)
		loanRepo.On("UpdateHead", mock.Anything, int64(7), mock.MatchedBy(func(debt decimal.Decimal) bool {
			return debt.Equal(decimal.NewFromInt(200))
		}), false).Return(nil)

		err := svc.PostEntry(context.Background(), &domain.NewEntry{
			Header: header,
			Details: []domain.EntryDetail{
				{TypeID: domain.ChargeTypeLoanContribution, Value: decimal.NewFromInt(100)},
			},
			BillDetail: domain.EntryBillDetail{Transfer: decimal.NewFromInt(100)},
			LoanPayment: &domain.LoanPaymentData{
				LoanNumber:  7,
				CurrentDebt: decimal.NewFromInt(300),
				RowsToPay: []domain.ScheduleRowPayment{
					{RowID: rowID, FeeValue: decimal.NewFromInt(100)},
				},
			},
		})

		require.NoError(t, err)
		loanRepo.AssertExpectations(t)
	})

	t.Run("rejects entry without details", func(t *testing.T) {
		svc, entryRepo, _, _ := entryFixture(t)

		err := svc.PostEntry(context.Background(), &domain.NewEntry{Header: header})

		assert.ErrorIs(t, err, apperrors.ErrValidation)
		entryRepo.AssertNotCalled(t, "CreateHeader")
	})

	t.Run("rejects negative detail values", func(t *testing.T) {
		svc, entryRepo, _, _ := entryFixture(t)

		err := svc.PostEntry(context.Background(), &domain.NewEntry{
			Header: header,
			Details: []domain.EntryDetail{
				{TypeID: domain.ChargeTypeContribution, Value: decimal.NewFromInt(-5)},
			},
		})

		assert.ErrorIs(t, err, apperrors.ErrValidation)
		entryRepo.AssertNotCalled(t, "CreateHeader")
	})
}

func TestEntrySearchClassifiesBills(t *testing.T) {
	svc, entryRepo, _, _ := entryFixture(t)

	entryRepo.On("Search", mock.Anything, mock.Anything).Return([]domain.EntryHeader{
		{Number: 1, Cash: decimal.NewFromInt(20)},
		{Number: 2, Cash: decimal.NewFromInt(10), Transfer: decimal.NewFromInt(10)},
	}, nil)

	entries, err := svc.Search(context.Background(), domain.EntryFilter{})

	require.NoError(t, err)
	assert.Equal(t, domain.BillTypeCash, entries[0].BillType)
	assert.Equal(t, domain.BillTypeMixed, entries[1].BillType)
}
