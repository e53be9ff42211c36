package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/cajacoop/caja-engine/internal/domain"
)

type MockPartnerRepository struct {
	mock.Mock
}

func (m *MockPartnerRepository) CreatePerson(ctx context.Context, person *domain.Person) error {
	args := m.Called(ctx, person)
	return args.Error(0)
}

func (m *MockPartnerRepository) CreateAccount(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockPartnerRepository) UpdatePerson(ctx context.Context, dni string, person *domain.Person) error {
	args := m.Called(ctx, dni, person)
	return args.Error(0)
}

func (m *MockPartnerRepository) DisableAccount(ctx context.Context, number int64) error {
	args := m.Called(ctx, number)
	return args.Error(0)
}

func (m *MockPartnerRepository) GetAccount(ctx context.Context, number int64) (*domain.Account, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockPartnerRepository) UpdateAccountSaving(ctx context.Context, number int64, saving decimal.Decimal) error {
	args := m.Called(ctx, number, saving)
	return args.Error(0)
}

func (m *MockPartnerRepository) ListPartners(ctx context.Context, activeOnly bool, limit, offset int) ([]domain.Partner, error) {
	args := m.Called(ctx, activeOnly, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Partner), args.Error(1)
}

func (m *MockPartnerRepository) CountPartners(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) CreateHeader(ctx context.Context, header *domain.EntryHeader) error {
	args := m.Called(ctx, header)
	return args.Error(0)
}

func (m *MockEntryRepository) CreateDetail(ctx context.Context, detail *domain.EntryDetail) error {
	args := m.Called(ctx, detail)
	return args.Error(0)
}

func (m *MockEntryRepository) CreateBillDetail(ctx context.Context, detail *domain.EntryBillDetail) error {
	args := m.Called(ctx, detail)
	return args.Error(0)
}

func (m *MockEntryRepository) Search(ctx context.Context, filter domain.EntryFilter) ([]domain.EntryHeader, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EntryHeader), args.Error(1)
}

func (m *MockEntryRepository) Count(ctx context.Context, filter domain.EntryFilter) (*domain.EntryCounter, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EntryCounter), args.Error(1)
}

func (m *MockEntryRepository) GetAmountDetail(ctx context.Context, entryNumber int64) ([]domain.EntryAmountDetail, error) {
	args := m.Called(ctx, entryNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EntryAmountDetail), args.Error(1)
}

func (m *MockEntryRepository) GetBillDetail(ctx context.Context, entryNumber int64) (*domain.EntryBillDetail, error) {
	args := m.Called(ctx, entryNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EntryBillDetail), args.Error(1)
}

func (m *MockEntryRepository) ListTypes(ctx context.Context) ([]domain.EntryType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EntryType), args.Error(1)
}

func (m *MockEntryRepository) ListContributions(ctx context.Context, account int64, types []int) ([]domain.Contribution, error) {
	args := m.Called(ctx, account, types)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Contribution), args.Error(1)
}

func (m *MockEntryRepository) ListPeriodContributions(ctx context.Context, period *domain.Period) ([]domain.Contribution, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Contribution), args.Error(1)
}

func (m *MockEntryRepository) SumTendered(ctx context.Context, periodID int64) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, periodID)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockEntryRepository) SumByType(ctx context.Context, periodID int64) ([]domain.TypeMetric, error) {
	args := m.Called(ctx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TypeMetric), args.Error(1)
}

type MockEgressRepository struct {
	mock.Mock
}

func (m *MockEgressRepository) CreateHeader(ctx context.Context, header *domain.EgressHeader) error {
	args := m.Called(ctx, header)
	return args.Error(0)
}

func (m *MockEgressRepository) CreateDetail(ctx context.Context, detail *domain.EgressDetail) error {
	args := m.Called(ctx, detail)
	return args.Error(0)
}

func (m *MockEgressRepository) CreateBillDetail(ctx context.Context, detail *domain.EgressBillDetail) error {
	args := m.Called(ctx, detail)
	return args.Error(0)
}

func (m *MockEgressRepository) Search(ctx context.Context, filter domain.EgressFilter) ([]domain.EgressHeader, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EgressHeader), args.Error(1)
}

func (m *MockEgressRepository) Count(ctx context.Context, filter domain.EgressFilter) (*domain.EgressCounter, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EgressCounter), args.Error(1)
}

func (m *MockEgressRepository) SumTendered(ctx context.Context, periodID int64) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, periodID)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockEgressRepository) SumByType(ctx context.Context, periodID int64) ([]domain.TypeMetric, error) {
	args := m.Called(ctx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TypeMetric), args.Error(1)
}

type MockLoanRepository struct {
	mock.Mock
}

func (m *MockLoanRepository) CreateHead(ctx context.Context, loan *domain.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

func (m *MockLoanRepository) CreateSchedule(ctx context.Context, rows []*domain.LoanScheduleRow) error {
	args := m.Called(ctx, rows)
	return args.Error(0)
}

func (m *MockLoanRepository) GetOpenByAccount(ctx context.Context, account int64) (*domain.Loan, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) GetSchedule(ctx context.Context, loanNumber int64) ([]*domain.LoanScheduleRow, error) {
	args := m.Called(ctx, loanNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LoanScheduleRow), args.Error(1)
}

func (m *MockLoanRepository) MarkRowPaid(ctx context.Context, rowID uuid.UUID, entryNumber int64) error {
	args := m.Called(ctx, rowID, entryNumber)
	return args.Error(0)
}

func (m *MockLoanRepository) UpdateHead(ctx context.Context, loanNumber int64, debt decimal.Decimal, isEnd bool) error {
	args := m.Called(ctx, loanNumber, debt, isEnd)
	return args.Error(0)
}

func (m *MockLoanRepository) UpdateHeadTerm(ctx context.Context, loanNumber int64, term int, debt decimal.Decimal) error {
	args := m.Called(ctx, loanNumber, term, debt)
	return args.Error(0)
}

func (m *MockLoanRepository) RewriteScheduleRow(ctx context.Context, row *domain.LoanScheduleRow) error {
	args := m.Called(ctx, row)
	return args.Error(0)
}

func (m *MockLoanRepository) CreatePayment(ctx context.Context, payment *domain.LoanPayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockLoanRepository) Search(ctx context.Context, filter domain.LoanFilter) ([]*domain.Loan, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLoanRepository) ListOpen(ctx context.Context) ([]*domain.Loan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) SumOutstandingPrincipal(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type MockPeriodRepository struct {
	mock.Mock
}

func (m *MockPeriodRepository) List(ctx context.Context) ([]*domain.Period, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Period), args.Error(1)
}

func (m *MockPeriodRepository) GetByID(ctx context.Context, id int64) (*domain.Period, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Period), args.Error(1)
}

func (m *MockPeriodRepository) ListOpen(ctx context.Context) ([]*domain.Period, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Period), args.Error(1)
}

func (m *MockPeriodRepository) ListAccountOpenings(ctx context.Context, periodID int64) ([]domain.PeriodAccountOpening, error) {
	args := m.Called(ctx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PeriodAccountOpening), args.Error(1)
}

func (m *MockPeriodRepository) ListTypeOpenings(ctx context.Context, periodID int64) ([]domain.PeriodTypeOpening, error) {
	args := m.Called(ctx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PeriodTypeOpening), args.Error(1)
}
