package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cajacoop/caja-engine/internal/domain"
)

// PartnerRepository defines person/account data operations
type PartnerRepository interface {
	// CreatePerson inserts a new person record
	CreatePerson(ctx context.Context, person *domain.Person) error

	// CreateAccount inserts the savings account paired with a person
	CreateAccount(ctx context.Context, account *domain.Account) error

	// UpdatePerson updates a person's identity fields
	UpdatePerson(ctx context.Context, dni string, person *domain.Person) error

	// DisableAccount flags an account as disabled; accounts are never deleted
	DisableAccount(ctx context.Context, number int64) error

	// GetAccount retrieves one account by its number
	GetAccount(ctx context.Context, number int64) (*domain.Account, error)

	// UpdateAccountSaving overwrites an account's current saving balance
	UpdateAccountSaving(ctx context.Context, number int64, saving decimal.Decimal) error

	// ListPartners returns joined person+account roster rows
	ListPartners(ctx context.Context, activeOnly bool, limit, offset int) ([]domain.Partner, error)

	// CountPartners returns the number of accounts
	CountPartners(ctx context.Context) (int64, error)
}

// EntryRepository defines deposit transaction data operations
type EntryRepository interface {
	CreateHeader(ctx context.Context, header *domain.EntryHeader) error
	CreateDetail(ctx context.Context, detail *domain.EntryDetail) error
	CreateBillDetail(ctx context.Context, detail *domain.EntryBillDetail) error

	// Search returns entry headers joined with person and bill detail
	Search(ctx context.Context, filter domain.EntryFilter) ([]domain.EntryHeader, error)

	// Count aggregates entry volume under the same filters as Search
	Count(ctx context.Context, filter domain.EntryFilter) (*domain.EntryCounter, error)

	// GetAmountDetail returns the charge-type catalog joined with one entry's lines
	GetAmountDetail(ctx context.Context, entryNumber int64) ([]domain.EntryAmountDetail, error)

	// GetBillDetail returns one entry's tender split
	GetBillDetail(ctx context.Context, entryNumber int64) (*domain.EntryBillDetail, error)

	// ListTypes returns the charge type catalog
	ListTypes(ctx context.Context) ([]domain.EntryType, error)

	// ListContributions returns contribution-type detail rows for one account
	ListContributions(ctx context.Context, account int64, types []int) ([]domain.Contribution, error)

	// ListPeriodContributions returns contribution-type detail rows of a period
	ListPeriodContributions(ctx context.Context, period *domain.Period) ([]domain.Contribution, error)

	// SumTendered totals the cash and transfer columns over a period
	SumTendered(ctx context.Context, periodID int64) (cash, transfer decimal.Decimal, err error)

	// SumByType totals detail values per charge type over a period
	SumByType(ctx context.Context, periodID int64) ([]domain.TypeMetric, error)
}

// EgressRepository defines withdrawal transaction data operations
type EgressRepository interface {
	CreateHeader(ctx context.Context, header *domain.EgressHeader) error
	CreateDetail(ctx context.Context, detail *domain.EgressDetail) error
	CreateBillDetail(ctx context.Context, detail *domain.EgressBillDetail) error

	Search(ctx context.Context, filter domain.EgressFilter) ([]domain.EgressHeader, error)
	Count(ctx context.Context, filter domain.EgressFilter) (*domain.EgressCounter, error)

	SumTendered(ctx context.Context, periodID int64) (cash, transfer decimal.Decimal, err error)
	SumByType(ctx context.Context, periodID int64) ([]domain.TypeMetric, error)
}

// LoanRepository defines loan and amortization schedule data operations
type LoanRepository interface {
	// CreateHead inserts a new loan head
	CreateHead(ctx context.Context, loan *domain.Loan) error

	// CreateSchedule inserts the full amortization schedule of a loan
	CreateSchedule(ctx context.Context, rows []*domain.LoanScheduleRow) error

	// GetOpenByAccount retrieves the account's open loan, or nil when none
	GetOpenByAccount(ctx context.Context, account int64) (*domain.Loan, error)

	// GetSchedule retrieves a loan's schedule ordered by fee number
	GetSchedule(ctx context.Context, loanNumber int64) ([]*domain.LoanScheduleRow, error)

	// MarkRowPaid settles one schedule row and records the paying entry.
	// Returns sql.ErrNoRows when the row does not exist.
	MarkRowPaid(ctx context.Context, rowID uuid.UUID, entryNumber int64) error

	// UpdateHead sets a loan's outstanding debt and terminal flag
	UpdateHead(ctx context.Context, loanNumber int64, debt decimal.Decimal, isEnd bool) error

	// UpdateHeadTerm rewrites term and debt during a restructuring
	UpdateHeadTerm(ctx context.Context, loanNumber int64, term int, debt decimal.Decimal) error

	// RewriteScheduleRow overwrites every mutable field of one schedule row
	RewriteScheduleRow(ctx context.Context, row *domain.LoanScheduleRow) error

	// CreatePayment appends a restructuring audit payment record
	CreatePayment(ctx context.Context, payment *domain.LoanPayment) error

	// Search returns loans joined with the member's names
	Search(ctx context.Context, filter domain.LoanFilter) ([]*domain.Loan, error)

	// Count returns the number of loans
	Count(ctx context.Context) (int64, error)

	// ListOpen returns all loans not yet finished
	ListOpen(ctx context.Context) ([]*domain.Loan, error)

	// SumOutstandingPrincipal totals unpaid schedule fee values
	SumOutstandingPrincipal(ctx context.Context) (decimal.Decimal, error)
}

// PeriodRepository defines accounting period data operations
type PeriodRepository interface {
	List(ctx context.Context) ([]*domain.Period, error)
	GetByID(ctx context.Context, id int64) (*domain.Period, error)

	// ListOpen returns every period with no end date. The invariant is at
	// most one; callers surface more as an inconsistent state.
	ListOpen(ctx context.Context) ([]*domain.Period, error)

	// ListAccountOpenings returns per-account opening balances of a period
	ListAccountOpenings(ctx context.Context, periodID int64) ([]domain.PeriodAccountOpening, error)

	// ListTypeOpenings returns per-charge-type opening amounts of a period
	ListTypeOpenings(ctx context.Context, periodID int64) ([]domain.PeriodTypeOpening, error)
}
