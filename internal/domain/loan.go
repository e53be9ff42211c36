package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Derived loan statuses. Only the terminal is_end flag is stored.
const (
	LoanStatusPaid    = "paid"
	LoanStatusLate    = "late"
	LoanStatusCurrent = "current"
)

// Loan is a borrowing record. Debt decreases on every payment; IsEnd is set
// once the amortization schedule is exhausted.
type Loan struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	Number        int64           `json:"number" db:"number"`
	AccountNumber int64           `json:"account_number" db:"account_number"`
	Date          time.Time       `json:"date" db:"date"`
	Value         decimal.Decimal `json:"value" db:"value"`
	Term          int             `json:"term" db:"term"`
	Rate          decimal.Decimal `json:"rate" db:"rate"`
	Debt          decimal.Decimal `json:"debt" db:"debt"`
	IsEnd         bool            `json:"is_end" db:"is_end"`
	Names         string          `json:"names,omitempty" db:"names"`
	Surnames      string          `json:"surnames,omitempty" db:"surnames"`

	Status string `json:"status,omitempty" db:"-"`
}

// LoanScheduleRow is one amortization installment. Disabled rows were
// zeroed out by a restructuring and never contribute to due amounts.
type LoanScheduleRow struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	LoanNumber      int64           `json:"loan_number" db:"loan_number"`
	FeeNumber       int             `json:"fee_number" db:"fee_number"`
	PaymentDate     time.Time       `json:"payment_date" db:"payment_date"`
	FeeValue        decimal.Decimal `json:"fee_value" db:"fee_value"`
	Interest        decimal.Decimal `json:"interest" db:"interest"`
	FeeTotal        decimal.Decimal `json:"fee_total" db:"fee_total"`
	BalanceAfterPay decimal.Decimal `json:"balance_after_pay" db:"balance_after_pay"`
	IsPaid          bool            `json:"is_paid" db:"is_paid"`
	IsDisabled      bool            `json:"is_disabled" db:"is_disabled"`
	EntryNumber     *int64          `json:"entry_number,omitempty" db:"entry_number"`
}

// ZeroedOut reports whether every monetary field of the row is zero, which
// is how a restructuring nulls an installment.
func (r LoanScheduleRow) ZeroedOut() bool {
	return r.FeeTotal.IsZero() &&
		r.BalanceAfterPay.IsZero() &&
		r.Interest.IsZero() &&
		r.FeeValue.IsZero()
}

// LoanDefinition pairs a loan head with its full schedule.
type LoanDefinition struct {
	Loan     *Loan              `json:"loan"`
	Schedule []*LoanScheduleRow `json:"schedule"`
}

// ScheduleRowPayment references one schedule row settled by an entry.
type ScheduleRowPayment struct {
	RowID       uuid.UUID       `json:"row_id" validate:"required"`
	EntryNumber int64           `json:"entry_number"`
	FeeValue    decimal.Decimal `json:"fee_value"`
}

// LoanPaymentData is the loan side of an entry posting: which rows get
// marked paid and how the loan head debt moves.
type LoanPaymentData struct {
	LoanNumber  int64                `json:"loan_number" validate:"required"`
	CurrentDebt decimal.Decimal      `json:"current_debt"`
	RowsToPay   []ScheduleRowPayment `json:"rows_to_pay" validate:"required,min=1,dive"`
	IsFinished  bool                 `json:"is_finished"`
}

// TotalPaid sums the fee values of the rows being settled.
func (d LoanPaymentData) TotalPaid() decimal.Decimal {
	total := decimal.Zero
	for _, row := range d.RowsToPay {
		total = total.Add(row.FeeValue)
	}
	return total
}

// LoanPayment is the audit record appended on a loan restructuring.
type LoanPayment struct {
	ID         uuid.UUID       `json:"id" db:"id"`
	LoanNumber int64           `json:"loan_number" db:"loan_number"`
	Date       time.Time       `json:"date" db:"date"`
	Amount     decimal.Decimal `json:"amount" db:"amount"`
	PriorDebt  decimal.Decimal `json:"prior_debt" db:"prior_debt"`
}

// DTOs for requests and responses

type CreateLoanRequest struct {
	AccountNumber int64              `json:"account_number" validate:"required"`
	Number        int64              `json:"number" validate:"required"`
	Date          time.Time          `json:"date"`
	Value         decimal.Decimal    `json:"value" validate:"required"`
	Term          int                `json:"term" validate:"required,gt=0"`
	Rate          decimal.Decimal    `json:"rate"`
	Schedule      []*LoanScheduleRow `json:"schedule" validate:"required,min=1"`
}

// RestructureLoanRequest rewrites a loan's schedule during renegotiation.
type RestructureLoanRequest struct {
	LoanNumber int64              `json:"loan_number" validate:"required"`
	Term       int                `json:"term" validate:"required,gt=0"`
	Debt       decimal.Decimal    `json:"debt"`
	Schedule   []*LoanScheduleRow `json:"schedule" validate:"required,min=1"`
	Payment    LoanPayment        `json:"payment"`
}

// LoanFilter bounds loan searches.
type LoanFilter struct {
	Account int64 `json:"account"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
}
