package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Charge type ids, as stored on entry detail rows.
const (
	ChargeTypeAdministrationFund  = 1
	ChargeTypeStrategicFund       = 2
	ChargeTypeContributionPenalty = 3
	ChargeTypeLoanContribution    = 5
	ChargeTypeLoanInterest        = 6
	ChargeTypeLoanPenalty         = 7
	ChargeTypeContribution        = 8
	ChargeTypePeriodOpening       = 11
)

// ContributionChargeTypes are the detail types that count toward a
// member's saving balance and the historic balance series.
var ContributionChargeTypes = []int{ChargeTypeContribution, ChargeTypePeriodOpening}

// ChargeLine is one computed amount a member owes, tagged with its charge
// type. Loan contribution lines carry the loan and schedule they were
// computed from so the posting workflow knows which rows to settle.
type ChargeLine struct {
	TypeID int             `json:"type_id"`
	Value  decimal.Decimal `json:"value"`
	Loan   *LoanDefinition `json:"loan,omitempty"`
}

// EntryHeader is a posted deposit/contribution transaction. Cash and
// Transfer come from the bill-detail join; BillType is derived, never stored.
type EntryHeader struct {
	Number        int64           `json:"number" db:"number"`
	AccountNumber int64           `json:"account_number" db:"account_number"`
	Date          time.Time       `json:"date" db:"date"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	Place         string          `json:"place" db:"place"`
	PeriodID      int64           `json:"period_id" db:"period_id"`
	Names         string          `json:"names,omitempty" db:"names"`
	Surnames      string          `json:"surnames,omitempty" db:"surnames"`
	Cash          decimal.Decimal `json:"cash" db:"cash"`
	Transfer      decimal.Decimal `json:"transfer" db:"transfer"`

	BillType string `json:"bill_type,omitempty" db:"-"`
}

// Split returns the payment instrument split of the entry.
func (h EntryHeader) Split() (cash, transfer decimal.Decimal) {
	return h.Cash, h.Transfer
}

// EntryDetail is one charge line persisted with an entry.
type EntryDetail struct {
	EntryNumber int64           `json:"entry_number" db:"entry_number"`
	TypeID      int             `json:"type_id" db:"type_id"`
	Value       decimal.Decimal `json:"value" db:"value"`
}

// EntryBillDetail records how an entry's total was tendered.
type EntryBillDetail struct {
	EntryNumber int64           `json:"entry_number" db:"entry_number"`
	Cash        decimal.Decimal `json:"cash" db:"cash"`
	Transfer    decimal.Decimal `json:"transfer" db:"transfer"`
}

// EntryType is a catalog row describing a charge type.
type EntryType struct {
	ID          int    `json:"id" db:"id"`
	Description string `json:"description" db:"description"`
}

// EntryAmountDetail is a catalog-joined detail row for the entry breakdown view.
type EntryAmountDetail struct {
	Description string          `json:"description" db:"description"`
	Value       decimal.NullDecimal `json:"value" db:"value"`
}

// EntryBreakdown is the full detail view of a posted entry.
type EntryBreakdown struct {
	BillDetail   EntryBillDetail     `json:"bill_detail"`
	AmountDetail []EntryAmountDetail `json:"amount_detail"`
}

// Contribution is a single contribution-type detail row with its entry date,
// used for saving status checks and historic series.
type Contribution struct {
	EntryNumber   int64           `json:"entry_number" db:"entry_number"`
	AccountNumber int64           `json:"account_number" db:"account_number"`
	Date          time.Time       `json:"date" db:"date"`
	Value         decimal.Decimal `json:"value" db:"value"`
}

// EntryCounter aggregates entry volume for dashboards.
type EntryCounter struct {
	Count    int64           `json:"count" db:"count"`
	Cash     decimal.Decimal `json:"cash" db:"cash"`
	Transfer decimal.Decimal `json:"transfer" db:"transfer"`
	Total    decimal.Decimal `json:"total" db:"total"`
}

// NewEntry is the posting workflow input: header plus its detail lines and
// bill detail, with optional loan payment data when loan charges are included.
type NewEntry struct {
	Header      EntryHeader      `json:"header" validate:"required"`
	Details     []EntryDetail    `json:"details" validate:"required,min=1,dive"`
	BillDetail  EntryBillDetail  `json:"bill_detail"`
	LoanPayment *LoanPaymentData `json:"loan_payment,omitempty"`
}

// EntryFilter bounds entry searches and counts.
type EntryFilter struct {
	Account     int64     `json:"account"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	PaymentType string    `json:"payment_type"`
	Limit       int       `json:"limit"`
	Offset      int       `json:"offset"`
}
