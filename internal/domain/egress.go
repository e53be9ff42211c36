package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EgressHeader is a withdrawal/disbursement from the cooperative's funds.
type EgressHeader struct {
	Number      int64           `json:"number" db:"number"`
	Date        time.Time       `json:"date" db:"date"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	Place       string          `json:"place" db:"place"`
	Beneficiary string          `json:"beneficiary" db:"beneficiary"`
	TypeID      int             `json:"type_id" db:"type_id"`
	PeriodID    int64           `json:"period_id" db:"period_id"`
	Cash        decimal.Decimal `json:"cash" db:"cash"`
	Transfer    decimal.Decimal `json:"transfer" db:"transfer"`

	BillType string `json:"bill_type,omitempty" db:"-"`
}

// Split returns the payment instrument split of the egress.
func (h EgressHeader) Split() (cash, transfer decimal.Decimal) {
	return h.Cash, h.Transfer
}

// EgressDetail is one line of an egress.
type EgressDetail struct {
	EgressNumber int64           `json:"egress_number" db:"egress_number"`
	Description  string          `json:"description" db:"description"`
	Value        decimal.Decimal `json:"value" db:"value"`
}

// EgressBillDetail records how an egress was tendered.
type EgressBillDetail struct {
	EgressNumber int64           `json:"egress_number" db:"egress_number"`
	Cash         decimal.Decimal `json:"cash" db:"cash"`
	Transfer     decimal.Decimal `json:"transfer" db:"transfer"`
	Date         time.Time       `json:"date" db:"date"`
	PeriodID     int64           `json:"period_id" db:"period_id"`
}

// EgressCounter aggregates egress volume for dashboards.
type EgressCounter struct {
	Count    int64           `json:"count" db:"count"`
	Cash     decimal.Decimal `json:"cash" db:"cash"`
	Transfer decimal.Decimal `json:"transfer" db:"transfer"`
	Total    decimal.Decimal `json:"total" db:"total"`
}

// NewEgress is the egress posting input.
type NewEgress struct {
	Header     EgressHeader     `json:"header" validate:"required"`
	Details    []EgressDetail   `json:"details" validate:"required,min=1,dive"`
	BillDetail EgressBillDetail `json:"bill_detail"`
}

// EgressFilter bounds egress searches and counts.
type EgressFilter struct {
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	PaymentType string    `json:"payment_type"`
	Limit       int       `json:"limit"`
	Offset      int       `json:"offset"`
}
