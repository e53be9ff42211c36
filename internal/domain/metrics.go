package domain

import "github.com/shopspring/decimal"

// Metrics are the cooperative-wide cash position figures for a period.
type Metrics struct {
	Total               decimal.Decimal `json:"total"`
	CashTotal           decimal.Decimal `json:"cash_total"`
	TransferTotal       decimal.Decimal `json:"transfer_total"`
	LoanTotalDispatched decimal.Decimal `json:"loan_total_dispatched"`
}

// TypeMetric is the net movement of one charge type within a period.
type TypeMetric struct {
	ID          int             `json:"id" db:"id"`
	Description string          `json:"description" db:"description"`
	Sum         decimal.Decimal `json:"sum" db:"sum"`
}

// PeriodTypeOpening is a period's opening amount for one charge type.
type PeriodTypeOpening struct {
	PeriodID    int64           `json:"period_id" db:"period_id"`
	TypeID      int             `json:"type_id" db:"type_id"`
	StartAmount decimal.Decimal `json:"start_amount" db:"start_amount"`
}
