package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Period is an accounting window. At most one period has no end date: the
// currently open one.
type Period struct {
	ID           int64           `json:"id" db:"id"`
	StartDate    time.Time       `json:"start_date" db:"start_date"`
	EndDate      *time.Time      `json:"end_date,omitempty" db:"end_date"`
	Enabled      bool            `json:"enabled" db:"enabled"`
	InitCash     decimal.Decimal `json:"init_cash" db:"init_cash"`
	InitTransfer decimal.Decimal `json:"init_transfer" db:"init_transfer"`
}

// PeriodAccountOpening snapshots a member's starting balance at period start.
type PeriodAccountOpening struct {
	PeriodID    int64           `json:"period_id" db:"period_id"`
	AccountID   int64           `json:"account_id" db:"account_id"`
	StartAmount decimal.Decimal `json:"start_amount" db:"start_amount"`
}
