package domain

import "github.com/shopspring/decimal"

// ChargePolicy holds the fixed monetary constants the accrual calculators
// consume. It is built from configuration and passed explicitly into every
// calculator call so differing rate regimes stay testable.
type ChargePolicy struct {
	ContributionAmount  decimal.Decimal
	AdministrationFee   decimal.Decimal
	StrategicFundBase   decimal.Decimal
	StrategicFundRate   decimal.Decimal
	ContributionPenalty decimal.Decimal
	LoanPenaltyRate     decimal.Decimal
}
