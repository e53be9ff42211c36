package domain

import "github.com/shopspring/decimal"

// PartnerEntry is one month bucket of a member's historic balance series.
// MonthCount is the bucket's age in months relative to the period end.
type PartnerEntry struct {
	Value      decimal.Decimal `json:"value"`
	Date       string          `json:"date"`
	MonthCount int             `json:"month_count"`
}

// PartnerBalance is the per-member report row produced by the historic
// balance reconstruction. Computed, never persisted.
type PartnerBalance struct {
	Account                 int64           `json:"account"`
	Names                   string          `json:"names"`
	CurrentSaving           decimal.Decimal `json:"current_saving"`
	Entries                 []PartnerEntry  `json:"entries"`
	ParticipationRate       decimal.Decimal `json:"participation_rate"`
	ParticipationPercentage decimal.Decimal `json:"participation_percentage"`
}
