package domain

import "github.com/shopspring/decimal"

// Payment instrument classifications shared by entries and egresses.
const (
	BillTypeCash         = "cash"
	BillTypeTransfer     = "transfer"
	BillTypeMixed        = "mixed"
	BillTypeUnclassified = "unclassified"
)

// BillSplit is anything that carries a cash/transfer tender split.
type BillSplit interface {
	Split() (cash, transfer decimal.Decimal)
}

// ClassifyBill maps a cash/transfer split to its payment classification.
// Pure and total: zero on both sides yields BillTypeUnclassified.
func ClassifyBill(cash, transfer decimal.Decimal) string {
	switch {
	case cash.IsPositive() && transfer.IsPositive():
		return BillTypeMixed
	case cash.IsPositive():
		return BillTypeCash
	case transfer.IsPositive():
		return BillTypeTransfer
	default:
		return BillTypeUnclassified
	}
}

// ClassifySplit classifies any record exposing a bill split.
func ClassifySplit(b BillSplit) string {
	return ClassifyBill(b.Split())
}
