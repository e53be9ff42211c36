package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/cajacoop/caja-engine/internal/domain"
)

type entryRepository struct {
	db *sqlx.DB
}

func NewEntryRepository(db *sqlx.DB) EntryRepository {
	return &entryRepository{db: db}
}

func (r *entryRepository) CreateHeader(ctx context.Context, header *domain.EntryHeader) error {
	query := `
		INSERT INTO entry (number, account_number, date, amount, place, period_id)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		header.Number,
		header.AccountNumber,
		header.Date,
		header.Amount,
		header.Place,
		header.PeriodID,
	)

	return err
}

func (r *entryRepository) CreateDetail(ctx context.Context, detail *domain.EntryDetail) error {
	query := `
		INSERT INTO entry_detail (entry_number, type_id, value)
		VALUES ($1, $2, $3)
	`

	_, err := r.db.ExecContext(ctx, query, detail.EntryNumber, detail.TypeID, detail.Value)
	return err
}

func (r *entryRepository) CreateBillDetail(ctx context.Context, detail *domain.EntryBillDetail) error {
	query := `
		INSERT INTO entry_bill_detail (entry_number, cash, transfer)
		VALUES ($1, $2, $3)
	`

	_, err := r.db.ExecContext(ctx, query, detail.EntryNumber, detail.Cash, detail.Transfer)
	return err
}

func (r *entryRepository) Search(ctx context.Context, filter domain.EntryFilter) ([]domain.EntryHeader, error) {
	query := `
		SELECT e.number, e.account_number, e.date, e.amount, e.place, e.period_id,
		       p.names, p.surnames, d.cash, d.transfer
		FROM entry e
		INNER JOIN account a ON e.account_number = a.number
		INNER JOIN person p ON p.dni = a.dni
		INNER JOIN entry_bill_detail d ON e.number = d.entry_number
	`

	where, args := buildEntryFilters(filter)
	query += where
	query += fmt.Sprintf(" ORDER BY e.number DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	var entries []domain.EntryHeader
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *entryRepository) Count(ctx context.Context, filter domain.EntryFilter) (*domain.EntryCounter, error) {
	query := `
		SELECT COUNT(e.number) AS count,
		       COALESCE(SUM(d.cash), 0) AS cash,
		       COALESCE(SUM(d.transfer), 0) AS transfer,
		       COALESCE(SUM(e.amount), 0) AS total
		FROM entry e
		INNER JOIN entry_bill_detail d ON e.number = d.entry_number
	`

	where, args := buildEntryFilters(filter)
	query += where

	var counter domain.EntryCounter
	if err := r.db.GetContext(ctx, &counter, query, args...); err != nil {
		return nil, err
	}

	return &counter, nil
}

func (r *entryRepository) GetAmountDetail(ctx context.Context, entryNumber int64) ([]domain.EntryAmountDetail, error) {
	query := `
		SELECT t.description, d.value
		FROM entry_type t
		LEFT JOIN entry_detail d ON d.type_id = t.id AND d.entry_number = $1
		ORDER BY t.id
	`

	var details []domain.EntryAmountDetail
	if err := r.db.SelectContext(ctx, &details, query, entryNumber); err != nil {
		return nil, err
	}

	return details, nil
}

func (r *entryRepository) GetBillDetail(ctx context.Context, entryNumber int64) (*domain.EntryBillDetail, error) {
	query := `
		SELECT entry_number, cash, transfer
		FROM entry_bill_detail
		WHERE entry_number = $1
	`

	var detail domain.EntryBillDetail
	if err := r.db.GetContext(ctx, &detail, query, entryNumber); err != nil {
		return nil, err
	}

	return &detail, nil
}

func (r *entryRepository) ListTypes(ctx context.Context) ([]domain.EntryType, error) {
	var types []domain.EntryType
	err := r.db.SelectContext(ctx, &types, `SELECT id, description FROM entry_type ORDER BY id`)
	if err != nil {
		return nil, err
	}

	return types, nil
}

func (r *entryRepository) ListContributions(ctx context.Context, account int64, types []int) ([]domain.Contribution, error) {
	query, args, err := sqlx.In(`
		SELECT e.number AS entry_number, e.account_number, e.date, d.value
		FROM entry_detail d
		INNER JOIN entry e ON e.number = d.entry_number
		WHERE d.type_id IN (?) AND e.account_number = ?
		ORDER BY e.date
	`, types, account)
	if err != nil {
		return nil, err
	}

	var contributions []domain.Contribution
	if err := r.db.SelectContext(ctx, &contributions, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}

	return contributions, nil
}

func (r *entryRepository) ListPeriodContributions(ctx context.Context, period *domain.Period) ([]domain.Contribution, error) {
	base := `
		SELECT e.number AS entry_number, e.account_number, e.date, d.value
		FROM entry e
		INNER JOIN entry_detail d ON e.number = d.entry_number
		WHERE d.type_id IN (?) AND e.period_id = ?
	`

	args := []interface{}{domain.ContributionChargeTypes, period.ID}
	if period.EndDate != nil {
		base += ` AND e.date <= ?`
		args = append(args, *period.EndDate)
	}

	query, inArgs, err := sqlx.In(base, args...)
	if err != nil {
		return nil, err
	}

	var contributions []domain.Contribution
	if err := r.db.SelectContext(ctx, &contributions, r.db.Rebind(query), inArgs...); err != nil {
		return nil, err
	}

	return contributions, nil
}

func (r *entryRepository) SumTendered(ctx context.Context, periodID int64) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(d.cash), 0) AS cash, COALESCE(SUM(d.transfer), 0) AS transfer
		FROM entry_bill_detail d
		INNER JOIN entry e ON e.number = d.entry_number
		WHERE e.period_id = $1
	`

	var row struct {
		Cash     decimal.Decimal `db:"cash"`
		Transfer decimal.Decimal `db:"transfer"`
	}
	if err := r.db.GetContext(ctx, &row, query, periodID); err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return row.Cash, row.Transfer, nil
}

func (r *entryRepository) SumByType(ctx context.Context, periodID int64) ([]domain.TypeMetric, error) {
	query := `
		SELECT d.type_id AS id, COALESCE(SUM(d.value), 0) AS sum
		FROM entry_detail d
		INNER JOIN entry e ON d.entry_number = e.number
		WHERE e.period_id = $1
		GROUP BY d.type_id
	`

	var metrics []domain.TypeMetric
	if err := r.db.SelectContext(ctx, &metrics, query, periodID); err != nil {
		return nil, err
	}

	return metrics, nil
}

// buildEntryFilters translates an EntryFilter into WHERE conditions with
// positional args, matching the Search and Count joins.
func buildEntryFilters(filter domain.EntryFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	next := func() int { return len(args) + 1 }

	if filter.Account > 0 {
		conditions = append(conditions, fmt.Sprintf("e.account_number = $%d", next()))
		args = append(args, filter.Account)
	}

	if !filter.StartDate.IsZero() {
		conditions = append(conditions, fmt.Sprintf("e.date >= $%d", next()))
		args = append(args, filter.StartDate)
	}

	if !filter.EndDate.IsZero() {
		conditions = append(conditions, fmt.Sprintf("e.date <= $%d", next()))
		args = append(args, filter.EndDate)
	}

	switch filter.PaymentType {
	case domain.BillTypeMixed:
		conditions = append(conditions, "d.cash > 0", "d.transfer > 0")
	case domain.BillTypeCash:
		conditions = append(conditions, "d.cash > 0")
	case domain.BillTypeTransfer:
		conditions = append(conditions, "d.transfer > 0")
	}

	if len(conditions) == 0 {
		return "", args
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}
