package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/cajacoop/caja-engine/internal/domain"
)

type egressRepository struct {
	db *sqlx.DB
}

func NewEgressRepository(db *sqlx.DB) EgressRepository {
	return &egressRepository{db: db}
}

func (r *egressRepository) CreateHeader(ctx context.Context, header *domain.EgressHeader) error {
	query := `
		INSERT INTO egress (number, date, amount, place, beneficiary, type_id, period_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		header.Number,
		header.Date,
		header.Amount,
		header.Place,
		header.Beneficiary,
		header.TypeID,
		header.PeriodID,
	)

	return err
}

func (r *egressRepository) CreateDetail(ctx context.Context, detail *domain.EgressDetail) error {
	query := `
		INSERT INTO egress_detail (egress_number, description, value)
		VALUES ($1, $2, $3)
	`

	_, err := r.db.ExecContext(ctx, query, detail.EgressNumber, detail.Description, detail.Value)
	return err
}

func (r *egressRepository) CreateBillDetail(ctx context.Context, detail *domain.EgressBillDetail) error {
	query := `
		INSERT INTO egress_bill_detail (egress_number, cash, transfer, date, period_id)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		detail.EgressNumber,
		detail.Cash,
		detail.Transfer,
		detail.Date,
		detail.PeriodID,
	)

	return err
}

func (r *egressRepository) Search(ctx context.Context, filter domain.EgressFilter) ([]domain.EgressHeader, error) {
	query := `
		SELECT e.number, e.date, e.amount, e.place, e.beneficiary, e.type_id, e.period_id,
		       d.cash, d.transfer
		FROM egress e
		INNER JOIN egress_bill_detail d ON e.number = d.egress_number
	`

	where, args := buildEgressFilters(filter)
	query += where
	query += fmt.Sprintf(" ORDER BY e.number DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	var egresses []domain.EgressHeader
	if err := r.db.SelectContext(ctx, &egresses, query, args...); err != nil {
		return nil, err
	}

	return egresses, nil
}

func (r *egressRepository) Count(ctx context.Context, filter domain.EgressFilter) (*domain.EgressCounter, error) {
	query := `
		SELECT COUNT(e.number) AS count,
		       COALESCE(SUM(d.cash), 0) AS cash,
		       COALESCE(SUM(d.transfer), 0) AS transfer,
		       COALESCE(SUM(e.amount), 0) AS total
		FROM egress e
		INNER JOIN egress_bill_detail d ON e.number = d.egress_number
	`

	where, args := buildEgressFilters(filter)
	query += where

	var counter domain.EgressCounter
	if err := r.db.GetContext(ctx, &counter, query, args...); err != nil {
		return nil, err
	}

	return &counter, nil
}

func (r *egressRepository) SumTendered(ctx context.Context, periodID int64) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(cash), 0) AS cash, COALESCE(SUM(transfer), 0) AS transfer
		FROM egress_bill_detail
		WHERE period_id = $1
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

func (r *egressRepository) SumByType(ctx context.Context, periodID int64) ([]domain.TypeMetric, error) {
	query := `
		SELECT type_id AS id, COALESCE(SUM(amount), 0) AS sum
		FROM egress
		WHERE period_id = $1
		GROUP BY type_id
	`

	var metrics []domain.TypeMetric
	if err := r.db.SelectContext(ctx, &metrics, query, periodID); err != nil {
		return nil, err
	}

	return metrics, nil
}

func buildEgressFilters(filter domain.EgressFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	next := func() int { return len(args) + 1 }

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
