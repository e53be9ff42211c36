package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/cajacoop/caja-engine/internal/domain"
)

type loanRepository struct {
	db *sqlx.DB
}

func NewLoanRepository(db *sqlx.DB) LoanRepository {
	return &loanRepository{db: db}
}

func (r *loanRepository) CreateHead(ctx context.Context, loan *domain.Loan) error {
	query := `
		INSERT INTO loan (id, number, account_number, date, value, term, rate, debt, is_end)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		loan.ID,
		loan.Number,
		loan.AccountNumber,
		loan.Date,
		loan.Value,
		loan.Term,
		loan.Rate,
		loan.Debt,
		loan.IsEnd,
	)

	return err
}

func (r *loanRepository) CreateSchedule(ctx context.Context, rows []*domain.LoanScheduleRow) error {
	query := `
		INSERT INTO loan_detail (id, loan_number, fee_number, payment_date, fee_value,
		                         interest, fee_total, balance_after_pay, is_paid, is_disabled)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, row := range rows {
		_, err = tx.ExecContext(ctx, query,
			row.ID,
			row.LoanNumber,
			row.FeeNumber,
			row.PaymentDate,
			row.FeeValue,
			row.Interest,
			row.FeeTotal,
			row.BalanceAfterPay,
			row.IsPaid,
			row.IsDisabled,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *loanRepository) GetOpenByAccount(ctx context.Context, account int64) (*domain.Loan, error) {
	query := `
		SELECT id, number, account_number, date, value, term, rate, debt, is_end
		FROM loan
		WHERE account_number = $1 AND is_end = false
	`

	var loans []*domain.Loan
	if err := r.db.SelectContext(ctx, &loans, query, account); err != nil {
		return nil, err
	}

	if len(loans) == 0 {
		return nil, nil
	}

	return loans[0], nil
}

func (r *loanRepository) GetSchedule(ctx context.Context, loanNumber int64) ([]*domain.LoanScheduleRow, error) {
	query := `
		SELECT id, loan_number, fee_number, payment_date, fee_value, interest,
		       fee_total, balance_after_pay, is_paid, is_disabled, entry_number
		FROM loan_detail
		WHERE loan_number = $1
		ORDER BY fee_number
	`

	var rows []*domain.LoanScheduleRow
	if err := r.db.SelectContext(ctx, &rows, query, loanNumber); err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *loanRepository) MarkRowPaid(ctx context.Context, rowID uuid.UUID, entryNumber int64) error {
	query := `
		UPDATE loan_detail
		SET is_paid = true, entry_number = $2
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, rowID, entryNumber)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *loanRepository) UpdateHead(ctx context.Context, loanNumber int64, debt decimal.Decimal, isEnd bool) error {
	query := `
		UPDATE loan
		SET debt = $2, is_end = $3
		WHERE number = $1
	`

	result, err := r.db.ExecContext(ctx, query, loanNumber, debt, isEnd)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *loanRepository) UpdateHeadTerm(ctx context.Context, loanNumber int64, term int, debt decimal.Decimal) error {
	query := `
		UPDATE loan
		SET term = $2, debt = $3
		WHERE number = $1
	`

	result, err := r.db.ExecContext(ctx, query, loanNumber, term, debt)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *loanRepository) RewriteScheduleRow(ctx context.Context, row *domain.LoanScheduleRow) error {
	query := `
		UPDATE loan_detail
		SET payment_date = $2, fee_value = $3, interest = $4, fee_total = $5,
		    balance_after_pay = $6, is_paid = $7, is_disabled = $8
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		row.ID,
		row.PaymentDate,
		row.FeeValue,
		row.Interest,
		row.FeeTotal,
		row.BalanceAfterPay,
		row.IsPaid,
		row.IsDisabled,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *loanRepository) CreatePayment(ctx context.Context, payment *domain.LoanPayment) error {
	query := `
		INSERT INTO loan_payment (id, loan_number, date, amount, prior_debt)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		payment.ID,
		payment.LoanNumber,
		payment.Date,
		payment.Amount,
		payment.PriorDebt,
	)

	return err
}

func (r *loanRepository) Search(ctx context.Context, filter domain.LoanFilter) ([]*domain.Loan, error) {
	query := `
		SELECT l.id, l.number, l.account_number, l.date, l.value, l.term, l.rate,
		       l.debt, l.is_end, p.names, p.surnames
		FROM loan l
		INNER JOIN account a ON l.account_number = a.number
		INNER JOIN person p ON p.dni = a.dni
	`

	var args []interface{}
	if filter.Account > 0 {
		query += ` WHERE l.account_number = $1`
		args = append(args, filter.Account)
	}

	query += fmt.Sprintf(" ORDER BY l.number DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	var loans []*domain.Loan
	if err := r.db.SelectContext(ctx, &loans, query, args...); err != nil {
		return nil, err
	}

	return loans, nil
}

func (r *loanRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(number) FROM loan`)
	return count, err
}

func (r *loanRepository) ListOpen(ctx context.Context) ([]*domain.Loan, error) {
	query := `
		SELECT id, number, account_number, date, value, term, rate, debt, is_end
		FROM loan
		WHERE is_end = false
		ORDER BY number
	`

	var loans []*domain.Loan
	if err := r.db.SelectContext(ctx, &loans, query); err != nil {
		return nil, err
	}

	return loans, nil
}

func (r *loanRepository) SumOutstandingPrincipal(ctx context.Context) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(fee_value), 0)
		FROM loan_detail
		WHERE is_paid = false
	`

	var total decimal.Decimal
	if err := r.db.GetContext(ctx, &total, query); err != nil {
		return decimal.Zero, err
	}

	return total, nil
}
