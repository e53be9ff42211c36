package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/cajacoop/caja-engine/internal/domain"
)

type periodRepository struct {
	db *sqlx.DB
}

func NewPeriodRepository(db *sqlx.DB) PeriodRepository {
	return &periodRepository{db: db}
}

func (r *periodRepository) List(ctx context.Context) ([]*domain.Period, error) {
	query := `
		SELECT id, start_date, end_date, enabled, init_cash, init_transfer
		FROM period
		ORDER BY id
	`

	var periods []*domain.Period
	if err := r.db.SelectContext(ctx, &periods, query); err != nil {
		return nil, err
	}

	return periods, nil
}

func (r *periodRepository) GetByID(ctx context.Context, id int64) (*domain.Period, error) {
	query := `
		SELECT id, start_date, end_date, enabled, init_cash, init_transfer
		FROM period
		WHERE id = $1
	`

	var period domain.Period
	if err := r.db.GetContext(ctx, &period, query, id); err != nil {
		return nil, err
	}

	return &period, nil
}

func (r *periodRepository) ListOpen(ctx context.Context) ([]*domain.Period, error) {
	query := `
		SELECT id, start_date, end_date, enabled, init_cash, init_transfer
		FROM period
		WHERE end_date IS NULL
	`

	var periods []*domain.Period
	if err := r.db.SelectContext(ctx, &periods, query); err != nil {
		return nil, err
	}

	return periods, nil
}

func (r *periodRepository) ListAccountOpenings(ctx context.Context, periodID int64) ([]domain.PeriodAccountOpening, error) {
	query := `
		SELECT period_id, account_id, start_amount
		FROM period_account
		WHERE period_id = $1
	`

	var openings []domain.PeriodAccountOpening
	if err := r.db.SelectContext(ctx, &openings, query, periodID); err != nil {
		return nil, err
	}

	return openings, nil
}

func (r *periodRepository) ListTypeOpenings(ctx context.Context, periodID int64) ([]domain.PeriodTypeOpening, error) {
	query := `
		SELECT period_id, type_id, start_amount
		FROM period_entry_type
		WHERE period_id = $1
	`

	var openings []domain.PeriodTypeOpening
	if err := r.db.SelectContext(ctx, &openings, query, periodID); err != nil {
		return nil, err
	}

	return openings, nil
}
