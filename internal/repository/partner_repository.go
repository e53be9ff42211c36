package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/cajacoop/caja-engine/internal/domain"
)

type partnerRepository struct {
	db *sqlx.DB
}

func NewPartnerRepository(db *sqlx.DB) PartnerRepository {
	return &partnerRepository{db: db}
}

func (r *partnerRepository) CreatePerson(ctx context.Context, person *domain.Person) error {
	query := `
		INSERT INTO person (dni, names, surnames, birth_day, address, phone)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		person.DNI,
		person.Names,
		person.Surnames,
		person.BirthDay,
		person.Address,
		person.Phone,
	)

	return err
}

func (r *partnerRepository) CreateAccount(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO account (dni, creation_date, start_amount, current_saving, is_disabled)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING number
	`

	return r.db.QueryRowContext(ctx, query,
		account.DNI,
		account.CreationDate,
		account.StartAmount,
		account.CurrentSaving,
		account.IsDisabled,
	).Scan(&account.Number)
}

func (r *partnerRepository) UpdatePerson(ctx context.Context, dni string, person *domain.Person) error {
	query := `
		UPDATE person
		SET names = $2, surnames = $3, birth_day = $4, address = $5, phone = $6
		WHERE dni = $1
	`

	_, err := r.db.ExecContext(ctx, query,
		dni,
		person.Names,
		person.Surnames,
		person.BirthDay,
		person.Address,
		person.Phone,
	)

	return err
}

func (r *partnerRepository) DisableAccount(ctx context.Context, number int64) error {
	query := `UPDATE account SET is_disabled = true WHERE number = $1`

	_, err := r.db.ExecContext(ctx, query, number)
	return err
}

func (r *partnerRepository) GetAccount(ctx context.Context, number int64) (*domain.Account, error) {
	query := `
		SELECT number, dni, creation_date, start_amount, current_saving, is_disabled
		FROM account
		WHERE number = $1
	`

	var account domain.Account
	if err := r.db.GetContext(ctx, &account, query, number); err != nil {
		return nil, err
	}

	return &account, nil
}

func (r *partnerRepository) UpdateAccountSaving(ctx context.Context, number int64, saving decimal.Decimal) error {
	query := `UPDATE account SET current_saving = $2 WHERE number = $1`

	_, err := r.db.ExecContext(ctx, query, number, saving)
	return err
}

func (r *partnerRepository) ListPartners(ctx context.Context, activeOnly bool, limit, offset int) ([]domain.Partner, error) {
	query := `
		SELECT a.number, a.dni, p.names, p.surnames, p.birth_day, p.address, p.phone,
		       a.creation_date, a.start_amount, a.current_saving, a.is_disabled
		FROM person p
		INNER JOIN account a ON p.dni = a.dni
	`

	if activeOnly {
		query += ` WHERE a.is_disabled = false`
	}

	query += ` ORDER BY a.number`

	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}

	var partners []domain.Partner
	if err := r.db.SelectContext(ctx, &partners, query, args...); err != nil {
		return nil, err
	}

	return partners, nil
}

func (r *partnerRepository) CountPartners(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(number) FROM account`)
	return count, err
}
