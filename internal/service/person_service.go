package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/cajacoop/caja-engine/internal/config"
	"github.com/cajacoop/caja-engine/internal/domain"
	"github.com/cajacoop/caja-engine/internal/repository"
	apperrors "github.com/cajacoop/caja-engine/pkg/errors"
)

type PersonService struct {
	PartnerRepo repository.PartnerRepository
	loans       *LoanService
	config      *config.Config
}

func NewPersonService(partnerRepo repository.PartnerRepository, loans *LoanService, cfg *config.Config) *PersonService {
	return &PersonService{
		PartnerRepo: partnerRepo,
		loans:       loans,
		config:      cfg,
	}
}

// CreatePartner registers a member: person record first, then their savings
// account opened at the starting amount. The account's current saving equals
// the start amount until the first contribution is posted.
func (s *PersonService) CreatePartner(ctx context.Context, request *domain.CreatePartnerRequest) (*domain.Account, error) {
	if request.StartAmount.IsNegative() {
		return nil, apperrors.WrapValidation("start amount cannot be negative")
	}

	person := &domain.Person{
		DNI:      request.DNI,
		Names:    request.Names,
		Surnames: request.Surnames,
		BirthDay: request.BirthDay,
		Address:  request.Address,
		Phone:    request.Phone,
	}

	if err := s.PartnerRepo.CreatePerson(ctx, person); err != nil {
		return nil, apperrors.WrapExecution(err)
	}

	account := &domain.Account{
		DNI:           request.DNI,
		CreationDate:  time.Now(),
		StartAmount:   request.StartAmount,
		CurrentSaving: request.StartAmount,
		IsDisabled:    false,
	}

	if err := s.PartnerRepo.CreateAccount(ctx, account); err != nil {
		return nil, apperrors.WrapExecution(err)
	}

	return account, nil
}

// UpdatePerson rewrites a member's identity fields.
func (s *PersonService) UpdatePerson(ctx context.Context, dni string, request *domain.UpdatePersonRequest) error {
	person := &domain.Person{
		Names:    request.Names,
		Surnames: request.Surnames,
		BirthDay: request.BirthDay,
		Address:  request.Address,
		Phone:    request.Phone,
	}

	if err := s.PartnerRepo.UpdatePerson(ctx, dni, person); err != nil {
		return apperrors.WrapExecution(err)
	}

	return nil
}

// DisableAccount soft-disables an account. History stays intact.
func (s *PersonService) DisableAccount(ctx context.Context, number int64) error {
	if _, err := s.GetAccount(ctx, number); err != nil {
		return err
	}

	if err := s.PartnerRepo.DisableAccount(ctx, number); err != nil {
		return apperrors.WrapExecution(err)
	}

	return nil
}

// GetAccount retrieves one account by number.
func (s *PersonService) GetAccount(ctx context.Context, number int64) (*domain.Account, error) {
	account, err := s.PartnerRepo.GetAccount(ctx, number)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.WrapNotFound("account", number)
	}
	if err != nil {
		return nil, apperrors.WrapExecution(err)
	}

	return account, nil
}

// ListPartners returns the roster with derived saving and loan badges.
// Saving status goes late the moment any monthly due is owed; the loan badge
// rolls up all of the member's loans.
func (s *PersonService) ListPartners(ctx context.Context, activeOnly bool, limit, offset int) ([]domain.Partner, error) {
	partners, err := s.PartnerRepo.ListPartners(ctx, activeOnly, limit, offset)
	if err != nil {
		return nil, apperrors.WrapExecution(err)
	}

	policy := s.config.ChargePolicy()
	now := time.Now()

	for i := range partners {
		account := &domain.Account{
			Number:        partners[i].Number,
			CreationDate:  partners[i].CreationDate,
			StartAmount:   partners[i].StartAmount,
			CurrentSaving: partners[i].CurrentSaving,
		}

		partners[i].SavingStatus = domain.SavingStatusOK
		if ContributionsToPay(account, policy, now) > 0 {
			partners[i].SavingStatus = domain.SavingStatusLate
		}

		loans, err := s.loans.Search(ctx, domain.LoanFilter{
			Account: partners[i].Number,
			Limit:   100,
		})
		if err != nil {
			return nil, err
		}

		partners[i].LoanCount = len(loans)
		partners[i].LoanStatus = RollupLoanStatus(loans)
	}

	return partners, nil
}

// CountPartners returns the roster size.
func (s *PersonService) CountPartners(ctx context.Context) (int64, error) {
	count, err := s.PartnerRepo.CountPartners(ctx)
	if err != nil {
		return 0, apperrors.WrapExecution(err)
	}

	return count, nil
}
