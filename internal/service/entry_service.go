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
	"github.com/cajacoop/caja-engine/pkg/utils"
)

type EntryService struct {
	EntryRepo   repository.EntryRepository
	PartnerRepo repository.PartnerRepository
	LoanRepo    repository.LoanRepository
	loans       *LoanService
	config      *config.Config
}

func NewEntryService(
	entryRepo repository.EntryRepository,
	partnerRepo repository.PartnerRepository,
	loanRepo repository.LoanRepository,
	loans *LoanService,
	cfg *config.Config,
) *EntryService {
	return &EntryService{
		EntryRepo:   entryRepo,
		PartnerRepo: partnerRepo,
		LoanRepo:    loanRepo,
		loans:       loans,
		config:      cfg,
	}
}

// GetEntryCharges computes everything a member currently owes: contribution
// dues on the savings side plus fee/interest/penalty on any open loan.
func (s *EntryService) GetEntryCharges(ctx context.Context, accountNumber int64) ([]domain.ChargeLine, error) {
	account, err := s.PartnerRepo.GetAccount(ctx, accountNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.WrapNotFound("account", accountNumber)
	}
	if err != nil {
		return nil, apperrors.WrapExecution(err)
	}

	policy := s.config.ChargePolicy()
	now := time.Now()

	charges := CalculateContributionCharges(account, policy, now)

	loan, err := s.LoanRepo.GetOpenByAccount(ctx, accountNumber)
	if err != nil {
		return nil, apperrors.WrapExecution(err)
	}
	if loan == nil {
		return charges, nil
	}

	schedule, err := s.LoanRepo.GetSchedule(ctx, loan.Number)
	if err != nil {
		return nil, apperrors.WrapExecution(err)
	}
	if len(schedule) == 0 {
		return charges, nil
	}

	return append(charges, CalculateLoanCharges(loan, schedule, policy, now)...), nil
}

// PostEntry persists a deposit: header, then detail lines (contribution
// lines also move the account saving balance), then the bill detail, then
// the loan schedule settlement and debt recompute when loan charges were
// included. Writes are sequential and fail-fast with no rollback; a
// partial failure leaves earlier writes in place.
func (s *EntryService) PostEntry(ctx context.Context, newEntry *domain.NewEntry) error {
	if err := validateNewEntry(newEntry); err != nil {
		return err
	}

	if err := s.EntryRepo.CreateHeader(ctx, &newEntry.Header); err != nil {
		return apperrors.WrapExecution(err)
	}

	for _, detail := range newEntry.Details {
		detail.EntryNumber = newEntry.Header.Number

		if detail.TypeID == domain.ChargeTypeContribution {
			if err := s.applyContribution(ctx, newEntry.Header.AccountNumber, detail); err != nil {
				return err
			}
		}

		if err := s.EntryRepo.CreateDetail(ctx, &detail); err != nil {
			return apperrors.WrapExecution(err)
		}
	}

	billDetail := newEntry.BillDetail
	billDetail.EntryNumber = newEntry.Header.Number
	if err := s.EntryRepo.CreateBillDetail(ctx, &billDetail); err != nil {
		return apperrors.WrapExecution(err)
	}

	if newEntry.LoanPayment == nil {
		return nil
	}

	rows := make([]domain.ScheduleRowPayment, 0, len(newEntry.LoanPayment.RowsToPay))
	for _, row := range newEntry.LoanPayment.RowsToPay {
		if row.EntryNumber == 0 {
			row.EntryNumber = newEntry.Header.Number
		}
		rows = append(rows, row)
	}

	if err := s.loans.MarkRowsPaid(ctx, rows); err != nil {
		return err
	}

	_, err := s.loans.RecomputeDebt(ctx, newEntry.LoanPayment)
	return err
}

// Search lists entries with their derived payment classification.
func (s *EntryService) Search(ctx context.Context, filter domain.EntryFilter) ([]domain.EntryHeader, error) {
	entries, err := s.EntryRepo.Search(ctx, filter)
	if err != nil {
		return nil, apperrors.WrapExecution(err)
	}

	for i := range entries {
		entries[i].BillType = domain.ClassifySplit(entries[i])
	}

	return entries, nil
}

// Count aggregates entry volume under the given filters.
func (s *EntryService) Count(ctx context.Context, filter domain.EntryFilter) (*domain.EntryCounter, error) {
	counter, err := s.EntryRepo.Count(ctx, filter)
	if err != nil {
		return nil, apperrors.WrapExecution(err)
	}

	return counter, nil
}

// GetBreakdown returns the full detail view of one posted entry.
func (s *EntryService) GetBreakdown(ctx context.Context, entryNumber int64) (*domain.EntryBreakdown, error) {
	amountDetail, err := s.EntryRepo.GetAmountDetail(ctx, entryNumber)
	if err != nil {
		return nil, apperrors.WrapExecution(err)
	}

	billDetail, err := s.EntryRepo.GetBillDetail(ctx, entryNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.WrapNotFound("entry", entryNumber)
	}
	if err != nil {
		return nil, apperrors.WrapExecution(err)
	}

	return &domain.EntryBreakdown{
		BillDetail:   *billDetail,
		AmountDetail: amountDetail,
	}, nil
}

// ListTypes returns the charge type catalog.
func (s *EntryService) ListTypes(ctx context.Context) ([]domain.EntryType, error) {
	types, err := s.EntryRepo.ListTypes(ctx)
	if err != nil {
		return nil, apperrors.WrapExecution(err)
	}

	return types, nil
}

// ListContributions returns an account's contribution history.
func (s *EntryService) ListContributions(ctx context.Context, account int64) ([]domain.Contribution, error) {
	contributions, err := s.EntryRepo.ListContributions(ctx, account, []int{domain.ChargeTypeContribution})
	if err != nil {
		return nil, apperrors.WrapExecution(err)
	}

	return contributions, nil
}

// applyContribution moves the account saving balance by a contribution line.
func (s *EntryService) applyContribution(ctx context.Context, accountNumber int64, detail domain.EntryDetail) error {
	account, err := s.PartnerRepo.GetAccount(ctx, accountNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.WrapNotFound("account", accountNumber)
	}
	if err != nil {
		return apperrors.WrapExecution(err)
	}

	newSaving := utils.RoundMoney(account.CurrentSaving.Add(detail.Value))
	if err := s.PartnerRepo.UpdateAccountSaving(ctx, accountNumber, newSaving); err != nil {
		return apperrors.WrapExecution(err)
	}

	return nil
}

func validateNewEntry(newEntry *domain.NewEntry) error {
	if newEntry.Header.Number == 0 {
		return apperrors.WrapValidation("entry number is required")
	}
	if newEntry.Header.AccountNumber == 0 {
		return apperrors.WrapValidation("entry account number is required")
	}
	if len(newEntry.Details) == 0 {
		return apperrors.WrapValidation("entry must have at least one detail line")
	}

	for _, detail := range newEntry.Details {
		if detail.Value.IsNegative() {
			return apperrors.WrapValidation("entry detail values cannot be negative")
		}
	}

	if newEntry.BillDetail.Cash.IsNegative() || newEntry.BillDetail.Transfer.IsNegative() {
		return apperrors.WrapValidation("bill detail amounts cannot be negative")
	}

	if newEntry.LoanPayment != nil && len(newEntry.LoanPayment.RowsToPay) == 0 {
		return apperrors.WrapValidation("loan payment must reference at least one schedule row")
	}

	return nil
}
