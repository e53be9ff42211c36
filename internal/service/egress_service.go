package service

import (
	"context"

	"github.com/cajacoop/caja-engine/internal/domain"
	"github.com/cajacoop/caja-engine/internal/repository"
	apperrors "github.com/cajacoop/caja-engine/pkg/errors"
)

type EgressService struct {
	EgressRepo repository.EgressRepository
}

func NewEgressService(egressRepo repository.EgressRepository) *EgressService {
	return &EgressService{EgressRepo: egressRepo}
}

// PostEgress persists a withdrawal: header, detail lines, then the bill
// detail. Same sequential fail-fast ordering as entry posting.
func (s *EgressService) PostEgress(ctx context.Context, newEgress *domain.NewEgress) error {
	if err := validateNewEgress(newEgress); err != nil {
		return err
	}

	if err := s.EgressRepo.CreateHeader(ctx, &newEgress.Header); err != nil {
		return apperrors.WrapExecution(err)
	}

	for _, detail := range newEgress.Details {
		detail.EgressNumber = newEgress.Header.Number
		if err := s.EgressRepo.CreateDetail(ctx, &detail); err != nil {
			return apperrors.WrapExecution(err)
		}
	}

	billDetail := newEgress.BillDetail
	billDetail.EgressNumber = newEgress.Header.Number
	if billDetail.Date.IsZero() {
		billDetail.Date = newEgress.Header.Date
	}
	if billDetail.PeriodID == 0 {
		billDetail.PeriodID = newEgress.Header.PeriodID
	}

	if err := s.EgressRepo.CreateBillDetail(ctx, &billDetail); err != nil {
		return apperrors.WrapExecution(err)
	}

	return nil
}

// Search lists egresses with their derived payment classification.
func (s *EgressService) Search(ctx context.Context, filter domain.EgressFilter) ([]domain.EgressHeader, error) {
	egresses, err := s.EgressRepo.Search(ctx, filter)
	if err != nil {
		return nil, apperrors.WrapExecution(err)
	}

	for i := range egresses {
		egresses[i].BillType = domain.ClassifySplit(egresses[i])
	}

	return egresses, nil
}

// Count aggregates egress volume under the given filters.
func (s *EgressService) Count(ctx context.Context, filter domain.EgressFilter) (*domain.EgressCounter, error) {
	counter, err := s.EgressRepo.Count(ctx, filter)
	if err != nil {
		return nil, apperrors.WrapExecution(err)
	}

	return counter, nil
}

func validateNewEgress(newEgress *domain.NewEgress) error {
	if newEgress.Header.Number == 0 {
		return apperrors.WrapValidation("egress number is required")
	}
	if len(newEgress.Details) == 0 {
		return apperrors.WrapValidation("egress must have at least one detail line")
	}

	for _, detail := range newEgress.Details {
		if detail.Value.IsNegative() {
			return apperrors.WrapValidation("egress detail values cannot be negative")
		}
	}

	if newEgress.BillDetail.Cash.IsNegative() || newEgress.BillDetail.Transfer.IsNegative() {
		return apperrors.WrapValidation("bill detail amounts cannot be negative")
	}

	return nil
}
