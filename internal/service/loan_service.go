package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/cajacoop/caja-engine/internal/config"
	"github.com/cajacoop/caja-engine/internal/domain"
	"github.com/cajacoop/caja-engine/internal/repository"
	apperrors "github.com/cajacoop/caja-engine/pkg/errors"
	"github.com/cajacoop/caja-engine/pkg/utils"
)

const loanStatusSummaryKey = "caja:loan_status_summary"

type LoanService struct {
	LoanRepo repository.LoanRepository
	redis    *redis.Client
	config   *config.Config
}

func NewLoanService(loanRepo repository.LoanRepository, redisClient *redis.Client, cfg *config.Config) *LoanService {
	return &LoanService{
		LoanRepo: loanRepo,
		redis:    redisClient,
		config:   cfg,
	}
}

// CreateLoan originates a loan: head first, then the full schedule. The two
// inserts are sequential and fail-fast; a schedule failure leaves the head
// behind for operator cleanup.
func (s *LoanService) CreateLoan(ctx context.Context, request *domain.CreateLoanRequest) (*domain.LoanDefinition, error) {
	if err := validateScheduleRows(request.Schedule); err != nil {
		return nil, err
	}

	loan := &domain.Loan{
		ID:            uuid.New(),
		Number:        request.Number,
		AccountNumber: request.AccountNumber,
		Date:          request.Date,
		Value:         request.Value,
		Term:          request.Term,
		Rate:          request.Rate,
		Debt:          request.Value,
		IsEnd:         false,
	}
	if loan.Date.IsZero() {
		loan.Date = time.Now()
	}

	schedule := make([]*domain.LoanScheduleRow, 0, len(request.Schedule))
	for _, row := range request.Schedule {
		prepared := *row
		prepared.ID = uuid.New()
		prepared.LoanNumber = loan.Number
		prepared.IsPaid = false
		prepared.IsDisabled = false
		schedule = append(schedule, &prepared)
	}

	if err := s.LoanRepo.CreateHead(ctx, loan); err != nil {
		return nil, apperrors.WrapExecution(err)
	}

	if err := s.LoanRepo.CreateSchedule(ctx, schedule); err != nil {
		return nil, apperrors.WrapExecution(err)
	}

	return &domain.LoanDefinition{Loan: loan, Schedule: schedule}, nil
}

// MarkRowsPaid settles the referenced schedule rows, recording the entry
// that paid each one. A missing row surfaces as a not-found error and
// aborts the remaining updates.
func (s *LoanService) MarkRowsPaid(ctx context.Context, rows []domain.ScheduleRowPayment) error {
	for _, row := range rows {
		if row.FeeValue.IsNegative() {
			return apperrors.WrapValidation("schedule row fee value cannot be negative")
		}

		err := s.LoanRepo.MarkRowPaid(ctx, row.RowID, row.EntryNumber)
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.WrapNotFound("loan schedule row", row.RowID)
		}
		if err != nil {
			return apperrors.WrapExecution(err)
		}
	}

	return nil
}

// RecomputeDebt applies a payment to the loan head: debt drops by the total
// just paid and the terminal flag follows the caller's schedule check.
func (s *LoanService) RecomputeDebt(ctx context.Context, payment *domain.LoanPaymentData) (decimal.Decimal, error) {
	newDebt := utils.RoundMoney(payment.CurrentDebt.Sub(payment.TotalPaid()))
	if newDebt.IsNegative() {
		return decimal.Zero, apperrors.WrapInconsistentState("loan debt cannot go negative")
	}

	err := s.LoanRepo.UpdateHead(ctx, payment.LoanNumber, newDebt, payment.IsFinished)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, apperrors.WrapNotFound("loan", payment.LoanNumber)
	}
	if err != nil {
		return decimal.Zero, apperrors.WrapExecution(err)
	}

	return newDebt, nil
}

// Restructure irreversibly overwrites a loan's schedule during a
// renegotiation: term and debt move on the head, every schedule row is
// rewritten (rows zeroed by the renegotiation are disabled), and an audit
// payment record is appended.
func (s *LoanService) Restructure(ctx context.Context, request *domain.RestructureLoanRequest) error {
	if err := validateScheduleRows(request.Schedule); err != nil {
		return err
	}

	err := s.LoanRepo.UpdateHeadTerm(ctx, request.LoanNumber, request.Term, request.Debt)
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.WrapNotFound("loan", request.LoanNumber)
	}
	if err != nil {
		return apperrors.WrapExecution(err)
	}

	for _, row := range request.Schedule {
		rewritten := *row
		rewritten.IsDisabled = rewritten.ZeroedOut()

		err := s.LoanRepo.RewriteScheduleRow(ctx, &rewritten)
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.WrapNotFound("loan schedule row", row.ID)
		}
		if err != nil {
			return apperrors.WrapExecution(err)
		}
	}

	payment := request.Payment
	payment.ID = uuid.New()
	payment.LoanNumber = request.LoanNumber
	if payment.Date.IsZero() {
		payment.Date = time.Now()
	}

	if err := s.LoanRepo.CreatePayment(ctx, &payment); err != nil {
		return apperrors.WrapExecution(err)
	}

	return nil
}

// GetSchedule returns a loan's full amortization schedule.
func (s *LoanService) GetSchedule(ctx context.Context, loanNumber int64) ([]*domain.LoanScheduleRow, error) {
	rows, err := s.LoanRepo.GetSchedule(ctx, loanNumber)
	if err != nil {
		return nil, apperrors.WrapExecution(err)
	}

	return rows, nil
}

// Search lists loans with their derived status badges.
func (s *LoanService) Search(ctx context.Context, filter domain.LoanFilter) ([]*domain.Loan, error) {
	loans, err := s.LoanRepo.Search(ctx, filter)
	if err != nil {
		return nil, apperrors.WrapExecution(err)
	}

	now := time.Now()
	for _, loan := range loans {
		if loan.IsEnd {
			loan.Status = domain.LoanStatusPaid
			continue
		}

		schedule, err := s.LoanRepo.GetSchedule(ctx, loan.Number)
		if err != nil {
			return nil, apperrors.WrapExecution(err)
		}

		loan.Status = DeriveLoanStatus(loan, schedule, now)
	}

	return loans, nil
}

// Count returns the total number of loans.
func (s *LoanService) Count(ctx context.Context) (int64, error) {
	count, err := s.LoanRepo.Count(ctx)
	if err != nil {
		return 0, apperrors.WrapExecution(err)
	}

	return count, nil
}

// RefreshStatusSummary derives the status of every open loan and caches the
// per-status counts. Run daily by the scheduler.
func (s *LoanService) RefreshStatusSummary(ctx context.Context) (map[string]int, error) {
	loans, err := s.LoanRepo.ListOpen(ctx)
	if err != nil {
		return nil, apperrors.WrapExecution(err)
	}

	now := time.Now()
	summary := map[string]int{
		domain.LoanStatusCurrent: 0,
		domain.LoanStatusLate:    0,
	}

	for _, loan := range loans {
		schedule, err := s.LoanRepo.GetSchedule(ctx, loan.Number)
		if err != nil {
			return nil, apperrors.WrapExecution(err)
		}

		summary[DeriveLoanStatus(loan, schedule, now)]++
	}

	if s.redis != nil {
		payload, err := json.Marshal(summary)
		if err == nil {
			s.redis.Set(ctx, loanStatusSummaryKey, payload, 48*time.Hour)
		}
	}

	return summary, nil
}

// DeriveLoanStatus maps a loan and its schedule to a status badge. Statuses
// are derived, never stored; only the terminal is_end flag persists.
func DeriveLoanStatus(loan *domain.Loan, schedule []*domain.LoanScheduleRow, now time.Time) string {
	if loan.IsEnd {
		return domain.LoanStatusPaid
	}

	if HasOverdueRows(schedule, now) {
		return domain.LoanStatusLate
	}

	return domain.LoanStatusCurrent
}

// HasOverdueRows reports whether any unpaid schedule row is past its due date.
func HasOverdueRows(schedule []*domain.LoanScheduleRow, now time.Time) bool {
	for _, row := range schedule {
		if !row.IsPaid && !row.IsDisabled && utils.AfterDay(now, row.PaymentDate) {
			return true
		}
	}

	return false
}

// RollupLoanStatus collapses a member's loans into a single badge: any late
// loan marks the member late, any current loan marks them in debt,
// otherwise they are free.
func RollupLoanStatus(loans []*domain.Loan) string {
	for _, loan := range loans {
		if loan.Status == domain.LoanStatusLate {
			return domain.PartnerLoanStatusLate
		}
	}
	for _, loan := range loans {
		if loan.Status == domain.LoanStatusCurrent {
			return domain.PartnerLoanStatusDebt
		}
	}

	return domain.PartnerLoanStatusFree
}

func validateScheduleRows(rows []*domain.LoanScheduleRow) error {
	if len(rows) == 0 {
		return apperrors.WrapValidation("loan schedule cannot be empty")
	}

	for _, row := range rows {
		if row.FeeValue.IsNegative() || row.Interest.IsNegative() || row.FeeTotal.IsNegative() {
			return apperrors.WrapValidation("loan schedule amounts cannot be negative")
		}
	}

	return nil
}
