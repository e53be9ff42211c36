package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cajacoop/caja-engine/internal/domain"
	"github.com/cajacoop/caja-engine/internal/repository"
	apperrors "github.com/cajacoop/caja-engine/pkg/errors"
	"github.com/cajacoop/caja-engine/pkg/utils"
)

const bucketDateLayout = "2006-01-02"

type BalanceService struct {
	PartnerRepo repository.PartnerRepository
	EntryRepo   repository.EntryRepository
	PeriodRepo  repository.PeriodRepository
}

func NewBalanceService(
	partnerRepo repository.PartnerRepository,
	entryRepo repository.EntryRepository,
	periodRepo repository.PeriodRepository,
) *BalanceService {
	return &BalanceService{
		PartnerRepo: partnerRepo,
		EntryRepo:   entryRepo,
		PeriodRepo:  periodRepo,
	}
}

// Periods lists every accounting period.
func (s *BalanceService) Periods(ctx context.Context) ([]*domain.Period, error) {
	periods, err := s.PeriodRepo.List(ctx)
	if err != nil {
		return nil, apperrors.WrapExecution(err)
	}

	return periods, nil
}

// OpenPeriod returns the single period still running. More than one open
// period means the books are broken and is reported as such.
func (s *BalanceService) OpenPeriod(ctx context.Context) (*domain.Period, error) {
	open, err := s.PeriodRepo.ListOpen(ctx)
	if err != nil {
		return nil, apperrors.WrapExecution(err)
	}

	if len(open) == 0 {
		return nil, apperrors.WrapNotFound("open period", "current")
	}
	if len(open) > 1 {
		return nil, apperrors.WrapInconsistentState("more than one open period")
	}

	return open[0], nil
}

// GetPartnerBalances rebuilds every member's month-by-month contribution
// series over a period and derives their participation in the pool.
// Pass periodID 0 to report over the currently open period.
//
// The reconstruction is read-only and repeatable: it folds the period's
// opening balances and contribution rows into month buckets, so running it
// twice over the same rows yields the same series.
func (s *BalanceService) GetPartnerBalances(ctx context.Context, periodID int64) ([]domain.PartnerBalance, error) {
	period, err := s.resolvePeriod(ctx, periodID)
	if err != nil {
		return nil, err
	}

	end := time.Now()
	if period.EndDate != nil {
		end = *period.EndDate
	}

	partners, err := s.PartnerRepo.ListPartners(ctx, true, 0, 0)
	if err != nil {
		return nil, apperrors.WrapExecution(err)
	}

	openings, err := s.PeriodRepo.ListAccountOpenings(ctx, period.ID)
	if err != nil {
		return nil, apperrors.WrapExecution(err)
	}

	contributions, err := s.EntryRepo.ListPeriodContributions(ctx, period)
	if err != nil {
		return nil, apperrors.WrapExecution(err)
	}

	openingByAccount := make(map[int64]decimal.Decimal, len(openings))
	for _, opening := range openings {
		openingByAccount[opening.AccountID] = opening.StartAmount
	}

	contributionsByAccount := make(map[int64][]domain.Contribution, len(partners))
	for _, contribution := range contributions {
		contributionsByAccount[contribution.AccountNumber] = append(
			contributionsByAccount[contribution.AccountNumber], contribution)
	}

	monthsBetween := utils.MonthsBetween(period.StartDate, end)

	balances := make([]domain.PartnerBalance, 0, len(partners))
	totalRate := decimal.Zero

	for _, partner := range partners {
		entries := buildMonthBuckets(
			end,
			monthsBetween,
			openingByAccount[partner.Number],
			contributionsByAccount[partner.Number],
		)

		rate := participationRate(entries)
		totalRate = totalRate.Add(rate)

		balances = append(balances, domain.PartnerBalance{
			Account:           partner.Number,
			Names:             partner.Names + " " + partner.Surnames,
			CurrentSaving:     periodSaving(entries),
			Entries:           entries,
			ParticipationRate: rate,
		})
	}

	for i := range balances {
		balances[i].ParticipationPercentage = participationPercentage(balances[i].ParticipationRate, totalRate)
	}

	return balances, nil
}

func (s *BalanceService) resolvePeriod(ctx context.Context, periodID int64) (*domain.Period, error) {
	if periodID == 0 {
		return s.OpenPeriod(ctx)
	}

	period, err := s.PeriodRepo.GetByID(ctx, periodID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.WrapNotFound("period", periodID)
	}
	if err != nil {
		return nil, apperrors.WrapExecution(err)
	}

	return period, nil
}

// buildMonthBuckets lays out one bucket per calendar month of the period,
// oldest first, and folds each contribution into the bucket of its month.
// The oldest bucket additionally carries the account's opening balance.
// MonthCount is the bucket's age counted back from the period end: the
// oldest bucket ages monthsBetween, the period-end month ages 0.
func buildMonthBuckets(end time.Time, monthsBetween int, opening decimal.Decimal, contributions []domain.Contribution) []domain.PartnerEntry {
	entries := make([]domain.PartnerEntry, 0, monthsBetween+1)

	for age := monthsBetween; age >= 0; age-- {
		bucketDate := utils.StartOfMonth(end.AddDate(0, -age, 0))

		value := decimal.Zero
		if age == monthsBetween {
			value = opening
		}

		for _, contribution := range contributions {
			if utils.SameMonth(contribution.Date, bucketDate) {
				value = value.Add(contribution.Value)
			}
		}

		entries = append(entries, domain.PartnerEntry{
			Value:      utils.RoundMoney(value),
			Date:       bucketDate.Format(bucketDateLayout),
			MonthCount: age,
		})
	}

	return entries
}

// participationRate weighs each bucket's value by its age in months, so
// money held longer earns a larger share. The period-end month ages 0 and
// contributes nothing.
func participationRate(entries []domain.PartnerEntry) decimal.Decimal {
	rate := decimal.Zero
	for _, entry := range entries {
		rate = rate.Add(entry.Value.Mul(decimal.NewFromInt(int64(entry.MonthCount))))
	}

	return utils.RoundMoney(rate)
}

// periodSaving is the member's balance over the period: opening plus every
// contribution, all of which are already folded into the buckets.
func periodSaving(entries []domain.PartnerEntry) decimal.Decimal {
	total := decimal.Zero
	for _, entry := range entries {
		total = total.Add(entry.Value)
	}

	return utils.RoundMoney(total)
}

// participationPercentage is the unscaled fraction of the pool, so the
// rates can be recovered exactly from the total.
func participationPercentage(rate, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}

	return rate.Div(total)
}
