package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cajacoop/caja-engine/internal/domain"
	"github.com/cajacoop/caja-engine/pkg/utils"
)

// ContributionsToPay returns how many monthly dues an account still owes as
// of now: the months elapsed since the account opened, minus the dues its
// balance growth shows were already paid.
func ContributionsToPay(account *domain.Account, policy domain.ChargePolicy, now time.Time) int {
	expected := decimal.NewFromInt(int64(utils.MonthsBetween(account.CreationDate, now)))
	paid := account.CurrentSaving.
		Sub(account.StartAmount).
		Div(policy.ContributionAmount).
		Round(0)

	return int(expected.Sub(paid).Round(0).IntPart())
}

// CalculateContributionCharges builds the charge lines a member owes on
// their savings account as of now. Pure over the supplied snapshot; returns
// nothing when the account is up to date.
//
// The very first contribution carries the one-time administration fee and a
// strategic fund seeded by the total elapsed months; later contributions
// accrue the strategic fund per due owed, plus a penalty once more than one
// due is outstanding or a single due survives past the first Saturday of
// the month.
func CalculateContributionCharges(account *domain.Account, policy domain.ChargePolicy, now time.Time) []domain.ChargeLine {
	duesOwed := ContributionsToPay(account, policy, now)
	if duesOwed < 1 {
		return nil
	}

	dues := decimal.NewFromInt(int64(duesOwed))
	lines := []domain.ChargeLine{{
		TypeID: domain.ChargeTypeContribution,
		Value:  utils.RoundMoney(dues.Mul(policy.ContributionAmount)),
	}}

	if firstContribution(account) {
		elapsed := decimal.NewFromInt(int64(utils.MonthsBetween(account.CreationDate, now)))

		lines = append(lines,
			domain.ChargeLine{
				TypeID: domain.ChargeTypeAdministrationFund,
				Value:  utils.RoundMoney(policy.AdministrationFee),
			},
			domain.ChargeLine{
				TypeID: domain.ChargeTypeStrategicFund,
				Value:  utils.RoundMoney(policy.StrategicFundBase.Add(elapsed.Mul(policy.StrategicFundRate))),
			},
		)

		return dropEmptyLines(lines)
	}

	lines = append(lines, domain.ChargeLine{
		TypeID: domain.ChargeTypeStrategicFund,
		Value:  utils.RoundMoney(dues.Mul(policy.StrategicFundRate)),
	})

	if duesOwed >= 2 {
		lines = append(lines, domain.ChargeLine{
			TypeID: domain.ChargeTypeContributionPenalty,
			Value:  utils.RoundMoney(dues.Sub(decimal.NewFromInt(1)).Mul(policy.ContributionPenalty)),
		})
	} else if utils.PastFirstSaturday(now) {
		lines = append(lines, domain.ChargeLine{
			TypeID: domain.ChargeTypeContributionPenalty,
			Value:  utils.RoundMoney(dues.Mul(policy.ContributionPenalty)),
		})
	}

	return dropEmptyLines(lines)
}

// CalculateLoanCharges evaluates the currently-due fee, interest and
// late-penalty totals against a loan's amortization schedule as of now.
//
// A row whose due month has passed and whose due day is behind accrues
// penalty on top of fee and interest; a row inside its due month but not
// yet past its day is within grace and accrues fee and interest only.
// Paid, disabled and future rows contribute nothing.
func CalculateLoanCharges(loan *domain.Loan, schedule []*domain.LoanScheduleRow, policy domain.ChargePolicy, now time.Time) []domain.ChargeLine {
	duePrincipal := decimal.Zero
	dueInterest := decimal.Zero
	duePenalty := decimal.Zero

	for _, row := range schedule {
		if row.IsPaid || row.IsDisabled {
			continue
		}

		switch {
		case utils.IsSameOrBeforeMonth(row.PaymentDate, now) && utils.AfterDay(now, row.PaymentDate):
			duePenalty = duePenalty.Add(row.FeeValue.Mul(policy.LoanPenaltyRate))
			duePrincipal = duePrincipal.Add(row.FeeValue)
			dueInterest = dueInterest.Add(row.Interest)
		case utils.SameMonth(row.PaymentDate, now):
			duePrincipal = duePrincipal.Add(row.FeeValue)
			dueInterest = dueInterest.Add(row.Interest)
		}
	}

	if duePrincipal.IsZero() && dueInterest.IsZero() && duePenalty.IsZero() {
		return nil
	}

	lines := []domain.ChargeLine{{
		TypeID: domain.ChargeTypeLoanContribution,
		Value:  utils.RoundMoney(duePrincipal),
		Loan:   &domain.LoanDefinition{Loan: loan, Schedule: schedule},
	}}

	if dueInterest.IsPositive() {
		lines = append(lines, domain.ChargeLine{
			TypeID: domain.ChargeTypeLoanInterest,
			Value:  utils.RoundMoney(dueInterest),
		})
	}
	if duePenalty.IsPositive() {
		lines = append(lines, domain.ChargeLine{
			TypeID: domain.ChargeTypeLoanPenalty,
			Value:  utils.RoundMoney(duePenalty),
		})
	}

	return lines
}

// firstContribution reports whether the account has never received a
// contribution: its balance still equals the opening amount.
func firstContribution(account *domain.Account) bool {
	return account.CurrentSaving.Equal(account.StartAmount)
}

func dropEmptyLines(lines []domain.ChargeLine) []domain.ChargeLine {
	kept := lines[:0]
	for _, line := range lines {
		if line.Value.IsPositive() {
			kept = append(kept, line)
		}
	}

	if len(kept) == 0 {
		return nil
	}

	return kept
}
