package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cajacoop/caja-engine/internal/domain"
	apperrors "github.com/cajacoop/caja-engine/pkg/errors"
	"github.com/cajacoop/caja-engine/tests/mocks"
)

func personFixture(t *testing.T) (*PersonService, *mocks.MockPartnerRepository, *mocks.MockLoanRepository) {
	t.Helper()
	partnerRepo := new(mocks.MockPartnerRepository)
	loanRepo := new(mocks.MockLoanRepository)
	cfg := testConfig()
	return NewPersonService(partnerRepo, NewLoanService(loanRepo, nil, cfg), cfg), partnerRepo, loanRepo
}

func TestCreatePartner(t *testing.T) {
	t.Run("account opens at the start amount", func(t *testing.T) {
		svc, partnerRepo, _ := personFixture(t)

		partnerRepo.On("CreatePerson", mock.Anything, mock.MatchedBy(func(person *domain.Person) bool {
			return person.DNI == "1712345678"
		})).Return(nil)
		partnerRepo.On("CreateAccount", mock.Anything, mock.MatchedBy(func(account *domain.Account) bool {
			return account.DNI == "1712345678" &&
				account.CurrentSaving.Equal(account.StartAmount) &&
				!account.IsDisabled
		})).Return(nil)

		account, err := svc.CreatePartner(context.Background(), &domain.CreatePartnerRequest{
			DNI:         "1712345678",
			Names:       "Ana",
			Surnames:    "Lopez",
			StartAmount: decimal.NewFromInt(100),
		})

		require.NoError(t, err)
		assert.True(t, account.CurrentSaving.Equal(decimal.NewFromInt(100)))
		partnerRepo.AssertExpectations(t)
	})

	t.Run("negative start amount is rejected", func(t *testing.T) {
		svc, partnerRepo, _ := personFixture(t)

		_, err := svc.CreatePartner(context.Background(), &domain.CreatePartnerRequest{
			DNI:         "1712345678",
			Names:       "Ana",
			Surnames:    "Lopez",
			StartAmount: decimal.NewFromInt(-1),
		})

		assert.ErrorIs(t, err, apperrors.ErrValidation)
		partnerRepo.AssertNotCalled(t, "CreatePerson")
	})
}

func TestListPartnersDerivesStatuses(t *testing.T) {
	svc, partnerRepo, loanRepo := personFixture(t)

	now := time.Now()
	partners := []domain.Partner{
		{
			// owes nothing: opened last month, one due paid
			Number:        1,
			CreationDate:  now.AddDate(0, -1, 0),
			StartAmount:   decimal.NewFromInt(100),
			CurrentSaving: decimal.NewFromInt(120),
		},
		{
			// two months behind
			Number:        2,
			CreationDate:  now.AddDate(0, -2, 0),
			StartAmount:   decimal.NewFromInt(100),
			CurrentSaving: decimal.NewFromInt(100),
		},
	}

	partnerRepo.On("ListPartners", mock.Anything, true, 50, 0).Return(partners, nil)
	loanRepo.On("Search", mock.Anything, domain.LoanFilter{Account: 1, Limit: 100}).
		Return([]*domain.Loan{}, nil)
	loanRepo.On("Search", mock.Anything, domain.LoanFilter{Account: 2, Limit: 100}).
		Return([]*domain.Loan{{Number: 7, IsEnd: true}}, nil)

	result, err := svc.ListPartners(context.Background(), true, 50, 0)

	require.NoError(t, err)
	require.Len(t, result, 2)

	assert.Equal(t, domain.SavingStatusOK, result[0].SavingStatus)
	assert.Equal(t, domain.PartnerLoanStatusFree, result[0].LoanStatus)
	assert.Equal(t, 0, result[0].LoanCount)

	assert.Equal(t, domain.SavingStatusLate, result[1].SavingStatus)
	assert.Equal(t, domain.PartnerLoanStatusFree, result[1].LoanStatus)
	assert.Equal(t, 1, result[1].LoanCount)
}
