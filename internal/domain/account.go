package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	SavingStatusOK   = "ok"
	SavingStatusLate = "late"
)

// Roll-up of a member's loan situation across all their loans.
const (
	PartnerLoanStatusFree = "free"
	PartnerLoanStatusDebt = "debt"
	PartnerLoanStatusLate = "late"
)

// Person is the identity record of a cooperative member.
type Person struct {
	DNI      string    `json:"dni" db:"dni"`
	Names    string    `json:"names" db:"names"`
	Surnames string    `json:"surnames" db:"surnames"`
	BirthDay time.Time `json:"birth_day" db:"birth_day"`
	Address  string    `json:"address" db:"address"`
	Phone    string    `json:"phone" db:"phone"`
}

// Account is a member's savings relationship. The current saving balance
// moves only through posted entries; rows are disabled, never deleted.
type Account struct {
	Number        int64           `json:"number" db:"number"`
	DNI           string          `json:"dni" db:"dni"`
	CreationDate  time.Time       `json:"creation_date" db:"creation_date"`
	StartAmount   decimal.Decimal `json:"start_amount" db:"start_amount"`
	CurrentSaving decimal.Decimal `json:"current_saving" db:"current_saving"`
	IsDisabled    bool            `json:"is_disabled" db:"is_disabled"`
}

// Partner is the joined person+account row used by roster listings,
// carrying derived status badges.
type Partner struct {
	Number        int64           `json:"number" db:"number"`
	DNI           string          `json:"dni" db:"dni"`
	Names         string          `json:"names" db:"names"`
	Surnames      string          `json:"surnames" db:"surnames"`
	BirthDay      time.Time       `json:"birth_day" db:"birth_day"`
	Address       string          `json:"address" db:"address"`
	Phone         string          `json:"phone" db:"phone"`
	CreationDate  time.Time       `json:"creation_date" db:"creation_date"`
	StartAmount   decimal.Decimal `json:"start_amount" db:"start_amount"`
	CurrentSaving decimal.Decimal `json:"current_saving" db:"current_saving"`
	IsDisabled    bool            `json:"is_disabled" db:"is_disabled"`

	SavingStatus string `json:"saving_status,omitempty" db:"-"`
	LoanStatus   string `json:"loan_status,omitempty" db:"-"`
	LoanCount    int    `json:"loan_count" db:"-"`
}

// DTOs for requests and responses

type CreatePartnerRequest struct {
	DNI         string          `json:"dni" validate:"required"`
	Names       string          `json:"names" validate:"required"`
	Surnames    string          `json:"surnames" validate:"required"`
	BirthDay    time.Time       `json:"birth_day"`
	Address     string          `json:"address"`
	Phone       string          `json:"phone"`
	StartAmount decimal.Decimal `json:"start_amount"`
}

type UpdatePersonRequest struct {
	Names    string    `json:"names" validate:"required"`
	Surnames string    `json:"surnames" validate:"required"`
	BirthDay time.Time `json:"birth_day"`
	Address  string    `json:"address"`
	Phone    string    `json:"phone"`
}
