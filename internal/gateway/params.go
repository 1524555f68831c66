package gateway

import (
	"strings"

	"github.com/shopspring/decimal"
)

type AccountType string

const (
	AccountTypeSavings  AccountType = "ahorros"
	AccountTypeChecking AccountType = "corriente"
)

const DefaultLoanName = "Préstamo personal"

type CreateAccountParams struct {
	UserID   string
	Name     string
	Type     AccountType
	Currency string
}

// NewAccount is what a Backend inserts; Number is generated client-side.
type NewAccount struct {
	UserID   string
	Number   string
	Name     string
	Type     AccountType
	Currency string
}

type TransferParams struct {
	UserID               string
	SourceAccountID      string
	DestinationAccountID string
	Amount               decimal.Decimal
	Concept              string
}

type LoanRequestParams struct {
	UserID           string
	DepositAccountID string
	Name             string
	Principal        decimal.Decimal
	InterestRate     decimal.Decimal
	TermMonths       int
}

type LoanPaymentParams struct {
	UserID          string
	LoanID          string
	SourceAccountID string
	Principal       decimal.Decimal
	Interest        decimal.Decimal
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func (p CreateAccountParams) Validate() error {
	if blank(p.UserID) {
		return ErrMissingUser
	}
	if blank(p.Name) {
		return ErrMissingAccountName
	}
	if p.Type != AccountTypeSavings && p.Type != AccountTypeChecking {
		return ErrInvalidAccountType
	}
	return nil
}

func (p TransferParams) Validate() error {
	if blank(p.UserID) {
		return ErrMissingUser
	}
	if blank(p.SourceAccountID) {
		return ErrMissingSource
	}
	if blank(p.DestinationAccountID) {
		return ErrMissingDestination
	}
	if p.SourceAccountID == p.DestinationAccountID {
		return ErrSameAccount
	}
	if !p.Amount.IsPositive() {
		return ErrNonPositiveAmount
	}
	return nil
}

func (p LoanRequestParams) Validate() error {
	if blank(p.UserID) {
		return ErrMissingUser
	}
	if blank(p.DepositAccountID) {
		return ErrMissingAccount
	}
	if !p.Principal.IsPositive() {
		return ErrNonPositiveAmount
	}
	if p.InterestRate.IsNegative() {
		return ErrNegativeAmount
	}
	if p.TermMonths <= 0 {
		return ErrNonPositiveTerm
	}
	return nil
}

func (p LoanPaymentParams) Validate() error {
	if blank(p.UserID) {
		return ErrMissingUser
	}
	if blank(p.LoanID) {
		return ErrMissingLoan
	}
	if blank(p.SourceAccountID) {
		return ErrMissingSource
	}
	if !p.Principal.IsPositive() {
		return ErrNonPositiveAmount
	}
	if p.Interest.IsNegative() {
		return ErrNegativeAmount
	}
	return nil
}

// ParseAmount reads a user-entered amount, accepting a comma as the decimal
// separator. Anything that is not a finite number fails.
func ParseAmount(s string) (decimal.Decimal, error) {
	normalized := strings.Replace(strings.TrimSpace(s), ",", ".", 1)
	if normalized == "" {
		return decimal.Zero, ErrNonPositiveAmount
	}
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, ErrNonPositiveAmount
	}
	return d, nil
}
