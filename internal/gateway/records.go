package gateway

import (
	"time"

	"github.com/shopspring/decimal"
)

const DefaultCurrency = "HNL"

// Account is the projection of a backend account row.
type Account struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Number    string          `json:"number"`
	Balance   decimal.Decimal `json:"balance"`
	Currency  string          `json:"currency"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Transaction is an account movement. Debits carry a negative Amount.
type Transaction struct {
	ID          string          `json:"id"`
	AccountID   string          `json:"accountId"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

type Card struct {
	ID        string              `json:"id"`
	Type      string              `json:"type"`
	Brand     string              `json:"brand,omitempty"`
	Last4     string              `json:"last4"`
	Limit     decimal.NullDecimal `json:"limit"`
	Balance   decimal.NullDecimal `json:"balance"`
	CreatedAt time.Time           `json:"createdAt"`
}

type Loan struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Balance     decimal.Decimal     `json:"balance"`
	Installment decimal.NullDecimal `json:"installment"`
	DueDate     *time.Time          `json:"dueDate,omitempty"`
	AccountID   string              `json:"accountId,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
}

type Payment struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Status      string          `json:"status"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type Notification struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Body  string    `json:"body"`
	Type  string    `json:"type,omitempty"`
	Read  bool      `json:"read"`
	Date  time.Time `json:"date"`
}

// Receipt is the first row returned by a backend procedure, or nil when the
// procedure returned none. Its columns are owned by the backend.
type Receipt map[string]interface{}

// LoanRequestResult carries the receipt plus the monthly installment when the
// backend reported one.
type LoanRequestResult struct {
	Receipt     Receipt             `json:"receipt"`
	Installment decimal.NullDecimal `json:"installment"`
}
