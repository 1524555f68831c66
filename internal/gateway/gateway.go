// Package gateway is the typed facade over the remote data backend. Reads
// never fail from the caller's point of view; writes are validated locally
// and surface backend errors unchanged.
package gateway

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type Gateway struct {
	backend Backend
	logger  *logrus.Logger
	now     func() time.Time
	randInt func(n int) int
}

func New(backend Backend, logger *logrus.Logger) *Gateway {
	return &Gateway{
		backend: backend,
		logger:  logger,
		now:     time.Now,
		randInt: rand.IntN,
	}
}

func (g *Gateway) BackendName() string {
	return g.backend.Name()
}

func (g *Gateway) FetchAccounts(ctx context.Context, userID string) []Account {
	if blank(userID) {
		return []Account{}
	}
	rows, err := g.backend.ListAccounts(ctx, userID)
	if err != nil {
		g.readFailed("FetchAccounts", userID, err)
		return []Account{}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].CreatedAt.After(rows[j].CreatedAt) })
	return nonNil(rows)
}

func (g *Gateway) FetchAccountMovements(ctx context.Context, accountID string) []Transaction {
	if blank(accountID) {
		return []Transaction{}
	}
	rows, err := g.backend.ListMovements(ctx, accountID)
	if err != nil {
		g.readFailed("FetchAccountMovements", accountID, err)
		return []Transaction{}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Date.After(rows[j].Date) })
	return nonNil(rows)
}

func (g *Gateway) FetchCards(ctx context.Context, userID string) []Card {
	if blank(userID) {
		return []Card{}
	}
	rows, err := g.backend.ListCards(ctx, userID)
	if err != nil {
		g.readFailed("FetchCards", userID, err)
		return []Card{}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].CreatedAt.After(rows[j].CreatedAt) })
	return nonNil(rows)
}

func (g *Gateway) FetchLoans(ctx context.Context, userID string) []Loan {
	if blank(userID) {
		return []Loan{}
	}
	rows, err := g.backend.ListLoans(ctx, userID)
	if err != nil {
		g.readFailed("FetchLoans", userID, err)
		return []Loan{}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].CreatedAt.After(rows[j].CreatedAt) })
	return nonNil(rows)
}

func (g *Gateway) FetchPayments(ctx context.Context, userID string) []Payment {
	if blank(userID) {
		return []Payment{}
	}
	rows, err := g.backend.ListPayments(ctx, userID)
	if err != nil {
		g.readFailed("FetchPayments", userID, err)
		return []Payment{}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].CreatedAt.After(rows[j].CreatedAt) })
	return nonNil(rows)
}

func (g *Gateway) FetchNotifications(ctx context.Context, userID string) []Notification {
	if blank(userID) {
		return []Notification{}
	}
	rows, err := g.backend.ListNotifications(ctx, userID)
	if err != nil {
		g.readFailed("FetchNotifications", userID, err)
		return []Notification{}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Date.After(rows[j].Date) })
	return nonNil(rows)
}

// CreateAccount inserts an active, zero-balance account with a generated
// account number.
func (g *Gateway) CreateAccount(ctx context.Context, params CreateAccountParams) (Account, error) {
	const op = "CreateAccount"
	if err := params.Validate(); err != nil {
		return Account{}, validationError(op, err)
	}

	currency := params.Currency
	if blank(currency) {
		currency = DefaultCurrency
	}
	account, err := g.backend.InsertAccount(ctx, NewAccount{
		UserID:   params.UserID,
		Number:   g.accountNumber(),
		Name:     strings.TrimSpace(params.Name),
		Type:     params.Type,
		Currency: currency,
	})
	if err != nil {
		return Account{}, g.writeFailed(op, err)
	}
	return account, nil
}

func (g *Gateway) MakeTransfer(ctx context.Context, params TransferParams) (Receipt, error) {
	const op = "MakeTransfer"
	if err := params.Validate(); err != nil {
		return nil, validationError(op, err)
	}
	receipt, err := g.backend.Transfer(ctx, params)
	if err != nil {
		return nil, g.writeFailed(op, err)
	}
	return receipt, nil
}

func (g *Gateway) RequestLoan(ctx context.Context, params LoanRequestParams) (LoanRequestResult, error) {
	const op = "RequestLoan"
	if err := params.Validate(); err != nil {
		return LoanRequestResult{}, validationError(op, err)
	}
	if blank(params.Name) {
		params.Name = DefaultLoanName
	}
	receipt, err := g.backend.RequestLoan(ctx, params)
	if err != nil {
		return LoanRequestResult{}, g.writeFailed(op, err)
	}
	return LoanRequestResult{Receipt: receipt, Installment: installmentOf(receipt)}, nil
}

func (g *Gateway) PayLoan(ctx context.Context, params LoanPaymentParams) (Receipt, error) {
	const op = "PayLoan"
	if err := params.Validate(); err != nil {
		return nil, validationError(op, err)
	}
	receipt, err := g.backend.PayLoan(ctx, params)
	if err != nil {
		return nil, g.writeFailed(op, err)
	}
	return receipt, nil
}

// GetAccountIDByNumber resolves a destination account number, trimmed, to
// its id.
func (g *Gateway) GetAccountIDByNumber(ctx context.Context, number string) (string, error) {
	const op = "GetAccountIDByNumber"
	number = strings.TrimSpace(number)
	if number == "" {
		return "", validationError(op, ErrMissingAccountNumber)
	}
	id, err := g.backend.FindAccountIDByNumber(ctx, number)
	if err != nil {
		return "", g.writeFailed(op, err)
	}
	if id == "" {
		return "", backendError(op, ErrAccountNotFound)
	}
	return id, nil
}

// accountNumber is "000", the last six digits of the millisecond clock and
// three random digits.
func (g *Gateway) accountNumber() string {
	ms := fmt.Sprintf("%d", g.now().UnixMilli())
	if len(ms) > 6 {
		ms = ms[len(ms)-6:]
	}
	random := fmt.Sprintf("%d", 100000+g.randInt(900000))
	return "000" + ms + random[:3]
}

func (g *Gateway) readFailed(op, owner string, err error) {
	g.logger.WithError(err).WithFields(logrus.Fields{
		"backend": g.backend.Name(),
		"owner":   owner,
	}).Warn("Gateway." + op + ".error")
}

func (g *Gateway) writeFailed(op string, err error) error {
	g.logger.WithError(err).WithField("backend", g.backend.Name()).Error("Gateway." + op + ".error")
	return backendError(op, err)
}

func installmentOf(receipt Receipt) decimal.NullDecimal {
	for _, key := range []string{"cuota_mensual", "cuota"} {
		if v, ok := receipt[key]; ok && v != nil {
			if d, err := decimalOf(v); err == nil {
				return decimal.NewNullDecimal(d)
			}
		}
	}
	return decimal.NullDecimal{}
}

func decimalOf(v interface{}) (decimal.Decimal, error) {
	switch t := v.(type) {
	case decimal.Decimal:
		return t, nil
	case float64:
		return decimal.NewFromFloat(t), nil
	case int64:
		return decimal.NewFromInt(t), nil
	case int:
		return decimal.NewFromInt(int64(t)), nil
	case []byte:
		return decimal.NewFromString(string(t))
	case string:
		return decimal.NewFromString(t)
	default:
		return decimal.NewFromString(fmt.Sprint(t))
	}
}

func nonNil[T any](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}
