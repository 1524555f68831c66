// Package fixture is the offline Backend used when no remote backend is
// configured. Reads serve a fixed demo portfolio; writes fail fast.
package fixture

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/banca-client/internal/gateway"
)

type Backend struct {
	accounts  []gateway.Account
	movements map[string][]gateway.Transaction
}

var _ gateway.Backend = (*Backend)(nil)

func New() *Backend {
	opened := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	return &Backend{
		accounts: []gateway.Account{
			{
				ID:        "1",
				Name:      "Cuenta de Ahorro Lempiras",
				Number:    "0123 4567 8901",
				Balance:   decimal.RequireFromString("8500.50"),
				Currency:  "L",
				CreatedAt: opened.Add(time.Hour),
			},
			{
				ID:        "2",
				Name:      "Cuenta Corriente Lempiras",
				Number:    "0123 9999 0001",
				Balance:   decimal.NewFromInt(3200),
				Currency:  "L",
				CreatedAt: opened,
			},
		},
		movements: map[string][]gateway.Transaction{
			"1": {
				movement("t1", "1", "2025-01-10", "Depósito nómina", "7500"),
				movement("t2", "1", "2025-01-12", "Pago supermercado", "-1500.25"),
				movement("t3", "1", "2025-01-15", "Transferencia recibida", "500"),
			},
			"2": {
				movement("t4", "2", "2025-01-09", "Pago luz", "-900"),
				movement("t5", "2", "2025-01-18", "Pago internet", "-700"),
			},
		},
	}
}

func movement(id, accountID, date, description, amount string) gateway.Transaction {
	d, _ := time.Parse(time.DateOnly, date)
	return gateway.Transaction{
		ID:          id,
		AccountID:   accountID,
		Date:        d,
		Description: description,
		Amount:      decimal.RequireFromString(amount),
	}
}

func (b *Backend) Name() string {
	return "fixture"
}

func (b *Backend) ListAccounts(_ context.Context, _ string) ([]gateway.Account, error) {
	out := make([]gateway.Account, len(b.accounts))
	copy(out, b.accounts)
	return out, nil
}

func (b *Backend) ListMovements(_ context.Context, accountID string) ([]gateway.Transaction, error) {
	rows := b.movements[accountID]
	out := make([]gateway.Transaction, len(rows))
	copy(out, rows)
	return out, nil
}

func (b *Backend) ListCards(context.Context, string) ([]gateway.Card, error) {
	return []gateway.Card{}, nil
}

func (b *Backend) ListLoans(context.Context, string) ([]gateway.Loan, error) {
	return []gateway.Loan{}, nil
}

func (b *Backend) ListPayments(context.Context, string) ([]gateway.Payment, error) {
	return []gateway.Payment{}, nil
}

func (b *Backend) ListNotifications(context.Context, string) ([]gateway.Notification, error) {
	return []gateway.Notification{}, nil
}

func (b *Backend) InsertAccount(context.Context, gateway.NewAccount) (gateway.Account, error) {
	return gateway.Account{}, gateway.ErrNotConfigured
}

func (b *Backend) Transfer(context.Context, gateway.TransferParams) (gateway.Receipt, error) {
	return nil, gateway.ErrNotConfigured
}

func (b *Backend) RequestLoan(context.Context, gateway.LoanRequestParams) (gateway.Receipt, error) {
	return nil, gateway.ErrNotConfigured
}

func (b *Backend) PayLoan(context.Context, gateway.LoanPaymentParams) (gateway.Receipt, error) {
	return nil, gateway.ErrNotConfigured
}

func (b *Backend) FindAccountIDByNumber(context.Context, string) (string, error) {
	return "", gateway.ErrNotConfigured
}
