package gateway

import (
	"context"
)

// Backend is the remote data capability. Implementations return rows already
// projected into records; ordering is newest first where rows carry a
// creation time.
type Backend interface {
	Name() string

	ListAccounts(ctx context.Context, userID string) ([]Account, error)
	ListMovements(ctx context.Context, accountID string) ([]Transaction, error)
	ListCards(ctx context.Context, userID string) ([]Card, error)
	ListLoans(ctx context.Context, userID string) ([]Loan, error)
	ListPayments(ctx context.Context, userID string) ([]Payment, error)
	ListNotifications(ctx context.Context, userID string) ([]Notification, error)

	InsertAccount(ctx context.Context, account NewAccount) (Account, error)
	Transfer(ctx context.Context, params TransferParams) (Receipt, error)
	RequestLoan(ctx context.Context, params LoanRequestParams) (Receipt, error)
	PayLoan(ctx context.Context, params LoanPaymentParams) (Receipt, error)
	FindAccountIDByNumber(ctx context.Context, number string) (string, error)
}
