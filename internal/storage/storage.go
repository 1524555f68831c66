// Package storage is the live gateway.Backend over the remote Postgres
// database.
package storage

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/banca-client/internal/config"
	"github.com/carson-networks/banca-client/internal/gateway"
)

type Storage struct {
	DB     *sql.DB
	db     bob.DB
	reader *Reader
	logger *logrus.Logger
}

var _ gateway.Backend = (*Storage)(nil)

func NewStorage(cfg *config.Config, logger *logrus.Logger) (*Storage, error) {
	db, err := sql.Open("postgres", cfg.PostgresDSN())
	if err != nil {
		return nil, err
	}

	bdb := bob.NewDB(db)
	return &Storage{
		DB:     db,
		db:     bdb,
		reader: NewReader(bdb),
		logger: logger,
	}, nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

func (s *Storage) Name() string {
	return "postgres"
}

func (s *Storage) ListAccounts(ctx context.Context, userID string) ([]gateway.Account, error) {
	rows, err := s.reader.Accounts.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]gateway.Account, len(rows))
	for i, row := range rows {
		out[i] = row.ToAccount()
	}
	return out, nil
}

func (s *Storage) ListMovements(ctx context.Context, accountID string) ([]gateway.Transaction, error) {
	rows, err := s.reader.Movements.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	out := make([]gateway.Transaction, len(rows))
	for i, row := range rows {
		out[i] = row.ToTransaction()
	}
	return out, nil
}

func (s *Storage) ListCards(ctx context.Context, userID string) ([]gateway.Card, error) {
	rows, err := s.reader.Cards.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]gateway.Card, len(rows))
	for i, row := range rows {
		out[i] = row.ToCard()
	}
	return out, nil
}

func (s *Storage) ListLoans(ctx context.Context, userID string) ([]gateway.Loan, error) {
	rows, err := s.reader.Loans.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]gateway.Loan, len(rows))
	for i, row := range rows {
		out[i] = row.ToLoan()
	}
	return out, nil
}

func (s *Storage) ListPayments(ctx context.Context, userID string) ([]gateway.Payment, error) {
	rows, err := s.reader.Payments.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]gateway.Payment, len(rows))
	for i, row := range rows {
		out[i] = row.ToPayment()
	}
	return out, nil
}

func (s *Storage) ListNotifications(ctx context.Context, userID string) ([]gateway.Notification, error) {
	rows, err := s.reader.Notifications.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]gateway.Notification, len(rows))
	for i, row := range rows {
		out[i] = row.ToNotification()
	}
	return out, nil
}

func (s *Storage) InsertAccount(ctx context.Context, account gateway.NewAccount) (gateway.Account, error) {
	var created gateway.Account
	err := s.withWriter(ctx, func(w Writer) error {
		row, err := w.Account.Create(ctx, account)
		if err != nil {
			return err
		}
		created = row.ToAccount()
		return nil
	})
	return created, err
}

func (s *Storage) FindAccountIDByNumber(ctx context.Context, number string) (string, error) {
	return s.reader.Accounts.FindIDByNumber(ctx, number)
}

func (s *Storage) Transfer(ctx context.Context, params gateway.TransferParams) (gateway.Receipt, error) {
	var receipt gateway.Receipt
	err := s.withWriter(ctx, func(w Writer) (err error) {
		receipt, err = w.Procedures.Transfer(ctx, params)
		return err
	})
	return receipt, err
}

func (s *Storage) RequestLoan(ctx context.Context, params gateway.LoanRequestParams) (gateway.Receipt, error) {
	var receipt gateway.Receipt
	err := s.withWriter(ctx, func(w Writer) (err error) {
		receipt, err = w.Procedures.RequestLoan(ctx, params)
		return err
	})
	return receipt, err
}

func (s *Storage) PayLoan(ctx context.Context, params gateway.LoanPaymentParams) (gateway.Receipt, error) {
	var receipt gateway.Receipt
	err := s.withWriter(ctx, func(w Writer) (err error) {
		receipt, err = w.Procedures.PayLoan(ctx, params)
		return err
	})
	return receipt, err
}

func (s *Storage) withWriter(ctx context.Context, fn func(w Writer) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	w := NewWriter(tx)
	if err := fn(w); err != nil {
		if rbErr := w.Rollback(ctx); rbErr != nil {
			s.logger.WithError(rbErr).Warn("Storage.rollback.error")
		}
		return err
	}
	return w.Commit(ctx)
}
