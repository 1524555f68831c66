package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/carson-networks/banca-client/internal/storage/account"
	"github.com/carson-networks/banca-client/internal/storage/procedure"
)

type Writer struct {
	tx         bob.Tx
	Account    *account.Writer
	Procedures *procedure.Writer
}

func NewWriter(tx bob.Tx) Writer {
	return Writer{
		tx:         tx,
		Account:    account.NewWriter(tx),
		Procedures: procedure.NewWriter(tx),
	}
}

func (w *Writer) Commit(ctx context.Context) error {
	return w.tx.Commit(ctx)
}

func (w *Writer) Rollback(ctx context.Context) error {
	return w.tx.Rollback(ctx)
}
