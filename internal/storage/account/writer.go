package account

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/banca-client/internal/gateway"
)

const statusActive = "activa"

type Writer struct {
	tx bob.Tx
	Reader
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx: tx,
		Reader: Reader{
			exec: tx,
		},
	}
}

// Create inserts an active account with a zero balance and returns the
// stored row.
func (w *Writer) Create(ctx context.Context, account gateway.NewAccount) (Row, error) {
	q := psql.Insert(
		im.Into(table, "usuario_id", "numero_cuenta", "nombre", "tipo", "moneda", "saldo", "estado"),
		im.Values(
			psql.Arg(account.UserID),
			psql.Arg(account.Number),
			psql.Arg(account.Name),
			psql.Arg(string(account.Type)),
			psql.Arg(account.Currency),
			psql.Arg(decimal.Zero),
			psql.Arg(statusActive),
		),
		im.Returning(columnExprs()...),
	)
	return bob.One(ctx, w.tx, q, scan.StructMapper[Row]())
}
