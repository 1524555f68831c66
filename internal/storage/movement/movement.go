package movement

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/banca-client/internal/gateway"
)

const (
	table     = "movimientos_cuenta"
	typeDebit = "debito"
)

// Row mirrors a movimientos_cuenta row.
type Row struct {
	ID                string              `db:"id"`
	AccountID         string              `db:"cuenta_id"`
	Type              string              `db:"tipo"`
	Amount            decimal.NullDecimal `db:"monto"`
	Description       *string             `db:"descripcion"`
	Category          *string             `db:"categoria"`
	BalanceAfter      decimal.NullDecimal `db:"saldo_despues"`
	RelatedTransferID *string             `db:"transferencia_relacionada_id"`
	CreatedAt         time.Time           `db:"creado_en"`
}

// ToTransaction signs the amount: debits are negative.
func (r Row) ToTransaction() gateway.Transaction {
	amount := decimal.Zero
	if r.Amount.Valid {
		amount = r.Amount.Decimal
	}
	if r.Type == typeDebit {
		amount = amount.Neg()
	}
	description := ""
	if r.Description != nil {
		description = *r.Description
	}
	return gateway.Transaction{
		ID:          r.ID,
		AccountID:   r.AccountID,
		Date:        r.CreatedAt,
		Description: description,
		Amount:      amount,
	}
}

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func (r *Reader) ListByAccount(ctx context.Context, accountID string) ([]Row, error) {
	q := psql.Select(
		sm.Columns(
			psql.Quote("id"), psql.Quote("cuenta_id"), psql.Quote("tipo"), psql.Quote("monto"),
			psql.Quote("descripcion"), psql.Quote("categoria"), psql.Quote("saldo_despues"),
			psql.Quote("transferencia_relacionada_id"), psql.Quote("creado_en"),
		),
		sm.From(table),
		sm.Where(psql.Quote("cuenta_id").EQ(psql.Arg(accountID))),
		sm.OrderBy(psql.Quote("creado_en")).Desc(),
	)
	return bob.All(ctx, r.exec, q, scan.StructMapper[Row]())
}
