package card

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

const table = "tarjetas"

// Row mirrors a tarjetas row.
type Row struct {
	ID        string              `db:"id"`
	UserID    string              `db:"usuario_id"`
	AccountID *string             `db:"cuenta_id"`
	Type      string              `db:"tipo"`
	Brand     *string             `db:"marca"`
	Last4     string              `db:"ultimos4"`
	Limit     decimal.NullDecimal `db:"limite_credito"`
	Balance   decimal.NullDecimal `db:"saldo_actual"`
	CreatedAt time.Time           `db:"creado_en"`
}

func (r Row) ToCard() gateway.Card {
	brand := ""
	if r.Brand != nil {
		brand = *r.Brand
	}
	return gateway.Card{
		ID:        r.ID,
		Type:      r.Type,
		Brand:     brand,
		Last4:     r.Last4,
		Limit:     r.Limit,
		Balance:   r.Balance,
		CreatedAt: r.CreatedAt,
	}
}

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func (r *Reader) ListByUser(ctx context.Context, userID string) ([]Row, error) {
	q := psql.Select(
		sm.Columns(
			psql.Quote("id"), psql.Quote("usuario_id"), psql.Quote("cuenta_id"), psql.Quote("tipo"),
			psql.Quote("marca"), psql.Quote("ultimos4"), psql.Quote("limite_credito"),
			psql.Quote("saldo_actual"), psql.Quote("creado_en"),
		),
		sm.From(table),
		sm.Where(psql.Quote("usuario_id").EQ(psql.Arg(userID))),
		sm.OrderBy(psql.Quote("creado_en")).Desc(),
	)
	return bob.All(ctx, r.exec, q, scan.StructMapper[Row]())
}
