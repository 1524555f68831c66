package payment

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
	table         = "pagos"
	unknownType   = "desconocido"
	pendingStatus = "pendiente"
)

// Row mirrors a pagos row.
type Row struct {
	ID                string              `db:"id"`
	UserID            string              `db:"usuario_id"`
	SourceAccountID   *string             `db:"cuenta_origen_id"`
	DestinationType   *string             `db:"tipo_destino"`
	DestinationCardID *string             `db:"tarjeta_destino_id"`
	DestinationLoanID *string             `db:"prestamo_destino_id"`
	Amount            decimal.NullDecimal `db:"monto"`
	Status            *string             `db:"estado"`
	CreatedAt         time.Time           `db:"creado_en"`
	ExecutedAt        *time.Time          `db:"ejecutado_en"`
}

func (r Row) ToPayment() gateway.Payment {
	p := gateway.Payment{
		ID:        r.ID,
		Amount:    decimal.Zero,
		Type:      unknownType,
		Status:    pendingStatus,
		CreatedAt: r.CreatedAt,
	}
	if r.Amount.Valid {
		p.Amount = r.Amount.Decimal
	}
	if r.DestinationType != nil && *r.DestinationType != "" {
		p.Type = *r.DestinationType
	}
	if r.Status != nil && *r.Status != "" {
		p.Status = *r.Status
	}
	return p
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
			psql.Quote("id"), psql.Quote("usuario_id"), psql.Quote("cuenta_origen_id"),
			psql.Quote("tipo_destino"), psql.Quote("tarjeta_destino_id"), psql.Quote("prestamo_destino_id"),
			psql.Quote("monto"), psql.Quote("estado"), psql.Quote("creado_en"), psql.Quote("ejecutado_en"),
		),
		sm.From(table),
		sm.Where(psql.Quote("usuario_id").EQ(psql.Arg(userID))),
		sm.OrderBy(psql.Quote("creado_en")).Desc(),
	)
	return bob.All(ctx, r.exec, q, scan.StructMapper[Row]())
}
