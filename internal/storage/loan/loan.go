package loan

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

const table = "prestamos"

// Row mirrors a prestamos row.
type Row struct {
	ID           string              `db:"id"`
	UserID       string              `db:"usuario_id"`
	AccountID    *string             `db:"cuenta_id"`
	Name         string              `db:"nombre"`
	Principal    decimal.NullDecimal `db:"monto_principal"`
	InterestRate decimal.NullDecimal `db:"tasa_interes"`
	TermMonths   *int64              `db:"plazo_meses"`
	StartDate    *time.Time          `db:"fecha_inicio"`
	EndDate      *time.Time          `db:"fecha_fin"`
	Status       *string             `db:"estado"`
	Outstanding  decimal.NullDecimal `db:"saldo_pendiente"`
	CreatedAt    time.Time           `db:"creado_en"`
}

// ToLoan projects the row. The installment is not stored per loan.
func (r Row) ToLoan() gateway.Loan {
	balance := decimal.Zero
	if r.Outstanding.Valid {
		balance = r.Outstanding.Decimal
	}
	accountID := ""
	if r.AccountID != nil {
		accountID = *r.AccountID
	}
	return gateway.Loan{
		ID:        r.ID,
		Name:      r.Name,
		Balance:   balance,
		DueDate:   r.EndDate,
		AccountID: accountID,
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
			psql.Quote("id"), psql.Quote("usuario_id"), psql.Quote("cuenta_id"), psql.Quote("nombre"),
			psql.Quote("monto_principal"), psql.Quote("tasa_interes"), psql.Quote("plazo_meses"),
			psql.Quote("fecha_inicio"), psql.Quote("fecha_fin"), psql.Quote("estado"),
			psql.Quote("saldo_pendiente"), psql.Quote("creado_en"),
		),
		sm.From(table),
		sm.Where(psql.Quote("usuario_id").EQ(psql.Arg(userID))),
		sm.OrderBy(psql.Quote("creado_en")).Desc(),
	)
	return bob.All(ctx, r.exec, q, scan.StructMapper[Row]())
}
