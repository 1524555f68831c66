package account

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/banca-client/internal/gateway"
)

const table = "cuentas"

var columns = []string{"id", "usuario_id", "numero_cuenta", "nombre", "tipo", "moneda", "saldo", "estado", "creado_en"}

// Row mirrors a cuentas row.
type Row struct {
	ID        string              `db:"id"`
	UserID    string              `db:"usuario_id"`
	Number    string              `db:"numero_cuenta"`
	Name      string              `db:"nombre"`
	Type      *string             `db:"tipo"`
	Currency  *string             `db:"moneda"`
	Balance   decimal.NullDecimal `db:"saldo"`
	Status    *string             `db:"estado"`
	CreatedAt time.Time           `db:"creado_en"`
}

func (r Row) ToAccount() gateway.Account {
	currency := gateway.DefaultCurrency
	if r.Currency != nil && *r.Currency != "" {
		currency = *r.Currency
	}
	balance := decimal.Zero
	if r.Balance.Valid {
		balance = r.Balance.Decimal
	}
	return gateway.Account{
		ID:        r.ID,
		Name:      r.Name,
		Number:    r.Number,
		Balance:   balance,
		Currency:  currency,
		CreatedAt: r.CreatedAt,
	}
}
