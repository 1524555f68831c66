package notification

import (
	"context"
	"time"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/banca-client/internal/gateway"
)

const table = "notificaciones"

// Row mirrors a notificaciones row. Data is the raw json payload.
type Row struct {
	ID        string     `db:"id"`
	UserID    string     `db:"usuario_id"`
	Type      *string    `db:"tipo"`
	Title     string     `db:"titulo"`
	Body      string     `db:"cuerpo"`
	Data      []byte     `db:"datos"`
	ReadAt    *time.Time `db:"leida_en"`
	CreatedAt time.Time  `db:"creado_en"`
}

// ToNotification marks the notification read whenever leida_en is set.
func (r Row) ToNotification() gateway.Notification {
	n := gateway.Notification{
		ID:    r.ID,
		Title: r.Title,
		Body:  r.Body,
		Read:  r.ReadAt != nil,
		Date:  r.CreatedAt,
	}
	if r.Type != nil {
		n.Type = *r.Type
	}
	return n
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
			psql.Quote("id"), psql.Quote("usuario_id"), psql.Quote("tipo"), psql.Quote("titulo"),
			psql.Quote("cuerpo"), psql.Quote("datos"), psql.Quote("leida_en"), psql.Quote("creado_en"),
		),
		sm.From(table),
		sm.Where(psql.Quote("usuario_id").EQ(psql.Arg(userID))),
		sm.OrderBy(psql.Quote("creado_en")).Desc(),
	)
	return bob.All(ctx, r.exec, q, scan.StructMapper[Row]())
}
