package account

import (
	"context"
	"database/sql"
	"errors"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// ListByUser returns the user's accounts, newest first.
func (r *Reader) ListByUser(ctx context.Context, userID string) ([]Row, error) {
	q := psql.Select(
		sm.Columns(columnExprs()...),
		sm.From(table),
		sm.Where(psql.Quote("usuario_id").EQ(psql.Arg(userID))),
		sm.OrderBy(psql.Quote("creado_en")).Desc(),
	)
	return bob.All(ctx, r.exec, q, scan.StructMapper[Row]())
}

// FindIDByNumber returns the id of the account with the given number, or an
// empty id when none exists.
func (r *Reader) FindIDByNumber(ctx context.Context, number string) (string, error) {
	q := psql.Select(
		sm.Columns(psql.Quote("id")),
		sm.From(table),
		sm.Where(psql.Quote("numero_cuenta").EQ(psql.Arg(number))),
		sm.Limit(1),
	)
	id, err := bob.One(ctx, r.exec, q, scan.SingleColumnMapper[string])
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return id, err
}

func columnExprs() []any {
	out := make([]any, len(columns))
	for i, c := range columns {
		out[i] = psql.Quote(c)
	}
	return out
}
