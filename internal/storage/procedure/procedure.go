// Package procedure calls the backend's server-side money movement
// functions. Balances and ledger rows are owned by those functions.
package procedure

import (
	"context"
	"fmt"
	"strings"

	"github.com/stephenafamo/bob"

	"github.com/carson-networks/banca-client/internal/gateway"
)

const (
	transfer    = "realizar_transferencia"
	requestLoan = "solicitar_prestamo"
	payLoan     = "pagar_prestamo"
)

type Writer struct {
	exec bob.Executor
}

func NewWriter(exec bob.Executor) *Writer {
	return &Writer{exec: exec}
}

func (w *Writer) Transfer(ctx context.Context, p gateway.TransferParams) (gateway.Receipt, error) {
	return w.call(ctx, transfer,
		p.UserID, p.SourceAccountID, p.DestinationAccountID, p.Amount, p.Concept)
}

func (w *Writer) RequestLoan(ctx context.Context, p gateway.LoanRequestParams) (gateway.Receipt, error) {
	return w.call(ctx, requestLoan,
		p.UserID, p.DepositAccountID, p.Name, p.Principal, p.InterestRate, p.TermMonths)
}

func (w *Writer) PayLoan(ctx context.Context, p gateway.LoanPaymentParams) (gateway.Receipt, error) {
	return w.call(ctx, payLoan,
		p.UserID, p.LoanID, p.SourceAccountID, p.Principal, p.Interest)
}

// call runs SELECT * FROM fn($1, ...) and returns the first row, or nil when
// the function returned none.
func (w *Writer) call(ctx context.Context, fn string, args ...any) (gateway.Receipt, error) {
	rows, err := w.exec.QueryContext(ctx, Statement(fn, len(args)), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, err
	}

	receipt := make(gateway.Receipt, len(cols))
	for i, c := range cols {
		if b, ok := values[i].([]byte); ok {
			receipt[c] = string(b)
			continue
		}
		receipt[c] = values[i]
	}
	return receipt, nil
}

// Statement renders the positional call for fn with n arguments.
func Statement(fn string, n int) string {
	placeholders := make([]string, n)
	for i := range placeholders {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf("SELECT * FROM %s(%s)", fn, strings.Join(placeholders, ", "))
}
