package storage

import (
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/banca-client/internal/storage/account"
	"github.com/carson-networks/banca-client/internal/storage/card"
	"github.com/carson-networks/banca-client/internal/storage/loan"
	"github.com/carson-networks/banca-client/internal/storage/movement"
	"github.com/carson-networks/banca-client/internal/storage/notification"
	"github.com/carson-networks/banca-client/internal/storage/payment"
)

type Reader struct {
	Accounts      *account.Reader
	Movements     *movement.Reader
	Cards         *card.Reader
	Loans         *loan.Reader
	Payments      *payment.Reader
	Notifications *notification.Reader
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{
		Accounts:      account.NewReader(exec),
		Movements:     movement.NewReader(exec),
		Cards:         card.NewReader(exec),
		Loans:         loan.NewReader(exec),
		Payments:      payment.NewReader(exec),
		Notifications: notification.NewReader(exec),
	}
}
