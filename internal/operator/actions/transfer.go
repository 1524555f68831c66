package actions

import (
	"context"

	"github.com/carson-networks/banca-client/internal/gateway"
)

// Transfer moves money between accounts. When DestinationNumber is set it
// is resolved to an account id first.
type Transfer struct {
	Params            gateway.TransferParams
	DestinationNumber string

	Receipt gateway.Receipt
}

func (t *Transfer) Name() string {
	return "Transfer"
}

func (t *Transfer) Perform(ctx context.Context, gw *gateway.Gateway) error {
	params := t.Params
	if t.DestinationNumber != "" {
		id, err := gw.GetAccountIDByNumber(ctx, t.DestinationNumber)
		if err != nil {
			return err
		}
		params.DestinationAccountID = id
	}

	receipt, err := gw.MakeTransfer(ctx, params)
	if err != nil {
		return err
	}

	t.Receipt = receipt
	return nil
}
