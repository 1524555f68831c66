package actions

import (
	"context"

	"github.com/carson-networks/banca-client/internal/gateway"
)

type CreateAccount struct {
	Params gateway.CreateAccountParams

	Account gateway.Account
}

func (c *CreateAccount) Name() string {
	return "CreateAccount"
}

func (c *CreateAccount) Perform(ctx context.Context, gw *gateway.Gateway) error {
	account, err := gw.CreateAccount(ctx, c.Params)
	if err != nil {
		return err
	}

	c.Account = account
	return nil
}
