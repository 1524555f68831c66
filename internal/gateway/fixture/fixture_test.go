package fixture

import (
	"context"
	"io"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/banca-client/internal/gateway"
)

func newGateway() *gateway.Gateway {
	logger := logrus.New()
	logger.Out = io.Discard
	return gateway.New(New(), logger)
}

func TestFixture_Accounts(t *testing.T) {
	accounts := newGateway().FetchAccounts(context.Background(), "mock-user")

	require.Len(t, accounts, 2)
	assert.Equal(t, "1", accounts[0].ID)
	assert.True(t, accounts[0].Balance.Equal(decimal.RequireFromString("8500.5")))
}

func TestFixture_MovementsNewestFirst(t *testing.T) {
	movements := newGateway().FetchAccountMovements(context.Background(), "1")

	require.Len(t, movements, 3)
	assert.Equal(t, "t3", movements[0].ID)
	assert.True(t, movements[1].Amount.IsNegative())
}

func TestFixture_UnknownAccountIsEmpty(t *testing.T) {
	assert.Empty(t, newGateway().FetchAccountMovements(context.Background(), "nope"))
}

func TestFixture_WritesNotConfigured(t *testing.T) {
	g := newGateway()

	_, err := g.MakeTransfer(context.Background(), gateway.TransferParams{
		UserID: "mock-user", SourceAccountID: "1", DestinationAccountID: "2", Amount: decimal.NewFromInt(1),
	})
	assert.True(t, gateway.IsKind(err, gateway.KindNotConfigured))

	_, err = g.GetAccountIDByNumber(context.Background(), "0123 9999 0001")
	assert.ErrorIs(t, err, gateway.ErrNotConfigured)
}
