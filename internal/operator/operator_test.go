package operator

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/banca-client/internal/gateway"
	"github.com/carson-networks/banca-client/internal/gateway/fixture"
	"github.com/carson-networks/banca-client/internal/operator/actions"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.Out = io.Discard
	return logger
}

func newDelegator(t *testing.T, workers int) *OperatorDelegator {
	t.Helper()
	logger := quietLogger()
	d := NewOperatorDelegator(gateway.New(fixture.New(), logger), workers, logger)
	d.Start()
	t.Cleanup(d.Stop)
	return d
}

type countingAction struct {
	active  *int32
	maxSeen *int32
}

func (c *countingAction) Name() string { return "counting" }

func (c *countingAction) Perform(context.Context, *gateway.Gateway) error {
	n := atomic.AddInt32(c.active, 1)
	for {
		seen := atomic.LoadInt32(c.maxSeen)
		if n <= seen || atomic.CompareAndSwapInt32(c.maxSeen, seen, n) {
			break
		}
	}
	time.Sleep(2 * time.Millisecond)
	atomic.AddInt32(c.active, -1)
	return nil
}

func TestProcess_SingleWorkerSerializes(t *testing.T) {
	d := newDelegator(t, 1)
	var active, maxSeen int32

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, d.Process(context.Background(), &countingAction{active: &active, maxSeen: &maxSeen}))
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&maxSeen))
}

func TestProcess_TransferValidationError(t *testing.T) {
	d := newDelegator(t, 1)
	action := &actions.Transfer{Params: gateway.TransferParams{
		UserID: "u", SourceAccountID: "1", DestinationAccountID: "1", Amount: decimal.NewFromInt(10),
	}}

	err := d.Process(context.Background(), action)

	assert.ErrorIs(t, err, gateway.ErrSameAccount)
	assert.Nil(t, action.Receipt)
}

func TestProcess_TransferByNumberNotConfigured(t *testing.T) {
	d := newDelegator(t, 1)
	action := &actions.Transfer{
		Params:            gateway.TransferParams{UserID: "u", SourceAccountID: "1", Amount: decimal.NewFromInt(10)},
		DestinationNumber: "0123 9999 0001",
	}

	err := d.Process(context.Background(), action)

	assert.True(t, gateway.IsKind(err, gateway.KindNotConfigured))
}

func TestProcess_CreateAccountNotConfigured(t *testing.T) {
	d := newDelegator(t, 1)
	action := &actions.CreateAccount{Params: gateway.CreateAccountParams{
		UserID: "u", Name: "Ahorro", Type: gateway.AccountTypeSavings,
	}}

	err := d.Process(context.Background(), action)

	assert.ErrorIs(t, err, gateway.ErrNotConfigured)
}

func TestProcess_CancelledContext(t *testing.T) {
	d := newDelegator(t, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := d.Process(ctx, &actions.PayLoan{})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestProcess_AfterStop(t *testing.T) {
	d := newDelegator(t, 2)
	d.Stop()

	err := d.Process(context.Background(), &actions.RequestLoan{})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStopped)
}
