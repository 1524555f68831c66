package screen

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/banca-client/internal/alert"
	"github.com/carson-networks/banca-client/internal/gateway"
	"github.com/carson-networks/banca-client/internal/kvstore"
	"github.com/carson-networks/banca-client/internal/locale"
	"github.com/carson-networks/banca-client/internal/session"
)

func newPollerEnv(t *testing.T, interval time.Duration) (*Poller, *session.Store) {
	t.Helper()
	logger := quietLogger()
	gw := gateway.New(newBackend(), logger)
	sessions := session.NewStore(nil, alert.NewQueue(logger), locale.NewStore(kvstore.NewMemory(), logger), logger)
	return NewPoller(gw, sessions, interval, logger), sessions
}

func TestPoller_CountsUnreadForIdentity(t *testing.T) {
	p, sessions := newPollerEnv(t, time.Hour)
	p.Start(context.Background())
	t.Cleanup(p.Stop)

	p.Wait()
	assert.Equal(t, 0, p.Unread())

	_, err := sessions.Login(context.Background(), "ana@banco.com", "secret")
	require.NoError(t, err)
	p.Wait()
	assert.Equal(t, 2, p.Unread())

	sessions.Logout(context.Background())
	p.Wait()
	assert.Equal(t, 0, p.Unread())
}

func TestPoller_TicksOnInterval(t *testing.T) {
	p, sessions := newPollerEnv(t, 10*time.Millisecond)
	_, err := sessions.Login(context.Background(), "ana@banco.com", "secret")
	require.NoError(t, err)

	p.Start(context.Background())
	t.Cleanup(p.Stop)

	assert.Eventually(t, func() bool { return p.Unread() == 2 }, time.Second, 5*time.Millisecond)
}

func TestPoller_StopIsIdempotentAndDetaches(t *testing.T) {
	p, sessions := newPollerEnv(t, time.Hour)
	p.Start(context.Background())
	p.Stop()
	p.Stop()

	_, err := sessions.Login(context.Background(), "ana@banco.com", "secret")
	require.NoError(t, err)
	p.Wait()

	assert.Equal(t, 0, p.Unread())
}
