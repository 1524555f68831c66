package screen

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/banca-client/internal/alert"
	"github.com/carson-networks/banca-client/internal/gateway"
	"github.com/carson-networks/banca-client/internal/gateway/fixture"
	"github.com/carson-networks/banca-client/internal/kvstore"
	"github.com/carson-networks/banca-client/internal/locale"
	"github.com/carson-networks/banca-client/internal/session"
)

// notifyingBackend serves the fixture portfolio plus a fixed notification
// list.
type notifyingBackend struct {
	*fixture.Backend
	notifications []gateway.Notification
	movementCalls atomic.Int32
}

func (b *notifyingBackend) ListMovements(ctx context.Context, accountID string) ([]gateway.Transaction, error) {
	b.movementCalls.Add(1)
	return b.Backend.ListMovements(ctx, accountID)
}

func (b *notifyingBackend) ListNotifications(context.Context, string) ([]gateway.Notification, error) {
	out := make([]gateway.Notification, len(b.notifications))
	copy(out, b.notifications)
	return out, nil
}

func newBackend() *notifyingBackend {
	now := time.Now()
	return &notifyingBackend{
		Backend: fixture.New(),
		notifications: []gateway.Notification{
			{ID: "n1", Title: "Pago", Date: now},
			{ID: "n2", Title: "Depósito", Date: now.Add(-time.Hour)},
			{ID: "n3", Title: "Aviso", Read: true, Date: now.Add(-2 * time.Hour)},
		},
	}
}

type fixtureEnv struct {
	backend  *notifyingBackend
	gw       *gateway.Gateway
	sessions *session.Store
	locales  *locale.Store
	alerts   *alert.Queue
	screens  *Coordinator
}

func newFixtureEnv(t *testing.T) *fixtureEnv {
	t.Helper()
	logger := quietLogger()
	backend := newBackend()
	gw := gateway.New(backend, logger)
	locales := locale.NewStore(kvstore.NewMemory(), logger)
	alerts := alert.NewQueue(logger)
	sessions := session.NewStore(nil, alerts, locales, logger)

	screens := NewCoordinator(context.Background(), gw, logger)
	screens.Bind(sessions, locales)
	t.Cleanup(screens.Close)
	t.Cleanup(locales.Wait)

	return &fixtureEnv{backend: backend, gw: gw, sessions: sessions, locales: locales, alerts: alerts, screens: screens}
}

func TestCoordinator_LoginLoadsAndLogoutClears(t *testing.T) {
	env := newFixtureEnv(t)
	env.screens.Wait()

	view, err := env.screens.View(Accounts)
	require.NoError(t, err)
	assert.Equal(t, StatusEmpty, view.Status)

	ok, err := env.sessions.Login(context.Background(), "ana@banco.com", "secret")
	require.NoError(t, err)
	require.True(t, ok)
	env.screens.Wait()

	view, _ = env.screens.View(Accounts)
	assert.Equal(t, StatusLoaded, view.Status)
	assert.Equal(t, 2, view.Count)

	dash, _ := env.screens.View(Dashboard)
	require.Equal(t, StatusLoaded, dash.Status)
	summaries, ok := dash.Items.([]Summary)
	require.True(t, ok)
	assert.Equal(t, 2, summaries[0].UnreadNotices)
	assert.Equal(t, "11700.5", summaries[0].TotalBalance.String())

	env.sessions.Logout(context.Background())
	env.screens.Wait()

	view, _ = env.screens.View(Accounts)
	assert.Equal(t, StatusEmpty, view.Status)
	assert.Equal(t, 0, view.Count)
}

func TestCoordinator_LocaleChangeRefetches(t *testing.T) {
	env := newFixtureEnv(t)
	_, err := env.sessions.Login(context.Background(), "ana@banco.com", "secret")
	require.NoError(t, err)
	env.screens.Wait()
	before, _ := env.screens.View(Cards)

	require.NoError(t, env.locales.ChangeLanguage(context.Background(), locale.English))
	env.screens.Wait()

	after, _ := env.screens.View(Cards)
	assert.Greater(t, after.Generation, before.Generation)
	assert.Equal(t, StatusEmpty, after.Status)
}

func TestCoordinator_FocusAndDetail(t *testing.T) {
	env := newFixtureEnv(t)
	_, err := env.sessions.Login(context.Background(), "ana@banco.com", "secret")
	require.NoError(t, err)
	env.screens.Wait()

	env.screens.OpenAccount("2")
	env.screens.Wait()
	detail, _ := env.screens.View(Movements)
	assert.Equal(t, 2, detail.Count)

	assert.NoError(t, env.screens.Focus(Movements))
	env.screens.Wait()
	again, _ := env.screens.View(Movements)
	assert.Equal(t, detail.Generation, again.Generation)

	before, _ := env.screens.View(Accounts)
	assert.NoError(t, env.screens.Focus(Accounts))
	env.screens.Wait()
	after, _ := env.screens.View(Accounts)
	assert.Greater(t, after.Generation, before.Generation)

	assert.ErrorIs(t, env.screens.Focus("settings"), ErrUnknownScreen)
}

func TestCoordinator_DetailClosesOnIdentityChange(t *testing.T) {
	env := newFixtureEnv(t)
	ctx := context.Background()

	_, err := env.sessions.Login(ctx, "ana@banco.com", "secret")
	require.NoError(t, err)
	env.screens.Wait()
	env.screens.OpenAccount("1")
	env.screens.Wait()

	detail, _ := env.screens.View(Movements)
	require.Equal(t, StatusLoaded, detail.Status)
	require.Equal(t, 3, detail.Count)
	opened := env.backend.movementCalls.Load()

	env.sessions.Logout(ctx)
	env.screens.Wait()
	_, err = env.sessions.Login(ctx, "bob@banco.com", "secret")
	require.NoError(t, err)
	env.screens.Wait()

	detail, _ = env.screens.View(Movements)
	assert.Equal(t, StatusEmpty, detail.Status)
	assert.Equal(t, 0, detail.Count)
	assert.Equal(t, opened, env.backend.movementCalls.Load())
}

func TestCoordinator_DetailIgnoresForeignAccount(t *testing.T) {
	env := newFixtureEnv(t)

	_, err := env.sessions.Login(context.Background(), "ana@banco.com", "secret")
	require.NoError(t, err)
	env.screens.Wait()

	env.screens.OpenAccount("acc-of-someone-else")
	env.screens.Wait()

	detail, _ := env.screens.View(Movements)
	assert.Equal(t, StatusEmpty, detail.Status)
	assert.Equal(t, int32(0), env.backend.movementCalls.Load())
}

func TestDashboard_CancelledLoadFails(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dash := NewDashboardScreen(ctx, gateway.New(newBackend(), quietLogger()), quietLogger())
	dash.Mount("mock-user")
	dash.Wait()

	view := dash.View()
	assert.Equal(t, StatusFailed, view.Status)
	assert.Equal(t, context.Canceled.Error(), view.Error)
}
