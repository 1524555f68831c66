package screens

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/banca-client/internal/alert"
	"github.com/carson-networks/banca-client/internal/gateway"
	"github.com/carson-networks/banca-client/internal/gateway/fixture"
	"github.com/carson-networks/banca-client/internal/kvstore"
	"github.com/carson-networks/banca-client/internal/locale"
	"github.com/carson-networks/banca-client/internal/screen"
	"github.com/carson-networks/banca-client/internal/session"
)

type fixedUnread int

func (f fixedUnread) Unread() int { return int(f) }

type viewBody struct {
	Screen string          `json:"screen"`
	Status screen.Status   `json:"status"`
	Count  int             `json:"count"`
	Items  json.RawMessage `json:"items"`
}

func newTestAPI(t *testing.T) (humatest.TestAPI, *screen.Coordinator) {
	t.Helper()
	logger := logrus.New()
	logger.Out = io.Discard

	locales := locale.NewStore(kvstore.NewMemory(), logger)
	sessions := session.NewStore(nil, alert.NewQueue(logger), locales, logger)
	coord := screen.NewCoordinator(context.Background(), gateway.New(fixture.New(), logger), logger)
	coord.Bind(sessions, locales)
	t.Cleanup(coord.Close)

	_, err := sessions.Login(context.Background(), "ana@banco.com", "x")
	require.NoError(t, err)
	coord.Wait()

	_, api := humatest.New(t)
	NewHandler(coord, fixedUnread(3)).Register(api)
	return api, coord
}

func TestHTTP_GetScreen(t *testing.T) {
	api, _ := newTestAPI(t)

	resp := api.Get("/v1/screens/accounts")

	require.Equal(t, http.StatusOK, resp.Code)
	var body viewBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, screen.StatusLoaded, body.Status)
	assert.Equal(t, 2, body.Count)
}

func TestHTTP_UnknownScreen(t *testing.T) {
	api, _ := newTestAPI(t)

	resp := api.Get("/v1/screens/settings")

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestHTTP_OpenAccountAndFocus(t *testing.T) {
	api, coord := newTestAPI(t)

	resp := api.Post("/v1/accounts/1/open", struct{}{})
	require.Equal(t, http.StatusOK, resp.Code)
	coord.Wait()

	view, err := coord.View(screen.Movements)
	require.NoError(t, err)
	assert.Equal(t, 3, view.Count)

	resp = api.Post("/v1/screens/cards/focus", struct{}{})
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestHTTP_Unread(t *testing.T) {
	api, _ := newTestAPI(t)

	resp := api.Get("/v1/notifications/unread")

	require.Equal(t, http.StatusOK, resp.Code)
	var body struct {
		Unread int `json:"unread"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 3, body.Unread)
}
