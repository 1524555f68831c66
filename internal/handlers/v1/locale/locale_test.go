package locale

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/banca-client/internal/kvstore"
	"github.com/carson-networks/banca-client/internal/locale"
)

func newTestAPI(t *testing.T) (humatest.TestAPI, *locale.Store) {
	t.Helper()
	logger := logrus.New()
	logger.Out = io.Discard
	store := locale.NewStore(kvstore.NewMemory(), logger)
	t.Cleanup(store.Wait)

	_, api := humatest.New(t)
	NewHandler(store).Register(api)
	return api, store
}

func TestHTTP_ChangeLocale(t *testing.T) {
	api, store := newTestAPI(t)

	resp := api.Get("/v1/locale")
	require.Equal(t, http.StatusOK, resp.Code)
	var body Locale
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "es", body.Language)
	assert.ElementsMatch(t, []string{"es", "en"}, body.Supported)

	resp = api.Put("/v1/locale", map[string]string{"language": "en"})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, locale.English, store.Language())

	resp = api.Get("/v1/translations/welcome")
	require.Equal(t, http.StatusOK, resp.Code)
	var tr TranslationOutput
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tr.Body))
	assert.Equal(t, "Hello", tr.Body.Text)
}

func TestHTTP_ChangeLocaleUnsupported(t *testing.T) {
	api, store := newTestAPI(t)

	resp := api.Put("/v1/locale", map[string]string{"language": "fr"})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, locale.Spanish, store.Language())
}

func TestHTTP_TranslateWithArgs(t *testing.T) {
	api, _ := newTestAPI(t)

	resp := api.Get("/v1/translations/accountCreatedMessage?arg=000123")

	require.Equal(t, http.StatusOK, resp.Code)
	var tr TranslationOutput
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tr.Body))
	assert.Equal(t, "Tu cuenta 000123 fue creada.", tr.Body.Text)
}
