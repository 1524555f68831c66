package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/banca-client/internal/exchange"
)

type failingFetcher struct{}

func (failingFetcher) FetchRate(context.Context, string, string) (decimal.Decimal, bool) {
	return decimal.Zero, false
}

type lineTranslator struct{}

func (lineTranslator) T(key string, args ...interface{}) string {
	return fmt.Sprintf("%s %v", key, args)
}

func newTestAPI(t *testing.T) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	b := exchange.NewBoard(failingFetcher{}, decimal.RequireFromString("24.5"))
	NewHandler(b, lineTranslator{}).Register(api)
	return api
}

func TestHTTP_ConvertWithFallback(t *testing.T) {
	resp := newTestAPI(t).Get("/v1/exchange?usd=10&hnl=245")

	require.Equal(t, http.StatusOK, resp.Code)
	var body Exchange
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "24.50", body.Rate)
	assert.False(t, body.Live)
	assert.Equal(t, "245.00", body.ToHNL)
	assert.Equal(t, "10.00", body.ToUSD)
}

func TestHTTP_RefreshFailureKeepsRate(t *testing.T) {
	resp := newTestAPI(t).Post("/v1/exchange/refresh", struct{}{})

	require.Equal(t, http.StatusOK, resp.Code)
	var body Exchange
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "24.50", body.Rate)
}

func TestHTTP_InvalidAmount(t *testing.T) {
	resp := newTestAPI(t).Get("/v1/exchange?usd=diez")

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}
