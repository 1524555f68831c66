package exchange

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.Out = io.Discard
	return logger
}

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "USD", r.URL.Query().Get("base"))
		assert.Equal(t, "HNL", r.URL.Query().Get("symbols"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchRate_Success(t *testing.T) {
	srv := serve(t, http.StatusOK, `{"base":"USD","rates":{"HNL":24.75}}`)
	c := NewClient(srv.URL, time.Second, quietLogger())

	rate, ok := c.FetchRate(context.Background(), USD, HNL)

	require.True(t, ok)
	assert.True(t, rate.Equal(decimal.RequireFromString("24.75")))
}

func TestFetchRate_Unavailable(t *testing.T) {
	cases := map[string]struct {
		status int
		body   string
	}{
		"non-200":      {http.StatusInternalServerError, `{"rates":{"HNL":24.75}}`},
		"malformed":    {http.StatusOK, `not json`},
		"missing rate": {http.StatusOK, `{"rates":{}}`},
		"string rate":  {http.StatusOK, `{"rates":{"HNL":"24.75"}}`},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			srv := serve(t, tc.status, tc.body)
			c := NewClient(srv.URL, time.Second, quietLogger())

			_, ok := c.FetchRate(context.Background(), USD, HNL)

			assert.False(t, ok)
		})
	}
}

func TestBoard_UnreachableKeepsFallback(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	board := NewBoard(NewClient(url, 200*time.Millisecond, quietLogger()), decimal.RequireFromString("24.5"))

	assert.False(t, board.Refresh(context.Background()))
	rate, live := board.Rate()
	assert.True(t, rate.Equal(decimal.RequireFromString("24.5")))
	assert.False(t, live)
}

func TestBoard_RefreshUpdatesRate(t *testing.T) {
	srv := serve(t, http.StatusOK, `{"rates":{"HNL":25}}`)
	board := NewBoard(NewClient(srv.URL, time.Second, quietLogger()), decimal.RequireFromString("24.5"))

	require.True(t, board.Refresh(context.Background()))

	c := board.Convert(decimal.NewNullDecimal(decimal.NewFromInt(10)), decimal.NewNullDecimal(decimal.NewFromInt(100)))
	assert.True(t, c.Live)
	assert.True(t, c.ToHNL.Decimal.Equal(decimal.NewFromInt(250)))
	assert.True(t, c.ToUSD.Decimal.Equal(decimal.NewFromInt(4)))
}

func TestConversions(t *testing.T) {
	rate := decimal.RequireFromString("24.5")

	assert.Equal(t, "36.75", ToHNL(decimal.RequireFromString("1.5"), rate).StringFixed(2))

	usd, ok := ToUSD(decimal.NewFromInt(100), rate)
	require.True(t, ok)
	assert.Equal(t, "4.08", usd.StringFixed(2))

	_, ok = ToUSD(decimal.NewFromInt(100), decimal.Zero)
	assert.False(t, ok)
}
