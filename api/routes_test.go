package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/carson-networks/banca-client/internal/alert"
	"github.com/carson-networks/banca-client/internal/handlers/v1/alerts"
)

func TestRouter(t *testing.T) {
	logger := logrus.New()
	logger.Out = io.Discard
	rest := &Rest{
		Logger:   logger,
		Backend:  "fixture",
		Handlers: []Registrar{alerts.NewHandler(alert.NewQueue(logger))},
	}
	router := rest.Router()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/status", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/alerts/drain", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
}
