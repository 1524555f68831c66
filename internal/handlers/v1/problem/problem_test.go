package problem

import (
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/banca-client/internal/gateway"
	"github.com/carson-networks/banca-client/internal/screen"
)

func status(t *testing.T, err error) int {
	t.Helper()
	var se huma.StatusError
	require.True(t, errors.As(From(err), &se))
	return se.GetStatus()
}

func TestFrom(t *testing.T) {
	assert.Nil(t, From(nil))
	assert.Equal(t, http.StatusBadRequest, status(t, &screen.InputError{Message: "x"}))
	assert.Equal(t, http.StatusUnauthorized, status(t, screen.ErrNotAuthenticated))
	assert.Equal(t, http.StatusBadRequest, status(t, &gateway.Error{Kind: gateway.KindValidation, Err: gateway.ErrSameAccount}))
	assert.Equal(t, http.StatusServiceUnavailable, status(t, &gateway.Error{Kind: gateway.KindNotConfigured, Err: gateway.ErrNotConfigured}))
	assert.Equal(t, http.StatusNotFound, status(t, &gateway.Error{Kind: gateway.KindNotFound, Err: gateway.ErrAccountNotFound}))
	assert.Equal(t, http.StatusBadGateway, status(t, &gateway.Error{Kind: gateway.KindRemote, Err: errors.New("Saldo insuficiente")}))
	assert.Equal(t, http.StatusInternalServerError, status(t, errors.New("boom")))
}

func TestFrom_KeepsMessage(t *testing.T) {
	err := From(&gateway.Error{Kind: gateway.KindRemote, Err: errors.New("Saldo insuficiente")})
	var model *huma.ErrorModel
	require.True(t, errors.As(err, &model))
	assert.Equal(t, "Saldo insuficiente", model.Detail)
}
