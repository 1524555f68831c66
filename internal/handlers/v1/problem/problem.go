// Package problem maps core errors onto huma status errors.
package problem

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/banca-client/internal/gateway"
	"github.com/carson-networks/banca-client/internal/screen"
	"github.com/carson-networks/banca-client/internal/session"
)

// From converts err into a huma error whose message is err's message.
func From(err error) error {
	if err == nil {
		return nil
	}

	var inputErr *screen.InputError
	switch {
	case errors.As(err, &inputErr):
		return huma.NewError(http.StatusBadRequest, inputErr.Message)
	case errors.Is(err, screen.ErrNotAuthenticated), errors.Is(err, session.ErrInvalidCredentials):
		return huma.NewError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, screen.ErrUnknownScreen):
		return huma.NewError(http.StatusNotFound, err.Error())
	case gateway.IsKind(err, gateway.KindValidation):
		return huma.NewError(http.StatusBadRequest, err.Error())
	case gateway.IsKind(err, gateway.KindNotConfigured):
		return huma.NewError(http.StatusServiceUnavailable, err.Error())
	case gateway.IsKind(err, gateway.KindNotFound):
		return huma.NewError(http.StatusNotFound, err.Error())
	case gateway.IsKind(err, gateway.KindRemote):
		return huma.NewError(http.StatusBadGateway, err.Error())
	}
	return huma.NewError(http.StatusInternalServerError, err.Error())
}
