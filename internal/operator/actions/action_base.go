package actions

import (
	"context"

	"github.com/carson-networks/banca-client/internal/gateway"
)

// IAction is a mutating operation. Results are stored on the action itself.
type IAction interface {
	Name() string
	Perform(ctx context.Context, gw *gateway.Gateway) error
}
