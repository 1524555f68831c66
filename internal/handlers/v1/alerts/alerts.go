package alerts

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/banca-client/internal/alert"
)

type AlertsOutput struct {
	Body struct {
		Alerts []alert.Alert `json:"alerts" doc:"Pending alerts, oldest first"`
	}
}

type drainer interface {
	Drain() []alert.Alert
}

// Handler hands pending alerts to the UI shell.
type Handler struct {
	Alerts drainer
}

func NewHandler(d drainer) *Handler {
	return &Handler{Alerts: d}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "drain-alerts",
		Method:      http.MethodPost,
		Path:        "/v1/alerts/drain",
		Summary:     "Take pending alerts",
		Description: "Returns every pending alert and clears the queue.",
		Tags:        []string{"Alerts"},
	}, h.drain)
}

func (h *Handler) drain(_ context.Context, _ *struct{}) (*AlertsOutput, error) {
	out := &AlertsOutput{}
	out.Body.Alerts = h.Alerts.Drain()
	return out, nil
}
