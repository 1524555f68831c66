package status

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/carson-networks/banca-client/internal/logging"
)

type Status struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
}

type Handler struct {
	Backend string
}

func NewHandler(backend string) Handler {
	return Handler{Backend: backend}
}

func (h *Handler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	if req.Method != "GET" {
		w.WriteHeader(http.StatusBadRequest)
		return errors.New("status: method not GET")
	}

	logData.AddData("backend", h.Backend)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	return json.NewEncoder(w).Encode(Status{Status: "ok", Backend: h.Backend})
}
