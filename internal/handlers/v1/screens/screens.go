package screens

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/banca-client/internal/handlers/v1/problem"
	"github.com/carson-networks/banca-client/internal/screen"
)

type ScreenInput struct {
	Screen string `path:"screen" enum:"dashboard,accounts,movements,cards,loans,payments,notifications" doc:"Screen name"`
}

type ScreenOutput struct {
	Body screen.View
}

type OpenAccountInput struct {
	AccountID string `path:"accountID" doc:"Account whose movements to show"`
}

type UnreadOutput struct {
	Body struct {
		Unread int `json:"unread" doc:"Unread notification count"`
	}
}

type coordinator interface {
	View(name string) (screen.View, error)
	Focus(name string) error
	OpenAccount(accountID string)
}

type unreadCounter interface {
	Unread() int
}

// Handler exposes screen state to the UI shell.
type Handler struct {
	Screens coordinator
	Poller  unreadCounter
}

func NewHandler(screens coordinator, poller unreadCounter) *Handler {
	return &Handler{Screens: screens, Poller: poller}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-screen",
		Method:      http.MethodGet,
		Path:        "/v1/screens/{screen}",
		Summary:     "Screen state snapshot",
		Tags:        []string{"Screens"},
	}, h.get)

	huma.Register(api, huma.Operation{
		OperationID: "focus-screen",
		Method:      http.MethodPost,
		Path:        "/v1/screens/{screen}/focus",
		Summary:     "Report that a screen regained focus",
		Description: "List screens refetch; detail screens ignore focus.",
		Tags:        []string{"Screens"},
	}, h.focus)

	huma.Register(api, huma.Operation{
		OperationID: "open-account",
		Method:      http.MethodPost,
		Path:        "/v1/accounts/{accountID}/open",
		Summary:     "Open the movements screen of an account",
		Tags:        []string{"Screens"},
	}, h.open)

	huma.Register(api, huma.Operation{
		OperationID: "unread-notifications",
		Method:      http.MethodGet,
		Path:        "/v1/notifications/unread",
		Summary:     "Unread notification count",
		Tags:        []string{"Screens"},
	}, h.unread)
}

func (h *Handler) get(_ context.Context, input *ScreenInput) (*ScreenOutput, error) {
	view, err := h.Screens.View(input.Screen)
	if err != nil {
		return nil, problem.From(err)
	}
	return &ScreenOutput{Body: view}, nil
}

func (h *Handler) focus(_ context.Context, input *ScreenInput) (*ScreenOutput, error) {
	if err := h.Screens.Focus(input.Screen); err != nil {
		return nil, problem.From(err)
	}
	return h.get(context.Background(), input)
}

func (h *Handler) open(_ context.Context, input *OpenAccountInput) (*ScreenOutput, error) {
	h.Screens.OpenAccount(input.AccountID)
	return h.get(context.Background(), &ScreenInput{Screen: screen.Movements})
}

func (h *Handler) unread(_ context.Context, _ *struct{}) (*UnreadOutput, error) {
	out := &UnreadOutput{}
	out.Body.Unread = h.Poller.Unread()
	return out, nil
}
