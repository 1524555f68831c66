package session

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/banca-client/internal/handlers/v1/problem"
	"github.com/carson-networks/banca-client/internal/logging"
	"github.com/carson-networks/banca-client/internal/session"
)

// Session is the API response model for the current session.
type Session struct {
	Authenticated bool   `json:"authenticated" doc:"Whether a user is signed in"`
	UserID        string `json:"userId,omitempty" doc:"Opaque user identity"`
	Email         string `json:"email,omitempty" doc:"User email"`
	MockMode      bool   `json:"mockMode" doc:"True when no auth provider is configured"`
}

// Credentials is the request body for login and sign-up.
type Credentials struct {
	Email    string `json:"email" minLength:"1" doc:"User email"`
	Password string `json:"password" doc:"User password"`
}

type SessionOutput struct {
	Body Session
}

type CredentialsInput struct {
	Body Credentials
}

type sessionStore interface {
	Current() session.State
	MockMode() bool
	Login(ctx context.Context, email, password string) (bool, error)
	SignUp(ctx context.Context, email, password string) (bool, error)
	Logout(ctx context.Context)
}

// Handler serves /v1/session.
type Handler struct {
	Sessions sessionStore
}

func NewHandler(sessions sessionStore) *Handler {
	return &Handler{Sessions: sessions}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-session",
		Method:      http.MethodGet,
		Path:        "/v1/session",
		Summary:     "Current session",
		Tags:        []string{"Session"},
	}, h.get)

	huma.Register(api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/v1/session/login",
		Summary:     "Sign in with email and password",
		Tags:        []string{"Session"},
	}, h.login)

	huma.Register(api, huma.Operation{
		OperationID: "signup",
		Method:      http.MethodPost,
		Path:        "/v1/session/signup",
		Summary:     "Register a new user",
		Description: "Signs the user in when the provider returns a session immediately.",
		Tags:        []string{"Session"},
	}, h.signUp)

	huma.Register(api, huma.Operation{
		OperationID: "logout",
		Method:      http.MethodPost,
		Path:        "/v1/session/logout",
		Summary:     "Sign out",
		Description: "Always clears the local session, even when the provider cannot be reached.",
		Tags:        []string{"Session"},
	}, h.logout)
}

func (h *Handler) current() *SessionOutput {
	st := h.Sessions.Current()
	out := &SessionOutput{Body: Session{
		Authenticated: st.Allowed,
		MockMode:      h.Sessions.MockMode(),
	}}
	if st.Session != nil {
		out.Body.UserID = st.Session.ID
		out.Body.Email = st.Session.Email
	}
	return out
}

func (h *Handler) get(_ context.Context, _ *struct{}) (*SessionOutput, error) {
	return h.current(), nil
}

func (h *Handler) login(ctx context.Context, input *CredentialsInput) (*SessionOutput, error) {
	logData := logging.GetLogData(ctx)

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("loginMs")
	}
	ok, err := h.Sessions.Login(ctx, input.Body.Email, input.Body.Password)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(http.StatusUnauthorized, err.Error())
	}
	if !ok {
		return nil, huma.NewError(http.StatusUnauthorized, "login failed")
	}

	out := h.current()
	if logData != nil {
		logData.AddData("userID", out.Body.UserID)
	}
	return out, nil
}

func (h *Handler) signUp(ctx context.Context, input *CredentialsInput) (*SessionOutput, error) {
	if _, err := h.Sessions.SignUp(ctx, input.Body.Email, input.Body.Password); err != nil {
		return nil, problem.From(err)
	}
	return h.current(), nil
}

func (h *Handler) logout(ctx context.Context, _ *struct{}) (*SessionOutput, error) {
	h.Sessions.Logout(ctx)
	return h.current(), nil
}
