// Package session owns the authenticated identity and mediates login and
// logout against the auth provider, with an offline mock mode when no
// provider is configured.
package session

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/banca-client/internal/alert"
	"github.com/carson-networks/banca-client/internal/auth"
	"github.com/carson-networks/banca-client/internal/observable"
)

const (
	MockUserID = "mock-user"
	mockSuffix = ".com"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Session is the in-memory record of the authenticated user.
type Session struct {
	ID    string
	Email string
	Token string
}

// State is what dependents observe. Allowed is false whenever Session is nil.
type State struct {
	Session *Session
	Allowed bool
}

func (s State) UserID() string {
	if s.Session == nil {
		return ""
	}
	return s.Session.ID
}

// Translator resolves user-facing message keys.
type Translator interface {
	T(key string, args ...interface{}) string
}

type Store struct {
	state    *observable.Value[State]
	provider auth.Provider
	alerts   alert.Alerter
	tr       Translator
	logger   *logrus.Logger
}

// NewStore builds a Store. A nil provider selects mock mode.
func NewStore(provider auth.Provider, alerts alert.Alerter, tr Translator, logger *logrus.Logger) *Store {
	return &Store{
		state:    observable.New(State{}),
		provider: provider,
		alerts:   alerts,
		tr:       tr,
		logger:   logger,
	}
}

func (s *Store) Current() State {
	return s.state.Get()
}

func (s *Store) UserID() string {
	return s.state.Get().UserID()
}

func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	return s.state.Subscribe(fn)
}

// MockMode reports whether logins are decided locally.
func (s *Store) MockMode() bool {
	return s.provider == nil
}

// RestoreSession asks the provider once for an existing session. Errors are
// logged and the store stays unauthenticated.
func (s *Store) RestoreSession(ctx context.Context) bool {
	if s.provider == nil {
		return false
	}

	ps, err := s.provider.GetSession(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("Session.RestoreSession.error")
		return false
	}
	if !ps.Valid() {
		return false
	}

	s.populate(ps)
	s.logger.WithField("userID", ps.User.ID).Info("Session.RestoreSession.restored")
	return true
}

// Login signs in with the provider, or applies the mock rule when none is
// configured. Failures raise an alert and leave the state untouched.
func (s *Store) Login(ctx context.Context, email, password string) (bool, error) {
	if s.provider == nil {
		if !strings.HasSuffix(email, mockSuffix) {
			s.logger.WithField("email", email).Info("Session.Login.mockRejected")
			return false, ErrInvalidCredentials
		}
		s.state.Set(State{Session: &Session{ID: MockUserID, Email: email}, Allowed: true})
		s.logger.WithField("email", email).Info("Session.Login.mock")
		return true, nil
	}

	ps, err := s.provider.SignInWithPassword(ctx, email, password)
	if err != nil {
		msg := err.Error()
		if msg == "" {
			msg = s.tr.T("invalidCredentials")
		}
		s.alerts.Alert(s.tr.T("errorTitle"), msg)
		s.logger.WithError(err).Warn("Session.Login.error")
		return false, err
	}
	if !ps.Valid() {
		s.alerts.Alert(s.tr.T("errorTitle"), s.tr.T("loginFailed"))
		return false, errors.New(s.tr.T("loginFailed"))
	}

	s.populate(ps)
	s.logger.WithField("userID", ps.User.ID).Info("Session.Login.success")
	return true, nil
}

// SignUp registers with the provider and signs in when the provider returns
// a usable session right away.
func (s *Store) SignUp(ctx context.Context, email, password string) (bool, error) {
	if s.provider == nil {
		return s.Login(ctx, email, password)
	}

	ps, err := s.provider.SignUp(ctx, email, password)
	if err != nil {
		s.alerts.Alert(s.tr.T("errorTitle"), err.Error())
		s.logger.WithError(err).Warn("Session.SignUp.error")
		return false, err
	}
	if !ps.Valid() {
		s.logger.WithField("userID", ps.User.ID).Info("Session.SignUp.pendingConfirmation")
		return false, nil
	}

	s.populate(ps)
	return true, nil
}

// Logout clears local state regardless of whether the provider could be
// reached.
func (s *Store) Logout(ctx context.Context) {
	defer s.state.Set(State{})

	if s.provider == nil {
		return
	}
	if err := s.provider.SignOut(ctx); err != nil {
		s.logger.WithError(err).Warn("Session.Logout.error")
	}
}

func (s *Store) populate(ps *auth.Session) {
	s.state.Set(State{
		Session: &Session{
			ID:    ps.User.ID,
			Email: ps.User.Email,
			Token: ps.AccessToken,
		},
		Allowed: true,
	})
}
