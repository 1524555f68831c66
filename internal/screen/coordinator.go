package screen

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/banca-client/internal/gateway"
	"github.com/carson-networks/banca-client/internal/locale"
	"github.com/carson-networks/banca-client/internal/session"
)

var ErrUnknownScreen = errors.New("unknown screen")

// IdentitySource is the session store as seen by screens.
type IdentitySource interface {
	UserID() string
	Subscribe(fn func(session.State)) (unsubscribe func())
}

// LocaleSource is the locale store as seen by screens.
type LocaleSource interface {
	Subscribe(fn func(locale.Language)) (unsubscribe func())
}

// Coordinator owns every mounted screen and fans session and locale
// changes out to them.
type Coordinator struct {
	logger *logrus.Logger

	screens map[string]Screen
	order   []string
	detail  *AccountDetail

	mu     sync.Mutex
	unsubs []func()
}

func NewCoordinator(ctx context.Context, gw *gateway.Gateway, logger *logrus.Logger) *Coordinator {
	c := &Coordinator{
		logger:  logger,
		screens: make(map[string]Screen),
	}
	c.detail = NewAccountDetailScreen(ctx, gw, logger)
	for _, s := range []Screen{
		NewDashboardScreen(ctx, gw, logger),
		NewAccountsScreen(ctx, gw, logger),
		c.detail,
		NewCardsScreen(ctx, gw, logger),
		NewLoansScreen(ctx, gw, logger),
		NewPaymentsScreen(ctx, gw, logger),
		NewNotificationsScreen(ctx, gw, logger),
	} {
		c.screens[s.Name()] = s
		c.order = append(c.order, s.Name())
	}
	return c
}

// Bind mounts every screen with the current identity and subscribes to
// identity and locale changes.
func (c *Coordinator) Bind(identity IdentitySource, lang LocaleSource) {
	owner := identity.UserID()
	for _, name := range c.order {
		c.screens[name].Mount(owner)
	}

	unsubIdentity := identity.Subscribe(func(session.State) {
		owner := identity.UserID()
		c.logger.WithField("userID", owner).Debug("Screen.Coordinator.identity")
		for _, name := range c.order {
			c.screens[name].SetOwner(owner)
		}
	})
	unsubLocale := lang.Subscribe(func(l locale.Language) {
		c.logger.WithField("language", string(l)).Debug("Screen.Coordinator.locale")
		c.Refresh(TriggerLocale)
	})

	c.mu.Lock()
	c.unsubs = append(c.unsubs, unsubIdentity, unsubLocale)
	c.mu.Unlock()
}

// Refresh re-triggers the named screens, or all of them when none are named.
func (c *Coordinator) Refresh(trigger Trigger, names ...string) {
	if len(names) == 0 {
		names = c.order
	}
	for _, name := range names {
		if s, ok := c.screens[name]; ok {
			s.Refresh(trigger)
		}
	}
}

// Focus reports that the named screen regained focus.
func (c *Coordinator) Focus(name string) error {
	s, ok := c.screens[name]
	if !ok {
		return ErrUnknownScreen
	}
	s.Refresh(TriggerFocus)
	return nil
}

func (c *Coordinator) View(name string) (View, error) {
	s, ok := c.screens[name]
	if !ok {
		return View{}, ErrUnknownScreen
	}
	return s.View(), nil
}

// OpenAccount mounts the movements screen on accountID.
func (c *Coordinator) OpenAccount(accountID string) {
	c.detail.Open(accountID)
}

// Wait blocks until no screen has a fetch in flight.
func (c *Coordinator) Wait() {
	for _, name := range c.order {
		c.screens[name].Wait()
	}
}

// Close unsubscribes from the session and locale stores.
func (c *Coordinator) Close() {
	c.mu.Lock()
	unsubs := c.unsubs
	c.unsubs = nil
	c.mu.Unlock()
	for _, u := range unsubs {
		u()
	}
}
