package screen

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/carson-networks/banca-client/internal/gateway"
)

const (
	Accounts      = "accounts"
	Movements     = "movements"
	Cards         = "cards"
	Loans         = "loans"
	Payments      = "payments"
	Notifications = "notifications"
	Dashboard     = "dashboard"
)

func NewAccountsScreen(ctx context.Context, gw *gateway.Gateway, logger *logrus.Logger) *Controller[gateway.Account] {
	return NewController(ctx, Accounts, KindList, func(ctx context.Context, owner string) ([]gateway.Account, error) {
		return gw.FetchAccounts(ctx, owner), nil
	}, logger)
}

func NewCardsScreen(ctx context.Context, gw *gateway.Gateway, logger *logrus.Logger) *Controller[gateway.Card] {
	return NewController(ctx, Cards, KindList, func(ctx context.Context, owner string) ([]gateway.Card, error) {
		return gw.FetchCards(ctx, owner), nil
	}, logger)
}

func NewLoansScreen(ctx context.Context, gw *gateway.Gateway, logger *logrus.Logger) *Controller[gateway.Loan] {
	return NewController(ctx, Loans, KindList, func(ctx context.Context, owner string) ([]gateway.Loan, error) {
		return gw.FetchLoans(ctx, owner), nil
	}, logger)
}

func NewPaymentsScreen(ctx context.Context, gw *gateway.Gateway, logger *logrus.Logger) *Controller[gateway.Payment] {
	return NewController(ctx, Payments, KindList, func(ctx context.Context, owner string) ([]gateway.Payment, error) {
		return gw.FetchPayments(ctx, owner), nil
	}, logger)
}

func NewNotificationsScreen(ctx context.Context, gw *gateway.Gateway, logger *logrus.Logger) *Controller[gateway.Notification] {
	return NewController(ctx, Notifications, KindList, func(ctx context.Context, owner string) ([]gateway.Notification, error) {
		return gw.FetchNotifications(ctx, owner), nil
	}, logger)
}

// AccountDetail is the movements screen of one account. It fetches on open
// and on identity or locale changes, never on focus. An identity change closes
// the open account, and movements are only fetched for an account the owner
// holds.
type AccountDetail struct {
	*Controller[gateway.Transaction]

	mu        sync.RWMutex
	accountID string
}

func NewAccountDetailScreen(ctx context.Context, gw *gateway.Gateway, logger *logrus.Logger) *AccountDetail {
	d := &AccountDetail{}
	d.Controller = NewController(ctx, Movements, KindDetail, func(ctx context.Context, owner string) ([]gateway.Transaction, error) {
		accountID := d.AccountID()
		if accountID == "" {
			return nil, nil
		}
		if !ownsAccount(gw.FetchAccounts(ctx, owner), accountID) {
			logger.WithFields(logrus.Fields{
				"userID":    owner,
				"accountID": accountID,
			}).Warn("Screen.AccountDetail.foreign account")
			return nil, nil
		}
		return gw.FetchAccountMovements(ctx, accountID), nil
	}, logger)
	return d
}

// Open mounts the screen on accountID.
func (d *AccountDetail) Open(accountID string) {
	d.mu.Lock()
	d.accountID = accountID
	d.mu.Unlock()
	d.Refresh(TriggerMount)
}

// SetOwner closes the open account before applying an identity change.
func (d *AccountDetail) SetOwner(owner string) {
	d.Controller.mu.Lock()
	changed := d.Controller.owner != owner
	d.Controller.mu.Unlock()

	if changed {
		d.mu.Lock()
		d.accountID = ""
		d.mu.Unlock()
	}
	d.Controller.SetOwner(owner)
}

func (d *AccountDetail) AccountID() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.accountID
}

func ownsAccount(accounts []gateway.Account, accountID string) bool {
	for _, a := range accounts {
		if a.ID == accountID {
			return true
		}
	}
	return false
}

// Summary is the home screen: the user's accounts plus headline counts.
type Summary struct {
	Accounts      []gateway.Account `json:"accounts"`
	TotalBalance  decimal.Decimal   `json:"totalBalance"`
	Cards         int               `json:"cards"`
	Loans         int               `json:"loans"`
	UnreadNotices int               `json:"unreadNotifications"`
}

func NewDashboardScreen(ctx context.Context, gw *gateway.Gateway, logger *logrus.Logger) *Controller[Summary] {
	return NewController(ctx, Dashboard, KindList, func(ctx context.Context, owner string) ([]Summary, error) {
		var (
			accounts      []gateway.Account
			cards         []gateway.Card
			loans         []gateway.Loan
			notifications []gateway.Notification
		)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			accounts = gw.FetchAccounts(gctx, owner)
			return gctx.Err()
		})
		g.Go(func() error {
			cards = gw.FetchCards(gctx, owner)
			return gctx.Err()
		})
		g.Go(func() error {
			loans = gw.FetchLoans(gctx, owner)
			return gctx.Err()
		})
		g.Go(func() error {
			notifications = gw.FetchNotifications(gctx, owner)
			return gctx.Err()
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}

		s := Summary{
			Accounts:      accounts,
			TotalBalance:  decimal.Zero,
			Cards:         len(cards),
			Loans:         len(loans),
			UnreadNotices: Unread(notifications),
		}
		for _, a := range accounts {
			s.TotalBalance = s.TotalBalance.Add(a.Balance)
		}
		return []Summary{s}, nil
	}, logger)
}

// Unread counts notifications not yet read.
func Unread(notifications []gateway.Notification) int {
	n := 0
	for _, item := range notifications {
		if !item.Read {
			n++
		}
	}
	return n
}
