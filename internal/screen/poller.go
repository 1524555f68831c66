package screen

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/banca-client/internal/gateway"
	"github.com/carson-networks/banca-client/internal/session"
)

const DefaultPollInterval = 30 * time.Second

// Poller keeps the unread notification count fresh while it is running.
// Overlapping polls are allowed; only the latest one lands.
type Poller struct {
	gw       *gateway.Gateway
	identity IdentitySource
	interval time.Duration
	logger   *logrus.Logger

	mu         sync.Mutex
	generation uint64
	unread     int
	running    bool
	cancel     context.CancelFunc
	unsub      func()

	loop     sync.WaitGroup
	inflight sync.WaitGroup
}

func NewPoller(gw *gateway.Gateway, identity IdentitySource, interval time.Duration, logger *logrus.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		gw:       gw,
		identity: identity,
		interval: interval,
		logger:   logger,
	}
}

// Start polls immediately and then on every interval until Stop. Identity
// changes trigger an immediate poll.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	p.running = true
	p.cancel = cancel
	p.mu.Unlock()

	unsub := p.identity.Subscribe(func(session.State) {
		p.poll(ctx)
	})
	p.mu.Lock()
	p.unsub = unsub
	p.mu.Unlock()

	p.poll(ctx)

	p.loop.Add(1)
	go func() {
		defer p.loop.Done()
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.poll(ctx)
			}
		}
	}()
}

// Stop cancels the schedule and waits for outstanding polls. Results that
// arrive after Stop are discarded.
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	p.generation++
	cancel, unsub := p.cancel, p.unsub
	p.cancel, p.unsub = nil, nil
	p.mu.Unlock()

	if unsub != nil {
		unsub()
	}
	cancel()
	p.loop.Wait()
	p.inflight.Wait()
}

func (p *Poller) Unread() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.unread
}

// Wait blocks until polls started so far have completed.
func (p *Poller) Wait() {
	p.inflight.Wait()
}

func (p *Poller) poll(ctx context.Context) {
	owner := p.identity.UserID()

	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.generation++
	gen := p.generation
	if owner == "" {
		p.unread = 0
		p.mu.Unlock()
		return
	}
	p.inflight.Add(1)
	p.mu.Unlock()

	go func() {
		defer p.inflight.Done()
		count := Unread(p.gw.FetchNotifications(ctx, owner))

		p.mu.Lock()
		defer p.mu.Unlock()
		if gen != p.generation {
			return
		}
		p.unread = count
		p.logger.WithFields(logrus.Fields{"userID": owner, "unread": count}).Debug("Screen.Poller.landed")
	}()
}
