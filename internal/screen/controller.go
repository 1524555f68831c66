// Package screen decides when each screen refetches from the gateway and
// keeps its rendered state consistent with the latest session and locale.
package screen

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusLoaded  Status = "loaded"
	StatusEmpty   Status = "empty"
	StatusFailed  Status = "failed"
)

// Kind separates list screens, which refetch on focus, from detail screens,
// which do not.
type Kind int

const (
	KindList Kind = iota
	KindDetail
)

type Trigger string

const (
	TriggerMount    Trigger = "mount"
	TriggerIdentity Trigger = "identity"
	TriggerLocale   Trigger = "locale"
	TriggerFocus    Trigger = "focus"
	TriggerMutation Trigger = "mutation"
)

// FetchFunc loads the records of a screen for owner. Owner is never empty.
type FetchFunc[T any] func(ctx context.Context, owner string) ([]T, error)

// View is the type-erased snapshot served to the UI shell.
type View struct {
	Screen     string    `json:"screen"`
	Status     Status    `json:"status"`
	Items      any       `json:"items"`
	Count      int       `json:"count"`
	Error      string    `json:"error,omitempty"`
	Generation uint64    `json:"generation"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Screen is what the Coordinator drives.
type Screen interface {
	Name() string
	Kind() Kind
	Mount(owner string)
	SetOwner(owner string)
	Refresh(trigger Trigger)
	View() View
	Wait()
}

// Controller runs the Idle, Loading, Loaded/Empty/Failed cycle for one
// screen. Every trigger starts a new generation; a fetch only lands if its
// generation is still the latest when it completes.
type Controller[T any] struct {
	name   string
	kind   Kind
	fetch  FetchFunc[T]
	logger *logrus.Logger
	ctx    context.Context

	mu         sync.Mutex
	owner      string
	generation uint64
	status     Status
	items      []T
	err        string
	updatedAt  time.Time

	inflight sync.WaitGroup
}

func NewController[T any](ctx context.Context, name string, kind Kind, fetch FetchFunc[T], logger *logrus.Logger) *Controller[T] {
	return &Controller[T]{
		name:   name,
		kind:   kind,
		fetch:  fetch,
		logger: logger,
		ctx:    ctx,
		status: StatusIdle,
		items:  []T{},
	}
}

func (c *Controller[T]) Name() string {
	return c.name
}

func (c *Controller[T]) Kind() Kind {
	return c.kind
}

// Mount sets the owner and performs the first fetch.
func (c *Controller[T]) Mount(owner string) {
	c.mu.Lock()
	c.owner = owner
	c.mu.Unlock()
	c.Refresh(TriggerMount)
}

// SetOwner applies an identity change. A change to an empty owner clears
// the screen without calling the gateway.
func (c *Controller[T]) SetOwner(owner string) {
	c.mu.Lock()
	changed := c.owner != owner
	c.owner = owner
	c.mu.Unlock()

	if changed {
		c.Refresh(TriggerIdentity)
	}
}

// Refresh re-enters Loading for trigger. Focus is ignored on detail screens.
func (c *Controller[T]) Refresh(trigger Trigger) {
	if trigger == TriggerFocus && c.kind != KindList {
		return
	}

	c.mu.Lock()
	c.generation++
	gen := c.generation
	owner := c.owner
	if owner == "" {
		c.status = StatusEmpty
		c.items = []T{}
		c.err = ""
		c.updatedAt = time.Now()
		c.mu.Unlock()
		return
	}
	c.status = StatusLoading
	c.inflight.Add(1)
	c.mu.Unlock()

	go func() {
		defer c.inflight.Done()
		items, err := c.fetch(c.ctx, owner)
		c.land(gen, trigger, items, err)
	}()
}

func (c *Controller[T]) land(gen uint64, trigger Trigger, items []T, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	log := c.logger.WithFields(logrus.Fields{
		"screen":     c.name,
		"trigger":    string(trigger),
		"generation": gen,
	})
	if gen != c.generation {
		log.WithField("current", c.generation).Debug("Screen.fetch.superseded")
		return
	}

	c.updatedAt = time.Now()
	switch {
	case err != nil:
		c.status = StatusFailed
		c.items = []T{}
		c.err = err.Error()
		log.WithError(err).Warn("Screen.fetch.failed")
	case len(items) == 0:
		c.status = StatusEmpty
		c.items = []T{}
		c.err = ""
	default:
		c.status = StatusLoaded
		c.items = items
		c.err = ""
	}
	log.WithField("status", string(c.status)).Debug("Screen.fetch.landed")
}

// Items returns the records currently rendered.
func (c *Controller[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Controller[T]) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

func (c *Controller[T]) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]T, len(c.items))
	copy(items, c.items)
	return View{
		Screen:     c.name,
		Status:     c.status,
		Items:      items,
		Count:      len(items),
		Error:      c.err,
		Generation: c.generation,
		UpdatedAt:  c.updatedAt,
	}
}

// Wait blocks until every fetch started so far has completed.
func (c *Controller[T]) Wait() {
	c.inflight.Wait()
}
