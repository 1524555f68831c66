package screen

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.Out = io.Discard
	return logger
}

// gatedFetch blocks each call until a value is sent on its release channel.
type gatedFetch struct {
	calls   int32
	started chan string
	release chan []string
}

func newGatedFetch() *gatedFetch {
	return &gatedFetch{
		started: make(chan string, 10),
		release: make(chan []string),
	}
}

func (g *gatedFetch) fetch(_ context.Context, owner string) ([]string, error) {
	atomic.AddInt32(&g.calls, 1)
	g.started <- owner
	return <-g.release, nil
}

func TestController_StaleFetchAfterLogoutIsDropped(t *testing.T) {
	g := newGatedFetch()
	c := NewController(context.Background(), "accounts", KindList, g.fetch, quietLogger())

	c.Mount("u1")
	<-g.started
	c.Refresh(TriggerFocus)
	<-g.started

	c.SetOwner("")
	assert.Equal(t, StatusEmpty, c.Status())

	g.release <- []string{"first"}
	g.release <- []string{"second"}
	c.Wait()

	view := c.View()
	assert.Equal(t, StatusEmpty, view.Status)
	assert.Empty(t, c.Items())
	assert.Equal(t, 0, view.Count)
}

func TestController_LastStartedWins(t *testing.T) {
	g := newGatedFetch()
	c := NewController(context.Background(), "cards", KindList, g.fetch, quietLogger())

	c.Mount("u1")
	<-g.started
	c.Refresh(TriggerLocale)
	<-g.started

	// Both fetches are blocked; whichever receives first, only the later
	// generation may land.
	g.release <- []string{"a"}
	g.release <- []string{"b"}
	c.Wait()

	require.Equal(t, StatusLoaded, c.Status())
	assert.Len(t, c.Items(), 1)
}

func TestController_NoOwnerSkipsFetch(t *testing.T) {
	g := newGatedFetch()
	c := NewController(context.Background(), "loans", KindList, g.fetch, quietLogger())

	c.Mount("")
	c.Refresh(TriggerFocus)
	c.Wait()

	assert.Equal(t, StatusEmpty, c.Status())
	assert.Equal(t, int32(0), atomic.LoadInt32(&g.calls))
}

func TestController_EmptyAndFailed(t *testing.T) {
	var fail atomic.Bool
	c := NewController(context.Background(), "payments", KindList, func(context.Context, string) ([]string, error) {
		if fail.Load() {
			return nil, errors.New("boom")
		}
		return nil, nil
	}, quietLogger())

	c.Mount("u1")
	c.Wait()
	assert.Equal(t, StatusEmpty, c.Status())

	fail.Store(true)
	c.Refresh(TriggerFocus)
	c.Wait()
	view := c.View()
	assert.Equal(t, StatusFailed, view.Status)
	assert.Equal(t, "boom", view.Error)
}

func TestController_DetailIgnoresFocus(t *testing.T) {
	var calls int32
	c := NewController(context.Background(), "movements", KindDetail, func(context.Context, string) ([]string, error) {
		atomic.AddInt32(&calls, 1)
		return []string{"m"}, nil
	}, quietLogger())

	c.Mount("u1")
	c.Wait()
	c.Refresh(TriggerFocus)
	c.Wait()
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	c.Refresh(TriggerLocale)
	c.Wait()
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestController_SameOwnerDoesNotRefetch(t *testing.T) {
	var calls int32
	c := NewController(context.Background(), "accounts", KindList, func(context.Context, string) ([]string, error) {
		atomic.AddInt32(&calls, 1)
		return []string{"x"}, nil
	}, quietLogger())

	c.Mount("u1")
	c.Wait()
	c.SetOwner("u1")
	c.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
