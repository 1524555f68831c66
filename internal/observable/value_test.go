package observable

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValue_SetNotifiesSubscribers(t *testing.T) {
	v := New("es")

	var seen []string
	unsubscribe := v.Subscribe(func(s string) { seen = append(seen, s) })

	v.Set("en")
	v.Set("es")

	assert.Equal(t, []string{"en", "es"}, seen)
	assert.Equal(t, "es", v.Get())

	unsubscribe()
	v.Set("en")
	assert.Len(t, seen, 2)
	assert.Equal(t, 0, v.Subscribers())
}

func TestValue_UnsubscribeTwiceIsNoop(t *testing.T) {
	v := New(0)

	first := v.Subscribe(func(int) {})
	second := v.Subscribe(func(int) {})

	first()
	first()
	assert.Equal(t, 1, v.Subscribers())

	second()
	assert.Equal(t, 0, v.Subscribers())
}

func TestValue_SubscriberMaySetWithoutDeadlock(t *testing.T) {
	v := New(0)

	v.Subscribe(func(n int) {
		if n == 1 {
			v.Set(2)
		}
	})

	v.Set(1)
	assert.Equal(t, 2, v.Get())
}

func TestValue_ConcurrentSetDeliversLatestLast(t *testing.T) {
	v := New("")

	entered := make(chan struct{})
	release := make(chan struct{})
	var (
		mu        sync.Mutex
		delivered []string
		first     sync.Once
	)
	v.Subscribe(func(s string) {
		first.Do(func() {
			close(entered)
			<-release
		})
		mu.Lock()
		delivered = append(delivered, s)
		mu.Unlock()
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		v.Set("u1")
	}()

	<-entered
	v.Set("")
	close(release)
	<-done

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "", v.Get())
	assert.Equal(t, []string{"u1", ""}, delivered)
}
