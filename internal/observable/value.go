// Package observable holds process-wide single values that dependents
// subscribe to instead of reading ambient globals.
package observable

import "sync"

// Value is a last-writer-wins cell. Subscribers are called after every Set,
// outside the lock, in subscription order. Deliveries are serialized in Set
// order: a Set that arrives while another is delivering is queued and handed
// out by the delivering caller, so the last value delivered is always the
// current one.
type Value[T any] struct {
	mu     sync.RWMutex
	value  T
	nextID int
	subs   []subscription[T]

	pending    []T
	delivering bool
}

type subscription[T any] struct {
	id int
	fn func(T)
}

func New[T any](initial T) *Value[T] {
	return &Value[T]{value: initial}
}

func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.value
}

func (v *Value[T]) Set(value T) {
	v.mu.Lock()
	v.value = value
	v.pending = append(v.pending, value)
	if v.delivering {
		v.mu.Unlock()
		return
	}
	v.delivering = true

	for len(v.pending) > 0 {
		next := v.pending[0]
		v.pending = v.pending[1:]
		subs := make([]subscription[T], len(v.subs))
		copy(subs, v.subs)
		v.mu.Unlock()

		for _, s := range subs {
			s.fn(next)
		}

		v.mu.Lock()
	}
	v.pending = nil
	v.delivering = false
	v.mu.Unlock()
}

// Subscribe registers fn and returns the function that removes it. Calling the
// returned function more than once is a no-op.
func (v *Value[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	v.mu.Lock()
	id := v.nextID
	v.nextID++
	v.subs = append(v.subs, subscription[T]{id: id, fn: fn})
	v.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			v.mu.Lock()
			defer v.mu.Unlock()
			for i, s := range v.subs {
				if s.id == id {
					v.subs = append(v.subs[:i], v.subs[i+1:]...)
					return
				}
			}
		})
	}
}

func (v *Value[T]) Subscribers() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.subs)
}
