// Package store holds the counter state shared between the view and
// whatever else wants to observe it.
package store

import "github.com/vcrobe/counter/signals"

// Counter is the single source of truth for a non-negative count.
// Create one per independent counter and hand it to the views that show it.
type Counter struct {
	value *signals.Signal[int]
}

// New returns a counter starting at zero.
func New() *Counter {
	return &Counter{value: signals.New(0)}
}

// Increment adds one and notifies every subscriber with the new value.
func (c *Counter) Increment() {
	c.value.Update(func(v int) int { return v + 1 })
}

// Reset sets the count back to zero. Subscribers are notified even when the
// count already was zero.
func (c *Counter) Reset() {
	c.value.Set(0)
}

// Value returns the current count.
func (c *Counter) Value() int {
	return c.value.Get()
}

// Subscribe registers fn to receive the new value after each mutation.
func (c *Counter) Subscribe(fn func(int)) (unsubscribe func()) {
	return c.value.Subscribe(fn)
}

// Subscribers reports how many observers are currently attached.
func (c *Counter) Subscribers() int {
	return c.value.Len()
}
