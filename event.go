package sapient

import (
	"sync"
	"time"
)

// event is a manual-reset gate, broadcast on Set and satisfied immediately
// by any waiter already blocked in Wait/WaitFor. Used to let callers block
// until the connection manager reaches the Online state without polling.
type event struct {
	mu      sync.Mutex
	cond    *sync.Cond
	isSet   bool
	waiters []chan struct{}
}

func newEvent() *event {
	e := &event{}
	e.cond = sync.NewCond(&e.mu)
	return e
}

// Set marks the event as satisfied and wakes every current waiter.
func (e *event) Set() {
	e.mu.Lock()
	e.isSet = true
	waiters := e.waiters
	e.waiters = nil
	e.mu.Unlock()
	for _, w := range waiters {
		close(w)
	}
	e.cond.Broadcast()
}

// Clear resets the event to unsatisfied.
func (e *event) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.isSet = false
}

// IsSet reports the current state without blocking.
func (e *event) IsSet() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.isSet
}

// Wait blocks until the event is set. Returns immediately if already set.
func (e *event) Wait() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for !e.isSet {
		e.cond.Wait()
	}
}

// WaitFor blocks until the event is set or d elapses, returning whether the
// event was observed set. A zero or negative d behaves like IsSet.
func (e *event) WaitFor(d time.Duration) bool {
	e.mu.Lock()
	if e.isSet {
		e.mu.Unlock()
		return true
	}
	if d <= 0 {
		e.mu.Unlock()
		return false
	}
	ch := make(chan struct{})
	e.waiters = append(e.waiters, ch)
	e.mu.Unlock()

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ch:
		return true
	case <-t.C:
		return e.IsSet()
	}
}
