package auth

import "sync"

// Result is delivered to every waiter when an in-flight refresh settles.
// Exactly one of Access or Err is meaningful.
type Result struct {
	Access string
	Err    error
}

// Coordinator serializes token refreshes. At most one refresh is in
// flight system-wide; requests that hit an expired token while a refresh
// is running enqueue themselves and share its result instead of issuing
// their own refresh call.
type Coordinator struct {
	mu         sync.Mutex
	refreshing bool
	waiters    []chan Result
}

// NewCoordinator creates an idle Coordinator.
func NewCoordinator() *Coordinator {
	return &Coordinator{}
}

// Begin attempts to claim the refresher role. It returns true when the
// caller should perform the refresh, false when one is already in flight
// (in which case the caller must Enqueue and wait).
func (c *Coordinator) Begin() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.refreshing {
		return false
	}
	c.refreshing = true
	return true
}

// Enqueue registers the caller as a waiter on the in-flight refresh.
// The returned channel receives exactly one Result. Prefer Acquire,
// which folds the Begin check and the enqueue into one locked decision.
func (c *Coordinator) Enqueue() <-chan Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enqueueLocked()
}

func (c *Coordinator) enqueueLocked() <-chan Result {
	ch := make(chan Result, 1)
	c.waiters = append(c.waiters, ch)
	return ch
}

// Acquire atomically decides the caller's role: (true, nil) means the
// caller must refresh and then ResolveAll or FailAll; (false, ch) means a
// refresh is in flight and the caller waits on ch.
func (c *Coordinator) Acquire() (refresher bool, wait <-chan Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.refreshing {
		return false, c.enqueueLocked()
	}
	c.refreshing = true
	return true, nil
}

// ResolveAll delivers the new access token to every waiter in FIFO order
// and resets the in-flight flag.
func (c *Coordinator) ResolveAll(access string) {
	c.settle(Result{Access: access})
}

// FailAll delivers the fatal error to every waiter and resets the
// in-flight flag. No further refresh will be attempted for these waiters.
func (c *Coordinator) FailAll(err error) {
	c.settle(Result{Err: err})
}

func (c *Coordinator) settle(res Result) {
	c.mu.Lock()
	waiters := c.waiters
	c.waiters = nil
	c.refreshing = false
	c.mu.Unlock()

	for _, ch := range waiters {
		ch <- res
	}
}

// Reset clears the in-flight flag without notifying waiters. Only for
// tests and for unwinding a refresh that never started.
func (c *Coordinator) Reset() {
	c.mu.Lock()
	c.refreshing = false
	c.mu.Unlock()
}
