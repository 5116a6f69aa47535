// Package state implements the client-side resource state container: one
// generic store per resource type, fed by asynchronous request envelopes and
// consumed by list and form controllers. The thirteen per-resource slices a
// typical client hand-copies collapse into one implementation configured per
// resource.
package state

import "sync"

// Status is the lifecycle phase of one network operation.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusPending   Status = "pending"
	StatusFulfilled Status = "fulfilled"
	StatusRejected  Status = "rejected"
)

// Envelope tracks a single dispatched operation. It settles exactly once:
// pending -> fulfilled or pending -> rejected. The next dispatch of the same
// kind replaces it; no history is retained.
type Envelope struct {
	mu     sync.Mutex
	status Status
	reason string
	done   chan struct{}
}

func newEnvelope() *Envelope {
	return &Envelope{
		status: StatusPending,
		done:   make(chan struct{}),
	}
}

// settled returns an already-resolved envelope, used when an operation
// completes synchronously (e.g. opening a create form needs no fetch).
func settled(status Status, reason string) *Envelope {
	e := &Envelope{status: status, reason: reason, done: make(chan struct{})}
	close(e.done)
	return e
}

func (e *Envelope) fulfill() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.status != StatusPending {
		return
	}
	e.status = StatusFulfilled
	close(e.done)
}

func (e *Envelope) reject(reason string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.status != StatusPending {
		return
	}
	e.status = StatusRejected
	e.reason = reason
	close(e.done)
}

// Status returns the current lifecycle phase.
func (e *Envelope) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// Reason returns the rejection reason, empty unless rejected.
func (e *Envelope) Reason() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.reason
}

// Done is closed when the envelope settles.
func (e *Envelope) Done() <-chan struct{} {
	return e.done
}

// Wait blocks until settlement and reports whether the operation fulfilled.
func (e *Envelope) Wait() bool {
	<-e.done
	return e.Status() == StatusFulfilled
}
