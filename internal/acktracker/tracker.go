// Package acktracker implements the write-concern coordinator's in-flight
// ack bookkeeping: one tracker per in-flight write with required acks > 0,
// keyed by sequence number, signalling a submitting request exactly once
// when enough distinct peers have acknowledged.
package acktracker

import "sync"

// Tracker records acks for a single in-flight write.
type Tracker struct {
	required int

	mu     sync.Mutex
	acked  map[string]bool
	done   chan struct{}
	closed bool
}

func newTracker(required int) *Tracker {
	return &Tracker{
		required: required,
		acked:    make(map[string]bool),
		done:     make(chan struct{}),
	}
}

// Ack records peerID as having acknowledged. It fires the completion
// signal exactly once, the moment the distinct-ack count first reaches
// the required threshold. Acks after the signal has fired, or for a peer
// that already acked, are absorbed without effect.
func (t *Tracker) Ack(peerID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return
	}
	t.acked[peerID] = true
	if len(t.acked) >= t.required {
		t.closed = true
		close(t.done)
	}
}

// Done returns the channel that closes once required distinct acks have
// been observed.
func (t *Tracker) Done() <-chan struct{} {
	return t.done
}

// Acked returns a snapshot of the peer IDs that have acknowledged so far.
func (t *Tracker) Acked() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, 0, len(t.acked))
	for id := range t.acked {
		out = append(out, id)
	}
	return out
}

// Registry is the map of in-flight trackers, keyed by sequence number.
// A write registers its tracker at submission time and deregisters it
// when the request returns, whichever happens first: on success or on
// timeout. A worker delivering to a deregistered seq simply finds nothing
// to notify — eventual consistency does not depend on the tracker.
type Registry struct {
	mu       sync.Mutex
	trackers map[uint64]*Tracker
}

// NewRegistry returns an empty tracker registry.
func NewRegistry() *Registry {
	return &Registry{trackers: make(map[uint64]*Tracker)}
}

// Register creates and stores a tracker for seq requiring the given
// number of distinct acks.
func (r *Registry) Register(seq uint64, required int) *Tracker {
	t := newTracker(required)
	r.mu.Lock()
	r.trackers[seq] = t
	r.mu.Unlock()
	return t
}

// Notify records an ack from peerID for seq, if a tracker is still
// registered for it. It is the worker's sole entry point into this
// package.
func (r *Registry) Notify(seq uint64, peerID string) {
	r.mu.Lock()
	t, ok := r.trackers[seq]
	r.mu.Unlock()
	if !ok {
		return
	}
	t.Ack(peerID)
}

// Deregister removes the tracker for seq. Called once the submitting
// request returns, by success or by timeout.
func (r *Registry) Deregister(seq uint64) {
	r.mu.Lock()
	delete(r.trackers, seq)
	r.mu.Unlock()
}
