package acktracker

import (
	"testing"
	"time"
)

func TestTrackerFiresOnceThresholdReached(t *testing.T) {
	r := NewRegistry()
	tr := r.Register(1, 2)

	r.Notify(1, "secondary-a")
	select {
	case <-tr.Done():
		t.Fatalf("fired after only 1 of 2 required acks")
	case <-time.After(20 * time.Millisecond):
	}

	r.Notify(1, "secondary-b")
	select {
	case <-tr.Done():
	case <-time.After(time.Second):
		t.Fatalf("did not fire after reaching required acks")
	}

	if got := len(tr.Acked()); got != 2 {
		t.Fatalf("Acked() len = %d, want 2", got)
	}
}

func TestDuplicateAckDoesNotDoubleCount(t *testing.T) {
	r := NewRegistry()
	tr := r.Register(1, 2)

	r.Notify(1, "secondary-a")
	r.Notify(1, "secondary-a")
	r.Notify(1, "secondary-a")

	select {
	case <-tr.Done():
		t.Fatalf("fired from repeated acks by the same peer")
	default:
	}
	if got := len(tr.Acked()); got != 1 {
		t.Fatalf("Acked() len = %d, want 1", got)
	}
}

func TestDeregisterMakesNotifyANoop(t *testing.T) {
	r := NewRegistry()
	r.Register(1, 1)
	r.Deregister(1)

	// Should not panic, and should simply do nothing.
	r.Notify(1, "secondary-a")
}

func TestNotifyUnknownSeqIsNoop(t *testing.T) {
	r := NewRegistry()
	r.Notify(999, "secondary-a")
}
