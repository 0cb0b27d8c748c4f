// Package secondary wires the secondary apply engine and its optional
// artificial apply delay into the object the HTTP surface drives.
package secondary

import (
	"net/http"
	"time"

	"github.com/ppriyankuu/replicated-log/internal/apierr"
	"github.com/ppriyankuu/replicated-log/internal/secondarylog"
)

// State is a secondary node's complete in-memory state.
type State struct {
	log   *secondarylog.Log
	delay time.Duration
}

// New creates a secondary State. delay is an optional artificial pause
// applied before every apply, for testing replication timing.
func New(delay time.Duration) *State {
	return &State{log: secondarylog.New(), delay: delay}
}

// Delay returns the configured artificial apply delay.
func (s *State) Delay() time.Duration {
	return s.delay
}

// Replicate applies an incoming (seq, msg) pair. seq must be positive;
// this is the spec's resolved behavior for the source's ambiguous
// seq<=0 handling.
func (s *State) Replicate(seq int64, msg string) (duplicate bool, err *apierr.Error) {
	if seq <= 0 {
		return false, apierr.New(http.StatusBadRequest, "seq must be positive")
	}
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	return s.log.Apply(uint64(seq), msg), nil
}

// List returns the gap-hiding prefix view of the local log.
func (s *State) List() []string {
	return s.log.List()
}

// Count returns the total number of stored entries, including ones
// currently hidden behind a gap.
func (s *State) Count() int {
	return s.log.Count()
}
