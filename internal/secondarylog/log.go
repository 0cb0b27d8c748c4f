// Package secondarylog implements a secondary node's ordered, deduplicated
// apply path and its gap-hiding read view.
package secondarylog

import "sync"

// Log is a secondary's local copy of the replicated log. Entries may
// arrive out of order; duplicates are discarded.
type Log struct {
	mu      sync.Mutex
	entries []entry // kept sorted by seq
}

type entry struct {
	seq     uint64
	payload string
}

// New returns an empty secondary log.
func New() *Log {
	return &Log{}
}

// Apply inserts (seq, payload) at the position that keeps the log sorted
// by seq. If seq is already present, the call is a no-op and duplicate is
// true. The check and the insert happen under a single lock, so concurrent
// arrivals for the same seq are resolved with exactly one winner.
func (l *Log) Apply(seq uint64, payload string) (duplicate bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	pos := 0
	for i, e := range l.entries {
		if e.seq == seq {
			return true
		}
		if e.seq < seq {
			pos = i + 1
		}
	}

	l.entries = append(l.entries, entry{})
	copy(l.entries[pos+1:], l.entries[pos:])
	l.entries[pos] = entry{seq: seq, payload: payload}
	return false
}

// List returns the longest contiguous prefix of the sorted log, starting
// at seq 1, with no gaps. Entries beyond the first gap (including every
// entry while seq 1 itself is missing) are hidden from readers until the
// missing seq arrives.
func (l *Log) List() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.entries) == 0 {
		return []string{}
	}

	visible := make([]string, 0, len(l.entries))
	expected := uint64(1)
	for _, e := range l.entries {
		if e.seq != expected {
			break
		}
		visible = append(visible, e.payload)
		expected++
	}
	return visible
}

// Has reports whether seq is already stored.
func (l *Log) Has(seq uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.entries {
		if e.seq == seq {
			return true
		}
	}
	return false
}

// Count returns the total number of stored entries, including ones hidden
// behind a gap.
func (l *Log) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
