// Package master wires the sequencer, per-peer replication queues, the
// write-concern coordinator and the quorum gate into the single object
// the HTTP surface drives: State.
package master

import (
	"context"
	"net/http"
	"time"

	"github.com/ppriyankuu/replicated-log/internal/acktracker"
	"github.com/ppriyankuu/replicated-log/internal/apierr"
	"github.com/ppriyankuu/replicated-log/internal/health"
	"github.com/ppriyankuu/replicated-log/internal/logentry"
	"github.com/ppriyankuu/replicated-log/internal/masterlog"
	"github.com/ppriyankuu/replicated-log/internal/queue"
	"github.com/ppriyankuu/replicated-log/internal/quorum"
	"github.com/ppriyankuu/replicated-log/internal/replqueue"
)

// Ack describes one secondary's acknowledgment of a completed write.
type Ack struct {
	Secondary string `json:"secondary"`
}

// WriteResult is what a successful POST /messages returns.
type WriteResult struct {
	Messages   []string `json:"messages"`
	Acks       []Ack    `json:"acks"`
	W          int      `json:"w"`
	DurationMs int64    `json:"duration_ms"`
}

// State is the master node's complete in-memory state: the log, every
// peer's replication queue and worker, the in-flight ack trackers, and
// the peer health monitor the quorum gate reads from.
type State struct {
	log      *masterlog.Log
	peers    []string
	workers  map[string]*replqueue.Worker
	trackers *acktracker.Registry
	health   *health.Monitor
}

// New builds a master State for the given secondary URLs and starts one
// replication worker per peer plus the shared health monitor; both run
// until ctx is cancelled.
func New(ctx context.Context, peers []string, hbInterval, hbTimeout time.Duration, suspectThreshold, unhealthyThreshold int) *State {
	h := health.New(peers, hbInterval, hbTimeout, suspectThreshold, unhealthyThreshold)
	trackers := acktracker.NewRegistry()

	workers := make(map[string]*replqueue.Worker, len(peers))
	for _, p := range peers {
		workers[p] = replqueue.NewWorker(p, queue.New(), trackers, h)
	}

	s := &State{
		log:      masterlog.New(),
		peers:    peers,
		workers:  workers,
		trackers: trackers,
		health:   h,
	}

	go h.Run(ctx)
	for _, w := range workers {
		go w.Run(ctx)
	}
	return s
}

// N is the total node count, master included.
func (s *State) N() int {
	return 1 + len(s.peers)
}

// Peers returns the configured secondary URLs.
func (s *State) Peers() []string {
	return s.peers
}

// Health exposes the shared peer health monitor, read by the /health
// endpoint.
func (s *State) Health() *health.Monitor {
	return s.health
}

// List returns every appended message in ascending sequence order.
func (s *State) List() []string {
	return s.log.List()
}

// Count returns the number of messages appended so far.
func (s *State) Count() int {
	return s.log.Len()
}

// writeConcernTimeout mirrors spec.md §4.3: max(60s, required*30s).
func writeConcernTimeout(required int) time.Duration {
	t := time.Duration(required) * 30 * time.Second
	if t < 60*time.Second {
		return 60 * time.Second
	}
	return t
}

// AppendMessage runs the full write path: admission, sequencing,
// fan-out to every peer's queue, and — for w>1 — blocking the caller
// until the write concern is satisfied or its timeout elapses.
func (s *State) AppendMessage(msg string, w int) (WriteResult, *apierr.Error) {
	n := s.N()
	if w < 1 || w > n {
		return WriteResult{}, apierr.Newf(http.StatusBadRequest,
			"invalid write concern", errDetailRange(w, n))
	}

	if !quorum.Admit(s.health.HealthyCount(), len(s.peers)) {
		return WriteResult{}, apierr.New(http.StatusServiceUnavailable, "no quorum, master is read-only")
	}

	start := time.Now()
	seq := s.log.Append(msg)

	requiredAcks := w - 1

	var tracker *acktracker.Tracker
	if requiredAcks > 0 {
		tracker = s.trackers.Register(seq, requiredAcks)
	}

	entry := logentry.Entry{Seq: seq, Payload: msg}
	for _, peer := range s.peers {
		s.workers[peer].Enqueue(entry)
	}

	if tracker == nil {
		return WriteResult{
			Messages:   s.log.List(),
			Acks:       nil,
			W:          w,
			DurationMs: time.Since(start).Milliseconds(),
		}, nil
	}

	timeout := writeConcernTimeout(requiredAcks)
	select {
	case <-tracker.Done():
		s.trackers.Deregister(seq)
		acked := tracker.Acked()
		acks := make([]Ack, 0, len(acked))
		for _, p := range acked {
			acks = append(acks, Ack{Secondary: p})
		}
		return WriteResult{
			Messages:   s.log.List(),
			Acks:       acks,
			W:          w,
			DurationMs: time.Since(start).Milliseconds(),
		}, nil
	case <-time.After(timeout):
		s.trackers.Deregister(seq)
		return WriteResult{}, apierr.Newf(http.StatusBadGateway,
			errMsgNotSatisfied(w), errDetailTimeout(requiredAcks, len(tracker.Acked())))
	}
}
