// Package health implements the peer health monitor: a periodic liveness
// prober per secondary, driving a three-state machine
// {HEALTHY, SUSPECTED, UNHEALTHY} that the quorum gate and the /health
// read surface both consult.
package health

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"
)

// State is one of the three health states a peer can be in.
type State string

const (
	Healthy   State = "healthy"
	Suspected State = "suspected"
	Unhealthy State = "unhealthy"
)

// Record is a peer's current health snapshot.
type Record struct {
	State              State     `json:"status"`
	ConsecutiveFailures int      `json:"failures"`
	LastProbe          time.Time `json:"last_heartbeat"`
	LastSuccess        time.Time `json:"last_success"`
}

// Monitor probes a fixed set of peers on a tick and maintains their
// health records. It is the only writer of those records; everyone else
// only reads snapshots.
type Monitor struct {
	peers    []string
	interval time.Duration
	timeout  time.Duration
	suspectThreshold  int
	unhealthyThreshold int

	client *http.Client

	mu      sync.Mutex
	records map[string]*Record
}

// New creates a Monitor for the given peer URLs. suspectThreshold and
// unhealthyThreshold are the number of consecutive probe failures after
// which a peer moves HEALTHY->SUSPECTED and SUSPECTED->UNHEALTHY,
// respectively. Every peer starts HEALTHY.
func New(peers []string, interval, timeout time.Duration, suspectThreshold, unhealthyThreshold int) *Monitor {
	records := make(map[string]*Record, len(peers))
	now := time.Now()
	for _, p := range peers {
		records[p] = &Record{State: Healthy, LastProbe: now, LastSuccess: now}
	}
	return &Monitor{
		peers:              peers,
		interval:           interval,
		timeout:            timeout,
		suspectThreshold:   suspectThreshold,
		unhealthyThreshold: unhealthyThreshold,
		client:             &http.Client{Timeout: timeout},
		records:            records,
	}
}

// Run probes every peer once per interval until ctx is cancelled. It is
// meant to be started as its own goroutine.
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, peer := range m.peers {
				m.probeOne(ctx, peer)
			}
		}
	}
}

func (m *Monitor) probeOne(ctx context.Context, peer string) {
	ok := m.probe(ctx, peer)
	m.record(peer, ok)
}

func (m *Monitor) probe(ctx context.Context, peer string) bool {
	reqCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, peer+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// record applies one probe outcome to peer's state machine and logs any
// transition.
func (m *Monitor) record(peer string, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, exists := m.records[peer]
	if !exists {
		rec = &Record{State: Healthy}
		m.records[peer] = rec
	}
	rec.LastProbe = time.Now()

	if ok {
		rec.LastSuccess = time.Now()
		old := rec.State
		rec.State = Healthy
		rec.ConsecutiveFailures = 0
		if old != Healthy {
			log.Printf("health: %s recovered from %s -> healthy", peer, old)
		}
		return
	}

	rec.ConsecutiveFailures++
	switch rec.State {
	case Healthy:
		if rec.ConsecutiveFailures >= m.suspectThreshold {
			rec.State = Suspected
			log.Printf("health: %s failed %d probes -> suspected", peer, rec.ConsecutiveFailures)
		}
	case Suspected:
		if rec.ConsecutiveFailures >= m.unhealthyThreshold {
			rec.State = Unhealthy
			log.Printf("health: %s failed %d probes -> unhealthy", peer, rec.ConsecutiveFailures)
		}
	case Unhealthy:
		// stays UNHEALTHY until a successful probe recovers it
	}
}

// Snapshot returns a copy of peer's current record.
func (m *Monitor) Snapshot(peer string) Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec, ok := m.records[peer]; ok {
		return *rec
	}
	return Record{State: Healthy}
}

// All returns a copy of every peer's current record, keyed by peer URL.
func (m *Monitor) All() map[string]Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]Record, len(m.records))
	for peer, rec := range m.records {
		out[peer] = *rec
	}
	return out
}

// HealthyCount returns how many peers are currently in state HEALTHY.
func (m *Monitor) HealthyCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, rec := range m.records {
		if rec.State == Healthy {
			n++
		}
	}
	return n
}

// PeerCount returns the total number of peers this monitor tracks.
func (m *Monitor) PeerCount() int {
	return len(m.peers)
}

// RecordOutcome lets a caller outside the probe loop feed an observation
// into the same state machine. The replication worker calls it only on a
// successful delivery, so a peer that starts answering replication again
// recovers promptly; failed deliveries are not reported here.
func (m *Monitor) RecordOutcome(peer string, ok bool) {
	m.record(peer, ok)
}
