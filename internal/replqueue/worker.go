// Package replqueue implements one replication worker per secondary: it
// owns that peer's pending-delivery queue, retries delivery until the
// peer acknowledges, and notifies the write-concern coordinator on each
// first successful delivery.
package replqueue

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/ppriyankuu/replicated-log/internal/acktracker"
	"github.com/ppriyankuu/replicated-log/internal/health"
	"github.com/ppriyankuu/replicated-log/internal/logentry"
	"github.com/ppriyankuu/replicated-log/internal/queue"
)

const (
	attemptTimeout = 2 * time.Second
	idleWait       = 50 * time.Millisecond
	retryBackoff   = 200 * time.Millisecond
)

// Worker delivers one peer's queue, strictly in order: it pops the head
// only after a successful (or duplicate) delivery, which is what gives
// every secondary an apply order identical to the master's sequence
// order.
type Worker struct {
	peerURL  string
	queue    *queue.Queue
	trackers *acktracker.Registry
	health   *health.Monitor
	client   *http.Client
}

// NewWorker creates a Worker for one peer. trackers and health may be
// shared across all of a master's workers.
func NewWorker(peerURL string, q *queue.Queue, trackers *acktracker.Registry, h *health.Monitor) *Worker {
	return &Worker{
		peerURL:  peerURL,
		queue:    q,
		trackers: trackers,
		health:   h,
		client:   &http.Client{Timeout: attemptTimeout},
	}
}

// Run drains the queue forever, until ctx is cancelled. On shutdown the
// worker may exit with items still queued — by design, nothing is
// persisted, so a restart loses that state along with everything else.
func (w *Worker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		head, ok := w.queue.Peek()
		if !ok {
			select {
			case <-ctx.Done():
				return
			case <-time.After(idleWait):
			}
			continue
		}

		if w.deliver(ctx, head) {
			w.queue.Pop()
			w.trackers.Notify(head.Seq, w.peerURL)
			if w.health != nil {
				w.health.RecordOutcome(w.peerURL, true)
			}
			continue
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(retryBackoff):
		}
	}
}

// deliver attempts a single replication call. It returns true for any
// outcome the peer accepted, including the peer reporting the entry as
// a duplicate — from the worker's point of view that is still a
// successful delivery.
func (w *Worker) deliver(ctx context.Context, e logentry.Entry) bool {
	body, err := json.Marshal(map[string]any{"msg": e.Payload, "seq": e.Seq})
	if err != nil {
		log.Printf("WARN replqueue: marshal seq=%d for %s: %v", e.Seq, w.peerURL, err)
		return false
	}

	reqCtx, cancel := context.WithTimeout(ctx, attemptTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, w.peerURL+"/replicate", bytes.NewReader(body))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		log.Printf("WARN replqueue: delivery to %s seq=%d failed: %v", w.peerURL, e.Seq, err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("WARN replqueue: delivery to %s seq=%d got HTTP %d", w.peerURL, e.Seq, resp.StatusCode)
		return false
	}

	var ack struct {
		Status string `json:"status"`
		Seq    uint64 `json:"seq"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		log.Printf("WARN replqueue: malformed ack from %s seq=%d: %v", w.peerURL, e.Seq, err)
		return false
	}
	if ack.Status != "ok" {
		return false
	}
	return true
}

// Enqueue pushes a new entry onto the peer's queue in sequence order.
func (w *Worker) Enqueue(e logentry.Entry) {
	w.queue.Push(e)
}

// PeerURL returns the URL this worker delivers to.
func (w *Worker) PeerURL() string {
	return w.peerURL
}
