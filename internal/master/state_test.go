package master

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func fakeSecondary(t *testing.T) *httptest.Server {
	t.Helper()
	seen := make(map[uint64]bool)
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/replicate":
			var body struct {
				Seq uint64 `json:"seq"`
				Msg string `json:"msg"`
			}
			_ = json.NewDecoder(r.Body).Decode(&body)
			dup := seen[body.Seq]
			seen[body.Seq] = true
			resp := map[string]any{"status": "ok", "seq": body.Seq}
			if dup {
				resp["duplicate"] = true
			}
			json.NewEncoder(w).Encode(resp)
		case r.URL.Path == "/health":
			json.NewEncoder(w).Encode(map[string]any{"status": "ok"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestAppendMessageFullWriteConcern(t *testing.T) {
	s1 := fakeSecondary(t)
	defer s1.Close()
	s2 := fakeSecondary(t)
	defer s2.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	st := New(ctx, []string{s1.URL, s2.URL}, 50*time.Millisecond, 200*time.Millisecond, 2, 5)

	res, apiErr := st.AppendMessage("hello", 3)
	if apiErr != nil {
		t.Fatalf("AppendMessage error: %v", apiErr)
	}
	if len(res.Acks) != 2 {
		t.Fatalf("Acks = %v, want 2 entries", res.Acks)
	}
	if got, want := res.Messages, []string{"hello"}; len(got) != 1 || got[0] != want[0] {
		t.Fatalf("Messages = %v, want %v", got, want)
	}
}

func TestAppendMessageW1ReturnsFast(t *testing.T) {
	s1 := fakeSecondary(t)
	defer s1.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	st := New(ctx, []string{s1.URL}, 50*time.Millisecond, 200*time.Millisecond, 2, 5)

	start := time.Now()
	res, apiErr := st.AppendMessage("fast", 1)
	elapsed := time.Since(start)
	if apiErr != nil {
		t.Fatalf("AppendMessage error: %v", apiErr)
	}
	if elapsed > 100*time.Millisecond {
		t.Fatalf("w=1 took %v, want < 100ms", elapsed)
	}
	if res.Acks != nil {
		t.Fatalf("Acks = %v, want nil for w=1", res.Acks)
	}
}

func TestAppendMessageRejectsBadWriteConcern(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	st := New(ctx, nil, time.Second, time.Second, 2, 5)

	if _, apiErr := st.AppendMessage("x", 0); apiErr == nil || apiErr.Status != http.StatusBadRequest {
		t.Fatalf("w=0: apiErr = %v, want 400", apiErr)
	}
	if _, apiErr := st.AppendMessage("x", 5); apiErr == nil || apiErr.Status != http.StatusBadRequest {
		t.Fatalf("w=5 with no peers: apiErr = %v, want 400", apiErr)
	}
}

func TestAppendMessageNoQuorumRejected(t *testing.T) {
	// Two peers, neither reachable: health monitor will mark both
	// UNHEALTHY given a fast interval and low thresholds.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	st := New(ctx, []string{"http://127.0.0.1:1", "http://127.0.0.1:2"}, 10*time.Millisecond, 50*time.Millisecond, 1, 1)

	deadline := time.After(2 * time.Second)
	for st.Health().HealthyCount() > 0 {
		select {
		case <-deadline:
			t.Fatalf("peers never became unhealthy")
		case <-time.After(10 * time.Millisecond):
		}
	}

	_, apiErr := st.AppendMessage("x", 1)
	if apiErr == nil || apiErr.Status != http.StatusServiceUnavailable {
		t.Fatalf("apiErr = %v, want 503 no quorum", apiErr)
	}
}
