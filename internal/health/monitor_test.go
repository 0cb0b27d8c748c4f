package health

import "testing"

func TestNewStartsHealthy(t *testing.T) {
	m := New([]string{"http://a", "http://b"}, 0, 0, 2, 5)
	if got := m.HealthyCount(); got != 2 {
		t.Fatalf("HealthyCount() = %d, want 2", got)
	}
}

func TestSuspectAndUnhealthyTransitions(t *testing.T) {
	m := New([]string{"http://a"}, 0, 0, 2, 3)

	m.record("http://a", false)
	if got := m.Snapshot("http://a").State; got != Healthy {
		t.Fatalf("after 1 failure state = %s, want healthy (below threshold)", got)
	}

	m.record("http://a", false)
	if got := m.Snapshot("http://a").State; got != Suspected {
		t.Fatalf("after 2 failures state = %s, want suspected", got)
	}

	m.record("http://a", false)
	if got := m.Snapshot("http://a").State; got != Unhealthy {
		t.Fatalf("after 3 failures state = %s, want unhealthy", got)
	}
}

func TestRecoveryIsMonotoneToHealthy(t *testing.T) {
	m := New([]string{"http://a"}, 0, 0, 2, 3)
	for i := 0; i < 3; i++ {
		m.record("http://a", false)
	}
	if got := m.Snapshot("http://a").State; got != Unhealthy {
		t.Fatalf("setup: state = %s, want unhealthy", got)
	}

	m.record("http://a", true)
	rec := m.Snapshot("http://a")
	if rec.State != Healthy || rec.ConsecutiveFailures != 0 {
		t.Fatalf("after success: state=%s failures=%d, want healthy/0", rec.State, rec.ConsecutiveFailures)
	}
}

func TestHealthyCountReflectsMixedStates(t *testing.T) {
	m := New([]string{"http://a", "http://b", "http://c"}, 0, 0, 1, 2)
	m.record("http://a", false) // -> suspected
	m.record("http://b", false)
	m.record("http://b", false) // -> unhealthy

	if got := m.HealthyCount(); got != 1 {
		t.Fatalf("HealthyCount() = %d, want 1", got)
	}
}
