package quorum

import "testing"

func TestAdmitNoPeersAlwaysAdmits(t *testing.T) {
	if !Admit(0, 0) {
		t.Fatalf("Admit(0,0) = false, want true")
	}
}

func TestAdmitTwoPeersBothDown(t *testing.T) {
	// N=3, majority=2; master(1) + 0 healthy = 1 < 2.
	if Admit(0, 2) {
		t.Fatalf("Admit(0,2) = true, want false")
	}
}

func TestAdmitTwoPeersOneHealthy(t *testing.T) {
	// N=3, majority=2; master(1) + 1 healthy = 2 >= 2.
	if !Admit(1, 2) {
		t.Fatalf("Admit(1,2) = false, want true")
	}
}

func TestAdmitTwoPeersBothHealthy(t *testing.T) {
	if !Admit(2, 2) {
		t.Fatalf("Admit(2,2) = false, want true")
	}
}

func TestAdmitOnePeerDown(t *testing.T) {
	// N=2, majority=2; master(1) + 0 healthy = 1 < 2.
	if Admit(0, 1) {
		t.Fatalf("Admit(0,1) = true, want false")
	}
}
