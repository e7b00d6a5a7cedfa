package narwhal

import "testing"

func TestModeString(t *testing.T) {
	if got := Read.String(); got != "read" {
		t.Fatalf("Read.String() = %q", got)
	}
	if got := Write.String(); got != "write" {
		t.Fatalf("Write.String() = %q", got)
	}
}

func TestModeValid(t *testing.T) {
	if !Read.valid() || !Write.valid() {
		t.Fatal("Read and Write must be valid")
	}
	if Mode('X').valid() {
		t.Fatal("unexpected mode must be invalid")
	}
}

func TestClientStateSameParticipant(t *testing.T) {
	cs := ClientState{Host: "h1", PID: "1"}
	if !cs.sameParticipant(identity{host: "h1", pid: "1"}) {
		t.Fatal("expected same participant")
	}
	if cs.sameParticipant(identity{host: "h1", pid: "2"}) {
		t.Fatal("expected different participant")
	}
}

func TestClientStateGranted(t *testing.T) {
	cs := ClientState{Status: Granted}
	if !cs.granted() {
		t.Fatal("expected granted")
	}
	cs.Status = Pending
	if cs.granted() {
		t.Fatal("expected not granted")
	}
}
