package narwhal

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testConfig(t *testing.T, dir string) Config {
	t.Helper()
	return Config{
		LockDir:      dir,
		SpinInterval: time.Millisecond,
		Timeout:      time.Minute,
	}
}

func asActor(t *testing.T, host, pid string, fn func()) {
	t.Helper()
	defer resetIdentityForTest()
	SetHostname(host)
	SetPid(pid)
	fn()
}

// TestScenarioS1SingleReaderRoundTrip matches spec scenario S1.
func TestScenarioS1SingleReaderRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t, dir)

	asActor(t, "H1", "1", func() {
		if err := AcquireRead(context.Background(), cfg); err != nil {
			t.Fatalf("acquire_read: %v", err)
		}
		data, err := os.ReadFile(filepath.Join(dir, "state"))
		if err != nil {
			t.Fatalf("read state: %v", err)
		}
		if got := string(data); got == "" {
			t.Fatal("expected a granted entry in the state file")
		}
		if err := Release(context.Background(), cfg); err != nil {
			t.Fatalf("release: %v", err)
		}
	})

	data, err := os.ReadFile(filepath.Join(dir, "state"))
	if err != nil {
		t.Fatalf("read state after release: %v", err)
	}
	if len(data) != 0 {
		t.Fatalf("expected empty state after release, got %q", data)
	}
}

// TestScenarioS2TwoReadersConcurrently matches spec scenario S2.
func TestScenarioS2TwoReadersConcurrently(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t, dir)

	asActor(t, "H1", "1", func() {
		if err := AcquireRead(context.Background(), cfg); err != nil {
			t.Fatalf("h1 acquire_read: %v", err)
		}
	})
	asActor(t, "H2", "2", func() {
		if err := AcquireRead(context.Background(), cfg); err != nil {
			t.Fatalf("h2 acquire_read: %v", err)
		}
	})

	states, _, err := loadState(filepath.Join(dir, "state"), time.Now().Unix(), 60)
	if err != nil {
		t.Fatalf("loadState: %v", err)
	}
	if len(states) != 2 {
		t.Fatalf("expected two granted entries, got %+v", states)
	}
	for _, cs := range states {
		if cs.Status != Granted || cs.Mode != Read {
			t.Fatalf("expected both granted readers, got %+v", cs)
		}
	}

	asActor(t, "H1", "1", func() {
		if err := Release(context.Background(), cfg); err != nil {
			t.Fatalf("h1 release: %v", err)
		}
	})
	asActor(t, "H2", "2", func() {
		if err := Release(context.Background(), cfg); err != nil {
			t.Fatalf("h2 release: %v", err)
		}
	})

	data, err := os.ReadFile(filepath.Join(dir, "state"))
	if err != nil {
		t.Fatalf("read state: %v", err)
	}
	if len(data) != 0 {
		t.Fatalf("expected empty state, got %q", data)
	}
}

// TestScenarioS4StaleGC matches spec scenario S4: a granted writer whose
// host never released is dropped once its entry ages past Timeout, letting
// a new reader acquire in a single pass.
func TestScenarioS4StaleGC(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state")
	staleTime := time.Now().Add(-2 * time.Minute).Unix()
	if err := dumpState(path, []ClientState{
		{Host: "H1", PID: "1", Mode: Write, Status: Granted, Time: staleTime},
	}); err != nil {
		t.Fatalf("seed stale entry: %v", err)
	}

	cfg := testConfig(t, dir)
	asActor(t, "H2", "2", func() {
		if err := AcquireRead(context.Background(), cfg); err != nil {
			t.Fatalf("acquire_read: %v", err)
		}
	})

	states, _, err := loadState(path, time.Now().Unix(), 60)
	if err != nil {
		t.Fatalf("loadState: %v", err)
	}
	if len(states) != 1 || states[0].Host != "H2" || states[0].Status != Granted {
		t.Fatalf("expected only H2 granted, got %+v", states)
	}
}

// TestScenarioS6Misuse matches spec scenario S6.
func TestScenarioS6Misuse(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t, dir)

	asActor(t, "H1", "1", func() {
		if err := AcquireRead(context.Background(), cfg); err != nil {
			t.Fatalf("acquire_read: %v", err)
		}
		before, err := os.ReadFile(filepath.Join(dir, "state"))
		if err != nil {
			t.Fatalf("read state: %v", err)
		}
		if err := AcquireWrite(context.Background(), cfg); !IsAlreadyLocked(err) {
			t.Fatalf("expected ALREADY_LOCKED, got %v", err)
		}
		after, err := os.ReadFile(filepath.Join(dir, "state"))
		if err != nil {
			t.Fatalf("read state: %v", err)
		}
		if string(before) != string(after) {
			t.Fatalf("state must be unchanged after misuse: before=%q after=%q", before, after)
		}
		if err := Release(context.Background(), cfg); err != nil {
			t.Fatalf("release: %v", err)
		}
	})
}

// TestReleaseWithNoEntryLeavesStateUntouched covers the §8 boundary
// behavior: releasing with no matching entry fails ALREADY_LOCKED and does
// not modify the state file.
func TestReleaseWithNoEntryLeavesStateUntouched(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state")
	seed := []ClientState{{Host: "H2", PID: "2", Mode: Read, Status: Granted, Time: time.Now().Unix()}}
	if err := dumpState(path, seed); err != nil {
		t.Fatalf("seed: %v", err)
	}
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read state: %v", err)
	}

	cfg := testConfig(t, dir)
	asActor(t, "H1", "1", func() {
		if err := Release(context.Background(), cfg); !IsAlreadyLocked(err) {
			t.Fatalf("expected ALREADY_LOCKED, got %v", err)
		}
	})

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read state: %v", err)
	}
	if string(before) != string(after) {
		t.Fatalf("state must be unchanged: before=%q after=%q", before, after)
	}
}

// TestMissingStateFileParsesEmptyAndGrantsImmediately covers the §8
// boundary behavior for a first-ever call against an empty lock directory.
func TestMissingStateFileParsesEmptyAndGrantsImmediately(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t, dir)
	asActor(t, "H1", "1", func() {
		if err := AcquireRead(context.Background(), cfg); err != nil {
			t.Fatalf("acquire_read on empty lockdir: %v", err)
		}
	})
}

func TestClientReusesCachedPaths(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t, dir)
	cli, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer cli.Close()

	asActor(t, "H1", "1", func() {
		if err := cli.AcquireRead(context.Background()); err != nil {
			t.Fatalf("acquire_read: %v", err)
		}
		if err := cli.Release(context.Background()); err != nil {
			t.Fatalf("release: %v", err)
		}
	})
}
