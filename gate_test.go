package narwhal

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"pkt.systems/narwhal/internal/clock"
)

// TestScenarioS5AbandonedGateTimesOut matches spec scenario S5: a lockfile
// left behind by a dead holder causes every new acquisition to spin until
// Timeout and then fail with TIMED_OUT.
func TestScenarioS5AbandonedGateTimesOut(t *testing.T) {
	defer resetIdentityForTest()
	SetHostname("H1")
	SetPid("1")

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "lockfile"), nil, 0o666); err != nil {
		t.Fatalf("seed abandoned lockfile: %v", err)
	}

	mclock := clock.NewManual(time.Unix(1_700_000_000, 0))
	cfg := Config{
		LockDir:      dir,
		SpinInterval: time.Second,
		Timeout:      5 * time.Second,
		Clock:        mclock,
	}

	resultCh := make(chan error, 1)
	go func() {
		resultCh <- AcquireRead(context.Background(), cfg)
	}()

	waitForPendingTimer(t, mclock)
	mclock.Advance(cfg.Timeout + time.Second)

	select {
	case err := <-resultCh:
		if !IsTimedOut(err) {
			t.Fatalf("expected TIMED_OUT, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("acquire_read did not return after the gate timeout")
	}
}

func waitForPendingTimer(t *testing.T, m *clock.Manual) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if m.Pending() > 0 {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("timed out waiting for the gate's spin timer to be scheduled")
}
