package narwhal

import (
	"fmt"
	"time"

	"pkt.systems/narwhal/internal/clock"
	"pkt.systems/narwhal/internal/loggingutil"
	"pkt.systems/pslog"
)

// Config carries the tunables a caller supplies on every operation. All
// three required fields must be set; LockDir is owned by the caller and must
// be readable/writable by this process (typically a directory on a
// POSIX-compliant network filesystem shared by every participant).
type Config struct {
	// LockDir is the absolute path of the directory holding the three
	// well-known lock files shared by all participants.
	LockDir string

	// SpinInterval is how long to sleep between retries: of the gate's
	// hard-link race, and of the spin driver's acquire loop. Must be > 0.
	SpinInterval time.Duration

	// Timeout bounds (a) how stale a participant's state entry may get
	// before it is garbage-collected on load, and (b) how long the gate's
	// hard-link race may spin before giving up with KindTimedOut. Must be
	// > 0.
	Timeout time.Duration

	// Logger receives structured diagnostics about gate contention, GC, and
	// policy decisions. Defaults to a disabled logger.
	Logger pslog.Logger

	// Clock abstracts time for tests; defaults to the real wall clock.
	Clock clock.Clock

	// Metrics optionally records operation counters. Defaults to a no-op.
	Metrics *Metrics
}

func (c Config) validate(op string) error {
	if c.LockDir == "" {
		return newError(KindIO, op, fmt.Errorf("lockdir is required"))
	}
	if c.SpinInterval <= 0 {
		return newError(KindIO, op, fmt.Errorf("spin interval must be positive, got %s", c.SpinInterval))
	}
	if c.Timeout <= 0 {
		return newError(KindIO, op, fmt.Errorf("timeout must be positive, got %s", c.Timeout))
	}
	return nil
}

func (c Config) withDefaults() Config {
	c.Logger = loggingutil.WithSubsystem(loggingutil.EnsureLogger(c.Logger), "narwhal")
	if c.Clock == nil {
		c.Clock = clock.Real{}
	}
	if c.Metrics == nil {
		c.Metrics = noopMetrics()
	}
	return c
}
