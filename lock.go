package narwhal

import "context"

// AcquireRead obtains a shared read lock, blocking until it is granted or
// ctx is cancelled. It constructs a throwaway Client; callers issuing many
// operations against the same Config should build one with NewClient and
// reuse it instead.
func AcquireRead(ctx context.Context, cfg Config) error {
	return withClient(cfg, func(c *Client) error { return c.AcquireRead(ctx) })
}

// AcquireWrite obtains an exclusive write lock, blocking until it is granted
// or ctx is cancelled.
func AcquireWrite(ctx context.Context, cfg Config) error {
	return withClient(cfg, func(c *Client) error { return c.AcquireWrite(ctx) })
}

// Release releases whichever lock the calling identity currently holds.
func Release(ctx context.Context, cfg Config) error {
	return withClient(cfg, func(c *Client) error { return c.Release(ctx) })
}

func withClient(cfg Config, fn func(*Client) error) error {
	c, err := NewClient(cfg)
	if err != nil {
		return err
	}
	defer c.Close()
	return fn(c)
}

// AcquireRead obtains a shared read lock under c.cfg. See the package-level
// AcquireRead for the one-shot equivalent.
func (c *Client) AcquireRead(ctx context.Context) error {
	return c.acquire(ctx, "acquire_read", Read)
}

// AcquireWrite obtains an exclusive write lock under c.cfg. See the
// package-level AcquireWrite for the one-shot equivalent.
func (c *Client) AcquireWrite(ctx context.Context) error {
	return c.acquire(ctx, "acquire_write", Write)
}

// acquire is the spin driver for both acquisition operations: lock the
// gate, load state, apply the reader/writer policy, dump state if changed,
// unlock the gate, and either return or sleep and retry. There is no outer
// deadline beyond ctx: a PENDING outcome always re-enters the loop.
func (c *Client) acquire(ctx context.Context, op string, mode Mode) error {
	id := currentIdentity()
	p := c.currentPaths()
	countedPending := false
	defer func() {
		if countedPending {
			c.cfg.Metrics.pendingEnded()
		}
	}()

	for {
		if err := c.lockGate(ctx, p); err != nil {
			return annotate(err, op)
		}

		now := c.cfg.Clock.Now().Unix()
		states, staleGC, err := loadState(p.state, now, int64(c.cfg.Timeout.Seconds()))
		if err != nil {
			_ = c.unlockGate(p)
			return newError(KindIO, op, err)
		}

		newStates, status, dirty, reqErr := request(states, id, mode, now)
		if reqErr == nil && (dirty || staleGC) {
			if err := dumpState(p.state, newStates); err != nil {
				_ = c.unlockGate(p)
				return newError(KindIO, op, err)
			}
		}

		unlockErr := c.unlockGate(p)
		if reqErr != nil {
			return annotate(reqErr, op)
		}
		if unlockErr != nil {
			return annotate(unlockErr, op)
		}

		switch status {
		case Granted:
			c.cfg.Metrics.acquireGranted(mode)
			c.cfg.Logger.Info("narwhal.acquire.granted", "mode", mode.String(), "host", id.host, "pid", id.pid)
			return nil
		case Pending:
			c.cfg.Metrics.acquirePending(mode)
			if !countedPending {
				c.cfg.Metrics.pendingStarted()
				countedPending = true
			}
		}

		if ctx.Err() != nil {
			return newError(KindIO, op, ctx.Err())
		}
		c.cfg.Clock.Sleep(c.cfg.SpinInterval)
	}
}

// Release releases whichever lock the calling identity currently holds. It
// makes exactly one pass: lock the gate, load state, remove the caller's
// entry, dump, unlock.
func (c *Client) Release(ctx context.Context) error {
	id := currentIdentity()
	p := c.currentPaths()

	if err := c.lockGate(ctx, p); err != nil {
		return annotate(err, "release")
	}

	now := c.cfg.Clock.Now().Unix()
	// A stale GC alone is only persisted alongside a successful removal below
	// (the dump that follows a successful remove()); an ALREADY_LOCKED release leaves the file
	// untouched even if stale peers were dropped while loading it.
	states, _, err := loadState(p.state, now, int64(c.cfg.Timeout.Seconds()))
	if err != nil {
		_ = c.unlockGate(p)
		return newError(KindIO, "release", err)
	}

	newStates, remErr := remove(states, id)
	if remErr == nil {
		if dumpErr := dumpState(p.state, newStates); dumpErr != nil {
			_ = c.unlockGate(p)
			return newError(KindIO, "release", dumpErr)
		}
	}

	unlockErr := c.unlockGate(p)
	if remErr != nil {
		return annotate(remErr, "release")
	}
	if unlockErr != nil {
		return annotate(unlockErr, "release")
	}

	c.cfg.Metrics.released()
	c.cfg.Logger.Info("narwhal.release", "host", id.host, "pid", id.pid)
	return nil
}

// annotate rewrites a *Error's Op to reflect the public operation it
// surfaced from, preserving its Kind and wrapped cause.
func annotate(err error, op string) error {
	if e, ok := err.(*Error); ok {
		return newError(e.Kind, op, e.Err)
	}
	return err
}
