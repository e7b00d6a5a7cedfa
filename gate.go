package narwhal

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	"pkt.systems/narwhal/internal/clock"
	"pkt.systems/narwhal/internal/fsnfs"
)

// lockGate acquires exclusive ownership of the state file via the hard-link
// race described in narwhal's design: create a private per-process marker,
// then spin trying to hard-link it onto lockfile. A successful link is
// atomic even on NFS, so exactly one spinning participant ever wins it.
func (c *Client) lockGate(ctx context.Context, p paths) error {
	f, err := os.OpenFile(p.private, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o666)
	if err != nil {
		return newError(KindIO, "gate.lock", fmt.Errorf("create private marker: %w", err))
	}
	if err := f.Close(); err != nil {
		return newError(KindIO, "gate.lock", fmt.Errorf("close private marker: %w", err))
	}

	deadline := c.cfg.Clock.Now().Add(c.cfg.Timeout)
	for {
		err := os.Link(p.private, p.lockfile)
		if err == nil {
			c.cfg.Metrics.gateAcquired()
			return nil
		}
		if !errors.Is(err, os.ErrExist) {
			return newError(KindIO, "gate.lock", fmt.Errorf("link private marker: %w", err))
		}

		if ctx.Err() != nil {
			return newError(KindIO, "gate.lock", ctx.Err())
		}
		if c.cfg.Clock.Now().After(deadline) {
			c.cfg.Metrics.gateTimedOut()
			c.cfg.Logger.Warn("narwhal.gate.timed_out",
				"lockdir", c.cfg.LockDir, "timeout", c.cfg.Timeout.String())
			return newError(KindTimedOut, "gate.lock", fmt.Errorf("lockfile held past timeout %s", c.cfg.Timeout))
		}
		c.cfg.Metrics.gateSpin()
		c.sleepOrWake(ctx, c.cfg.LockDir)
	}
}

// unlockGate releases lockfile and the private marker, in that order, as
// narwhal.c does: a crash between the two removals leaves the gate free and
// only a harmless stray marker behind. Both removals are attempted even if
// the first fails; the first error takes precedence in the return value.
func (c *Client) unlockGate(p paths) error {
	err1 := os.Remove(p.lockfile)
	if err1 != nil && errors.Is(err1, os.ErrNotExist) {
		err1 = nil
	}
	err2 := os.Remove(p.private)
	if err2 != nil && errors.Is(err2, os.ErrNotExist) {
		err2 = nil
	}
	if err1 != nil {
		if err2 != nil {
			c.cfg.Logger.Warn("narwhal.gate.unlock_partial_failure", "lockfile_error", err1, "private_error", err2)
		}
		return newError(KindIO, "gate.unlock", fmt.Errorf("remove lockfile: %w", err1))
	}
	if err2 != nil {
		return newError(KindIO, "gate.unlock", fmt.Errorf("remove private marker: %w", err2))
	}
	return nil
}

// sleepOrWake blocks for roughly SpinInterval, like the reference
// implementation's nanosleep. On the real clock, when lockDir is not
// NFS-mounted, it additionally watches lockDir and wakes as soon as
// lockfile's removal is observed, which shortens contended waits on local
// or same-host deployments without changing behavior on NFS (where
// filesystem-change notifications are not reliably delivered) or in tests
// driving a manual clock.
func (c *Client) sleepOrWake(ctx context.Context, lockDir string) {
	events := c.wakeEvents(lockDir)
	if events == nil {
		c.cfg.Clock.Sleep(c.cfg.SpinInterval)
		return
	}
	select {
	case <-events:
	case <-c.cfg.Clock.After(c.cfg.SpinInterval):
	case <-ctx.Done():
	}
}

// wakeEvents returns a channel that receives a value when lockDir changes,
// or nil when the fast path is unavailable (non-real clock, unsupported
// platform, or lockDir is NFS-mounted).
func (c *Client) wakeEvents(lockDir string) <-chan struct{} {
	if _, ok := c.cfg.Clock.(clock.Real); !ok {
		return nil
	}
	c.watchOnce.Do(func() {
		if fsnfs.IsNFS(lockDir) {
			return
		}
		w, err := fsnotify.NewWatcher()
		if err != nil {
			c.cfg.Logger.Debug("narwhal.gate.watch_unavailable", "error", err)
			return
		}
		if err := w.Add(lockDir); err != nil {
			w.Close()
			c.cfg.Logger.Debug("narwhal.gate.watch_unavailable", "lockdir", lockDir, "error", err)
			return
		}
		c.watcher = w
		c.watchUsable = true
	})
	if !c.watchUsable {
		return nil
	}
	ch := make(chan struct{}, 1)
	go func() {
		select {
		case <-c.watcher.Events:
			select {
			case ch <- struct{}{}:
			default:
			}
		case <-c.watcher.Errors:
		}
	}()
	return ch
}
