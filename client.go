package narwhal

import (
	"sync"

	"github.com/fsnotify/fsnotify"
	"pkt.systems/narwhal/internal/pathutil"
)

// Client is a reusable handle bound to a single Config. It caches the
// composed lock-directory paths (recomputing them if LockDir or the
// process identity changes) and, on filesystems where it is safe, an
// fsnotify watcher used to shorten spin waits. Client itself is not
// goroutine-safe: like the protocol it wraps, calls must be serialized by
// the caller.
//
// Most callers can ignore Client entirely and use the package-level
// AcquireRead/AcquireWrite/Release functions, which construct and discard
// one internally.
type Client struct {
	cfg Config

	mu       sync.Mutex
	havePath bool
	pathDir  string
	pathID   identity
	p        paths

	watchOnce   sync.Once
	watcher     *fsnotify.Watcher
	watchUsable bool
}

// NewClient validates cfg and returns a reusable handle. LockDir is expanded
// for a leading "~" and environment variable references before validation.
// When unset, Config.Logger and Config.Metrics default to no-ops and
// Config.Clock defaults to the real wall clock.
func NewClient(cfg Config) (*Client, error) {
	if expanded, err := pathutil.ExpandUserAndEnv(cfg.LockDir); err == nil {
		cfg.LockDir = expanded
	}
	if err := cfg.validate("new_client"); err != nil {
		return nil, err
	}
	return &Client{cfg: cfg.withDefaults()}, nil
}

// Close releases any resources (currently: an fsnotify watcher) the client
// opened lazily. It is always safe to call, including on a Client that never
// watched anything.
func (c *Client) Close() error {
	c.mu.Lock()
	w := c.watcher
	c.watcher = nil
	c.mu.Unlock()
	if w != nil {
		return w.Close()
	}
	return nil
}

// currentPaths returns the paths for this client's current identity,
// recomputing them only when LockDir or the process identity has changed
// since the last call.
func (c *Client) currentPaths() paths {
	id := currentIdentity()
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.havePath && c.pathDir == c.cfg.LockDir && c.pathID == id {
		return c.p
	}
	c.p = composePaths(c.cfg.LockDir, id)
	c.pathDir = c.cfg.LockDir
	c.pathID = id
	c.havePath = true
	return c.p
}
