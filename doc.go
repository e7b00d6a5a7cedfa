// Package narwhal implements a multi-reader/single-writer advisory lock
// shared across processes on different hosts that communicate only through a
// common POSIX-compliant network filesystem (e.g. NFS). It is the Go port of
// a small C library of the same purpose: mutual exclusion is bootstrapped
// from one filesystem primitive — atomic hard-link creation — and reader/
// writer fairness is encoded in a shared text state file with bounded
// tolerance for crashed participants.
//
// At most one writer ever holds the lock; any number of readers may hold it
// concurrently with no writer. A pending writer does not stop new readers
// from joining while a reader already holds the grant, and readers already
// granted are never evicted; the writer is granted on its own next retry
// once no entry is granted. Arrival order among waiting requests is not
// tracked.
//
// # Quick start
//
//	cfg := narwhal.Config{
//	    LockDir:      "/mnt/shared/locks/orders",
//	    SpinInterval: time.Millisecond,
//	    Timeout:      10 * time.Second,
//	}
//	if err := narwhal.AcquireRead(ctx, cfg); err != nil {
//	    log.Fatal(err)
//	}
//	defer narwhal.Release(ctx, cfg)
//
// Callers issuing many operations against the same Config should build a
// *Client with NewClient instead, which caches the composed lock-directory
// paths and, on non-NFS filesystems, an fsnotify watcher used to shorten
// spin waits:
//
//	cli, err := narwhal.NewClient(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer cli.Close()
//	if err := cli.AcquireWrite(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer cli.Release(ctx)
//
// The library is single-threaded per process: calls must be serialized by
// the caller, the same way the process is expected to serialize its own
// goroutines before calling in. Coordination across processes happens
// exclusively through the three files under LockDir, so cooperating peers
// need nothing more than a shared mount and loosely synchronized clocks
// (within small multiples of a second relative to Config.Timeout).
package narwhal
