// Package fsnfs detects whether a directory lives on an NFS mount and
// exposes small platform-specific filesystem helpers used by the gate's
// retry wait to decide whether a filesystem-event fast path is safe to use.
package fsnfs
