package narwhal

import (
	"os"
	"strconv"
	"strings"
	"sync"
)

// identity is a (host, pid) pair with every ASCII space replaced by '_' so
// the state file stays whitespace-tokenizable. It is process-wide: the
// default values are resolved lazily from the OS on first use and can be
// overridden for the lifetime of the process via SetHostname/SetPid.
type identity struct {
	host string
	pid  string
}

var (
	identityMu   sync.Mutex
	identityOver identity
	hostOverride bool
	pidOverride  bool
)

func sanitize(s string) string {
	return strings.ReplaceAll(s, " ", "_")
}

func defaultHostname() string {
	if h, err := os.Hostname(); err == nil && h != "" {
		return h
	}
	return "localhost"
}

func defaultPid() string {
	return strconv.Itoa(os.Getpid())
}

// currentIdentity returns the process's current (host, pid), resolving
// defaults the first time either field is needed.
func currentIdentity() identity {
	identityMu.Lock()
	defer identityMu.Unlock()
	if !hostOverride && identityOver.host == "" {
		identityOver.host = sanitize(defaultHostname())
	}
	if !pidOverride && identityOver.pid == "" {
		identityOver.pid = sanitize(defaultPid())
	}
	return identityOver
}

// SetHostname overrides the default identity's host component for the
// remainder of the process's lifetime. Intended for tests that simulate
// multiple hosts from a single process; host must be non-empty.
func SetHostname(hostname string) {
	hostname = strings.TrimSpace(hostname)
	if hostname == "" {
		return
	}
	identityMu.Lock()
	defer identityMu.Unlock()
	identityOver.host = sanitize(hostname)
	hostOverride = true
}

// SetPid overrides the default identity's pid component for the remainder of
// the process's lifetime. Intended for tests that simulate multiple
// processes from a single process; pid must be non-empty.
func SetPid(pid string) {
	pid = strings.TrimSpace(pid)
	if pid == "" {
		return
	}
	identityMu.Lock()
	defer identityMu.Unlock()
	identityOver.pid = sanitize(pid)
	pidOverride = true
}

// resetIdentityForTest restores lazily-resolved OS defaults. Unexported: it
// exists so this package's own tests can run in isolation from each other.
func resetIdentityForTest() {
	identityMu.Lock()
	defer identityMu.Unlock()
	identityOver = identity{}
	hostOverride = false
	pidOverride = false
}
