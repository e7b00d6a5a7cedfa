package narwhal

import "fmt"

// Mode is the kind of lock a participant wants: shared read access or
// exclusive write access.
type Mode byte

const (
	// Read requests a shared lock. Any number of readers may hold the lock
	// concurrently as long as no writer is granted.
	Read Mode = 'R'
	// Write requests an exclusive lock. At most one writer may be granted,
	// and only when no other entry is granted.
	Write Mode = 'W'
)

func (m Mode) String() string {
	switch m {
	case Read:
		return "read"
	case Write:
		return "write"
	default:
		return fmt.Sprintf("Mode(%q)", byte(m))
	}
}

func (m Mode) valid() bool {
	return m == Read || m == Write
}

// Status is whether a participant's request has been admitted yet.
type Status byte

const (
	// Pending means the request has not yet been admitted under the
	// reader/writer policy.
	Pending Status = 'P'
	// Granted means the request currently holds the lock.
	Granted Status = 'G'
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Granted:
		return "granted"
	default:
		return fmt.Sprintf("Status(%q)", byte(s))
	}
}

// ClientState is one participant's entry in the state file: a (Host, PID)
// pair, the mode it wants, whether it has been granted that mode yet, and
// the UTC unix time the entry was last written. Entries are compared for
// identity by (Host, PID) alone.
type ClientState struct {
	Host   string
	PID    string
	Mode   Mode
	Status Status
	Time   int64
}

func (c ClientState) sameParticipant(other identity) bool {
	return c.Host == other.host && c.PID == other.pid
}

func (c ClientState) granted() bool { return c.Status == Granted }
