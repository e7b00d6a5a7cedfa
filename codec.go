package narwhal

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// loadState reads the state file at path, garbage-collecting any entry whose
// Time has aged past staleAfter (now - timeout). A missing file parses as an
// empty, non-dirty state. The returned dirty flag is true when the on-disk
// content no longer matches the returned entries (stale entries were
// dropped), meaning the caller should dump even if policy itself makes no
// further change.
func loadState(path string, now int64, timeout int64) ([]ClientState, bool, error) {
	f, err := os.OpenFile(path, os.O_RDONLY|os.O_CREATE, 0o666)
	if err != nil {
		return nil, false, fmt.Errorf("open state file: %w", err)
	}
	defer f.Close()

	staleAfter := now - timeout
	var states []ClientState
	dirty := false

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		cs, err := parseEntry(line)
		if err != nil {
			return nil, false, fmt.Errorf("parse state file: %w", err)
		}
		if cs.Time < staleAfter {
			dirty = true
			continue
		}
		states = append(states, cs)
	}
	if err := scanner.Err(); err != nil {
		return nil, false, fmt.Errorf("read state file: %w", err)
	}
	return states, dirty, nil
}

// parseEntry decodes one "host pid mode status time" line. The state file is
// only ever produced by dumpState, so malformed input is treated as a
// programmer/operator error rather than recovered from.
func parseEntry(line string) (ClientState, error) {
	fields := strings.Fields(line)
	if len(fields) != 5 {
		return ClientState{}, fmt.Errorf("expected 5 fields, got %d: %q", len(fields), line)
	}

	mode := Mode(fields[2][0])
	if len(fields[2]) != 1 || !mode.valid() {
		return ClientState{}, fmt.Errorf("invalid mode field %q", fields[2])
	}

	status := Status(fields[3][0])
	if len(fields[3]) != 1 || (status != Granted && status != Pending) {
		return ClientState{}, fmt.Errorf("invalid status field %q", fields[3])
	}

	t, err := strconv.ParseInt(fields[4], 10, 64)
	if err != nil {
		return ClientState{}, fmt.Errorf("invalid time field %q: %w", fields[4], err)
	}

	return ClientState{
		Host:   fields[0],
		PID:    fields[1],
		Mode:   mode,
		Status: status,
		Time:   t,
	}, nil
}

// dumpState truncates and rewrites the state file with one line per entry,
// in the supplied order.
func dumpState(path string, states []ClientState) error {
	var b strings.Builder
	for _, cs := range states {
		fmt.Fprintf(&b, "%s %s %c %c %d\n", cs.Host, cs.PID, byte(cs.Mode), byte(cs.Status), cs.Time)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o666); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	return nil
}
