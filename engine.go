package narwhal

// grantedEntry returns the index of the first GRANTED entry in states, or -1
// if none is granted. Several readers may be granted at once, but invariants
// 1-3 guarantee that all granted entries share one mode (any number of
// readers, or a single writer), so the first one is representative.
func grantedEntry(states []ClientState) int {
	for i, cs := range states {
		if cs.granted() {
			return i
		}
	}
	return -1
}

// admissible reports whether a request for mode may be granted given the
// currently granted entries: a read is admissible when nothing or only
// readers are granted, a write only when nothing is granted.
func admissible(states []ClientState, mode Mode) bool {
	idx := grantedEntry(states)
	if idx < 0 {
		return true
	}
	return mode == Read && states[idx].Mode == Read
}

// request applies the reader/writer policy for id's lock request of the
// given mode against states, which must have been freshly loaded under the
// gate. It returns the (possibly unchanged) slice, the resulting status, and
// whether states was mutated (and therefore needs to be dumped).
func request(states []ClientState, id identity, mode Mode, now int64) ([]ClientState, Status, bool, error) {
	ok := admissible(states, mode)

	for i := range states {
		if !states[i].sameParticipant(id) {
			continue
		}
		if states[i].granted() || states[i].Mode != mode {
			return states, Pending, false, newError(KindAlreadyLocked, "request", nil)
		}
		if ok {
			states[i].Status = Granted
			return states, Granted, true, nil
		}
		if states[i].Time != now {
			states[i].Time = now
			return states, Pending, true, nil
		}
		return states, Pending, false, nil
	}

	status := Pending
	if ok {
		status = Granted
	}
	states = append(states, ClientState{
		Host:   id.host,
		PID:    id.pid,
		Mode:   mode,
		Status: status,
		Time:   now,
	})
	return states, status, true, nil
}

// remove deletes id's entry from states (release operation). It fails with
// KindAlreadyLocked if there is no matching entry, preserving the order of
// the remaining entries.
func remove(states []ClientState, id identity) ([]ClientState, error) {
	for i := range states {
		if !states[i].sameParticipant(id) {
			continue
		}
		return append(states[:i:i], states[i+1:]...), nil
	}
	return states, newError(KindAlreadyLocked, "release", nil)
}
