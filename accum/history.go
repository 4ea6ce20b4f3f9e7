package accum

// History is the append-only log of charlist snapshots, one entry per
// processed sample plus the seed entry. It exposes only appends and reads;
// entries are copied on the way in and out so no caller can mutate the log
// in place.
type History struct {
	entries [][]string
}

// Append adds a snapshot to the log.
func (h *History) Append(charlist []string) {
	entry := make([]string, len(charlist))
	copy(entry, charlist)
	h.entries = append(h.entries, entry)
}

// Last returns a copy of the most recent snapshot, or nil when the log is
// empty.
func (h *History) Last() []string {
	if len(h.entries) == 0 {
		return nil
	}
	last := h.entries[len(h.entries)-1]
	out := make([]string, len(last))
	copy(out, last)
	return out
}

// Len returns the number of snapshots.
func (h *History) Len() int { return len(h.entries) }

// Seeded reports whether the log holds its seed entry.
func (h *History) Seeded() bool { return len(h.entries) > 0 }

// Snapshot returns a deep copy of all entries.
func (h *History) Snapshot() [][]string {
	out := make([][]string, len(h.entries))
	for i, entry := range h.entries {
		cp := make([]string, len(entry))
		copy(cp, entry)
		out[i] = cp
	}
	return out
}

// Lengths returns the length series of the log, parallel to Snapshot.
func (h *History) Lengths() []int {
	out := make([]int, len(h.entries))
	for i, entry := range h.entries {
		out[i] = len(entry)
	}
	return out
}
