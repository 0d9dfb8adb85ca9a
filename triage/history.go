package triage

// historyDepth is how many recent emotional-state labels are carried as
// classifier context.
const historyDepth = 3

// History is a bounded rolling record of the most recent emotional-state
// labels for one session, oldest evicted first. It is session-scoped and
// not safe for concurrent use; a session runs one turn at a time.
type History struct {
	labels []string
}

// NewHistory returns an empty history.
func NewHistory() *History {
	return &History{labels: make([]string, 0, historyDepth)}
}

// Append records a label, evicting the oldest once capacity is exceeded.
func (h *History) Append(label string) {
	h.labels = append(h.labels, label)
	if len(h.labels) > historyDepth {
		h.labels = h.labels[len(h.labels)-historyDepth:]
	}
}

// Labels returns a snapshot copy, oldest first.
func (h *History) Labels() []string {
	return append([]string(nil), h.labels...)
}

// Len returns the number of recorded labels.
func (h *History) Len() int {
	return len(h.labels)
}
