package earnings

import "sync"

// Tracker remembers the last reported actual EPS per symbol for the life of
// the process. It is safe for concurrent use.
type Tracker struct {
	mu   sync.Mutex
	last map[string]string
}

func NewTracker() *Tracker {
	return &Tracker{last: make(map[string]string)}
}

// Observe records actual for key and reports whether it differs from the
// stored value (or nothing was stored). The check and the write are one
// atomic step, so a change is reported to at most one caller. Empty actuals
// are never stored.
func (t *Tracker) Observe(key, actual string) bool {
	if actual == "" {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if prev, ok := t.last[key]; ok && prev == actual {
		return false
	}
	t.last[key] = actual
	return true
}

// Last returns the stored actual for key.
func (t *Tracker) Last(key string) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	v, ok := t.last[key]
	return v, ok
}

// Len returns the number of tracked symbols.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.last)
}
