package booking

import "sync"

// courtLocks serializes the read-check-write sequence per court so two
// concurrent callers cannot both pass the overlap check before either
// writes. Entries are never reclaimed; the map grows with the number of
// distinct courts, which is small.
type courtLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newCourtLocks() *courtLocks {
	return &courtLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for the given court and returns its unlock
// function.
func (l *courtLocks) Lock(courtID string) func() {
	l.mu.Lock()
	m, ok := l.locks[courtID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[courtID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
