package service

import "sync"

// destinationLocks serializes writers per destination table. Concurrent
// merges or resamples targeting different tables proceed in parallel;
// operations on the same schema.table run one at a time.
type destinationLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newDestinationLocks() *destinationLocks {
	return &destinationLocks{locks: make(map[string]*sync.Mutex)}
}

// lock acquires the mutex for dest, creating it on first use, and returns
// the unlock function.
func (d *destinationLocks) lock(dest string) func() {
	d.mu.Lock()
	m, ok := d.locks[dest]
	if !ok {
		m = &sync.Mutex{}
		d.locks[dest] = m
	}
	d.mu.Unlock()

	m.Lock()
	return m.Unlock
}
