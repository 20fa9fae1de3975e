package locker

import "sync"

// KeyedMutex serializes work per key. Each task id gets its own
// critical section so mutations on different tasks proceed in parallel
// while two mutations on the same task never interleave.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[uint64]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{
		locks: make(map[uint64]*entry),
	}
}

// Lock acquires the critical section for key, blocking until it is
// available.
func (k *KeyedMutex) Lock(key uint64) {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		e = &entry{}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
}

// Unlock releases the critical section for key. The entry is dropped
// once no goroutine holds or waits on it, so the map does not grow with
// the number of tasks ever touched.
func (k *KeyedMutex) Unlock(key uint64) {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		k.mu.Unlock()
		panic("locker: unlock of unheld key")
	}
	e.refs--
	if e.refs == 0 {
		delete(k.locks, key)
	}
	k.mu.Unlock()

	e.mu.Unlock()
}
