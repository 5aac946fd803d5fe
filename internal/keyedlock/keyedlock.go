package keyedlock

import "sync"

// Table serializes work per key. Every load-mutate-save cycle on an entity
// runs under its key's lock, so two commands racing on the same entity can
// never overwrite each other's effects. Work on different keys proceeds in
// parallel.
type Table[K comparable] struct {
	mu    sync.Mutex
	locks map[K]*sync.Mutex
}

// New creates an empty lock table
func New[K comparable]() *Table[K] {
	return &Table[K]{
		locks: make(map[K]*sync.Mutex),
	}
}

// Acquire locks the key's mutex and returns the unlock function
func (t *Table[K]) Acquire(key K) func() {
	t.mu.Lock()
	lock, ok := t.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		t.locks[key] = lock
	}
	t.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

// Forget drops the lock entry for a deleted entity. The caller must hold the
// key's lock; in-flight waiters still resolve against the old mutex.
func (t *Table[K]) Forget(key K) {
	t.mu.Lock()
	delete(t.locks, key)
	t.mu.Unlock()
}
