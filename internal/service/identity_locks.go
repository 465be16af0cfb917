package service

import "sync"

// identityLocks hands out one mutex per identity. Entries are dropped once no
// goroutine holds or waits for them, so arbitrary inbound senders do not grow
// the map.
type identityLocks struct {
	mu    sync.Mutex
	locks map[string]*identityLock
}

type identityLock struct {
	sync.Mutex
	refs int
}

func newIdentityLocks() *identityLocks {
	return &identityLocks{locks: make(map[string]*identityLock)}
}

// lock blocks until identity is free and returns its unlock func.
func (l *identityLocks) lock(identity string) func() {
	l.mu.Lock()
	il, ok := l.locks[identity]
	if !ok {
		il = &identityLock{}
		l.locks[identity] = il
	}
	il.refs++
	l.mu.Unlock()

	il.Lock()
	return func() {
		il.Unlock()
		l.mu.Lock()
		il.refs--
		if il.refs == 0 {
			delete(l.locks, identity)
		}
		l.mu.Unlock()
	}
}

func (l *identityLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
