package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/fx_reserve_ledger/internal/apperrors"
)

// ReserveLocker serialises balance mutations per reserve inside one process.
// Row locks in the database remain the source of truth across processes; the
// in-process lock keeps waiters off the connection pool and bounds the wait.
type ReserveLocker struct {
	mu      sync.Mutex
	locks   map[string]*keyedLock
	timeout time.Duration
}

type keyedLock struct {
	ch   chan struct{}
	refs int
}

// NewReserveLocker creates a locker. A non-positive timeout waits until ctx is done.
func NewReserveLocker(timeout time.Duration) *ReserveLocker {
	return &ReserveLocker{
		locks:   make(map[string]*keyedLock),
		timeout: timeout,
	}
}

// Lock acquires every id in ascending order and returns a function releasing them.
// It fails with ErrBusy if the locks are not obtained before the timeout or ctx ends.
func (l *ReserveLocker) Lock(ctx context.Context, ids ...string) (func(), error) {
	keys := uniqueSorted(ids)
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	held := make([]string, 0, len(keys))
	for _, key := range keys {
		entry := l.acquireRef(key)
		select {
		case entry.ch <- struct{}{}:
			held = append(held, key)
		case <-ctx.Done():
			l.releaseRef(key)
			l.unlock(held)
			return nil, fmt.Errorf("%w: reserve %s is locked by another operation", apperrors.ErrBusy, key)
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() { l.unlock(held) })
	}, nil
}

func (l *ReserveLocker) unlock(keys []string) {
	for i := len(keys) - 1; i >= 0; i-- {
		l.mu.Lock()
		entry := l.locks[keys[i]]
		l.mu.Unlock()
		<-entry.ch
		l.releaseRef(keys[i])
	}
}

func (l *ReserveLocker) acquireRef(key string) *keyedLock {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry, ok := l.locks[key]
	if !ok {
		entry = &keyedLock{ch: make(chan struct{}, 1)}
		l.locks[key] = entry
	}
	entry.refs++
	return entry
}

func (l *ReserveLocker) releaseRef(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry, ok := l.locks[key]
	if !ok {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(l.locks, key)
	}
}

// size reports how many keys are currently tracked.
func (l *ReserveLocker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

func uniqueSorted(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
