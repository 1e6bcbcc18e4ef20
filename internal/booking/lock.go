package booking

import (
	"context"
	"sync"
	"time"
)

// roomLocks hands out one exclusive lock per room ID so that the
// check-then-insert sequence of a booking is serialized against
// concurrent bookings for the same room. Locks are backed by
// one-slot channels, which makes acquisition interruptible: waiting
// is bounded by a deadline and by the caller's context, never
// indefinite. Bookings for different rooms proceed in parallel.
type roomLocks struct {
	mu    sync.Mutex
	locks map[uint64]chan struct{}
}

func newRoomLocks() *roomLocks {
	return &roomLocks{locks: make(map[uint64]chan struct{})}
}

// get returns the lock channel for a room, creating it on first use.
// Lock channels are never removed; the map grows with the number of
// distinct rooms ever booked, which is bounded by the hotel.
func (l *roomLocks) get(roomID uint64) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	ch, ok := l.locks[roomID]
	if !ok {
		ch = make(chan struct{}, 1)
		l.locks[roomID] = ch
	}
	return ch
}

// Acquire takes the exclusive lock for roomID, waiting at most wait.
// On success the caller must Release. When the bound expires a
// *TimeoutError is returned; when the context is cancelled first, the
// context error is returned.
func (l *roomLocks) Acquire(ctx context.Context, roomID uint64, wait time.Duration) error {
	ch := l.get(roomID)
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case ch <- struct{}{}:
		return nil
	case <-timer.C:
		return &TimeoutError{RoomID: roomID, Wait: wait}
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release returns the lock for roomID. Calling Release without a
// matching Acquire corrupts the lock state; the engine pairs the two
// with defer.
func (l *roomLocks) Release(roomID uint64) {
	<-l.get(roomID)
}
