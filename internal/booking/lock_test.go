package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

func TestAcquireRelease(t *testing.T) {
	locks := newRoomLocks()
	ctx := context.Background()

	if err := locks.Acquire(ctx, 1, time.Second); err != nil {
		t.Fatalf("first acquire failed: %v", err)
	}
	// A second acquire on the same room must time out while held.
	err := locks.Acquire(ctx, 1, 20*time.Millisecond)
	var te *TimeoutError
	if !errors.As(err, &te) {
		t.Fatalf("expected *TimeoutError, got %v", err)
	}
	if te.RoomID != 1 {
		t.Fatalf("timeout error names room %d, want 1", te.RoomID)
	}
	// A different room is unaffected.
	if err := locks.Acquire(ctx, 2, 20*time.Millisecond); err != nil {
		t.Fatalf("acquire on another room failed: %v", err)
	}
	locks.Release(2)

	locks.Release(1)
	if err := locks.Acquire(ctx, 1, 20*time.Millisecond); err != nil {
		t.Fatalf("acquire after release failed: %v", err)
	}
	locks.Release(1)
}

func TestAcquireHonorsContext(t *testing.T) {
	locks := newRoomLocks()
	if err := locks.Acquire(context.Background(), 1, time.Second); err != nil {
		t.Fatalf("acquire failed: %v", err)
	}
	defer locks.Release(1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := locks.Acquire(ctx, 1, time.Second); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

// TestConcurrentBookingSingleWinner drives the check-then-insert
// sequence of a booking through the room lock from many goroutines at
// once. Exactly one must win; every loser must observe the winner's
// reservation in the conflict check.
func TestConcurrentBookingSingleWinner(t *testing.T) {
	const attempts = 16
	locks := newRoomLocks()
	ctx := context.Background()

	start, end := date("2026-09-01"), date("2026-09-05")

	// In-memory stand-in for the reservations table.
	var mu sync.Mutex
	var booked []model.Reservation

	var wg sync.WaitGroup
	var wins, conflicts int

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(id uint64) {
			defer wg.Done()
			if err := locks.Acquire(ctx, 7, 5*time.Second); err != nil {
				t.Errorf("acquire failed: %v", err)
				return
			}
			defer locks.Release(7)

			mu.Lock()
			defer mu.Unlock()
			if len(Conflicting(booked, start, end)) > 0 {
				conflicts++
				return
			}
			booked = append(booked, model.Reservation{
				ID: id, RoomID: 7, StartDate: start, EndDate: end,
				Status: model.StatusPending,
			})
			wins++
		}(uint64(i + 1))
	}
	wg.Wait()

	if wins != 1 {
		t.Fatalf("expected exactly one winner, got %d", wins)
	}
	if conflicts != attempts-1 {
		t.Fatalf("expected %d conflicts, got %d", attempts-1, conflicts)
	}
	if len(booked) != 1 {
		t.Fatalf("expected a single stored reservation, got %d", len(booked))
	}
}
