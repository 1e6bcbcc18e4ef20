// Package scheduler runs the periodic background jobs of the service.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/iliyamo/hotel-reservation/internal/booking"
	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/repository"
)

// Completer marks confirmed reservations whose stay has ended as
// TERMINEE. It scans on a fixed interval and routes every transition
// through the engine so the lifecycle rules and event publishing
// apply to scheduled completions too.
type Completer struct {
	engine       *booking.Engine
	reservations *repository.ReservationRepo
	every        time.Duration
}

// NewCompleter constructs a Completer ticking at the given interval.
func NewCompleter(engine *booking.Engine, reservations *repository.ReservationRepo, every time.Duration) *Completer {
	if engine == nil || reservations == nil {
		panic("nil dependency passed to NewCompleter")
	}
	if every <= 0 {
		every = time.Hour
	}
	return &Completer{engine: engine, reservations: reservations, every: every}
}

// Run blocks until ctx is cancelled, sweeping once immediately and
// then on every tick. Intended to be started as a goroutine from main.
func (s *Completer) Run(ctx context.Context) {
	ticker := time.NewTicker(s.every)
	defer ticker.Stop()

	s.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// sweep completes every confirmed reservation whose end date has
// passed. Failures on one reservation do not stop the rest; a row
// that raced into a terminal state in the meantime is skipped.
func (s *Completer) sweep(ctx context.Context) {
	today := booking.DateOf(time.Now())
	ids, err := s.reservations.ExpiredConfirmedIDs(ctx, today)
	if err != nil {
		log.Printf("scheduler: listing expired reservations: %v", err)
		return
	}
	for _, id := range ids {
		if _, err := s.engine.UpdateReservationStatus(ctx, id, model.StatusCompleted); err != nil {
			log.Printf("scheduler: completing reservation %d: %v", id, err)
			continue
		}
		log.Printf("scheduler: reservation %d marked %s", id, model.StatusCompleted)
	}
}
