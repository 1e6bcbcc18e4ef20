// Package booking implements the reservation engine: the availability
// index, the pricing calculator, the status lifecycle and the
// orchestrator that composes them under a concurrency-safe protocol.
// This file defines the error kinds the engine surfaces to callers.
// Absent clients/rooms/reservations are reported with the sentinel
// errors of the repository package; everything else a booking can fail
// with is declared here.
package booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// ErrInvalidRange is returned when a requested date range has no
// nights in it (start >= end). Callers must fix the input; the
// condition is never retryable.
var ErrInvalidRange = errors.New("invalid date range: start must be before end")

// ConflictError reports that a requested (room, date range) pair
// overlaps one or more existing non-cancelled reservations. The IDs
// of the overlapping reservations are carried for diagnostics. The
// engine never auto-resolves a conflict; callers may retry with
// different dates.
type ConflictError struct {
	RoomID         uint64
	ReservationIDs []uint64
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("room %d is already booked for the requested dates (conflicting reservations %v)", e.RoomID, e.ReservationIDs)
}

// InvalidTransitionError reports an illegal status change, e.g.
// reviving a cancelled reservation. Non-retryable.
type InvalidTransitionError struct {
	From model.ReservationStatus
	To   model.ReservationStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition %s -> %s", e.From, e.To)
}

// TimeoutError reports that the per-room lock could not be acquired
// within the configured bound. The booking left no trace and is safe
// to retry with backoff.
type TimeoutError struct {
	RoomID uint64
	Wait   time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timed out after %s waiting to book room %d", e.Wait, e.RoomID)
}
