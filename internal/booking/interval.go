package booking

import (
	"time"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) share at least one night. Because the end bound is
// exclusive, a stay checking out on day X never overlaps a stay
// checking in on day X. All four bounds must be normalized dates.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Conflicting filters the reservations that block the query window
// [qStart, qEnd): every reservation whose status is not ANNULEE and
// whose interval overlaps the window. The input order is preserved.
func Conflicting(reservations []model.Reservation, qStart, qEnd time.Time) []model.Reservation {
	var out []model.Reservation
	for _, r := range reservations {
		if r.Status == model.StatusCancelled {
			continue
		}
		if Overlaps(r.StartDate, r.EndDate, qStart, qEnd) {
			out = append(out, r)
		}
	}
	return out
}

// FilterBookable returns the rooms that are administratively available
// and not present in the busy set. The empty busy set is handled
// explicitly: with no exclusions, every flagged-available room passes.
// This avoids the vacuous-match trap of pushing an empty NOT IN list
// into a query operator.
func FilterBookable(rooms []model.Room, busyRoomIDs []uint64) []model.Room {
	busy := make(map[uint64]struct{}, len(busyRoomIDs))
	for _, id := range busyRoomIDs {
		busy[id] = struct{}{}
	}
	out := make([]model.Room, 0, len(rooms))
	for _, rm := range rooms {
		if !rm.IsAvailable {
			continue
		}
		if len(busy) > 0 {
			if _, taken := busy[rm.ID]; taken {
				continue
			}
		}
		out = append(out, rm)
	}
	return out
}
