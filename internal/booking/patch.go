package booking

import (
	"time"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// ReservationPatch carries a partial update for a reservation. A nil
// field means "leave unchanged"; a set pointer replaces the stored
// value. The optional text fields are cleared by setting the pointer
// to an empty value, which is distinct from leaving it nil. Status is
// deliberately absent: status changes go through the lifecycle state
// machine, not through field patching.
type ReservationPatch struct {
	ClientID    *uint64
	RoomID      *uint64
	StartDate   *time.Time
	EndDate     *time.Time
	Preferences *string
	PartySize   *int
	Comment     *string
}

// Apply merges the patch into a copy of r and returns it together
// with a flag telling whether the room or the date range changed.
// When that flag is true the caller must re-run the conflict check
// against the new (room, window) pair before committing.
func (p ReservationPatch) Apply(r model.Reservation) (model.Reservation, bool) {
	placementChanged := false
	if p.ClientID != nil {
		r.ClientID = *p.ClientID
	}
	if p.RoomID != nil && *p.RoomID != r.RoomID {
		r.RoomID = *p.RoomID
		placementChanged = true
	}
	if p.StartDate != nil {
		d := DateOf(*p.StartDate)
		if !d.Equal(r.StartDate) {
			r.StartDate = d
			placementChanged = true
		}
	}
	if p.EndDate != nil {
		d := DateOf(*p.EndDate)
		if !d.Equal(r.EndDate) {
			r.EndDate = d
			placementChanged = true
		}
	}
	if p.Preferences != nil {
		r.Preferences = p.Preferences
	}
	if p.PartySize != nil {
		r.PartySize = p.PartySize
	}
	if p.Comment != nil {
		r.Comment = p.Comment
	}
	return r, placementChanged
}

// Empty reports whether the patch changes nothing.
func (p ReservationPatch) Empty() bool {
	return p.ClientID == nil && p.RoomID == nil && p.StartDate == nil &&
		p.EndDate == nil && p.Preferences == nil && p.PartySize == nil && p.Comment == nil
}
