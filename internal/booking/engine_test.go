package booking

import (
	"errors"
	"testing"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

func TestRoomBookable(t *testing.T) {
	if err := roomBookable(&model.Room{ID: 5, IsAvailable: true}); err != nil {
		t.Fatalf("available room rejected: %v", err)
	}

	err := roomBookable(&model.Room{ID: 5, IsAvailable: false})
	var ce *ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *ConflictError for an out-of-service room, got %v", err)
	}
	if ce.RoomID != 5 || len(ce.ReservationIDs) != 0 {
		t.Fatalf("conflict must name the room and no reservations: %+v", ce)
	}
}

func TestEventFor(t *testing.T) {
	prefs := "vue mer"
	res := &model.Reservation{
		ID:              11,
		ClientID:        3,
		RoomID:          5,
		StartDate:       date("2026-09-01"),
		EndDate:         date("2026-09-04"),
		Status:          model.StatusConfirmed,
		Preferences:     &prefs,
		TotalPriceCents: 30000,
	}
	ev := EventFor("reservation.status_changed", res)
	if ev.ReservationID != 11 || ev.RoomID != 5 || ev.ClientID != 3 {
		t.Fatalf("event ids wrong: %+v", ev)
	}
	if ev.StartDate != "2026-09-01" || ev.EndDate != "2026-09-04" {
		t.Fatalf("event dates must be YYYY-MM-DD strings: %+v", ev)
	}
	if ev.Status != "CONFIRMEE" || ev.TotalPriceCents != 30000 {
		t.Fatalf("event payload wrong: %+v", ev)
	}
	if ev.OccurredAt == "" {
		t.Fatal("event must carry an occurrence timestamp")
	}
}
