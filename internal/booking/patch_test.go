package booking

import (
	"testing"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

func baseReservation() model.Reservation {
	return model.Reservation{
		ID:        42,
		ClientID:  1,
		RoomID:    7,
		StartDate: date("2026-09-01"),
		EndDate:   date("2026-09-05"),
		Status:    model.StatusPending,
	}
}

func TestApplyLeavesUnsetFieldsAlone(t *testing.T) {
	got, placementChanged := ReservationPatch{}.Apply(baseReservation())
	if placementChanged {
		t.Fatal("empty patch must not report a placement change")
	}
	if got != baseReservation() {
		t.Fatalf("empty patch altered the reservation: %+v", got)
	}
}

func TestApplyDetectsPlacementChange(t *testing.T) {
	room := uint64(8)
	got, placementChanged := ReservationPatch{RoomID: &room}.Apply(baseReservation())
	if !placementChanged || got.RoomID != 8 {
		t.Fatalf("room move not applied: changed=%v room=%d", placementChanged, got.RoomID)
	}

	end := date("2026-09-07")
	got, placementChanged = ReservationPatch{EndDate: &end}.Apply(baseReservation())
	if !placementChanged || !got.EndDate.Equal(end) {
		t.Fatalf("date move not applied: changed=%v end=%v", placementChanged, got.EndDate)
	}
}

func TestApplySameValuesAreNotAMove(t *testing.T) {
	r := baseReservation()
	got, placementChanged := ReservationPatch{RoomID: &r.RoomID, StartDate: &r.StartDate, EndDate: &r.EndDate}.Apply(r)
	if placementChanged {
		t.Fatal("patching the current room and window must not report a placement change")
	}
	if got.RoomID != r.RoomID {
		t.Fatalf("room changed unexpectedly to %d", got.RoomID)
	}
}

func TestApplyNonPlacementFields(t *testing.T) {
	client := uint64(2)
	prefs := "vue mer"
	party := 3
	got, placementChanged := ReservationPatch{ClientID: &client, Preferences: &prefs, PartySize: &party}.Apply(baseReservation())
	if placementChanged {
		t.Fatal("client and preference changes must not report a placement change")
	}
	if got.ClientID != 2 || got.Preferences == nil || *got.Preferences != "vue mer" || got.PartySize == nil || *got.PartySize != 3 {
		t.Fatalf("patch not applied: %+v", got)
	}
}

// A patch merged over a reservation that was cancelled after the
// caller last saw it must keep the cancelled status: field edits carry
// no status and must never resurrect a terminal reservation.
func TestApplyPreservesStatus(t *testing.T) {
	r := baseReservation()
	r.Status = model.StatusCancelled

	comment := "late checkout requested"
	party := 2
	got, _ := ReservationPatch{Comment: &comment, PartySize: &party}.Apply(r)
	if got.Status != model.StatusCancelled {
		t.Fatalf("patch changed status to %s, want %s kept", got.Status, model.StatusCancelled)
	}

	room := uint64(9)
	got, _ = ReservationPatch{RoomID: &room}.Apply(r)
	if got.Status != model.StatusCancelled {
		t.Fatalf("placement patch changed status to %s", got.Status)
	}
}

func TestEmpty(t *testing.T) {
	if !(ReservationPatch{}).Empty() {
		t.Fatal("zero patch must be empty")
	}
	s := "note"
	if (ReservationPatch{Comment: &s}).Empty() {
		t.Fatal("patch with a comment must not be empty")
	}
}
