package booking

import (
	"testing"
	"time"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

func date(s string) time.Time {
	t, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd string
		want                       bool
	}{
		{"identical windows", "2026-09-01", "2026-09-05", "2026-09-01", "2026-09-05", true},
		{"partial overlap", "2026-09-01", "2026-09-05", "2026-09-04", "2026-09-08", true},
		{"contained window", "2026-09-01", "2026-09-10", "2026-09-03", "2026-09-05", true},
		{"single shared night", "2026-09-01", "2026-09-05", "2026-09-04", "2026-09-05", true},
		{"back to back stays", "2026-09-01", "2026-09-05", "2026-09-05", "2026-09-08", false},
		{"reversed back to back", "2026-09-05", "2026-09-08", "2026-09-01", "2026-09-05", false},
		{"disjoint windows", "2026-09-01", "2026-09-03", "2026-09-10", "2026-09-12", false},
	}
	for _, tc := range cases {
		got := Overlaps(date(tc.aStart), date(tc.aEnd), date(tc.bStart), date(tc.bEnd))
		if got != tc.want {
			t.Errorf("%s: Overlaps = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestOverlapsIsSymmetric(t *testing.T) {
	a1, a2 := date("2026-09-01"), date("2026-09-05")
	b1, b2 := date("2026-09-04"), date("2026-09-08")
	if Overlaps(a1, a2, b1, b2) != Overlaps(b1, b2, a1, a2) {
		t.Fatal("Overlaps must be symmetric in its two windows")
	}
}

func TestConflictingSkipsCancelled(t *testing.T) {
	reservations := []model.Reservation{
		{ID: 1, RoomID: 7, StartDate: date("2026-09-01"), EndDate: date("2026-09-05"), Status: model.StatusCancelled},
		{ID: 2, RoomID: 7, StartDate: date("2026-09-02"), EndDate: date("2026-09-06"), Status: model.StatusConfirmed},
		{ID: 3, RoomID: 7, StartDate: date("2026-09-06"), EndDate: date("2026-09-09"), Status: model.StatusPending},
	}
	got := Conflicting(reservations, date("2026-09-03"), date("2026-09-06"))
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("expected only reservation 2 to conflict, got %+v", got)
	}
}

func TestConflictingEmptyInput(t *testing.T) {
	if got := Conflicting(nil, date("2026-09-01"), date("2026-09-05")); len(got) != 0 {
		t.Fatalf("expected no conflicts for empty input, got %d", len(got))
	}
}

func TestFilterBookable(t *testing.T) {
	rooms := []model.Room{
		{ID: 1, IsAvailable: true},
		{ID: 2, IsAvailable: true},
		{ID: 3, IsAvailable: true},
	}

	// No exclusions: every room stays.
	if got := FilterBookable(rooms, nil); len(got) != 3 {
		t.Fatalf("expected all 3 rooms with empty exclusion, got %d", len(got))
	}
	// Busy rooms drop out.
	got := FilterBookable(rooms, []uint64{2})
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Fatalf("expected rooms 1 and 3, got %+v", got)
	}
	// Every room busy.
	if got := FilterBookable(rooms, []uint64{1, 2, 3}); len(got) != 0 {
		t.Fatalf("expected no rooms, got %d", len(got))
	}
}

func TestFilterBookableDropsOutOfServiceRooms(t *testing.T) {
	rooms := []model.Room{
		{ID: 1, IsAvailable: true},
		{ID: 2, IsAvailable: false},
	}
	got := FilterBookable(rooms, nil)
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected only room 1, the out-of-service room must be dropped: %+v", got)
	}
}
