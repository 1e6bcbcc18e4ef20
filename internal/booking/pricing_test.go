package booking

import (
	"errors"
	"testing"
)

func TestNights(t *testing.T) {
	if n := Nights(date("2026-09-01"), date("2026-09-04")); n != 3 {
		t.Fatalf("expected 3 nights, got %d", n)
	}
	if n := Nights(date("2026-09-01"), date("2026-09-02")); n != 1 {
		t.Fatalf("expected 1 night, got %d", n)
	}
	if n := Nights(date("2026-09-01"), date("2026-09-01")); n != 0 {
		t.Fatalf("expected 0 nights for same-day window, got %d", n)
	}
}

func TestTotalPriceCents(t *testing.T) {
	// 100.00 per night for 3 nights is 300.00 exactly.
	total, err := TotalPriceCents(10000, date("2026-09-01"), date("2026-09-04"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 30000 {
		t.Fatalf("expected 30000 cents, got %d", total)
	}
}

func TestTotalPriceCentsRejectsEmptyRange(t *testing.T) {
	if _, err := TotalPriceCents(10000, date("2026-09-01"), date("2026-09-01")); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange for start == end, got %v", err)
	}
	if _, err := TotalPriceCents(10000, date("2026-09-05"), date("2026-09-01")); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange for end before start, got %v", err)
	}
}

func TestTotalPriceCentsZeroRate(t *testing.T) {
	total, err := TotalPriceCents(0, date("2026-09-01"), date("2026-09-03"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 0 {
		t.Fatalf("expected 0 for a free room, got %d", total)
	}
}
