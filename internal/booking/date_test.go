package booking

import (
	"testing"
	"time"
)

func TestDateOf(t *testing.T) {
	in := time.Date(2026, 9, 1, 15, 42, 7, 123, time.FixedZone("CET", 3600))
	got := DateOf(in)
	want := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("DateOf = %v, want %v", got, want)
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2026-09-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if FormatDate(got) != "2026-09-01" {
		t.Fatalf("round trip gave %s", FormatDate(got))
	}
	for _, bad := range []string{"", "01/09/2026", "2026-9-1", "2026-09-01T00:00:00Z"} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}
