package booking

import "time"

// Nights returns the whole-day length of the half-open interval
// [start, end). Both bounds must be normalized dates, so the division
// is exact.
func Nights(start, end time.Time) int {
	return int(end.Sub(start) / (24 * time.Hour))
}

// TotalPriceCents computes the frozen total price of a stay:
// nightly rate times the number of nights, in integer cents. Prices
// are fixed-point throughout; no float arithmetic is involved. A
// window with zero or negative nights fails with ErrInvalidRange.
func TotalPriceCents(nightlyRateCents int64, start, end time.Time) (int64, error) {
	n := Nights(start, end)
	if n <= 0 {
		return 0, ErrInvalidRange
	}
	return nightlyRateCents * int64(n), nil
}
