// Package repository defines sentinel errors reused across the data
// access layer. Higher layers match on these with errors.Is to map
// failures onto HTTP responses: not-found sentinels become 404,
// ErrConflict becomes 409, ErrDuplicate becomes 409 as well.
package repository

import "errors"

// ErrClientNotFound is returned when no client row matches the lookup.
var ErrClientNotFound = errors.New("client not found")

// ErrRoomNotFound is returned when no room row matches the lookup.
var ErrRoomNotFound = errors.New("room not found")

// ErrReservationNotFound is returned when no reservation row matches
// the lookup.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrConflict is returned when a delete cannot proceed because
// dependent records exist, such as removing a client or a room that
// still owns reservations. The dependents must be dealt with first;
// nothing is cascaded implicitly.
var ErrConflict = errors.New("conflicting dependent records exist")

// ErrDuplicate is returned when an insert or update violates a unique
// constraint (client email, room number).
var ErrDuplicate = errors.New("duplicate value for unique field")
