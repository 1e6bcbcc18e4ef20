package model

import "time"

// RoomType enumerates the fixed room classes. The values are stored
// verbatim in the rooms.room_type column and exposed on the wire, so
// they must not be renamed.
type RoomType string

const (
	RoomSimple    RoomType = "SIMPLE"
	RoomDouble    RoomType = "DOUBLE"
	RoomSuite     RoomType = "SUITE"
	RoomDeluxe    RoomType = "DELUXE"
	RoomFamiliale RoomType = "FAMILIALE"
)

// ValidRoomType reports whether t is one of the known room classes.
func ValidRoomType(t RoomType) bool {
	switch t {
	case RoomSimple, RoomDouble, RoomSuite, RoomDeluxe, RoomFamiliale:
		return true
	}
	return false
}

// Room represents a bookable hotel room as stored in the `rooms`
// table. Prices are fixed-point integer cents to avoid float
// rounding. IsAvailable is the administrative on/off switch (e.g.
// the room is closed for maintenance); it is independent of the
// date-scoped availability derived from reservations, which is
// computed per query by the booking package.
//
// Fields:
//  ID               – primary key identifier.
//  Number           – unique human-facing room number (e.g. "204").
//  Type             – room class (SIMPLE, DOUBLE, SUITE, DELUXE, FAMILIALE).
//  NightlyRateCents – price per night in cents, never negative.
//  IsAvailable      – administrative availability flag.
//  Description      – optional free-text description.
//  MaxOccupancy     – optional maximum number of guests.
//  CreatedAt        – timestamp of creation.
//  UpdatedAt        – timestamp of last update.
type Room struct {
	ID               uint64    `json:"id"`                      // rooms.id
	Number           string    `json:"room_number"`             // rooms.room_number
	Type             RoomType  `json:"room_type"`               // rooms.room_type
	NightlyRateCents int64     `json:"nightly_rate_cents"`      // rooms.nightly_rate_cents
	IsAvailable      bool      `json:"is_available"`            // rooms.is_available
	Description      *string   `json:"description,omitempty"`   // rooms.description (nullable)
	MaxOccupancy     *int      `json:"max_occupancy,omitempty"` // rooms.max_occupancy (nullable)
	CreatedAt        time.Time `json:"created_at"`              // rooms.created_at
	UpdatedAt        time.Time `json:"updated_at"`              // rooms.updated_at
}
