package model

import "time"

// ReservationStatus enumerates the reservation lifecycle states. The
// stored string values are inherited from the legacy system and must
// stay stable; the Go names carry the English meaning.
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "EN_ATTENTE" // initial state
	StatusConfirmed ReservationStatus = "CONFIRMEE"
	StatusCancelled ReservationStatus = "ANNULEE" // terminal
	StatusCompleted ReservationStatus = "TERMINEE" // terminal
)

// ValidStatus reports whether s is one of the known lifecycle states.
func ValidStatus(s ReservationStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Reservation records a client's booking of a room for a half-open
// date range [StartDate, EndDate): the end date is exclusive, so a
// stay ending on day X does not conflict with one starting on day X.
// TotalPriceCents is computed once at creation from the room's
// nightly rate and frozen; later rate changes do not touch it.
//
// Fields:
//  ID              – primary key identifier.
//  ClientID        – owning client (non-owning reference).
//  RoomID          – booked room (non-owning reference).
//  StartDate       – first night of the stay (inclusive), date only.
//  EndDate         – checkout date (exclusive), date only.
//  Status          – lifecycle state (see ReservationStatus).
//  Preferences     – optional free-text guest preferences.
//  PartySize       – optional number of guests.
//  TotalPriceCents – frozen total price in cents.
//  Comment         – optional staff comment.
//  CreatedAt       – timestamp of creation.
//  UpdatedAt       – timestamp of last update.
type Reservation struct {
	ID              uint64            `json:"id"`                    // reservations.id
	ClientID        uint64            `json:"client_id"`             // reservations.client_id
	RoomID          uint64            `json:"room_id"`               // reservations.room_id
	StartDate       time.Time         `json:"start_date"`            // reservations.start_date (DATE)
	EndDate         time.Time         `json:"end_date"`              // reservations.end_date (DATE)
	Status          ReservationStatus `json:"status"`                // reservations.status
	Preferences     *string           `json:"preferences,omitempty"` // reservations.preferences (nullable)
	PartySize       *int              `json:"party_size,omitempty"`  // reservations.party_size (nullable)
	TotalPriceCents int64             `json:"total_price_cents"`     // reservations.total_price_cents
	Comment         *string           `json:"comment,omitempty"`     // reservations.comment (nullable)
	CreatedAt       time.Time         `json:"created_at"`            // reservations.created_at
	UpdatedAt       time.Time         `json:"updated_at"`            // reservations.updated_at
}
