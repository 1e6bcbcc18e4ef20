// Package queue defines message payloads exchanged over the message broker.
package queue

// Reservation event types published to the reservation.events queue.
const (
	EventReservationCreated       = "reservation.created"
	EventReservationUpdated       = "reservation.updated"
	EventReservationStatusChanged = "reservation.status_changed"
	EventReservationDeleted       = "reservation.deleted"
)

// ReservationEvent is published whenever the booking engine commits a
// change to a reservation. It carries enough information for
// downstream consumers to log or trigger analytics without querying
// the primary database. Dates are YYYY-MM-DD strings; OccurredAt is
// RFC 3339.
type ReservationEvent struct {
	Type            string `json:"type"`
	ReservationID   uint64 `json:"reservation_id"`
	ClientID        uint64 `json:"client_id"`
	RoomID          uint64 `json:"room_id"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	Status          string `json:"status"`
	TotalPriceCents int64  `json:"total_price_cents"`
	OccurredAt      string `json:"occurred_at"`
}
