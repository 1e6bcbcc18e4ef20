package booking

import "github.com/iliyamo/hotel-reservation/internal/model"

// transitions is the complete set of legal status changes. EN_ATTENTE
// is the initial state; ANNULEE and TERMINEE are terminal. Anything
// not listed here (reviving a cancelled reservation, leaving a
// completed one) is rejected.
var transitions = map[model.ReservationStatus][]model.ReservationStatus{
	model.StatusPending:   {model.StatusConfirmed, model.StatusCancelled},
	model.StatusConfirmed: {model.StatusCancelled, model.StatusCompleted},
	model.StatusCancelled: {},
	model.StatusCompleted: {},
}

// CanTransition reports whether the status change from -> to is legal.
func CanTransition(from, to model.ReservationStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition can leave s.
func IsTerminal(s model.ReservationStatus) bool {
	return len(transitions[s]) == 0
}

// CheckTransition validates the status change from -> to and returns
// an *InvalidTransitionError when it is illegal. Confirming a pending
// reservation additionally requires an availability re-check, which is
// the engine's responsibility: it must run in the same transaction as
// the status write.
func CheckTransition(from, to model.ReservationStatus) error {
	if !CanTransition(from, to) {
		return &InvalidTransitionError{From: from, To: to}
	}
	return nil
}
