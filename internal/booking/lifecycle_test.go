package booking

import (
	"errors"
	"testing"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to model.ReservationStatus }{
		{model.StatusPending, model.StatusConfirmed},
		{model.StatusPending, model.StatusCancelled},
		{model.StatusConfirmed, model.StatusCancelled},
		{model.StatusConfirmed, model.StatusCompleted},
	}
	for _, tr := range allowed {
		if !CanTransition(tr.from, tr.to) {
			t.Errorf("expected %s -> %s to be allowed", tr.from, tr.to)
		}
	}

	denied := []struct{ from, to model.ReservationStatus }{
		{model.StatusCancelled, model.StatusConfirmed},
		{model.StatusCancelled, model.StatusPending},
		{model.StatusCompleted, model.StatusCancelled},
		{model.StatusCompleted, model.StatusConfirmed},
		{model.StatusPending, model.StatusCompleted},
		{model.StatusPending, model.StatusPending},
		{model.StatusConfirmed, model.StatusPending},
	}
	for _, tr := range denied {
		if CanTransition(tr.from, tr.to) {
			t.Errorf("expected %s -> %s to be rejected", tr.from, tr.to)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	if !IsTerminal(model.StatusCancelled) || !IsTerminal(model.StatusCompleted) {
		t.Fatal("ANNULEE and TERMINEE must be terminal")
	}
	if IsTerminal(model.StatusPending) || IsTerminal(model.StatusConfirmed) {
		t.Fatal("EN_ATTENTE and CONFIRMEE must not be terminal")
	}
}

func TestCheckTransitionError(t *testing.T) {
	err := CheckTransition(model.StatusCancelled, model.StatusConfirmed)
	if err == nil {
		t.Fatal("expected an error for ANNULEE -> CONFIRMEE")
	}
	var ite *InvalidTransitionError
	if !errors.As(err, &ite) {
		t.Fatalf("expected *InvalidTransitionError, got %T", err)
	}
	if ite.From != model.StatusCancelled || ite.To != model.StatusConfirmed {
		t.Fatalf("error carries wrong states: %+v", ite)
	}

	if err := CheckTransition(model.StatusPending, model.StatusConfirmed); err != nil {
		t.Fatalf("expected EN_ATTENTE -> CONFIRMEE to pass, got %v", err)
	}
}
