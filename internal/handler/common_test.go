package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/booking"
	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/repository"
)

func respond(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if respErr := respondError(c, err); respErr != nil {
		t.Fatalf("respondError returned %v", respErr)
	}
	return rec
}

func TestRespondErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"client not found", repository.ErrClientNotFound, http.StatusNotFound},
		{"room not found", repository.ErrRoomNotFound, http.StatusNotFound},
		{"reservation not found", repository.ErrReservationNotFound, http.StatusNotFound},
		{"invalid range", booking.ErrInvalidRange, http.StatusBadRequest},
		{"wrapped invalid range", errors.Join(booking.ErrInvalidRange), http.StatusBadRequest},
		{"invalid transition", &booking.InvalidTransitionError{From: model.StatusCancelled, To: model.StatusConfirmed}, http.StatusConflict},
		{"duplicate", repository.ErrDuplicate, http.StatusConflict},
		{"dependent records", repository.ErrConflict, http.StatusConflict},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		rec := respond(t, tc.err)
		if rec.Code != tc.code {
			t.Errorf("%s: got status %d, want %d", tc.name, rec.Code, tc.code)
		}
	}
}

func TestRespondErrorConflictBody(t *testing.T) {
	rec := respond(t, &booking.ConflictError{RoomID: 7, ReservationIDs: []uint64{11, 12}})
	if rec.Code != http.StatusConflict {
		t.Fatalf("got status %d, want 409", rec.Code)
	}
	var body struct {
		RoomID    uint64   `json:"room_id"`
		Conflicts []uint64 `json:"conflicting_reservations"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body.RoomID != 7 || len(body.Conflicts) != 2 {
		t.Fatalf("conflict body does not name the blockers: %s", rec.Body.String())
	}
}

func TestRespondErrorTimeout(t *testing.T) {
	rec := respond(t, &booking.TimeoutError{RoomID: 7, Wait: 3 * time.Second})
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("got status %d, want 503", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatal("expected a Retry-After hint")
	}
}

func TestParseDateQuery(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?start=2026-09-01&end=oops", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	start, err := parseDateQuery(c, "start")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if booking.FormatDate(start) != "2026-09-01" {
		t.Fatalf("parsed %s", booking.FormatDate(start))
	}
	if _, err := parseDateQuery(c, "end"); err == nil {
		t.Fatal("expected an error for a malformed date")
	}
	if _, err := parseDateQuery(c, "missing"); err == nil {
		t.Fatal("expected an error for an absent parameter")
	}
}
