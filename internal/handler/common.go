// Package handler defines the HTTP handlers of the reservation API.
// This file holds the helpers shared across handler files: path and
// query parsing, and the single mapping from domain errors onto HTTP
// responses.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/booking"
	"github.com/iliyamo/hotel-reservation/internal/repository"
)

// parseID extracts a positive numeric path parameter.
func parseID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid " + name)
	}
	return id, nil
}

// parseDateQuery reads a required YYYY-MM-DD query parameter.
func parseDateQuery(c echo.Context, name string) (time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return time.Time{}, errors.New("missing query parameter " + name)
	}
	d, err := booking.ParseDate(raw)
	if err != nil {
		return time.Time{}, errors.New(name + " must be a YYYY-MM-DD date")
	}
	return d, nil
}

// respondError maps a domain error onto the HTTP response the client
// sees. Every handler funnels its failures through here so the API
// reports each error kind with one consistent status and shape:
// absent records are 404, bad input is 400, booking conflicts, illegal
// transitions and dependent-record rejections are 409, and lock
// contention is a retryable 503 with a Retry-After hint.
func respondError(c echo.Context, err error) error {
	var (
		conflict   *booking.ConflictError
		transition *booking.InvalidTransitionError
		timeout    *booking.TimeoutError
	)
	switch {
	case errors.Is(err, repository.ErrClientNotFound),
		errors.Is(err, repository.ErrRoomNotFound),
		errors.Is(err, repository.ErrReservationNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, booking.ErrInvalidRange):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.As(err, &conflict):
		return c.JSON(http.StatusConflict, echo.Map{
			"error":                    "room is not available for the requested dates",
			"room_id":                  conflict.RoomID,
			"conflicting_reservations": conflict.ReservationIDs,
		})
	case errors.As(err, &transition):
		return c.JSON(http.StatusConflict, echo.Map{"error": transition.Error()})
	case errors.Is(err, repository.ErrDuplicate),
		errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.As(err, &timeout):
		c.Response().Header().Set("Retry-After", "1")
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "booking contention, retry later"})
	default:
		c.Logger().Errorf("internal error: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
