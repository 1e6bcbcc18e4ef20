package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/booking"
	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/repository"
)

// ReservationHandler exposes the booking engine over HTTP. All writes
// go through the engine so the no-double-booking guarantee holds; the
// read endpoints hit the repository directly.
type ReservationHandler struct {
	Engine       *booking.Engine
	Reservations *repository.ReservationRepo
	Clients      *repository.ClientRepo
	Rooms        *repository.RoomRepo
}

// NewReservationHandler constructs a ReservationHandler. Dependencies
// must be non-nil.
func NewReservationHandler(engine *booking.Engine, reservations *repository.ReservationRepo, clients *repository.ClientRepo, rooms *repository.RoomRepo) *ReservationHandler {
	if engine == nil || reservations == nil || clients == nil || rooms == nil {
		panic("nil dependency passed to NewReservationHandler")
	}
	return &ReservationHandler{Engine: engine, Reservations: reservations, Clients: clients, Rooms: rooms}
}

type createReservationRequest struct {
	ClientID    uint64  `json:"client_id"`
	RoomID      uint64  `json:"room_id"`
	StartDate   string  `json:"start_date"` // YYYY-MM-DD
	EndDate     string  `json:"end_date"`   // YYYY-MM-DD
	Preferences *string `json:"preferences"`
	PartySize   *int    `json:"party_size"`
	Comment     *string `json:"comment"`
}

// updateReservationRequest uses pointer fields so an absent key is
// distinguishable from an explicit value. Status is not updatable
// here; the status endpoint owns the lifecycle.
type updateReservationRequest struct {
	ClientID    *uint64 `json:"client_id"`
	RoomID      *uint64 `json:"room_id"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Preferences *string `json:"preferences"`
	PartySize   *int    `json:"party_size"`
	Comment     *string `json:"comment"`
}

// Create handles POST /v1/reservations.
func (h *ReservationHandler) Create(c echo.Context) error {
	var body createReservationRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.ClientID == 0 || body.RoomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "client_id and room_id are required"})
	}
	start, err := booking.ParseDate(body.StartDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_date must be formatted as YYYY-MM-DD"})
	}
	end, err := booking.ParseDate(body.EndDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_date must be formatted as YYYY-MM-DD"})
	}
	if body.PartySize != nil && *body.PartySize <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "party_size must be positive"})
	}
	res, err := h.Engine.CreateReservation(c.Request().Context(), booking.CreateReservationInput{
		ClientID:    body.ClientID,
		RoomID:      body.RoomID,
		StartDate:   start,
		EndDate:     end,
		Preferences: body.Preferences,
		PartySize:   body.PartySize,
		Comment:     body.Comment,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, res)
}

// Get handles GET /v1/reservations/:id. The response embeds the
// client and room records alongside the reservation so a detail view
// needs a single round trip.
func (h *ReservationHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx := c.Request().Context()
	res, err := h.Reservations.GetByID(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	client, err := h.Clients.GetByID(ctx, res.ClientID)
	if err != nil {
		return respondError(c, err)
	}
	room, err := h.Rooms.GetByID(ctx, res.RoomID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"reservation": res,
		"client":      client,
		"room":        room,
	})
}

// List handles GET /v1/reservations. Optional filters: ?status=
// narrows to one lifecycle state, ?current=true keeps only stays that
// have not ended and are not cancelled.
func (h *ReservationHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	var (
		items []model.Reservation
		err   error
	)
	switch {
	case c.QueryParam("status") != "":
		status := model.ReservationStatus(c.QueryParam("status"))
		if !model.ValidStatus(status) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
		}
		items, err = h.Reservations.ListByStatus(ctx, status)
	case c.QueryParam("current") == "true":
		items, err = h.Reservations.ListCurrent(ctx, booking.DateOf(time.Now()))
	default:
		items, err = h.Reservations.List(ctx)
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Update handles PATCH /v1/reservations/:id. Moving the reservation to
// another room or window re-runs the conflict check and recomputes the
// frozen total; other fields change in place.
func (h *ReservationHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var body updateReservationRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	patch := booking.ReservationPatch{
		ClientID:    body.ClientID,
		RoomID:      body.RoomID,
		Preferences: body.Preferences,
		PartySize:   body.PartySize,
		Comment:     body.Comment,
	}
	if body.StartDate != nil {
		start, err := booking.ParseDate(*body.StartDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_date must be formatted as YYYY-MM-DD"})
		}
		patch.StartDate = &start
	}
	if body.EndDate != nil {
		end, err := booking.ParseDate(*body.EndDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_date must be formatted as YYYY-MM-DD"})
		}
		patch.EndDate = &end
	}
	if body.PartySize != nil && *body.PartySize <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "party_size must be positive"})
	}
	res, err := h.Engine.UpdateReservation(c.Request().Context(), id, patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// UpdateStatus handles PATCH /v1/reservations/:id/status. Only the
// transitions of the lifecycle state machine are accepted.
func (h *ReservationHandler) UpdateStatus(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	status := model.ReservationStatus(body.Status)
	if !model.ValidStatus(status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}
	res, err := h.Engine.UpdateReservationStatus(c.Request().Context(), id, status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// Delete handles DELETE /v1/reservations/:id. The record is removed
// outright regardless of status; cancelling is the reversible path.
func (h *ReservationHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.Engine.DeleteReservation(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
