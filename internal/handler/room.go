package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/booking"
	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/repository"
)

// RoomHandler groups room management and the availability read
// endpoints. Management (create, update, delete, flag changes) is
// registered behind admin auth; the reads are public.
type RoomHandler struct {
	Rooms        *repository.RoomRepo
	Reservations *repository.ReservationRepo
	Engine       *booking.Engine
}

// NewRoomHandler constructs a RoomHandler. Dependencies must be non-nil.
func NewRoomHandler(rooms *repository.RoomRepo, reservations *repository.ReservationRepo, engine *booking.Engine) *RoomHandler {
	if rooms == nil || reservations == nil || engine == nil {
		panic("nil dependency passed to NewRoomHandler")
	}
	return &RoomHandler{Rooms: rooms, Reservations: reservations, Engine: engine}
}

type roomRequest struct {
	Number           string  `json:"room_number"`
	Type             string  `json:"room_type"`
	NightlyRateCents int64   `json:"nightly_rate_cents"`
	IsAvailable      *bool   `json:"is_available"`
	Description      *string `json:"description"`
	MaxOccupancy     *int    `json:"max_occupancy"`
}

func (r roomRequest) validate() string {
	switch {
	case strings.TrimSpace(r.Number) == "":
		return "room_number is required"
	case !model.ValidRoomType(model.RoomType(r.Type)):
		return "room_type must be one of SIMPLE, DOUBLE, SUITE, DELUXE, FAMILIALE"
	case r.NightlyRateCents < 0:
		return "nightly_rate_cents must not be negative"
	case r.MaxOccupancy != nil && *r.MaxOccupancy <= 0:
		return "max_occupancy must be positive"
	}
	return ""
}

func (r roomRequest) toModel(id uint64) *model.Room {
	available := true
	if r.IsAvailable != nil {
		available = *r.IsAvailable
	}
	return &model.Room{
		ID:               id,
		Number:           strings.TrimSpace(r.Number),
		Type:             model.RoomType(r.Type),
		NightlyRateCents: r.NightlyRateCents,
		IsAvailable:      available,
		Description:      r.Description,
		MaxOccupancy:     r.MaxOccupancy,
	}
}

// Create handles POST /v1/rooms (admin). A duplicate room number
// yields 409.
func (h *RoomHandler) Create(c echo.Context) error {
	var body roomRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := body.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	room := body.toModel(0)
	if err := h.Rooms.Create(c.Request().Context(), room); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, room)
}

// Get handles GET /v1/rooms/:id.
func (h *RoomHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	room, err := h.Rooms.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, room)
}

// List handles GET /v1/rooms. Optional filters: ?number= looks up the
// unique room number, ?type= restricts to one room class and
// ?available=true returns only administratively available rooms.
func (h *RoomHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	if number := c.QueryParam("number"); number != "" {
		room, err := h.Rooms.GetByNumber(ctx, number)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"items": []model.Room{*room}})
	}
	var (
		rooms []model.Room
		err   error
	)
	switch {
	case c.QueryParam("type") != "":
		t := model.RoomType(c.QueryParam("type"))
		if !model.ValidRoomType(t) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown room_type"})
		}
		rooms, err = h.Rooms.ListByType(ctx, t)
	case c.QueryParam("available") == "true":
		rooms, err = h.Rooms.ListAvailable(ctx)
	default:
		rooms, err = h.Rooms.List(ctx)
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": rooms})
}

// Update handles PUT /v1/rooms/:id (admin). Rate changes do not touch
// the frozen totals of existing reservations.
func (h *RoomHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var body roomRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := body.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	room := body.toModel(id)
	if err := h.Rooms.Update(c.Request().Context(), room); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, room)
}

// SetAvailability handles PATCH /v1/rooms/:id/availability (admin).
// It flips the administrative flag only; date-scoped availability is
// always computed from reservations.
func (h *RoomHandler) SetAvailability(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var body struct {
		IsAvailable *bool `json:"is_available"`
	}
	if err := c.Bind(&body); err != nil || body.IsAvailable == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "is_available is required"})
	}
	ctx := c.Request().Context()
	if _, err := h.Rooms.GetByID(ctx, id); err != nil {
		return respondError(c, err)
	}
	room, err := h.Rooms.SetAvailability(ctx, id, *body.IsAvailable)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, room)
}

// Delete handles DELETE /v1/rooms/:id (admin). The delete is refused
// with 409 while reservations reference the room.
func (h *RoomHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.Rooms.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Available handles GET /v1/rooms/available?start=&end=. It lists
// every room bookable for the half-open window [start, end).
func (h *RoomHandler) Available(c echo.Context) error {
	start, err := parseDateQuery(c, "start")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	end, err := parseDateQuery(c, "end")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	rooms, err := h.Engine.AvailableRooms(c.Request().Context(), start, end)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"start": booking.FormatDate(booking.DateOf(start)),
		"end":   booking.FormatDate(booking.DateOf(end)),
		"items": rooms,
	})
}

// Availability handles GET /v1/rooms/:id/availability?start=&end=.
// It reports whether one room is free for the window and names the
// conflicting reservations when it is not.
func (h *RoomHandler) Availability(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	start, err := parseDateQuery(c, "start")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	end, err := parseDateQuery(c, "end")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	available, conflicts, err := h.Engine.RoomAvailable(c.Request().Context(), id, start, end)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"room_id":   id,
		"start":     booking.FormatDate(booking.DateOf(start)),
		"end":       booking.FormatDate(booking.DateOf(end)),
		"available": available,
		"conflicts": conflicts,
	})
}

// ListReservations handles GET /v1/rooms/:id/reservations.
func (h *RoomHandler) ListReservations(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx := c.Request().Context()
	if _, err := h.Rooms.GetByID(ctx, id); err != nil {
		return respondError(c, err)
	}
	items, err := h.Reservations.ListByRoom(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
