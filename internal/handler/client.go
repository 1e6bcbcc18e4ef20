package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/repository"
)

// ClientHandler groups the repositories needed to manage hotel
// clients. Deleting a client is guarded by the repository: it is
// rejected while the client still owns reservations.
type ClientHandler struct {
	Clients      *repository.ClientRepo
	Reservations *repository.ReservationRepo
}

// NewClientHandler constructs a ClientHandler. Dependencies must be non-nil.
func NewClientHandler(clients *repository.ClientRepo, reservations *repository.ReservationRepo) *ClientHandler {
	if clients == nil || reservations == nil {
		panic("nil repository passed to NewClientHandler")
	}
	return &ClientHandler{Clients: clients, Reservations: reservations}
}

type clientRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

func (r clientRequest) validate() string {
	switch {
	case strings.TrimSpace(r.FirstName) == "":
		return "first_name is required"
	case strings.TrimSpace(r.LastName) == "":
		return "last_name is required"
	case strings.TrimSpace(r.Email) == "" || !strings.Contains(r.Email, "@"):
		return "a valid email is required"
	case strings.TrimSpace(r.Phone) == "":
		return "phone is required"
	}
	return ""
}

// Create handles POST /v1/clients. It registers a new client and
// returns 201 with the stored record. A taken email yields 409.
func (h *ClientHandler) Create(c echo.Context) error {
	var body clientRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := body.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	client := &model.Client{
		FirstName: strings.TrimSpace(body.FirstName),
		LastName:  strings.TrimSpace(body.LastName),
		Email:     strings.TrimSpace(body.Email),
		Phone:     strings.TrimSpace(body.Phone),
	}
	if err := h.Clients.Create(c.Request().Context(), client); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, client)
}

// Get handles GET /v1/clients/:id.
func (h *ClientHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	client, err := h.Clients.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, client)
}

// List handles GET /v1/clients. Optional filters: ?email= returns the
// single client with that email; ?name= searches first and last names.
func (h *ClientHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	if email := c.QueryParam("email"); email != "" {
		client, err := h.Clients.GetByEmail(ctx, email)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"items": []model.Client{*client}})
	}
	var (
		clients []model.Client
		err     error
	)
	if name := c.QueryParam("name"); name != "" {
		clients, err = h.Clients.SearchByName(ctx, name)
	} else {
		clients, err = h.Clients.List(ctx)
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": clients})
}

// Update handles PUT /v1/clients/:id. Only the contact fields change;
// the client's identity is immutable.
func (h *ClientHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var body clientRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := body.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	client := &model.Client{
		ID:        id,
		FirstName: strings.TrimSpace(body.FirstName),
		LastName:  strings.TrimSpace(body.LastName),
		Email:     strings.TrimSpace(body.Email),
		Phone:     strings.TrimSpace(body.Phone),
	}
	if err := h.Clients.Update(c.Request().Context(), client); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, client)
}

// Delete handles DELETE /v1/clients/:id. The delete is refused with
// 409 while the client owns reservations; those must be deleted first.
func (h *ClientHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.Clients.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListReservations handles GET /v1/clients/:id/reservations. It
// returns the client's reservations, newest stay first.
func (h *ClientHandler) ListReservations(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx := c.Request().Context()
	if _, err := h.Clients.GetByID(ctx, id); err != nil {
		return respondError(c, err)
	}
	items, err := h.Reservations.ListByClient(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
