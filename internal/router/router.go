package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/hotel-reservation/internal/config"
	"github.com/iliyamo/hotel-reservation/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/hotel-reservation/internal/middleware" // import middleware for admin auth, rate limiting and caching
)

// Handlers bundles every handler the route table needs so the
// registration functions stay short.
type Handlers struct {
	Clients      *handler.ClientHandler
	Rooms        *handler.RoomHandler
	Reservations *handler.ReservationHandler
}

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAPI registers the whole /v1 route table. Rate limiting wraps
// the group when Redis is reachable, the response cache wraps the hot
// read endpoints, and admin-only mutations carry the AdminAuth
// middleware individually so the rest of the API stays open.
func RegisterAPI(e *echo.Echo, h Handlers, adminSecret string, rdb *redis.Client) {
	v1 := e.Group("/v1")

	// Both middlewares degrade to no-ops when Redis is down, so wiring
	// them unconditionally is safe.
	if rdb != nil {
		rl := config.LoadRateLimitConfig()
		if rl.Enabled {
			v1.Use(middleware.NewTokenBucket(rl, rdb))
		}
	}
	var cached echo.MiddlewareFunc
	if rdb != nil {
		cc := config.LoadCacheConfig()
		if cc.Enabled {
			cached = middleware.NewRedisCache(cc, rdb)
		}
	}
	// withCache applies the response cache to a read route when the
	// cache is configured, and is the identity otherwise.
	withCache := func(fn echo.HandlerFunc) (echo.HandlerFunc, []echo.MiddlewareFunc) {
		if cached == nil {
			return fn, nil
		}
		return fn, []echo.MiddlewareFunc{cached}
	}

	admin := middleware.AdminAuth(adminSecret)

	// Clients.  Creation and lookups are open so the booking flow can
	// self-register; destructive operations are reserved to admins.
	v1.POST("/clients", h.Clients.Create)
	v1.GET("/clients", h.Clients.List)
	v1.GET("/clients/:id", h.Clients.Get)
	v1.PUT("/clients/:id", h.Clients.Update)
	v1.DELETE("/clients/:id", h.Clients.Delete, admin)
	v1.GET("/clients/:id/reservations", h.Clients.ListReservations)

	// Rooms.  The catalogue and availability reads are public; room
	// management belongs to admins.
	v1.POST("/rooms", h.Rooms.Create, admin)
	{
		fn, mw := withCache(h.Rooms.List)
		v1.GET("/rooms", fn, mw...)
	}
	{
		// The availability search is the hottest read of the service,
		// so it sits behind the short-TTL response cache.
		fn, mw := withCache(h.Rooms.Available)
		v1.GET("/rooms/available", fn, mw...)
	}
	v1.GET("/rooms/:id", h.Rooms.Get)
	v1.GET("/rooms/:id/availability", h.Rooms.Availability)
	v1.GET("/rooms/:id/reservations", h.Rooms.ListReservations)
	v1.PUT("/rooms/:id", h.Rooms.Update, admin)
	v1.PATCH("/rooms/:id/availability", h.Rooms.SetAvailability, admin)
	v1.DELETE("/rooms/:id", h.Rooms.Delete, admin)

	// Reservations.  Every write funnels through the booking engine.
	v1.POST("/reservations", h.Reservations.Create)
	v1.GET("/reservations", h.Reservations.List)
	v1.GET("/reservations/:id", h.Reservations.Get)
	v1.PATCH("/reservations/:id", h.Reservations.Update)
	v1.PATCH("/reservations/:id/status", h.Reservations.UpdateStatus)
	v1.DELETE("/reservations/:id", h.Reservations.Delete, admin)
}
