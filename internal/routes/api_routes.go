package routes

import (
	"booking-system/airline/internal/api"
	"booking-system/airline/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterAPIRoutes registers the /api routes. Every route except register
// and login requires a token; catalogue writes also require an admin.
func RegisterAPIRoutes(r chi.Router, deps *api.Dependencies, handlers *api.Handlers, authLimiter *middleware.RateLimiter) {
	requireAuth := middleware.AuthMiddleware(deps.Tokens)
	requireAdmin := middleware.IsAdminMiddleware()

	r.Route("/api", func(apiRouter chi.Router) {
		apiRouter.Route("/users", func(users chi.Router) {
			users.Group(func(public chi.Router) {
				if authLimiter != nil {
					public.Use(authLimiter.Middleware)
				}
				public.Post("/register", handlers.Register())
				public.Post("/login", handlers.Login())
			})
			users.With(requireAuth).Get("/validate-token", handlers.ValidateToken())
		})

		apiRouter.Group(func(authed chi.Router) {
			authed.Use(requireAuth)

			authed.Route("/aircraft", func(aircraft chi.Router) {
				aircraft.Use(requireAdmin)
				aircraft.Get("/", handlers.ListAircraft())
				aircraft.Post("/", handlers.CreateAircraft())
				aircraft.Get("/{id}", handlers.GetAircraft())
				aircraft.Put("/{id}", handlers.UpdateAircraft())
				aircraft.Delete("/{id}", handlers.DeleteAircraft())
				aircraft.Put("/undelete/{id}", handlers.RestoreAircraft())
			})

			authed.Route("/flights", func(flights chi.Router) {
				flights.Get("/{id}", handlers.GetFlight())
				flights.Get("/by-date/{date}", handlers.ListFlightsByDate())

				// Admin-only group
				flights.Group(func(admin chi.Router) {
					admin.Use(requireAdmin)
					admin.Post("/", handlers.CreateFlight())
					admin.Put("/{id}", handlers.UpdateFlight())
					admin.Delete("/{id}", handlers.DeleteFlight())
					admin.Put("/undelete/{id}", handlers.RestoreFlight())
				})
			})

			authed.Route("/seats", func(seats chi.Router) {
				seats.Get("/{id}", handlers.GetSeat())
				seats.Get("/{flight_id}/{date}", handlers.ListSeatsForFlightOnDate())
				seats.With(requireAdmin).Put("/{id}", handlers.UpdateSeat())
			})

			authed.Route("/bookings", func(bookings chi.Router) {
				bookings.Post("/", handlers.CreateBooking())
				bookings.Get("/{id}", handlers.GetBooking())
			})
		})
	})
}
