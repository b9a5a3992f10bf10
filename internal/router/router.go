package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"sessionbook-backend/internal/handlers"
	"sessionbook-backend/internal/middleware"
	"sessionbook-backend/internal/websocket"
)

func New(
	sessionHandler *handlers.SessionHandler,
	bookingHandler *handlers.BookingHandler,
	reviewHandler *handlers.ReviewHandler,
	wsHub *websocket.Hub,
	frontendURLs []string,
	writesPerMinute int,
	logger zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(frontendURLs))

	// Mutating endpoints share one per-IP budget
	writeLimiter := middleware.RateLimit(middleware.RateLimitConfig{
		RequestLimit: writesPerMinute,
		WindowSize:   time.Minute,
	})

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {

		// ──── Discovery ────
		r.Get("/cities", sessionHandler.Cities)
		r.Get("/categories", sessionHandler.Categories)
		r.Get("/map", sessionHandler.Map)
		r.Get("/nearest-city", sessionHandler.NearestCity)

		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", sessionHandler.List)
			r.Get("/{id}", sessionHandler.Get)
			r.Get("/{id}/reviews", reviewHandler.List)
			r.With(writeLimiter).Post("/{id}/reviews", reviewHandler.Submit)
		})

		// ──── Booking Flow ────
		r.Route("/bookings", func(r chi.Router) {
			r.With(writeLimiter).Post("/", bookingHandler.Start)
			r.Get("/{id}", bookingHandler.Get)
			r.Get("/{id}/ticket", bookingHandler.Ticket)
			r.Get("/{id}/ws", wsHub.HandleWebSocket)

			r.Group(func(r chi.Router) {
				r.Use(writeLimiter)
				r.Post("/{id}/time", bookingHandler.SelectTime)
				r.Post("/{id}/pay", bookingHandler.Pay)
			})
		})

		r.Get("/tickets/verify", bookingHandler.VerifyTicket)
	})

	return r
}
