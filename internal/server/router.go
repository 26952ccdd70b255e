// Package server wires the HTTP surface: routing, middleware chain, and the
// handler set backed by the marketplace API client.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"tikeria/internal/api"
	"tikeria/internal/config"
	"tikeria/internal/handlers"
	"tikeria/internal/middleware"
	"tikeria/internal/models"
	"tikeria/internal/services"
	"tikeria/internal/session"
)

// New builds the router with every page endpoint mounted behind the proper
// role gates
func New(cfg *config.Config, logger *zap.SugaredLogger) http.Handler {
	client := api.NewClient(cfg.Upstream.BaseURL, logger)

	store := sessions.NewCookieStore([]byte(cfg.Session.Secret))
	resolver := session.NewResolver(store)

	cartService := services.NewCartService(client, logger)
	ticketService := services.NewTicketService(client, logger)
	eventService := services.NewEventService(client, logger)
	verificationService := services.NewVerificationService(client, logger)

	authHandler := handlers.NewAuthHandler(client, resolver)
	cartHandler := handlers.NewCartHandler(cartService)
	ticketHandler := handlers.NewTicketHandler(ticketService)
	eventHandler := handlers.NewEventHandler(eventService)
	adminHandler := handlers.NewAdminHandler(verificationService)

	sessionMiddleware := middleware.NewSessionMiddleware(resolver)
	limiter := middleware.NewRateLimiter(rate.Limit(cfg.Server.RateLimit), cfg.Server.RateBurst)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.LoggingMiddleware(logger))
	r.Use(corsHandler.Handler)
	r.Use(limiter.Limit)
	r.Use(sessionMiddleware.Load)

	// public surface
	r.Post("/login", authHandler.Login)
	r.Post("/register", authHandler.Register)
	r.Post("/logout", authHandler.Logout)
	r.Get("/session", authHandler.Session)

	r.Get("/events", eventHandler.Browse)
	r.Get("/events/popular", eventHandler.Popular)
	r.Get("/events/{eventID}", eventHandler.Detail)

	// buyer surface
	r.Route("/cart", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", cartHandler.View)
		r.Post("/", cartHandler.Add)
		r.Post("/quantity", cartHandler.ChangeQuantity)
		r.Delete("/{cartID}", cartHandler.Remove)
	})

	r.Route("/tickets", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", ticketHandler.List)
		r.Get("/{ticketID}/qr", ticketHandler.Credential)
	})

	// organizer surface
	r.Route("/organizer", func(r chi.Router) {
		r.Use(middleware.RequireRole(models.RoleOrganizer))
		r.Post("/events", eventHandler.Register)
	})

	// admin surface
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireRole(models.RoleAdmin))
		r.Get("/users/{userID}", adminHandler.OrganizerProfile)
		r.Post("/users/{userID}/verify", adminHandler.VerifyOrganizer)
		r.Post("/events/{eventID}/verify", adminHandler.VerifyEvent)
	})

	return r
}
