// Package router wires the HTTP surface: registration, activation and
// health endpoints plus the shared middleware chain.
package router

import (
	chi "github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dtroode/signup-server/internal/api/rest/handler"
	"github.com/dtroode/signup-server/internal/api/rest/middleware"
	"github.com/dtroode/signup-server/internal/logger"
	"github.com/dtroode/signup-server/internal/model"
)

// Router builds the chi mux for the signup server.
type Router struct {
	registration handler.RegistrationService
	activation   handler.ActivationService
	store        model.UserStore
	logger       *logger.Logger
}

// New creates a new Router instance.
func New(
	registration handler.RegistrationService,
	activation handler.ActivationService,
	store model.UserStore,
	logger *logger.Logger,
) *Router {
	return &Router{
		registration: registration,
		activation:   activation,
		store:        store,
		logger:       logger,
	}
}

// Register builds the mux with all middleware and routes.
func (rt *Router) Register() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewLogging(rt.logger).Handle)
	r.Use(cors.Handler(cors.Options{
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Accept-Language", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(middleware.Locale)

	userHandler := handler.NewUser(rt.registration, rt.activation, rt.logger)
	healthHandler := handler.NewHealth(rt.store)

	r.Get("/health", healthHandler.Check)

	r.Route("/api/1.0", func(r chi.Router) {
		r.Post("/users", userHandler.Register)
		r.Post("/users/token/{token}", userHandler.Activate)
	})

	return r
}
