package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/korwin-dev/citelinks-be/internal/api/handlers"
	"github.com/korwin-dev/citelinks-be/internal/auth"
	"github.com/korwin-dev/citelinks-be/internal/mailer"
	"github.com/korwin-dev/citelinks-be/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	userService services.UserServiceProvider,
	tokenService services.TokenServiceProvider,
	linkService services.LinkServiceProvider,
	eventService services.EventServiceProvider,
	notifier mailer.Notifier,
	corsOrigin string,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{corsOrigin},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService, tokenService, eventService, notifier)
	linkHandler := handlers.NewLinkHandler(linkService)
	eventHandler := handlers.NewEventHandler(eventService)

	r.Get("/users/", userHandler.List)
	r.Post("/registration", userHandler.Register)
	r.Post("/login", userHandler.Login)
	r.Post("/logout", userHandler.Logout)
	r.Post("/search", linkHandler.Search)

	// Authenticated surface
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(tokenService))
		r.Post("/links/import", linkHandler.Import)
		r.Get("/events", eventHandler.GetRecent)
	})

	return r
}
