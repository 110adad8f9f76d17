package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/foyerapp/foyer-backend/internal/config"
	"github.com/foyerapp/foyer-backend/internal/transport/middleware"
)

// AuthService is the surface the router needs from the auth service:
// the handler operations plus access token validation for middleware.
type AuthService interface {
	authService
	TokenValidator
}

// TokenValidator checks bearer tokens for the auth middleware.
type TokenValidator interface {
	ValidateAccessToken(token string) (uuid.UUID, error)
}

// FoyerService is the surface the router needs from the foyer service:
// the handler operations plus membership resolution for middleware and
// push token lookup for notifications.
type FoyerService interface {
	foyerService
	pushTokenLister
	HasAcceptedRule(ctx context.Context, userID uuid.UUID) (bool, error)
}

// Deps carries everything the router needs.
type Deps struct {
	Logger   *slog.Logger
	Cfg      *config.Config
	DB       *pgxpool.Pool
	Auth     AuthService
	Foyer    FoyerService
	Calendar calendarService
	Task     taskService
	Shopping shoppingService
	Recipe   recipeService
	Travel   travelService
	Upload   uploadService
	Notifier pushSender
	Version  string
}

// NewRouter builds the HTTP routing table. Routes under /api require a
// bearer token except registration, login and refresh; everything scoped
// to a foyer additionally requires membership and rule acceptance.
func NewRouter(deps Deps) http.Handler {
	authHandler := NewAuthHandler(deps.Auth, deps.Logger)
	foyerHandler := NewFoyerHandler(deps.Foyer, deps.Logger)
	calendarHandler := NewCalendarHandler(deps.Calendar, deps.Logger)
	taskHandler := NewTaskHandler(deps.Task, deps.Logger)
	shoppingHandler := NewShoppingHandler(deps.Shopping, deps.Logger)
	recipeHandler := NewRecipeHandler(deps.Recipe, deps.Logger)
	travelHandler := NewTravelHandler(deps.Travel, deps.Logger)
	uploadHandler := NewUploadHandler(deps.Upload, deps.Auth, deps.Cfg.Upload.MaxSizeBytes, deps.Logger)
	notificationHandler := NewNotificationHandler(deps.Auth, deps.Foyer, deps.Notifier, deps.Logger)
	healthHandler := NewHealthHandler(deps.DB, deps.Version)

	limiter := middleware.NewRateLimiter(5 * time.Minute)

	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		middleware.Logger(deps.Logger),
		middleware.Recovery(deps.Logger),
		middleware.CORS(deps.Cfg.CORS),
		limiter.Limit(deps.Cfg.Server.RatePerMinute),
	)

	r.Get("/live", healthHandler.Live)
	r.Get("/ready", healthHandler.Ready)
	r.Get("/health", healthHandler.Health)

	// Stored avatars are served directly off the upload directory.
	fileServer := http.FileServer(http.Dir(deps.Cfg.Upload.Dir))
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", fileServer))

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.Refresh)

		// Authenticated routes.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(deps.Auth))

			r.Get("/auth/me", authHandler.Me)
			r.Patch("/auth/me", authHandler.UpdateMe)

			r.Post("/foyer", foyerHandler.Create)
			r.Post("/foyer/join", foyerHandler.Join)
			r.Get("/foyer/me", foyerHandler.Me)
			r.Get("/foyer", foyerHandler.UserFoyers)

			// Paths the mobile app shipped with. Kept alongside the
			// plain resource routes so older clients keep working.
			r.Post("/foyer/create", foyerHandler.Create)
			r.Get("/foyer/user-foyers", foyerHandler.UserFoyers)

			r.Post("/upload/avatar", uploadHandler.Avatar)
			r.Post("/notifications/token", notificationHandler.SaveToken)

			// Foyer-scoped routes.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireFoyer(deps.Foyer))

				r.Get("/leaderboard", foyerHandler.Leaderboard)
				r.Post("/notifications/send", notificationHandler.Send)

				r.Route("/calendar", func(r chi.Router) {
					r.Post("/", calendarHandler.Create)
					r.Get("/", calendarHandler.List)
					r.Post("/planning", calendarHandler.Planning)
					r.Get("/{eventID}", calendarHandler.Get)
					r.Patch("/{eventID}", calendarHandler.Update)
					r.Delete("/{eventID}", calendarHandler.Delete)
				})

				r.Route("/tasks", func(r chi.Router) {
					r.Post("/", taskHandler.Create)
					r.Get("/", taskHandler.List)
					r.Get("/{taskID}", taskHandler.Get)
					r.Patch("/{taskID}", taskHandler.Update)
					r.Delete("/{taskID}", taskHandler.Delete)
				})

				r.Route("/shopping", func(r chi.Router) {
					r.Post("/", shoppingHandler.Create)
					r.Get("/", shoppingHandler.List)
					r.Get("/{itemID}", shoppingHandler.Get)
					r.Patch("/{itemID}", shoppingHandler.Update)
					r.Delete("/{itemID}", shoppingHandler.Delete)
				})

				r.Route("/recipes", func(r chi.Router) {
					r.Post("/", recipeHandler.Create)
					r.Get("/", recipeHandler.List)
					r.Get("/{recipeID}", recipeHandler.Get)
					r.Patch("/{recipeID}", recipeHandler.Update)
					r.Post("/{recipeID}/vote", recipeHandler.Vote)
					r.Delete("/{recipeID}", recipeHandler.Delete)
				})

				r.Route("/travel", func(r chi.Router) {
					r.Post("/", travelHandler.Create)
					r.Get("/", travelHandler.List)
					r.Get("/{ideaID}", travelHandler.Get)
					r.Patch("/{ideaID}", travelHandler.Update)
					r.Post("/{ideaID}/vote", travelHandler.Vote)
					r.Delete("/{ideaID}", travelHandler.Delete)
				})
			})
		})
	})

	return r
}
