package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Dacosmicgiant/CodeCraft-backend/internal/api"
	apiMiddleware "github.com/Dacosmicgiant/CodeCraft-backend/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. Read endpoints take an optional token so admins see
// unpublished content; all mutating catalog and lesson endpoints require
// the admin role.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	// Create API handlers using the application's services
	authHandler := api.NewAuthHandler(app.userService, app.jwtService)
	catalogHandler := api.NewCatalogHandler(app.catalogService)
	tutorialHandler := api.NewTutorialHandler(app.catalogService)
	lessonHandler := api.NewLessonHandler(app.lessonService)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.Refresh)

		// Read endpoints: anonymous allowed, token honored when present
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.OptionalAuthenticate)

			r.Get("/domains", catalogHandler.ListDomains)
			r.Get("/domains/{id}", catalogHandler.GetDomain)
			r.Get("/domains/{id}/technologies", catalogHandler.ListTechnologies)
			r.Get("/technologies/{id}", catalogHandler.GetTechnology)
			r.Get("/technologies/{id}/tutorials", tutorialHandler.ListTutorials)
			r.Get("/tutorials/{id}", tutorialHandler.GetTutorial)
			r.Get("/tutorials/{id}/lessons", lessonHandler.ListLessons)
			r.Get("/lessons/{id}", lessonHandler.GetLesson)
			r.Get("/lessons/{id}/export", lessonHandler.ExportLesson)
		})

		// Mutating endpoints: authenticated admins only
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Use(apiMiddleware.RequireAdmin)

			r.Post("/domains", catalogHandler.CreateDomain)
			r.Put("/domains/{id}", catalogHandler.UpdateDomain)
			r.Delete("/domains/{id}", catalogHandler.DeleteDomain)

			r.Post("/technologies", catalogHandler.CreateTechnology)
			r.Put("/technologies/{id}", catalogHandler.UpdateTechnology)
			r.Delete("/technologies/{id}", catalogHandler.DeleteTechnology)

			r.Post("/tutorials", tutorialHandler.CreateTutorial)
			r.Put("/tutorials/{id}", tutorialHandler.UpdateTutorial)
			r.Delete("/tutorials/{id}", tutorialHandler.DeleteTutorial)

			r.Post("/tutorials/{id}/lessons", lessonHandler.CreateLesson)
			r.Put("/tutorials/{id}/lessons/reorder", lessonHandler.ReorderLessons)
			r.Put("/lessons/{id}", lessonHandler.UpdateLesson)
			r.Delete("/lessons/{id}", lessonHandler.DeleteLesson)
			r.Post("/lessons/{id}/duplicate", lessonHandler.DuplicateLesson)
			r.Put("/lessons/{id}/publish", lessonHandler.PublishLesson)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
