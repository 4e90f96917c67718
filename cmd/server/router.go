package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	apimiddleware "github.com/fiszki-app/fiszki-api/internal/api/middleware"
)

// setupRouter configures the application router with all routes and
// middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.TraceMiddleware)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", app.authHandler.Register)
		r.Post("/auth/login", app.authHandler.Login)
		r.Post("/auth/refresh", app.authHandler.RefreshToken)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(app.authMiddleware.Authenticate)

			r.Get("/folders", app.folderHandler.ListFolders)
			r.Post("/folders", app.folderHandler.CreateFolder)
			r.Get("/folders/{id}", app.folderHandler.GetFolder)
			r.Put("/folders/{id}", app.folderHandler.UpdateFolder)
			r.Delete("/folders/{id}", app.folderHandler.DeleteFolder)

			r.Post("/flashcards/generate", app.flashcardHandler.Generate)
			r.Post("/flashcards/bulk-save", app.flashcardHandler.BulkSave)
			r.Get("/flashcards", app.flashcardHandler.ListFlashcards)
			r.Post("/flashcards", app.flashcardHandler.CreateFlashcard)
			r.Get("/flashcards/{id}", app.flashcardHandler.GetFlashcard)
			r.Put("/flashcards/{id}", app.flashcardHandler.UpdateFlashcard)
			r.Delete("/flashcards/{id}", app.flashcardHandler.DeleteFlashcard)
		})
	})

	// Health check endpoint, deliberately outside the JSON envelope.
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
