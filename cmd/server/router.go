package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/phrazzld/wishlist-api/internal/api"
	apiMiddleware "github.com/phrazzld/wishlist-api/internal/api/middleware"
	"github.com/phrazzld/wishlist-api/internal/api/shared"
)

// setupRouter creates and configures the application router with all routes
// and middleware. Reads and creates on the wishlist collection are public;
// item mutation endpoints require an authenticated admin.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))
	r.Use(apiMiddleware.TraceMiddleware)

	wishlistHandler := api.NewWishlistHandler(app.wishlistStore, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Public wishlist endpoints
		r.Get("/wishlist", wishlistHandler.List)
		r.Post("/wishlist", wishlistHandler.Create)

		// Admin-only item mutations
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Use(authMiddleware.RequireAdmin)
			r.Put("/wishlist/{id}", wishlistHandler.Update)
			r.Delete("/wishlist/{id}", wishlistHandler.Delete)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}
