package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/teddy12-design/my-blog/internal/handlers"
)

// SetupRoutes wires the admin routes. guard is the session middleware applied
// to every protected route.
func SetupRoutes(r *chi.Mux, h *handlers.AdminHandler, guard func(http.Handler) http.Handler) {
	// Public routes
	r.Get("/admin", h.LoginPage)
	r.Post("/admin", h.Login)
	r.Post("/register", h.Register)
	r.Get("/logout", h.Logout)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(guard)

		r.Get("/dashboard", h.Dashboard)
		r.Get("/add-post", h.AddPostPage)
		r.Post("/add-post", h.AddPost)
		r.Get("/edit-post/{id}", h.EditPostPage)
		r.Put("/edit-post/{id}", h.EditPost)
		r.Delete("/delete-post/{id}", h.DeletePost)
	})
}
