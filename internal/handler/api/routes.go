package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jamesbago101/promo-back/internal/middleware"
	"github.com/jamesbago101/promo-back/internal/store"
)

// Routes builds the versioned API router. Every route sits behind the rate
// limiter and CORS; mutations additionally require a valid token, and the
// user, video-update and audit routes require the Admin role re-checked
// against the database.
func (h *Handler) Routes(rl *middleware.RateLimiter, allowedOrigins []string) chi.Router {
	r := chi.NewRouter()
	r.Use(rl.Middleware())
	r.Use(middleware.CORS(allowedOrigins))

	requireAuth := middleware.RequireAuth(h.tokens)
	requireAdmin := middleware.RequireAdmin(h.queries)

	r.Get("/health", h.Health)

	r.Post("/auth/verify-access", h.VerifyAccess)
	r.Get("/auth/check", h.Check)

	r.Get("/news", h.ListNews)
	r.Get("/news/{id}", h.GetNews)
	r.Get("/community-arts", h.ListCommunityArts)
	r.Get("/community-arts/{id}", h.GetCommunityArt)
	r.Get("/news-categories", h.ListCategories(store.NewsTaxonomy))
	r.Get("/news-categories/{id}", h.GetCategory(store.NewsTaxonomy))
	r.Get("/art-categories", h.ListCategories(store.ArtTaxonomy))
	r.Get("/art-categories/{id}", h.GetCategory(store.ArtTaxonomy))
	r.Get("/youtube-video", h.GetYoutubeVideo)

	// Token-protected mutations
	r.Group(func(r chi.Router) {
		r.Use(requireAuth)

		r.Post("/news", h.CreateNews)
		r.Put("/news/{id}", h.UpdateNews)
		r.Delete("/news/{id}", h.DeleteNews)

		r.Post("/community-arts", h.CreateCommunityArt)
		r.Put("/community-arts/{id}", h.UpdateCommunityArt)
		r.Delete("/community-arts/{id}", h.DeleteCommunityArt)

		r.Post("/news-categories", h.CreateCategory(store.NewsTaxonomy))
		r.Put("/news-categories/{id}", h.UpdateCategory(store.NewsTaxonomy))
		r.Delete("/news-categories/{id}", h.DeleteCategory(store.NewsTaxonomy,
			"Cannot delete category. It is being used by news items."))

		r.Post("/art-categories", h.CreateCategory(store.ArtTaxonomy))
		r.Put("/art-categories/{id}", h.UpdateCategory(store.ArtTaxonomy))
		r.Delete("/art-categories/{id}", h.DeleteCategory(store.ArtTaxonomy,
			"Cannot delete category. It is being used by art items."))

		r.Post("/upload/community-art", h.UploadCommunityArt)
	})

	// Admin-only routes
	r.Group(func(r chi.Router) {
		r.Use(requireAuth, requireAdmin)

		r.Get("/users", h.ListUsers)
		r.Get("/users/{id}", h.GetUser)
		r.Post("/users", h.CreateUser)
		r.Put("/users/{id}", h.UpdateUser)
		r.Delete("/users/{id}", h.DeleteUser)

		r.Put("/youtube-video", h.UpdateYoutubeVideo)
		r.Get("/cleanup-audit", h.ListCleanupAudit)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		WriteError(w, http.StatusNotFound, "Not found")
	})

	return r
}
