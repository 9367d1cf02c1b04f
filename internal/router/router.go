package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"docvault/internal/config"
	"docvault/internal/handler"
	"docvault/internal/middleware"
	"docvault/internal/policy"
)

type Handlers struct {
	Auth     *handler.AuthHandler
	Document *handler.DocumentHandler
	Admin    *handler.AdminHandler
	Static   *handler.StaticHandler
	Health   http.HandlerFunc
}

func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, h Handlers) http.Handler {
	r := chi.NewRouter()
	rateLimit := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(rateLimit.Handler)

	r.Get("/health", h.Health)

	// Static collaborator: login / admin / generator pages and the manifest.
	r.Get("/", h.Static.Page("admin-login.html"))
	r.Get("/admin-login.html", h.Static.Page("admin-login.html"))
	r.Get("/login.html", h.Static.Page("login.html"))
	r.Get("/admin.html", h.Static.Page("admin.html"))
	r.Get("/gen.html", h.Static.Page("gen.html"))
	r.Get("/manifest.json", h.Static.Manifest)
	r.Handle("/assets/*", h.Static.Assets())

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		requireAuth := authMiddleware.Require(policy.Authenticated)
		requireAdmin := authMiddleware.Require(policy.Admin)

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/create-user", h.Auth.CreateUser)
			auth.Post("/login", h.Auth.Login)
			auth.With(requireAuth).Get("/me", h.Auth.Me)
		})

		api.Route("/documents", func(docs chi.Router) {
			docs.Use(requireAuth)
			docs.Post("/save", h.Document.Save)
			docs.Get("/", h.Document.ListMine)
			docs.Get("/{id}", h.Document.Get)
			docs.Get("/{id}/download", h.Document.Download)
		})

		// Public link: the capability is knowing the identifier.
		api.Get("/public/{public_id}", h.Document.Public)

		api.Route("/admin", func(admin chi.Router) {
			admin.Use(requireAdmin)
			admin.Get("/users", h.Admin.ListUsers)
			admin.Put("/users/{id}/access", h.Admin.SetAccess)
			admin.Get("/documents", h.Admin.ListDocuments)
		})
	})

	return r
}
