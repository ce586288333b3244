package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"go-location-share/internal/config"
	"go-location-share/internal/handler"
	"go-location-share/internal/middleware"
)

type Handlers struct {
	Auth     *handler.AuthHandler
	Media    *handler.MediaHandler
	Location *handler.LocationHandler
	Health   *handler.HealthHandler
	Audit    *handler.AuditHandler
}

func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, h Handlers) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.RealIP(cfg.TrustedProxies))
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", h.Health.Health)

	r.Post("/login", h.Auth.Login)

	r.With(authMiddleware.RequireAdmin).Post("/upload", h.Media.Upload)
	r.Get("/uploads/*", h.Media.Serve)
	r.Head("/uploads/*", h.Media.Serve)

	r.With(authMiddleware.RequireAdmin).Get("/audit", h.Audit.List)

	r.Route("/locations", func(locations chi.Router) {
		locations.Use(middleware.Timeout(cfg.RequestTimeout))

		locations.Get("/", h.Location.List)
		locations.Get("/{id}", h.Location.Get)
		locations.With(authMiddleware.RequireAdmin).Post("/", h.Location.Create)
		locations.With(authMiddleware.RequireAdmin).Put("/{id}", h.Location.Update)
		locations.With(authMiddleware.RequireAdmin).Delete("/{id}", h.Location.Delete)
	})

	return r
}
