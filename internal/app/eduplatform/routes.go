// Package eduplatform собирает HTTP-приложение образовательной платформы.
package eduplatform

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/edu-platform/internal/catalog"
	"github.com/magabrotheeeer/edu-platform/internal/config"
	"github.com/magabrotheeeer/edu-platform/internal/http/handlers/admin/subscription/grant"
	"github.com/magabrotheeeer/edu-platform/internal/http/handlers/admin/subscription/revoke"
	"github.com/magabrotheeeer/edu-platform/internal/http/handlers/admin/users"
	videocreate "github.com/magabrotheeeer/edu-platform/internal/http/handlers/admin/videos/create"
	videolist "github.com/magabrotheeeer/edu-platform/internal/http/handlers/admin/videos/list"
	videoremove "github.com/magabrotheeeer/edu-platform/internal/http/handlers/admin/videos/remove"
	videoupdate "github.com/magabrotheeeer/edu-platform/internal/http/handlers/admin/videos/update"
	"github.com/magabrotheeeer/edu-platform/internal/http/handlers/auth/adminlogin"
	"github.com/magabrotheeeer/edu-platform/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/edu-platform/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/edu-platform/internal/http/handlers/catalog/lesson"
	"github.com/magabrotheeeer/edu-platform/internal/http/handlers/catalog/lessons"
	"github.com/magabrotheeeer/edu-platform/internal/http/handlers/catalog/subjects"
	"github.com/magabrotheeeer/edu-platform/internal/http/handlers/checkout"
	"github.com/magabrotheeeer/edu-platform/internal/http/handlers/health"
	"github.com/magabrotheeeer/edu-platform/internal/http/handlers/profile"
	"github.com/magabrotheeeer/edu-platform/internal/http/handlers/video/secure"
	"github.com/magabrotheeeer/edu-platform/internal/http/handlers/video/stream"
	"github.com/magabrotheeeer/edu-platform/internal/http/middlewarectx"
	accessservice "github.com/magabrotheeeer/edu-platform/internal/services/access"
	authservice "github.com/magabrotheeeer/edu-platform/internal/services/auth"
	checkoutservice "github.com/magabrotheeeer/edu-platform/internal/services/checkout"
	videoservice "github.com/magabrotheeeer/edu-platform/internal/services/video"
	"github.com/magabrotheeeer/edu-platform/internal/storage"
)

// Deps — всё, что нужно маршрутам.
type Deps struct {
	Storage  storage.Storage
	Catalog  *catalog.Catalog
	Auth     *authservice.AuthService
	Access   *accessservice.AccessService
	Video    *videoservice.VideoService
	Checkout *checkoutservice.CheckoutService
	Health   map[string]health.Pinger
	Security config.Security
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, d Deps) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middlewarectx.RequestLogger(logger),
		middleware.Recoverer,
		middlewarectx.MetricsMiddleware(),
	)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", health.New(logger, d.Health).ServeHTTP)

		// Открытые конечные точки
		r.Post("/register", register.New(logger, d.Auth).ServeHTTP)
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RateLimitMiddleware(logger, d.Security.LoginRPS, d.Security.LoginBurst))
			r.Post("/login", login.New(logger, d.Auth).ServeHTTP)
			r.Post("/admin/login", adminlogin.New(logger, d.Auth).ServeHTTP)
		})
		r.Get("/subjects/{level}", subjects.New(logger, d.Catalog).ServeHTTP)
		r.Get("/lessons/subject/{subjectId}", lessons.New(logger, d.Catalog).ServeHTTP)
		r.Get("/lessons/{lessonId}", lesson.New(logger, d.Catalog).ServeHTTP)

		// Видеотокен сам по себе является пропуском
		r.Get("/video/{lessonId}/stream", stream.New(logger, d.Video).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(d.Auth, logger))
			r.Get("/secure-video/{lessonId}", secure.New(logger, d.Video).ServeHTTP)
			r.Get("/profile", profile.New(logger, d.Storage).ServeHTTP)
			r.Post("/subscriptions/{subjectId}/checkout", checkout.New(logger, d.Checkout).ServeHTTP)

			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.AdminOnly(logger))
				r.Get("/admin/users", users.New(logger, d.Storage).ServeHTTP)
				r.Post("/admin/users/{userId}/subscription/{subjectId}", grant.New(logger, d.Access).ServeHTTP)
				r.Delete("/admin/users/{userId}/subscription/{subjectId}", revoke.New(logger, d.Access).ServeHTTP)
				r.Get("/admin/videos", videolist.New(logger, d.Catalog).ServeHTTP)
				r.Post("/admin/videos", videocreate.New(logger, d.Catalog).ServeHTTP)
				r.Put("/admin/videos/{id}", videoupdate.New(logger, d.Catalog).ServeHTTP)
				r.Delete("/admin/videos/{id}", videoremove.New(logger, d.Catalog).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
