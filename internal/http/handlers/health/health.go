// Package health отвечает на проверку живости сервиса.
package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/edu-platform/internal/http/response"
	"github.com/magabrotheeeer/edu-platform/internal/lib/sl"
)

// Pinger проверяет доступность зависимости.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler обрабатывает GET /health.
type Handler struct {
	log    *slog.Logger
	checks map[string]Pinger
}

// New создает Handler. checks — именованные зависимости, которые опрашиваются на каждый запрос.
func New(log *slog.Logger, checks map[string]Pinger) *Handler {
	return &Handler{
		log:    log,
		checks: checks,
	}
}

// ServeHTTP godoc
// @Summary Проверка состояния
// @Tags Health
// @Produce json
// @Success 200 {object} response.Response
// @Failure 503 {object} response.Response
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"

	status := map[string]string{"status": "ok"}
	for name, check := range h.checks {
		if err := check.Ping(r.Context()); err != nil {
			h.log.Error("dependency check failed", slog.String("op", op), slog.String("dependency", name), sl.Err(err))
			status[name] = "unavailable"
			status["status"] = "degraded"
			continue
		}
		status[name] = "ok"
	}

	if status["status"] != "ok" {
		render.Status(r, http.StatusServiceUnavailable)
	}
	render.JSON(w, r, response.StatusOKWithData(status))
}
