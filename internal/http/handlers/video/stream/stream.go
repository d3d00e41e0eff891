// Package stream перенаправляет на источник видео по видеотокену.
package stream

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/edu-platform/internal/http/response"
	"github.com/magabrotheeeer/edu-platform/internal/lib/sl"
)

// Service проверяет видеотокен и возвращает адрес видео.
type Service interface {
	ResolveStream(ctx context.Context, lessonID, token string) (string, error)
}

// Handler обрабатывает GET /video/{lessonId}/stream.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Переход к видео
// @Description Токен берётся из параметра token или заголовка Authorization.
// @Tags Video
// @Param lessonId path string true "ID урока"
// @Param token query string false "Видеотокен"
// @Success 302
// @Failure 401 {object} response.ErrorResponse "Нет токена"
// @Failure 403 {object} response.ErrorResponse "Токен невалиден, отозван или выдан на другой урок"
// @Failure 404 {object} response.ErrorResponse "Урок не найден"
// @Router /video/{lessonId}/stream [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.video.stream"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	token := r.URL.Query().Get("token")
	if token == "" {
		token = strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	}
	if token == "" {
		log.Info("video token missing")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("missing video token"))
		return
	}

	lessonID := chi.URLParam(r, "lessonId")
	url, err := h.service.ResolveStream(r.Context(), lessonID, token)
	if err != nil {
		log.Info("stream refused", slog.String("lesson_id", lessonID), sl.Err(err))
		code, body := response.FromError(err)
		render.Status(r, code)
		render.JSON(w, r, body)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	http.Redirect(w, r, url, http.StatusFound)
}
