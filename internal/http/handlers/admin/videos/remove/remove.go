// Package remove удаляет видео из каталога.
package remove

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/edu-platform/internal/http/response"
	"github.com/magabrotheeeer/edu-platform/internal/lib/sl"
)

// Service удаляет видео.
type Service interface {
	DeleteVideo(ctx context.Context, id string) error
}

// Handler обрабатывает DELETE /admin/videos/{id}.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удалить видео
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID видео"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse "Видео не найдено"
// @Router /admin/videos/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.videos.remove"

	id := chi.URLParam(r, "id")
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("video_id", id),
	)

	if err := h.service.DeleteVideo(r.Context(), id); err != nil {
		log.Error("failed to delete video", sl.Err(err))
		code, body := response.FromError(err)
		render.Status(r, code)
		render.JSON(w, r, body)
		return
	}

	log.Info("video deleted")
	render.JSON(w, r, response.StatusOKWithData(map[string]string{"message": "video deleted"}))
}
