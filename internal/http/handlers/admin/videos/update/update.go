// Package update частично обновляет видео.
package update

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/edu-platform/internal/http/response"
	"github.com/magabrotheeeer/edu-platform/internal/lib/sl"
	"github.com/magabrotheeeer/edu-platform/internal/models"
)

// Service обновляет видео.
type Service interface {
	UpdateVideo(ctx context.Context, id string, patch models.VideoPatch) (*models.Video, error)
}

// Handler обрабатывает PUT /admin/videos/{id}.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Обновить видео
// @Description Меняются только переданные поля.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID видео"
// @Param request body models.VideoPatch true "Изменения"
// @Success 200 {object} response.Response{data=models.Video}
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или уровень"
// @Failure 404 {object} response.ErrorResponse "Видео не найдено"
// @Router /admin/videos/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.videos.update"

	id := chi.URLParam(r, "id")
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("video_id", id),
	)

	var patch models.VideoPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	if patch.Level != nil && !patch.Level.Valid() {
		code, body := response.FromError(models.ErrInvalidLevel)
		render.Status(r, code)
		render.JSON(w, r, body)
		return
	}

	video, err := h.service.UpdateVideo(r.Context(), id, patch)
	if err != nil {
		log.Error("failed to update video", sl.Err(err))
		code, body := response.FromError(err)
		render.Status(r, code)
		render.JSON(w, r, body)
		return
	}

	log.Info("video updated")
	render.JSON(w, r, response.StatusOKWithData(video))
}
