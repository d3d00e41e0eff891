// Package list отдаёт администратору все видео, включая ссылки на источник.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/edu-platform/internal/http/response"
	"github.com/magabrotheeeer/edu-platform/internal/lib/sl"
	"github.com/magabrotheeeer/edu-platform/internal/models"
)

// Service перечисляет видео.
type Service interface {
	ListVideos(ctx context.Context) ([]models.Video, error)
}

// Handler обрабатывает GET /admin/videos.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список видео
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]models.Video}
// @Failure 401 {object} response.ErrorResponse "Нет токена"
// @Failure 403 {object} response.ErrorResponse "Нужна роль admin"
// @Router /admin/videos [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.videos.list"

	videos, err := h.service.ListVideos(r.Context())
	if err != nil {
		h.log.Error("failed to list videos",
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			sl.Err(err))
		code, body := response.FromError(err)
		render.Status(r, code)
		render.JSON(w, r, body)
		return
	}

	render.JSON(w, r, response.StatusOKWithData(videos))
}
