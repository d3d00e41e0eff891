// Package lesson отдаёт один урок по ID.
package lesson

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/edu-platform/internal/http/response"
	"github.com/magabrotheeeer/edu-platform/internal/lib/sl"
	"github.com/magabrotheeeer/edu-platform/internal/models"
)

// Service ищет урок.
type Service interface {
	Lesson(ctx context.Context, lessonID string) (*models.Lesson, error)
}

// Handler обрабатывает GET /lessons/{lessonId}.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Урок
// @Tags Catalog
// @Produce json
// @Param lessonId path string true "ID урока"
// @Success 200 {object} response.Response{data=models.PublicLesson}
// @Failure 404 {object} response.ErrorResponse "Урок не найден"
// @Router /lessons/{lessonId} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.lesson"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	lessonID := chi.URLParam(r, "lessonId")
	lesson, err := h.service.Lesson(r.Context(), lessonID)
	if err != nil {
		log.Info("lesson lookup failed", slog.String("lesson_id", lessonID), sl.Err(err))
		code, body := response.FromError(err)
		render.Status(r, code)
		render.JSON(w, r, body)
		return
	}

	render.JSON(w, r, response.StatusOKWithData(lesson.Public()))
}
