// Package lessons отдаёт уроки предмета.
package lessons

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

// Service отдаёт уроки предмета.
type Service interface {
	Lessons(ctx context.Context, subjectID string) ([]models.Lesson, error)
}

// Handler обрабатывает GET /lessons/subject/{subjectId}.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Уроки предмета
// @Description Видео предмета или резервный список уроков. Ссылка на источник не отдаётся.
// @Tags Catalog
// @Produce json
// @Param subjectId path string true "ID предмета"
// @Success 200 {object} response.Response{data=[]models.PublicLesson}
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /lessons/subject/{subjectId} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.lessons"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	subjectID := chi.URLParam(r, "subjectId")
	lessons, err := h.service.Lessons(r.Context(), subjectID)
	if err != nil {
		log.Error("failed to list lessons", slog.String("subject_id", subjectID), sl.Err(err))
		code, body := response.FromError(err)
		render.Status(r, code)
		render.JSON(w, r, body)
		return
	}

	out := make([]models.PublicLesson, 0, len(lessons))
	for _, l := range lessons {
		out = append(out, l.Public())
	}
	render.JSON(w, r, response.StatusOKWithData(out))
}
