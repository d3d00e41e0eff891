// Package subjects отдаёт список предметов учебного уровня.
package subjects

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/edu-platform/internal/http/response"
	"github.com/magabrotheeeer/edu-platform/internal/lib/sl"
	"github.com/magabrotheeeer/edu-platform/internal/models"
)

// Service отдаёт таблицу предметов.
type Service interface {
	Subjects(level models.Level) ([]models.Subject, error)
}

// Handler обрабатывает GET /subjects/{level}.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Предметы уровня
// @Tags Catalog
// @Produce json
// @Param level path string true "Уровень, например 1bac-math"
// @Success 200 {object} response.Response{data=[]models.Subject}
// @Failure 400 {object} response.ErrorResponse "Неизвестный уровень"
// @Router /subjects/{level} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.subjects"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	level := models.Level(chi.URLParam(r, "level"))
	subjects, err := h.service.Subjects(level)
	if err != nil {
		log.Info("failed to list subjects", slog.String("level", string(level)), sl.Err(err))
		code, body := response.FromError(err)
		render.Status(r, code)
		render.JSON(w, r, body)
		return
	}

	render.JSON(w, r, response.StatusOKWithData(subjects))
}
