// Package users отдаёт администратору список учеников.
package users

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

// Service перечисляет учеников.
type Service interface {
	ListUsers(ctx context.Context) ([]models.User, error)
}

// Handler обрабатывает GET /admin/users.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список учеников
// @Description Хэши паролей не отдаются.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]models.PublicUser}
// @Failure 401 {object} response.ErrorResponse "Нет токена"
// @Failure 403 {object} response.ErrorResponse "Нужна роль admin"
// @Router /admin/users [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.users"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	list, err := h.service.ListUsers(r.Context())
	if err != nil {
		log.Error("failed to list users", sl.Err(err))
		code, body := response.FromError(err)
		render.Status(r, code)
		render.JSON(w, r, body)
		return
	}

	out := make([]models.PublicUser, 0, len(list))
	for i := range list {
		out = append(out, list[i].Public())
	}
	log.Info("users listed", slog.Int("count", len(out)))
	render.JSON(w, r, response.StatusOKWithData(out))
}
