// Package grant выдаёт ученику подписку на предмет.
package grant

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/edu-platform/internal/http/response"
	"github.com/magabrotheeeer/edu-platform/internal/lib/sl"
	"github.com/magabrotheeeer/edu-platform/internal/models"
)

// Request — необязательное тело запроса. Пустой статус означает "active".
type Request struct {
	Status string `json:"status" validate:"max=32"`
}

// Service выдаёт подписки.
type Service interface {
	GrantSubscription(ctx context.Context, userID, subjectID, status string) (*models.PublicUser, error)
}

// Handler обрабатывает POST /admin/users/{userId}/subscription/{subjectId}.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Выдать подписку
// @Description Повторная выдача перезаписывает статус.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path string true "ID ученика"
// @Param subjectId path string true "ID предмета"
// @Param request body Request false "Статус подписки"
// @Success 200 {object} response.Response{data=models.PublicUser}
// @Failure 404 {object} response.ErrorResponse "Ученик не найден"
// @Failure 409 {object} response.ErrorResponse "Конкурентное изменение"
// @Router /admin/users/{userId}/subscription/{subjectId} [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.subscription.grant"

	userID := chi.URLParam(r, "userId")
	subjectID := chi.URLParam(r, "subjectId")
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("user_id", userID),
		slog.String("subject_id", subjectID),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	user, err := h.service.GrantSubscription(r.Context(), userID, subjectID, req.Status)
	if err != nil {
		log.Error("failed to grant subscription", sl.Err(err))
		code, body := response.FromError(err)
		render.Status(r, code)
		render.JSON(w, r, body)
		return
	}

	log.Info("subscription granted")
	render.JSON(w, r, response.StatusOKWithData(user))
}
