// Package revoke отзывает подписку ученика на предмет.
package revoke

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

// Service отзывает подписки.
type Service interface {
	RevokeSubscription(ctx context.Context, userID, subjectID string) (*models.PublicUser, error)
}

// Handler обрабатывает DELETE /admin/users/{userId}/subscription/{subjectId}.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Отозвать подписку
// @Description Ранее выданные видеотокены по предмету перестают работать.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param userId path string true "ID ученика"
// @Param subjectId path string true "ID предмета"
// @Success 200 {object} response.Response{data=models.PublicUser}
// @Failure 404 {object} response.ErrorResponse "Ученик или подписка не найдены"
// @Failure 409 {object} response.ErrorResponse "Конкурентное изменение"
// @Router /admin/users/{userId}/subscription/{subjectId} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.subscription.revoke"

	userID := chi.URLParam(r, "userId")
	subjectID := chi.URLParam(r, "subjectId")
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("user_id", userID),
		slog.String("subject_id", subjectID),
	)

	user, err := h.service.RevokeSubscription(r.Context(), userID, subjectID)
	if err != nil {
		log.Error("failed to revoke subscription", sl.Err(err))
		code, body := response.FromError(err)
		render.Status(r, code)
		render.JSON(w, r, body)
		return
	}

	log.Info("subscription revoked")
	render.JSON(w, r, response.StatusOKWithData(user))
}
