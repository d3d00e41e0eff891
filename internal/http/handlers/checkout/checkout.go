// Package checkout создаёт заявку на покупку подписки на предмет.
package checkout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/edu-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/edu-platform/internal/http/response"
	"github.com/magabrotheeeer/edu-platform/internal/lib/sl"
	"github.com/magabrotheeeer/edu-platform/internal/models"
)

// Service оформляет заявку через платёжный шлюз.
type Service interface {
	CreateCheckout(ctx context.Context, userID string, level models.Level, subjectID string) (*models.Checkout, error)
}

// Handler обрабатывает POST /subscriptions/{subjectId}/checkout.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Заявка на подписку
// @Description Цена берётся из таблицы предметов уровня ученика. Подписку выдаёт администратор.
// @Tags Subscriptions
// @Produce json
// @Security BearerAuth
// @Param subjectId path string true "ID предмета"
// @Success 200 {object} response.Response{data=models.Checkout}
// @Failure 401 {object} response.ErrorResponse "Нет токена"
// @Failure 404 {object} response.ErrorResponse "Предмет не найден"
// @Router /subscriptions/{subjectId}/checkout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.checkout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	claims, ok := middlewarectx.ClaimsFromContext(r.Context())
	if !ok {
		log.Error("session claims missing in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	subjectID := chi.URLParam(r, "subjectId")
	res, err := h.service.CreateCheckout(r.Context(), claims.UserID(), models.Level(claims.Level), subjectID)
	if err != nil {
		log.Info("checkout failed", slog.String("subject_id", subjectID), sl.Err(err))
		code, body := response.FromError(err)
		render.Status(r, code)
		render.JSON(w, r, body)
		return
	}

	log.Info("checkout created", slog.String("checkout_id", res.ID), slog.String("user_id", claims.UserID()))
	render.JSON(w, r, response.StatusOKWithData(res))
}
