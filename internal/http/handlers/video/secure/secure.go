// Package secure выдаёт видеотокен на урок владельцу сессии.
package secure

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/edu-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/edu-platform/internal/http/response"
	"github.com/magabrotheeeer/edu-platform/internal/lib/jwt"
	"github.com/magabrotheeeer/edu-platform/internal/lib/sl"
	videoservice "github.com/magabrotheeeer/edu-platform/internal/services/video"
)

// Service выпускает видеотокены.
type Service interface {
	IssueVideoAccess(ctx context.Context, claims *jwt.SessionClaims, lessonID string) (*videoservice.VideoAccess, error)
}

// Handler обрабатывает GET /secure-video/{lessonId}.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Доступ к видео урока
// @Description Для премиального урока нужна подписка на предмет. Токен живёт 2 часа.
// @Tags Video
// @Produce json
// @Security BearerAuth
// @Param lessonId path string true "ID урока"
// @Success 200 {object} response.Response{data=videoservice.VideoAccess}
// @Failure 401 {object} response.ErrorResponse "Нет токена"
// @Failure 403 {object} response.ErrorResponse "Невалидный токен или нет подписки"
// @Failure 404 {object} response.ErrorResponse "Урок или видео не найдены"
// @Router /secure-video/{lessonId} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.video.secure"

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

	lessonID := chi.URLParam(r, "lessonId")
	access, err := h.service.IssueVideoAccess(r.Context(), claims, lessonID)
	if err != nil {
		log.Info("video access refused",
			slog.String("lesson_id", lessonID), slog.String("user_id", claims.UserID()), sl.Err(err))
		code, body := response.FromError(err)
		render.Status(r, code)
		render.JSON(w, r, body)
		return
	}

	log.Info("video token issued", slog.String("lesson_id", lessonID), slog.String("user_id", claims.UserID()))
	render.JSON(w, r, response.StatusOKWithData(access))
}
