// Package create добавляет видео в каталог.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/edu-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/edu-platform/internal/http/response"
	"github.com/magabrotheeeer/edu-platform/internal/lib/sl"
	"github.com/magabrotheeeer/edu-platform/internal/models"
)

// Request — данные нового видео.
type Request struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	SubjectID   string `json:"subject_id" validate:"required"`
	Level       string `json:"level" validate:"required"`
	SourceURL   string `json:"source_url" validate:"required,url"`
	Duration    string `json:"duration"`
	Difficulty  string `json:"difficulty"`
	IsPremium   bool   `json:"is_premium"`
}

// Service создаёт видео.
type Service interface {
	CreateVideo(ctx context.Context, video models.Video, createdBy string) (*models.Video, error)
}

// Handler обрабатывает POST /admin/videos.
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
// @Summary Добавить видео
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body Request true "Видео"
// @Success 201 {object} response.Response{data=models.Video}
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или уровень"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /admin/videos [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.videos.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
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
	if !models.Level(req.Level).Valid() {
		code, body := response.FromError(models.ErrInvalidLevel)
		render.Status(r, code)
		render.JSON(w, r, body)
		return
	}

	var createdBy string
	if claims, ok := middlewarectx.ClaimsFromContext(r.Context()); ok {
		createdBy = claims.Username
	}

	video, err := h.service.CreateVideo(r.Context(), models.Video{
		Title:       req.Title,
		Description: req.Description,
		SubjectID:   req.SubjectID,
		Level:       models.Level(req.Level),
		SourceURL:   req.SourceURL,
		Duration:    req.Duration,
		Difficulty:  models.Difficulty(req.Difficulty),
		IsPremium:   req.IsPremium,
	}, createdBy)
	if err != nil {
		log.Error("failed to create video", sl.Err(err))
		code, body := response.FromError(err)
		render.Status(r, code)
		render.JSON(w, r, body)
		return
	}

	log.Info("video created", slog.String("video_id", video.ID), slog.String("created_by", createdBy))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(video))
}
