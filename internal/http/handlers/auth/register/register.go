// Package register реализует HTTP-обработчик регистрации ученика.
//
// Регистрация не выполняет вход: клиент получает публичные данные созданного
// пользователя и отдельно вызывает /login.
package register

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/edu-platform/internal/http/response"
	"github.com/magabrotheeeer/edu-platform/internal/lib/password"
	"github.com/magabrotheeeer/edu-platform/internal/lib/sl"
	"github.com/magabrotheeeer/edu-platform/internal/models"
)

// Request — входные данные регистрации.
type Request struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Level    string `json:"level" validate:"required"`
}

// Service описывает регистрацию ученика.
type Service interface {
	Register(ctx context.Context, username, password string, level models.Level) (*models.PublicUser, error)
}

// Handler обрабатывает POST /register.
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
// @Summary Регистрация ученика
// @Description Создаёт ученика с бесплатным статусом. Вход не выполняется.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body Request true "Имя, пароль и уровень"
// @Success 201 {object} response.Response{data=models.PublicUser}
// @Failure 400 {object} response.ErrorResponse "Имя занято или неизвестный уровень"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

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
	// max=72 считает руны, а bcrypt ограничен байтами
	if len(req.Password) > password.MaxBytes {
		log.Error("validation failed", slog.Int("password_bytes", len(req.Password)))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("field Password must be at most 72 bytes"))
		return
	}

	user, err := h.service.Register(r.Context(), req.Username, req.Password, models.Level(req.Level))
	if err != nil {
		log.Error("registration failed", slog.String("username", req.Username), sl.Err(err))
		code, body := response.FromError(err)
		render.Status(r, code)
		render.JSON(w, r, body)
		return
	}

	log.Info("user registered", slog.String("user_id", user.ID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(user))
}
