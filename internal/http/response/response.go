// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков. Пакет упрощает возврат
// успешных ответов, ошибок и сообщений валидации в едином формате.
package response

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/edu-platform/internal/models"
)

// Response описывает стандартную структуру JSON‑ответа сервера.
// Поле Status — статус запроса ("OK" или "Error").
// Поле Error — текст ошибки (опционально, при неуспехе).
// Поле Data — данные ответа (опционально, при успехе).
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

// ErrorResponse — структура ошибки для Swagger-документации.
// Используется в аннотациях @Failure как возвращаемый тип ошибки.
type ErrorResponse struct {
	Status string `json:"status" example:"Error"`
	Error  string `json:"error" example:"invalid request body"`
}

const (
	// StatusOK — значение статуса для успешного ответа.
	StatusOK = "OK"
	// StatusError — значение статуса для ответа с ошибкой.
	StatusError = "Error"
)

// StatusOKWithData возвращает успешный Response с переданными данными.
func StatusOKWithData(data any) Response {
	return Response{
		Status: StatusOK,
		Data:   data,
	}
}

// Error возвращает Response с ошибкой и переданным сообщением.
func Error(msg string) ErrorResponse {
	return ErrorResponse{
		Status: StatusError,
		Error:  msg,
	}
}

// ValidationError формирует Response со статусом Error на основе ошибок валидации.
// Каждое нарушение формируется в человеко‑читаемый текст, объединённый через запятую.
func ValidationError(errs validator.ValidationErrors) Response {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "alphanum":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s can contain only numbers and letters", err.Field()))
		case "numeric":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s can contain only numbers", err.Field()))
		case "min":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be at least %s characters", err.Field(), err.Param()))
		case "max":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be at most %s characters", err.Field(), err.Param()))
		case "url":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid url", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return Response{
		Status: StatusError,
		Error:  strings.Join(errsMsgs, ", "),
	}
}

// FromError сопоставляет доменную ошибку HTTP-статусу и общему сообщению для клиента.
// Подробности ошибки клиенту не передаются.
func FromError(err error) (int, ErrorResponse) {
	switch {
	case errors.Is(err, models.ErrDuplicateUser):
		return http.StatusBadRequest, Error("username already exists")
	case errors.Is(err, models.ErrInvalidLevel):
		return http.StatusBadRequest, Error("invalid level")
	case errors.Is(err, models.ErrInvalidCredentials):
		return http.StatusUnauthorized, Error("invalid credentials")
	case errors.Is(err, models.ErrInvalidToken):
		return http.StatusForbidden, Error("invalid or expired token")
	case errors.Is(err, models.ErrSubscriptionRequired):
		return http.StatusForbidden, Error("subscription required")
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden, Error("forbidden")
	case errors.Is(err, models.ErrUserNotFound):
		return http.StatusNotFound, Error("user not found")
	case errors.Is(err, models.ErrSubscriptionNotFound):
		return http.StatusNotFound, Error("subscription not found")
	case errors.Is(err, models.ErrLessonNotFound):
		return http.StatusNotFound, Error("lesson not found")
	case errors.Is(err, models.ErrSubjectNotFound):
		return http.StatusNotFound, Error("subject not found")
	case errors.Is(err, models.ErrVideoNotFound):
		return http.StatusNotFound, Error("video not found")
	case errors.Is(err, models.ErrVideoUnavailable):
		return http.StatusNotFound, Error("video not available")
	case errors.Is(err, models.ErrConflict):
		return http.StatusConflict, Error("record was modified concurrently, retry")
	default:
		return http.StatusInternalServerError, Error("internal error")
	}
}
