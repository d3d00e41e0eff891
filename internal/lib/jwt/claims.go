package jwt

import "github.com/golang-jwt/jwt/v5"

// Значения aud для двух видов токенов.
const (
	AudienceSession = "session"
	AudienceVideo   = "video"
)

// SessionClaims описывает данные сессионного токена. Subject содержит ID пользователя.
type SessionClaims struct {
	Username string `json:"username"`
	Role     string `json:"role,omitempty"`
	Level    string `json:"level,omitempty"`
	jwt.RegisteredClaims
}

// UserID возвращает идентификатор пользователя из sub.
func (c *SessionClaims) UserID() string {
	return c.Subject
}

// VideoClaims описывает токен доступа к видео конкретного урока.
type VideoClaims struct {
	LessonID string `json:"lessonId"`
	jwt.RegisteredClaims
}

// UserID возвращает идентификатор пользователя из sub.
func (c *VideoClaims) UserID() string {
	return c.Subject
}
