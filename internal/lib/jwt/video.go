package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/edu-platform/internal/models"
)

// VideoMaker описывает выпуск и разбор токенов доступа к видео.
type VideoMaker interface {
	GenerateVideoToken(lessonID, userID string) (string, error)
	ParseVideoToken(tokenStr string) (*VideoClaims, error)
	TTL() time.Duration
}

// VideoMakerImpl подписывает токены доступа к видео отдельным ключом.
type VideoMakerImpl struct {
	secretKey string
	tokenTTL  time.Duration
	now       func() time.Time
}

// NewVideoMaker создаёт VideoMakerImpl.
func NewVideoMaker(secretKey string, ttl time.Duration) *VideoMakerImpl {
	return &VideoMakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
		now:       time.Now,
	}
}

// WithClock подменяет источник времени.
func (v *VideoMakerImpl) WithClock(now func() time.Time) *VideoMakerImpl {
	v.now = now
	return v
}

// TTL возвращает время жизни токена.
func (v *VideoMakerImpl) TTL() time.Duration {
	return v.tokenTTL
}

// GenerateVideoToken выпускает токен, привязанный к паре (урок, пользователь).
func (v *VideoMakerImpl) GenerateVideoToken(lessonID, userID string) (string, error) {
	const op = "jwt.GenerateVideoToken"
	now := v.now()
	claims := VideoClaims{
		LessonID: lessonID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			Audience:  jwt.ClaimStrings{AudienceVideo},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(v.tokenTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(v.secretKey))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// ParseVideoToken проверяет подпись, срок действия и aud токена доступа к видео.
func (v *VideoMakerImpl) ParseVideoToken(tokenStr string) (*VideoClaims, error) {
	const op = "jwt.ParseVideoToken"
	claims := &VideoClaims{}
	if err := parse(tokenStr, claims, v.secretKey, AudienceVideo, v.now); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if claims.LessonID == "" || claims.Subject == "" {
		return nil, fmt.Errorf("%s: empty scope: %w", op, models.ErrInvalidToken)
	}
	return claims, nil
}
