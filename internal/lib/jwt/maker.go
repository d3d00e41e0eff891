// Package jwt реализует выпуск и проверку JWT: сессионных токенов пользователей
// и короткоживущих токенов доступа к видео.
//
// Оба вида токенов подписываются HS256, но разными ключами и с разным aud,
// поэтому токен одного вида никогда не принимается вместо другого.
package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/magabrotheeeer/edu-platform/internal/models"
)

// Maker описывает выпуск и разбор сессионных токенов.
type Maker interface {
	GenerateToken(userID, username, role, level string) (string, error)
	ParseToken(tokenStr string) (*SessionClaims, error)
}

// MakerImpl реализует Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string
	tokenTTL  time.Duration
	now       func() time.Time
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
		now:       time.Now,
	}
}

// WithClock подменяет источник времени. Используется в тестах.
func (j *MakerImpl) WithClock(now func() time.Time) *MakerImpl {
	j.now = now
	return j
}

// GenerateToken создаёт сессионный токен. sub = userID.
func (j *MakerImpl) GenerateToken(userID, username, role, level string) (string, error) {
	const op = "jwt.GenerateToken"
	now := j.now()
	claims := SessionClaims{
		Username: username,
		Role:     role,
		Level:    level,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Audience:  jwt.ClaimStrings{AudienceSession},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.tokenTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// ParseToken проверяет подпись, срок действия и aud сессионного токена.
func (j *MakerImpl) ParseToken(tokenStr string) (*SessionClaims, error) {
	const op = "jwt.ParseToken"
	claims := &SessionClaims{}
	if err := parse(tokenStr, claims, j.secretKey, AudienceSession, j.now); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return claims, nil
}

func parse(tokenStr string, claims jwt.Claims, secret, audience string, now func() time.Time) error {
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(_ *jwt.Token) (any, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(now),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", models.ErrInvalidToken, err)
	}
	if !token.Valid {
		return models.ErrInvalidToken
	}
	return nil
}
