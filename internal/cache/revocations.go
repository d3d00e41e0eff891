package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// RevocationKey — ключ отметки об отзыве подписки пользователя на предмет.
func RevocationKey(userID, subjectID string) string {
	return "video:revoked:" + userID + ":" + subjectID
}

// Revocations хранит отметки в Redis. Отметка живёт ttl — столько же,
// сколько токен доступа к видео, выпущенный до отзыва.
type Revocations struct {
	cache *Cache
	ttl   time.Duration
}

// NewRevocations создаёт хранилище отметок поверх Cache.
func NewRevocations(c *Cache, ttl time.Duration) *Revocations {
	return &Revocations{cache: c, ttl: ttl}
}

// MarkRevoked записывает момент отзыва (секунды unix).
func (r *Revocations) MarkRevoked(ctx context.Context, userID, subjectID string, at time.Time) error {
	if err := r.cache.Set(ctx, RevocationKey(userID, subjectID), at.Unix(), r.ttl); err != nil {
		return fmt.Errorf("cache.MarkRevoked: %w", err)
	}
	return nil
}

// RevokedAt возвращает момент последнего отзыва, если отметка ещё жива.
func (r *Revocations) RevokedAt(ctx context.Context, userID, subjectID string) (time.Time, bool, error) {
	var unix int64
	found, err := r.cache.Get(ctx, RevocationKey(userID, subjectID), &unix)
	if err != nil || !found {
		return time.Time{}, false, err
	}
	return time.Unix(unix, 0), true, nil
}

// LocalRevocations хранит отметки в памяти процесса. Используется, когда Redis не настроен;
// отметки не разделяются между экземплярами сервиса.
type LocalRevocations struct {
	lru *expirable.LRU[string, time.Time]
}

// NewLocalRevocations создаёт LRU на size отметок с временем жизни ttl.
func NewLocalRevocations(size int, ttl time.Duration) *LocalRevocations {
	return &LocalRevocations{lru: expirable.NewLRU[string, time.Time](size, nil, ttl)}
}

// MarkRevoked записывает момент отзыва.
func (l *LocalRevocations) MarkRevoked(_ context.Context, userID, subjectID string, at time.Time) error {
	l.lru.Add(RevocationKey(userID, subjectID), at.Truncate(time.Second))
	return nil
}

// RevokedAt возвращает момент последнего отзыва.
func (l *LocalRevocations) RevokedAt(_ context.Context, userID, subjectID string) (time.Time, bool, error) {
	at, ok := l.lru.Get(RevocationKey(userID, subjectID))
	return at, ok, nil
}
