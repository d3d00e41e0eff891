// Package storage описывает контракт хранилища учётных записей и видео.
// Реализации: postgresql (основная) и memory (локальный запуск и тесты).
package storage

import (
	"context"
	"time"

	"github.com/magabrotheeeer/edu-platform/internal/models"
)

// Storage — полный набор операций хранилища.
type Storage interface {
	CreateUser(ctx context.Context, user models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	// UpdateUser записывает пользователя, только если сохранённая версия равна user.Version.
	// При успехе версия увеличивается на единицу, иначе возвращается models.ErrConflict.
	UpdateUser(ctx context.Context, user models.User) error
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error

	EnsureAdmin(ctx context.Context, admin models.Admin) error
	GetAdminByUsername(ctx context.Context, username string) (*models.Admin, error)

	CreateVideo(ctx context.Context, video models.Video) error
	GetVideo(ctx context.Context, id string) (*models.Video, error)
	ListVideos(ctx context.Context) ([]models.Video, error)
	ListVideosBySubject(ctx context.Context, subjectID string) ([]models.Video, error)
	UpdateVideo(ctx context.Context, video models.Video) error
	DeleteVideo(ctx context.Context, id string) error

	Close() error
}
