// Package services реализует контроль доступа к урокам и управление
// подписками учеников на предметы.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/edu-platform/internal/lib/sl"
	"github.com/magabrotheeeer/edu-platform/internal/models"
)

// UserRepository описывает чтение и запись ученика с проверкой версии.
type UserRepository interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	UpdateUser(ctx context.Context, user models.User) error
}

// RevocationStore хранит отметки об отзыве видеотокенов.
type RevocationStore interface {
	MarkRevoked(ctx context.Context, userID, subjectID string, at time.Time) error
}

// EventPublisher публикует доменные события.
type EventPublisher interface {
	Publish(ctx context.Context, event models.Event) error
}

// AccessService решает, доступен ли урок, и выдаёт/отзывает подписки.
type AccessService struct {
	users       UserRepository
	revocations RevocationStore
	events      EventPublisher
	log         *slog.Logger
	now         func() time.Time
}

// NewAccessService создает новый экземпляр AccessService.
func NewAccessService(users UserRepository, revocations RevocationStore, events EventPublisher, log *slog.Logger) *AccessService {
	return &AccessService{
		users:       users,
		revocations: revocations,
		events:      events,
		log:         log,
		now:         time.Now,
	}
}

// IsLessonAccessible возвращает true для бесплатного урока, а для премиального
// только при непустой записи подписки на его предмет.
func IsLessonAccessible(user *models.User, lesson *models.Lesson) bool {
	if lesson == nil {
		return false
	}
	if !lesson.IsPremium {
		return true
	}
	return user.HasSubscription(lesson.SubjectID)
}

// IsLessonAccessible проверяет доступ ученика по его идентификатору.
// Неизвестный ученик доступа к премиальным урокам не имеет.
func (s *AccessService) IsLessonAccessible(ctx context.Context, userID string, lesson *models.Lesson) (bool, error) {
	const op = "services.access.IsLessonAccessible"

	if lesson != nil && !lesson.IsPremium {
		return true, nil
	}
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return IsLessonAccessible(user, lesson), nil
}

// GrantSubscription записывает подписку ученика на предмет. Повторная выдача
// перезаписывает статус. Пустой статус означает "active".
func (s *AccessService) GrantSubscription(ctx context.Context, userID, subjectID, status string) (*models.PublicUser, error) {
	const op = "services.access.GrantSubscription"

	if status == "" {
		status = models.StatusActive
	}
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if user.SubjectSubscriptions == nil {
		user.SubjectSubscriptions = make(map[string]string)
	}
	user.SubjectSubscriptions[subjectID] = status

	if err := s.users.UpdateUser(ctx, *user); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user.Version++

	s.publish(ctx, models.Event{
		Type:       models.EventSubscriptionGranted,
		UserID:     user.ID,
		Username:   user.Username,
		SubjectID:  subjectID,
		Status:     status,
		OccurredAt: s.now().UTC(),
	})
	public := user.Public()
	return &public, nil
}

// RevokeSubscription удаляет подписку и помечает ранее выданные видеотокены
// по этому предмету как отозванные.
func (s *AccessService) RevokeSubscription(ctx context.Context, userID, subjectID string) (*models.PublicUser, error) {
	const op = "services.access.RevokeSubscription"

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if _, ok := user.SubjectSubscriptions[subjectID]; !ok {
		return nil, fmt.Errorf("%s: %w", op, models.ErrSubscriptionNotFound)
	}
	delete(user.SubjectSubscriptions, subjectID)

	if err := s.users.UpdateUser(ctx, *user); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user.Version++

	now := s.now().UTC()
	if err := s.revocations.MarkRevoked(ctx, user.ID, subjectID, now); err != nil {
		// подписка уже удалена; новые токены не будут выданы, старые живут до exp
		s.log.Error("failed to record video token revocation",
			slog.String("user_id", user.ID), slog.String("subject_id", subjectID), sl.Err(err))
	}

	s.publish(ctx, models.Event{
		Type:       models.EventSubscriptionRevoked,
		UserID:     user.ID,
		Username:   user.Username,
		SubjectID:  subjectID,
		OccurredAt: now,
	})
	public := user.Public()
	return &public, nil
}

func (s *AccessService) publish(ctx context.Context, event models.Event) {
	if err := s.events.Publish(ctx, event); err != nil {
		s.log.Warn("failed to publish event", slog.String("type", event.Type), sl.Err(err))
	}
}
