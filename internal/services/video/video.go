// Package services выдаёт краткоживущие видеотокены на урок и проверяет их
// при переходе к источнику видео.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/magabrotheeeer/edu-platform/internal/lib/jwt"
	"github.com/magabrotheeeer/edu-platform/internal/lib/sl"
	"github.com/magabrotheeeer/edu-platform/internal/lib/videourl"
	"github.com/magabrotheeeer/edu-platform/internal/models"
)

var (
	tokensIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "edu_video_tokens_issued_total",
		Help: "Total number of issued video access tokens",
	})
	accessDenied = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "edu_video_access_denied_total",
		Help: "Total number of refused video access requests",
	}, []string{"reason"})
)

// LessonProvider отдаёт урок вместе с источником видео.
type LessonProvider interface {
	Lesson(ctx context.Context, lessonID string) (*models.Lesson, error)
}

// AccessChecker решает, доступен ли урок ученику.
type AccessChecker interface {
	IsLessonAccessible(ctx context.Context, userID string, lesson *models.Lesson) (bool, error)
}

// RevocationChecker возвращает время последнего отзыва подписки.
type RevocationChecker interface {
	RevokedAt(ctx context.Context, userID, subjectID string) (time.Time, bool, error)
}

// VideoAccess — ответ на запрос защищённого видео.
type VideoAccess struct {
	VideoURL   string `json:"videoUrl"`
	VideoToken string `json:"videoToken"`
	ExpiresIn  int64  `json:"expiresIn"`
}

// VideoService выпускает и проверяет видеотокены.
type VideoService struct {
	lessons     LessonProvider
	access      AccessChecker
	revocations RevocationChecker
	maker       jwt.VideoMaker
	log         *slog.Logger
}

// NewVideoService создает новый экземпляр VideoService.
func NewVideoService(lessons LessonProvider, access AccessChecker, revocations RevocationChecker,
	maker jwt.VideoMaker, log *slog.Logger) *VideoService {
	return &VideoService{
		lessons:     lessons,
		access:      access,
		revocations: revocations,
		maker:       maker,
		log:         log,
	}
}

// IssueVideoAccess выпускает токен на урок lessonID для владельца сессии.
// Для премиального урока нужна активная подписка на его предмет.
func (s *VideoService) IssueVideoAccess(ctx context.Context, claims *jwt.SessionClaims, lessonID string) (*VideoAccess, error) {
	const op = "services.video.IssueVideoAccess"

	lesson, err := s.lessons.Lesson(ctx, lessonID)
	if err != nil {
		if errors.Is(err, models.ErrLessonNotFound) {
			accessDenied.WithLabelValues("not_found").Inc()
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if lesson.IsPremium {
		ok, err := s.access.IsLessonAccessible(ctx, claims.UserID(), lesson)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if !ok {
			accessDenied.WithLabelValues("subscription").Inc()
			return nil, fmt.Errorf("%s: %w", op, models.ErrSubscriptionRequired)
		}
	}

	if lesson.SourceURL == "" {
		accessDenied.WithLabelValues("unavailable").Inc()
		return nil, fmt.Errorf("%s: %w", op, models.ErrVideoUnavailable)
	}

	token, err := s.maker.GenerateVideoToken(lesson.ID, claims.UserID())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	tokensIssued.Inc()

	return &VideoAccess{
		VideoURL:   videourl.Resolve(lesson.SourceURL),
		VideoToken: token,
		ExpiresIn:  int64(s.maker.TTL() / time.Second),
	}, nil
}

// ResolveStream проверяет видеотокен и возвращает прямой адрес видео.
// Токен должен относиться к запрошенному уроку и быть выпущен позже
// последнего отзыва подписки на предмет.
func (s *VideoService) ResolveStream(ctx context.Context, lessonID, token string) (string, error) {
	const op = "services.video.ResolveStream"

	claims, err := s.maker.ParseVideoToken(token)
	if err != nil {
		accessDenied.WithLabelValues("invalid_token").Inc()
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if claims.LessonID != lessonID {
		accessDenied.WithLabelValues("scope").Inc()
		return "", fmt.Errorf("%s: token issued for another lesson: %w", op, models.ErrInvalidToken)
	}

	lesson, err := s.lessons.Lesson(ctx, lessonID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if lesson.SourceURL == "" {
		return "", fmt.Errorf("%s: %w", op, models.ErrVideoUnavailable)
	}

	if lesson.IsPremium {
		revokedAt, ok, err := s.revocations.RevokedAt(ctx, claims.UserID(), lesson.SubjectID)
		if err != nil {
			s.log.Error("failed to read revocation marker", slog.String("lesson_id", lessonID), sl.Err(err))
			return "", fmt.Errorf("%s: %w", op, err)
		}
		// точность отметки и iat одна секунда, поэтому равенство считается отзывом
		if ok && claims.IssuedAt != nil && revokedAt.Unix() >= claims.IssuedAt.Unix() {
			accessDenied.WithLabelValues("revoked").Inc()
			return "", fmt.Errorf("%s: token revoked: %w", op, models.ErrInvalidToken)
		}
	}

	return videourl.Resolve(lesson.SourceURL), nil
}
