// Package catalog отдаёт предметы, уроки и видео платформы.
//
// Таблица предметов статична и зависит от уровня. Уроки предмета — это его видео,
// а если видео ещё нет, то резервный список (первый урок бесплатный).
// Списки уроков кэшируются в LRU с TTL; изменение видео сбрасывает кэш предмета.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/magabrotheeeer/edu-platform/internal/models"
)

var (
	lessonCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "edu_lesson_cache_hits_total",
		Help: "Попадания в кэш списков уроков.",
	})
	lessonCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "edu_lesson_cache_misses_total",
		Help: "Промахи кэша списков уроков.",
	})
)

// VideoRepository — хранилище видео.
type VideoRepository interface {
	CreateVideo(ctx context.Context, video models.Video) error
	GetVideo(ctx context.Context, id string) (*models.Video, error)
	ListVideos(ctx context.Context) ([]models.Video, error)
	ListVideosBySubject(ctx context.Context, subjectID string) ([]models.Video, error)
	UpdateVideo(ctx context.Context, video models.Video) error
	DeleteVideo(ctx context.Context, id string) error
}

// Catalog — сервис каталога.
type Catalog struct {
	videos VideoRepository
	cache  *expirable.LRU[string, []models.Lesson]
	log    *slog.Logger
	now    func() time.Time
}

// New создаёт Catalog с кэшем на cacheSize предметов и временем жизни cacheTTL.
func New(videos VideoRepository, log *slog.Logger, cacheSize int, cacheTTL time.Duration) *Catalog {
	if cacheSize <= 0 {
		cacheSize = 128
	}
	return &Catalog{
		videos: videos,
		cache:  expirable.NewLRU[string, []models.Lesson](cacheSize, nil, cacheTTL),
		log:    log,
		now:    time.Now,
	}
}

// Subjects возвращает предметы уровня.
func (c *Catalog) Subjects(level models.Level) ([]models.Subject, error) {
	return Subjects(level)
}

// Lessons возвращает уроки предмета. Неизвестный предмет даёт пустой список.
func (c *Catalog) Lessons(ctx context.Context, subjectID string) ([]models.Lesson, error) {
	const op = "catalog.Lessons"

	if cached, ok := c.cache.Get(subjectID); ok {
		lessonCacheHits.Inc()
		return cloneLessons(cached), nil
	}
	lessonCacheMisses.Inc()

	videos, err := c.videos.ListVideosBySubject(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var lessons []models.Lesson
	if len(videos) > 0 {
		lessons = make([]models.Lesson, 0, len(videos))
		for _, v := range videos {
			lessons = append(lessons, LessonFromVideo(v))
		}
	} else {
		lessons = fallbackLessons(subjectID)
	}

	c.cache.Add(subjectID, lessons)
	return cloneLessons(lessons), nil
}

// Lesson ищет урок сначала среди видео, затем в резервном каталоге.
func (c *Catalog) Lesson(ctx context.Context, lessonID string) (*models.Lesson, error) {
	const op = "catalog.Lesson"

	v, err := c.videos.GetVideo(ctx, lessonID)
	switch {
	case err == nil:
		l := LessonFromVideo(*v)
		return &l, nil
	case !errors.Is(err, models.ErrVideoNotFound):
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	fallback, ok := fallbackLesson(lessonID)
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, models.ErrLessonNotFound)
	}
	// урок резервного каталога виден, только пока у предмета нет видео
	lessons, err := c.Lessons(ctx, fallback.SubjectID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	for i := range lessons {
		if lessons[i].ID == lessonID {
			return &lessons[i], nil
		}
	}
	return nil, fmt.Errorf("%s: %w", op, models.ErrLessonNotFound)
}

// ListVideos возвращает все видео.
func (c *Catalog) ListVideos(ctx context.Context) ([]models.Video, error) {
	videos, err := c.videos.ListVideos(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog.ListVideos: %w", err)
	}
	if videos == nil {
		videos = []models.Video{}
	}
	return videos, nil
}

// CreateVideo добавляет видео от имени администратора createdBy.
func (c *Catalog) CreateVideo(ctx context.Context, video models.Video, createdBy string) (*models.Video, error) {
	const op = "catalog.CreateVideo"

	video.ID = "video-" + uuid.NewString()
	video.CreatedAt = c.now().UTC()
	video.UpdatedAt = nil
	video.CreatedBy = createdBy

	if err := c.videos.CreateVideo(ctx, video); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	c.invalidate(video.SubjectID)
	c.log.Info("video created", slog.String("video_id", video.ID), slog.String("subject_id", video.SubjectID))
	return &video, nil
}

// UpdateVideo применяет частичное обновление.
func (c *Catalog) UpdateVideo(ctx context.Context, id string, patch models.VideoPatch) (*models.Video, error) {
	const op = "catalog.UpdateVideo"

	cur, err := c.videos.GetVideo(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	next := patch.Apply(*cur)
	now := c.now().UTC()
	next.UpdatedAt = &now

	if err := c.videos.UpdateVideo(ctx, next); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	c.invalidate(cur.SubjectID)
	c.invalidate(next.SubjectID)
	return &next, nil
}

// DeleteVideo удаляет видео.
func (c *Catalog) DeleteVideo(ctx context.Context, id string) error {
	const op = "catalog.DeleteVideo"

	cur, err := c.videos.GetVideo(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := c.videos.DeleteVideo(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	c.invalidate(cur.SubjectID)
	return nil
}

func (c *Catalog) invalidate(subjectID string) {
	if c.cache.Remove(subjectID) {
		c.log.Debug("lesson cache invalidated", slog.String("subject_id", subjectID))
	}
}

func cloneLessons(in []models.Lesson) []models.Lesson {
	out := make([]models.Lesson, len(in))
	copy(out, in)
	return out
}

