package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/magabrotheeeer/edu-platform/internal/models"
)

func copyVideo(v *models.Video) *models.Video {
	c := *v
	if v.UpdatedAt != nil {
		t := *v.UpdatedAt
		c.UpdatedAt = &t
	}
	return &c
}

// CreateVideo сохраняет новое видео.
func (s *Storage) CreateVideo(ctx context.Context, video models.Video) error {
	const op = "storage.memory.CreateVideo"
	if err := ctxDone(ctx, op); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.videos[video.ID]; ok {
		return fmt.Errorf("%s: video %s already exists", op, video.ID)
	}
	s.videos[video.ID] = copyVideo(&video)
	return nil
}

// GetVideo возвращает видео по ID.
func (s *Storage) GetVideo(ctx context.Context, id string) (*models.Video, error) {
	const op = "storage.memory.GetVideo"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.videos[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, models.ErrVideoNotFound)
	}
	return copyVideo(v), nil
}

// ListVideos возвращает все видео в порядке добавления.
func (s *Storage) ListVideos(ctx context.Context) ([]models.Video, error) {
	return s.listVideos(ctx, "storage.memory.ListVideos", func(*models.Video) bool { return true })
}

// ListVideosBySubject возвращает видео предмета в порядке добавления.
func (s *Storage) ListVideosBySubject(ctx context.Context, subjectID string) ([]models.Video, error) {
	return s.listVideos(ctx, "storage.memory.ListVideosBySubject", func(v *models.Video) bool {
		return v.SubjectID == subjectID
	})
}

func (s *Storage) listVideos(ctx context.Context, op string, keep func(*models.Video) bool) ([]models.Video, error) {
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	videos := make([]models.Video, 0, len(s.videos))
	for _, v := range s.videos {
		if keep(v) {
			videos = append(videos, *copyVideo(v))
		}
	}
	sort.Slice(videos, func(i, j int) bool {
		if videos[i].CreatedAt.Equal(videos[j].CreatedAt) {
			return videos[i].ID < videos[j].ID
		}
		return videos[i].CreatedAt.Before(videos[j].CreatedAt)
	})
	return videos, nil
}

// UpdateVideo перезаписывает видео целиком, сохраняя дату создания и автора.
func (s *Storage) UpdateVideo(ctx context.Context, video models.Video) error {
	const op = "storage.memory.UpdateVideo"
	if err := ctxDone(ctx, op); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.videos[video.ID]
	if !ok {
		return fmt.Errorf("%s: %w", op, models.ErrVideoNotFound)
	}
	next := copyVideo(&video)
	next.CreatedAt = cur.CreatedAt
	next.CreatedBy = cur.CreatedBy
	s.videos[video.ID] = next
	return nil
}

// DeleteVideo удаляет видео.
func (s *Storage) DeleteVideo(ctx context.Context, id string) error {
	const op = "storage.memory.DeleteVideo"
	if err := ctxDone(ctx, op); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.videos[id]; !ok {
		return fmt.Errorf("%s: %w", op, models.ErrVideoNotFound)
	}
	delete(s.videos, id)
	return nil
}
