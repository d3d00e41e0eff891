package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/edu-platform/internal/models"
)

const videoColumns = `id, title, description, subject_id, level, source_url, duration,
	difficulty, is_premium, created_at, updated_at, created_by`

func scanVideo(row rowScanner) (*models.Video, error) {
	var (
		v         models.Video
		updatedAt sql.NullTime
	)
	if err := row.Scan(&v.ID, &v.Title, &v.Description, &v.SubjectID, &v.Level, &v.SourceURL,
		&v.Duration, &v.Difficulty, &v.IsPremium, &v.CreatedAt, &updatedAt, &v.CreatedBy); err != nil {
		return nil, err
	}
	if updatedAt.Valid {
		t := updatedAt.Time
		v.UpdatedAt = &t
	}
	return &v, nil
}

// CreateVideo сохраняет новое видео.
func (s *Storage) CreateVideo(ctx context.Context, v models.Video) error {
	const op = "storage.CreateVideo"
	if err := ctxDone(ctx, op); err != nil {
		return err
	}

	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO videos (`+videoColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		v.ID, v.Title, v.Description, v.SubjectID, v.Level, v.SourceURL, v.Duration,
		v.Difficulty, v.IsPremium, v.CreatedAt, v.UpdatedAt, v.CreatedBy)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetVideo возвращает видео по ID.
func (s *Storage) GetVideo(ctx context.Context, id string) (*models.Video, error) {
	const op = "storage.GetVideo"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}

	v, err := scanVideo(s.DB.QueryRowContext(ctx, `SELECT `+videoColumns+` FROM videos WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrVideoNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return v, nil
}

// ListVideos возвращает все видео в порядке добавления.
func (s *Storage) ListVideos(ctx context.Context) ([]models.Video, error) {
	return s.listVideos(ctx, "storage.ListVideos", `SELECT `+videoColumns+` FROM videos ORDER BY created_at, id`)
}

// ListVideosBySubject возвращает видео предмета в порядке добавления.
func (s *Storage) ListVideosBySubject(ctx context.Context, subjectID string) ([]models.Video, error) {
	return s.listVideos(ctx, "storage.ListVideosBySubject",
		`SELECT `+videoColumns+` FROM videos WHERE subject_id = $1 ORDER BY created_at, id`, subjectID)
}

func (s *Storage) listVideos(ctx context.Context, op, query string, args ...any) ([]models.Video, error) {
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var videos []models.Video
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		videos = append(videos, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return videos, nil
}

// UpdateVideo перезаписывает видео целиком.
func (s *Storage) UpdateVideo(ctx context.Context, v models.Video) error {
	const op = "storage.UpdateVideo"
	if err := ctxDone(ctx, op); err != nil {
		return err
	}

	res, err := s.DB.ExecContext(ctx, `
		UPDATE videos
		SET title = $2, description = $3, subject_id = $4, level = $5, source_url = $6,
		    duration = $7, difficulty = $8, is_premium = $9, updated_at = $10
		WHERE id = $1`,
		v.ID, v.Title, v.Description, v.SubjectID, v.Level, v.SourceURL, v.Duration,
		v.Difficulty, v.IsPremium, v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrVideoNotFound)
	}
	return nil
}

// DeleteVideo удаляет видео по ID.
func (s *Storage) DeleteVideo(ctx context.Context, id string) error {
	const op = "storage.DeleteVideo"
	if err := ctxDone(ctx, op); err != nil {
		return err
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM videos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrVideoNotFound)
	}
	return nil
}
