package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/edu-platform/internal/models"
)

// EnsureAdmin создаёт администратора или обновляет хэш пароля существующего.
func (s *Storage) EnsureAdmin(ctx context.Context, admin models.Admin) error {
	const op = "storage.EnsureAdmin"
	if err := ctxDone(ctx, op); err != nil {
		return err
	}

	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO admins (id, username, password_hash, role)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (username) DO UPDATE SET password_hash = EXCLUDED.password_hash`,
		admin.ID, admin.Username, admin.PasswordHash, admin.Role)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetAdminByUsername возвращает администратора по имени.
func (s *Storage) GetAdminByUsername(ctx context.Context, username string) (*models.Admin, error) {
	const op = "storage.GetAdminByUsername"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}

	var a models.Admin
	err := s.DB.QueryRowContext(ctx,
		`SELECT id, username, password_hash, role FROM admins WHERE username = $1`, username).
		Scan(&a.ID, &a.Username, &a.PasswordHash, &a.Role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &a, nil
}
