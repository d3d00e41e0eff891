package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/edu-platform/internal/models"
)

const userColumns = `id, username, password_hash, level, subscription_status,
	subject_subscriptions, created_at, last_login, version`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var (
		u         models.User
		subsRaw   []byte
		lastLogin sql.NullTime
	)
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Level, &u.SubscriptionStatus,
		&subsRaw, &u.CreatedAt, &lastLogin, &u.Version); err != nil {
		return nil, err
	}
	u.SubjectSubscriptions = map[string]string{}
	if len(subsRaw) > 0 {
		if err := json.Unmarshal(subsRaw, &u.SubjectSubscriptions); err != nil {
			return nil, err
		}
	}
	if lastLogin.Valid {
		t := lastLogin.Time
		u.LastLogin = &t
	}
	return &u, nil
}

func encodeSubscriptions(subs map[string]string) ([]byte, error) {
	if subs == nil {
		subs = map[string]string{}
	}
	return json.Marshal(subs)
}

// CreateUser сохраняет нового пользователя. Занятое имя — models.ErrDuplicateUser.
func (s *Storage) CreateUser(ctx context.Context, user models.User) error {
	const op = "storage.CreateUser"
	if err := ctxDone(ctx, op); err != nil {
		return err
	}

	subs, err := encodeSubscriptions(user.SubjectSubscriptions)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	query := `INSERT INTO users (id, username, password_hash, level, subscription_status,
			      subject_subscriptions, created_at, version)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, 1)`
	_, err = s.DB.ExecContext(ctx, query, user.ID, user.Username, user.PasswordHash, user.Level,
		user.SubscriptionStatus, subs, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%s: %w", op, models.ErrDuplicateUser)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetUser возвращает пользователя по ID.
func (s *Storage) GetUser(ctx context.Context, id string) (*models.User, error) {
	const op = "storage.GetUser"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}

	u, err := scanUser(s.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id::text = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUserByUsername возвращает пользователя по имени.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.GetUserByUsername"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}

	u, err := scanUser(s.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// ListUsers возвращает всех пользователей в порядке регистрации.
func (s *Storage) ListUsers(ctx context.Context) ([]models.User, error) {
	const op = "storage.ListUsers"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at, username`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}

// UpdateUser сохраняет изменения с проверкой версии.
func (s *Storage) UpdateUser(ctx context.Context, user models.User) error {
	const op = "storage.UpdateUser"
	if err := ctxDone(ctx, op); err != nil {
		return err
	}

	subs, err := encodeSubscriptions(user.SubjectSubscriptions)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	res, err := s.DB.ExecContext(ctx, `
		UPDATE users
		SET level = $3, subscription_status = $4, subject_subscriptions = $5, version = version + 1
		WHERE id::text = $1 AND version = $2`,
		user.ID, user.Version, user.Level, user.SubscriptionStatus, subs)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 1 {
		return nil
	}

	var exists bool
	if err := s.DB.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id::text = $1)`, user.ID).Scan(&exists); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		return fmt.Errorf("%s: %w", op, models.ErrUserNotFound)
	}
	return fmt.Errorf("%s: %w", op, models.ErrConflict)
}

// UpdateLastLogin обновляет время последнего входа. Версия записи не меняется.
func (s *Storage) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	const op = "storage.UpdateLastLogin"
	if err := ctxDone(ctx, op); err != nil {
		return err
	}

	res, err := s.DB.ExecContext(ctx, `UPDATE users SET last_login = $2 WHERE id::text = $1`, id, at)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrUserNotFound)
	}
	return nil
}
