// Package memory реализует хранилище в памяти процесса. Используется при
// storage.driver=memory и в тестах; данные теряются при перезапуске.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/magabrotheeeer/edu-platform/internal/models"
)

// Storage хранит пользователей, администраторов и видео под одним RWMutex.
type Storage struct {
	mu     sync.RWMutex
	users  map[string]*models.User
	admins map[string]*models.Admin
	videos map[string]*models.Video
}

// New создаёт пустое хранилище.
func New() *Storage {
	return &Storage{
		users:  make(map[string]*models.User),
		admins: make(map[string]*models.Admin),
		videos: make(map[string]*models.Video),
	}
}

// Close ничего не освобождает.
func (s *Storage) Close() error { return nil }

func ctxDone(ctx context.Context, op string) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
		return nil
	}
}

func copyUser(u *models.User) *models.User {
	c := *u
	c.SubjectSubscriptions = make(map[string]string, len(u.SubjectSubscriptions))
	for k, v := range u.SubjectSubscriptions {
		c.SubjectSubscriptions[k] = v
	}
	if u.LastLogin != nil {
		t := *u.LastLogin
		c.LastLogin = &t
	}
	return &c
}

// CreateUser сохраняет нового пользователя.
func (s *Storage) CreateUser(ctx context.Context, user models.User) error {
	const op = "storage.memory.CreateUser"
	if err := ctxDone(ctx, op); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == user.Username {
			return fmt.Errorf("%s: %w", op, models.ErrDuplicateUser)
		}
	}
	user.Version = 1
	s.users[user.ID] = copyUser(&user)
	return nil
}

// GetUser возвращает копию пользователя по ID.
func (s *Storage) GetUser(ctx context.Context, id string) (*models.User, error) {
	const op = "storage.memory.GetUser"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, models.ErrUserNotFound)
	}
	return copyUser(u), nil
}

// GetUserByUsername возвращает копию пользователя по имени.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.memory.GetUserByUsername"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			return copyUser(u), nil
		}
	}
	return nil, fmt.Errorf("%s: %w", op, models.ErrUserNotFound)
}

// ListUsers возвращает пользователей в порядке регистрации.
func (s *Storage) ListUsers(ctx context.Context) ([]models.User, error) {
	const op = "storage.memory.ListUsers"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, *copyUser(u))
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].Username < users[j].Username
		}
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

// UpdateUser сохраняет пользователя, если версия не изменилась с момента чтения.
func (s *Storage) UpdateUser(ctx context.Context, user models.User) error {
	const op = "storage.memory.UpdateUser"
	if err := ctxDone(ctx, op); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.users[user.ID]
	if !ok {
		return fmt.Errorf("%s: %w", op, models.ErrUserNotFound)
	}
	if cur.Version != user.Version {
		return fmt.Errorf("%s: %w", op, models.ErrConflict)
	}
	next := copyUser(cur)
	next.Level = user.Level
	next.SubscriptionStatus = user.SubscriptionStatus
	next.SubjectSubscriptions = copyUser(&user).SubjectSubscriptions
	next.Version = cur.Version + 1
	s.users[user.ID] = next
	return nil
}

// UpdateLastLogin обновляет время последнего входа.
func (s *Storage) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	const op = "storage.memory.UpdateLastLogin"
	if err := ctxDone(ctx, op); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return fmt.Errorf("%s: %w", op, models.ErrUserNotFound)
	}
	u.LastLogin = &at
	return nil
}

// EnsureAdmin создаёт или обновляет администратора.
func (s *Storage) EnsureAdmin(ctx context.Context, admin models.Admin) error {
	const op = "storage.memory.EnsureAdmin"
	if err := ctxDone(ctx, op); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if cur, ok := s.admins[admin.Username]; ok {
		cur.PasswordHash = admin.PasswordHash
		return nil
	}
	a := admin
	s.admins[admin.Username] = &a
	return nil
}

// GetAdminByUsername возвращает администратора по имени.
func (s *Storage) GetAdminByUsername(ctx context.Context, username string) (*models.Admin, error) {
	const op = "storage.memory.GetAdminByUsername"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.admins[username]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, models.ErrUserNotFound)
	}
	c := *a
	return &c, nil
}
