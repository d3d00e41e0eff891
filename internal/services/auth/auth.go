// Package services содержит регистрацию, вход учеников и администраторов
// и проверку сессионных токенов.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/edu-platform/internal/config"
	"github.com/magabrotheeeer/edu-platform/internal/lib/jwt"
	"github.com/magabrotheeeer/edu-platform/internal/lib/sl"
	"github.com/magabrotheeeer/edu-platform/internal/models"
)

// UserRepository описывает контракт для работы с учениками в хранилище.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
}

// AdminRepository описывает контракт для работы с администраторами.
type AdminRepository interface {
	EnsureAdmin(ctx context.Context, admin models.Admin) error
	GetAdminByUsername(ctx context.Context, username string) (*models.Admin, error)
}

// PasswordHasher хеширует и сверяет пароли.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// EventPublisher публикует доменные события.
type EventPublisher interface {
	Publish(ctx context.Context, event models.Event) error
}

// LoginResult — сессионный токен и публичные данные ученика.
type LoginResult struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

// AdminLoginResult — сессионный токен администратора.
type AdminLoginResult struct {
	Token string             `json:"token"`
	User  models.PublicAdmin `json:"user"`
}

// AuthService отвечает за регистрацию, авторизацию и валидацию JWT.
type AuthService struct {
	users    UserRepository
	admins   AdminRepository
	hasher   PasswordHasher
	jwtMaker jwt.Maker
	events   EventPublisher
	log      *slog.Logger
	now      func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, admins AdminRepository, hasher PasswordHasher,
	jwtMaker jwt.Maker, events EventPublisher, log *slog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		admins:   admins,
		hasher:   hasher,
		jwtMaker: jwtMaker,
		events:   events,
		log:      log,
		now:      time.Now,
	}
}

// Register создаёт ученика с бесплатным статусом и пустой картой подписок.
// Вход не выполняется.
func (s *AuthService) Register(ctx context.Context, username, rawPassword string, level models.Level) (*models.PublicUser, error) {
	const op = "services.auth.Register"

	if !level.Valid() {
		return nil, fmt.Errorf("%s: %w", op, models.ErrInvalidLevel)
	}
	if _, err := s.users.GetUserByUsername(ctx, username); err == nil {
		return nil, fmt.Errorf("%s: %w", op, models.ErrDuplicateUser)
	} else if !errors.Is(err, models.ErrUserNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	hashed, err := s.hasher.Hash(rawPassword)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user := models.User{
		ID:                   uuid.NewString(),
		Username:             username,
		PasswordHash:         hashed,
		Level:                level,
		SubscriptionStatus:   models.SubscriptionFree,
		SubjectSubscriptions: map[string]string{},
		CreatedAt:            s.now().UTC(),
		Version:              1,
	}
	// при гонке дубликат отсекает уникальный индекс хранилища
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.publish(ctx, models.Event{
		Type:       models.EventUserRegistered,
		UserID:     user.ID,
		Username:   user.Username,
		OccurredAt: user.CreatedAt,
	})
	public := user.Public()
	return &public, nil
}

// Login проверяет пароль ученика и выпускает сессионный токен на 24 часа.
// Неизвестное имя и неверный пароль неразличимы для клиента.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (*LoginResult, error) {
	const op = "services.auth.Login"

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			s.burnCompare(rawPassword)
			return nil, fmt.Errorf("%s: %w", op, models.ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.hasher.Compare(user.PasswordHash, rawPassword); err != nil {
		return nil, fmt.Errorf("%s: %w", op, models.ErrInvalidCredentials)
	}

	token, err := s.jwtMaker.GenerateToken(user.ID, user.Username, models.RoleStudent, string(user.Level))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now().UTC()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		s.log.Warn("failed to update last login", slog.String("user_id", user.ID), sl.Err(err))
	} else {
		user.LastLogin = &now
	}

	return &LoginResult{Token: token, User: user.Public()}, nil
}

// AdminLogin проверяет пароль администратора; токен содержит role=admin.
func (s *AuthService) AdminLogin(ctx context.Context, username, rawPassword string) (*AdminLoginResult, error) {
	const op = "services.auth.AdminLogin"

	admin, err := s.admins.GetAdminByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			s.burnCompare(rawPassword)
			return nil, fmt.Errorf("%s: %w", op, models.ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.hasher.Compare(admin.PasswordHash, rawPassword); err != nil {
		return nil, fmt.Errorf("%s: %w", op, models.ErrInvalidCredentials)
	}

	token, err := s.jwtMaker.GenerateToken(admin.ID, admin.Username, models.RoleAdmin, "")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &AdminLoginResult{
		Token: token,
		User:  models.PublicAdmin{ID: admin.ID, Username: admin.Username, Role: models.RoleAdmin},
	}, nil
}

// ValidateToken проверяет сессионный токен и возвращает его claims.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*jwt.SessionClaims, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		if errors.Is(err, models.ErrInvalidToken) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", models.ErrInvalidToken, err)
	}
	return claims, nil
}

// SeedAdmins создаёт администраторов из конфигурации. Пароли в конфиге хранятся
// только в виде bcrypt-хэшей.
func (s *AuthService) SeedAdmins(ctx context.Context, seeds []config.AdminSeed) error {
	const op = "services.auth.SeedAdmins"

	for _, seed := range seeds {
		if seed.Username == "" || !strings.HasPrefix(seed.PasswordHash, "$2") {
			return fmt.Errorf("%s: admin %q must have a username and a bcrypt password_hash", op, seed.Username)
		}
		admin := models.Admin{
			ID:           uuid.NewString(),
			Username:     seed.Username,
			PasswordHash: seed.PasswordHash,
			Role:         models.RoleAdmin,
		}
		if err := s.admins.EnsureAdmin(ctx, admin); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		s.log.Info("admin seeded", slog.String("username", seed.Username))
	}
	return nil
}

// burnCompare выполняет сравнение с фиктивным хэшем, чтобы время ответа
// для неизвестного имени не отличалось от неверного пароля.
func (s *AuthService) burnCompare(rawPassword string) {
	s.dummyOnce.Do(func() {
		h, err := s.hasher.Hash(uuid.NewString())
		if err != nil {
			s.log.Warn("failed to prepare dummy hash", sl.Err(err))
			return
		}
		s.dummyHash = h
	})
	if s.dummyHash != "" {
		_ = s.hasher.Compare(s.dummyHash, rawPassword)
	}
}

func (s *AuthService) publish(ctx context.Context, event models.Event) {
	if err := s.events.Publish(ctx, event); err != nil {
		s.log.Warn("failed to publish event", slog.String("type", event.Type), sl.Err(err))
	}
}
