// Package models содержит доменные структуры образовательной платформы:
// пользователей, администраторов, предметы, видео и уроки,
// а также sentinel-ошибки, общие для сервисов и HTTP-слоя.
package models

import "time"

// SubscriptionStatus — устаревший общий статус подписки пользователя.
// Доступ к урокам определяется только картой SubjectSubscriptions.
type SubscriptionStatus string

const (
	// SubscriptionFree — статус по умолчанию при регистрации.
	SubscriptionFree SubscriptionStatus = "free"
	// SubscriptionPremium — исторический статус, не влияет на доступ.
	SubscriptionPremium SubscriptionStatus = "premium"
)

// StatusActive — значение записи подписки, если администратор не указал иное.
const StatusActive = "active"

// User представляет зарегистрированного ученика.
type User struct {
	ID                   string             // Уникальный идентификатор пользователя
	Username             string             // Уникальное имя пользователя
	PasswordHash         string             // Хэш пароля (bcrypt)
	Level                Level              // Учебный уровень
	SubscriptionStatus   SubscriptionStatus // Устаревший общий статус
	SubjectSubscriptions map[string]string  // subjectID -> статус подписки
	CreatedAt            time.Time
	LastLogin            *time.Time
	Version              int64 // Версия записи для оптимистичной блокировки
}

// HasSubscription сообщает, есть ли у пользователя непустая запись подписки на предмет.
func (u *User) HasSubscription(subjectID string) bool {
	if u == nil || u.SubjectSubscriptions == nil {
		return false
	}
	return u.SubjectSubscriptions[subjectID] != ""
}

// Public возвращает представление пользователя без хэша пароля.
func (u *User) Public() PublicUser {
	subs := make(map[string]string, len(u.SubjectSubscriptions))
	for k, v := range u.SubjectSubscriptions {
		subs[k] = v
	}
	return PublicUser{
		ID:                   u.ID,
		Username:             u.Username,
		Level:                u.Level,
		SubscriptionStatus:   u.SubscriptionStatus,
		SubjectSubscriptions: subs,
		CreatedAt:            u.CreatedAt,
		LastLogin:            u.LastLogin,
	}
}

// PublicUser — проекция пользователя, отдаваемая клиентам.
type PublicUser struct {
	ID                   string             `json:"id"`
	Username             string             `json:"username"`
	Level                Level              `json:"level"`
	SubscriptionStatus   SubscriptionStatus `json:"subscription_status"`
	SubjectSubscriptions map[string]string  `json:"subject_subscriptions"`
	CreatedAt            time.Time          `json:"created_at"`
	LastLogin            *time.Time         `json:"last_login,omitempty"`
}

// RoleAdmin — роль, требуемая для административных операций.
const RoleAdmin = "admin"

// RoleStudent — роль обычного пользователя.
const RoleStudent = "student"

// Admin — учётная запись администратора. Создаётся только из конфигурации.
type Admin struct {
	ID           string
	Username     string
	PasswordHash string
	Role         string
}

// PublicAdmin — проекция администратора для ответа на вход.
type PublicAdmin struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
