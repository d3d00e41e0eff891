package models

import "time"

// Типы доменных событий, публикуемых в обменник уведомлений.
const (
	EventUserRegistered      = "user.registered"
	EventSubscriptionGranted = "subscription.granted"
	EventSubscriptionRevoked = "subscription.revoked"
)

// Event — доменное событие для сервиса уведомлений.
type Event struct {
	Type       string    `json:"type"`
	UserID     string    `json:"user_id"`
	Username   string    `json:"username"`
	SubjectID  string    `json:"subject_id,omitempty"`
	Status     string    `json:"status,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Checkout — результат создания заявки на покупку подписки.
type Checkout struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	SubjectID string    `json:"subject_id"`
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
