// Package services оформляет заявки на покупку подписки на предмет.
// Оплата не проводится: заявка передаётся платёжному шлюзу.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/edu-platform/internal/catalog"
	"github.com/magabrotheeeer/edu-platform/internal/models"
)

// Currency — валюта цен в таблице предметов (дирхам).
const Currency = "MAD"

// CheckoutPending — статус заявки, ожидающей оплаты.
const CheckoutPending = "pending"

// SubscriptionGateway принимает заявку на оплату подписки.
type SubscriptionGateway interface {
	CreateCheckout(ctx context.Context, checkout models.Checkout) (*models.Checkout, error)
}

// StubGateway принимает любую заявку и оставляет её в статусе pending.
// Подписка выдаётся администратором вручную.
type StubGateway struct {
	log *slog.Logger
}

// NewStubGateway создает шлюз-заглушку.
func NewStubGateway(log *slog.Logger) *StubGateway {
	return &StubGateway{log: log}
}

// CreateCheckout возвращает заявку без изменений.
func (g *StubGateway) CreateCheckout(_ context.Context, checkout models.Checkout) (*models.Checkout, error) {
	g.log.Info("checkout accepted by stub gateway",
		slog.String("checkout_id", checkout.ID),
		slog.String("subject_id", checkout.SubjectID),
		slog.Float64("amount", checkout.Amount))
	return &checkout, nil
}

// CheckoutService формирует заявку по цене из таблицы предметов уровня ученика.
type CheckoutService struct {
	gateway SubscriptionGateway
	log     *slog.Logger
	now     func() time.Time
}

// New создает новый экземпляр CheckoutService.
func New(gateway SubscriptionGateway, log *slog.Logger) *CheckoutService {
	return &CheckoutService{
		gateway: gateway,
		log:     log,
		now:     time.Now,
	}
}

// CreateCheckout создаёт заявку на подписку ученика userID уровня level на предмет subjectID.
func (s *CheckoutService) CreateCheckout(ctx context.Context, userID string, level models.Level, subjectID string) (*models.Checkout, error) {
	const op = "services.checkout.CreateCheckout"

	subject, err := catalog.SubjectForLevel(level, subjectID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	res, err := s.gateway.CreateCheckout(ctx, models.Checkout{
		ID:        uuid.NewString(),
		UserID:    userID,
		SubjectID: subject.ID,
		Amount:    subject.SubscriptionPrice,
		Currency:  Currency,
		Status:    CheckoutPending,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}
