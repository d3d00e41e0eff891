// Package sender собирает сервис уведомлений: потребитель очереди событий и SMTP-отправка.
package sender

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/edu-platform/internal/config"
	"github.com/magabrotheeeer/edu-platform/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/edu-platform/internal/lib/sl"
	"github.com/magabrotheeeer/edu-platform/internal/lib/smtp"
	senderservice "github.com/magabrotheeeer/edu-platform/internal/services/sender"
)

// App — сервис уведомлений.
type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	queue         string
	senderService *senderservice.SenderService
	logger        *slog.Logger
}

// New подключается к брокеру и объявляет очередь уведомлений.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.sender.New"

	conn, err := rabbitmq.Connect(cfg.RabbitMQ.URL, cfg.RabbitMQ.MaxRetries, cfg.RabbitMQ.RetryDelay)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ch, err := rabbitmq.SetupChannel(conn, cfg.Exchange, rabbitmq.NotificationQueues(cfg.Queue))
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	transport := smtp.NewTransport(cfg.SMTP, logger)
	senderService := senderservice.NewSenderService(transport, cfg.SMTP.Domain, logger)

	return &App{
		conn:          conn,
		ch:            ch,
		queue:         cfg.Queue,
		senderService: senderService,
		logger:        logger,
	}, nil
}

// Run потребляет события до отмены ctx.
func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumerMessage(ctx, a.ch, a.queue, a.logger, a.senderService.HandleEvent)
	if err != nil {
		a.logger.Error("failed to start consumer", slog.String("queue", a.queue), sl.Err(err))
		return err
	}
	a.logger.Info("consuming notifications", slog.String("queue", a.queue))

	<-ctx.Done()
	a.logger.Info("Sender service shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", sl.Err(err))
	}

	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", sl.Err(err))
	}

	return nil
}
