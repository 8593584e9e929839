// Package sender собирает приложение воркера почтовых уведомлений.
package sender

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/gym-manager/internal/config"
	"github.com/magabrotheeeer/gym-manager/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/gym-manager/internal/lib/smtp"
	senderservice "github.com/magabrotheeeer/gym-manager/internal/services/sender"
)

// App представляет приложение воркера уведомлений.
type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *senderservice.Service
	logger        *slog.Logger
}

// New создает новый экземпляр приложения воркера уведомлений.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	transport := smtp.NewTransport(cfg, logger)
	senderService := senderservice.New(transport, logger)

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderService,
		logger:        logger,
	}, nil
}

// Run подписывается на очереди уведомлений и работает до отмены контекста.
func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumeMessages(a.ch, "notification.membership.grace", a.senderService.SendMembershipGraceNotice)
	if err != nil {
		a.logger.Error("failed to start grace queue consumer", slog.Any("err", err))
		return err
	}

	err = rabbitmq.ConsumeMessages(a.ch, "notification.membership.expired", a.senderService.SendMembershipExpiredNotice)
	if err != nil {
		a.logger.Error("failed to start expired queue consumer", slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("sender service shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}

	return nil
}
