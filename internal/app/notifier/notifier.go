// Package notifier собирает воркер, который рассылает владельцам письма
// о решениях модерации.
package notifier

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/product-hunt/internal/config"
	"github.com/magabrotheeeer/product-hunt/internal/lib/sl"
	"github.com/magabrotheeeer/product-hunt/internal/lib/smtp"
	"github.com/magabrotheeeer/product-hunt/internal/rabbitmq"
	notifierservice "github.com/magabrotheeeer/product-hunt/internal/services/notifier"
)

type App struct {
	conn    *amqp.Connection
	ch      *amqp.Channel
	queue   string
	workers int
	service *notifierservice.Service
	logger  *slog.Logger
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(ctx, logger, cfg.RabbitMQ)
	if err != nil {
		return nil, err
	}

	ch, err := rabbitmq.SetupChannel(conn, cfg.RabbitMQ.Exchange, rabbitmq.ModerationQueues(cfg.RabbitMQ.Queue))
	if err != nil {
		conn.Close()
		return nil, err
	}

	transport := smtp.NewTransport(cfg.SMTP, logger)

	return &App{
		conn:    conn,
		ch:      ch,
		queue:   cfg.RabbitMQ.Queue,
		workers: cfg.RabbitMQ.Workers,
		service: notifierservice.NewService(transport, logger),
		logger:  logger,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.Consume(ctx, a.logger, a.ch, a.queue, a.workers, a.service.HandleModerationEvent)
	if err != nil {
		a.logger.Error("failed to start consumer", slog.String("queue", a.queue), sl.Err(err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("notifier shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", sl.Err(err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", sl.Err(err))
	}

	return nil
}
