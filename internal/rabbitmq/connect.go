// Package rabbitmq содержит подключение к брокеру, объявление топологии,
// публикацию доменных событий и потребление очереди уведомлений.
package rabbitmq

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/product-hunt/internal/config"
	"github.com/magabrotheeeer/product-hunt/internal/lib/sl"
)

// Connect подключается к брокеру. При неудаче делает до cfg.MaxRetries
// попыток с паузой cfg.RetryDelay, пока не отменен ctx.
func Connect(ctx context.Context, log *slog.Logger, cfg config.RabbitMQ) (*amqp.Connection, error) {
	const op = "rabbitmq.Connect"

	attempts := max(cfg.MaxRetries, 1)
	var err error
	for attempt := 1; ; attempt++ {
		var conn *amqp.Connection
		if conn, err = amqp.Dial(cfg.URL); err == nil {
			return conn, nil
		}
		if attempt == attempts {
			break
		}
		log.Warn("broker is not reachable, retrying",
			slog.Int("attempt", attempt),
			slog.Duration("delay", cfg.RetryDelay),
			sl.Err(err),
		)

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%s: %w", op, ctx.Err())
		case <-time.After(cfg.RetryDelay):
		}
	}

	return nil, fmt.Errorf("%s: after %d attempts: %w", op, attempts, err)
}
