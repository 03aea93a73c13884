package rabbitmq

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/product-hunt/internal/lib/sl"
)

// Handler обрабатывает тело сообщения. Первая ошибка возвращает сообщение
// в очередь, повторная отправляет его в DeadLetterQueue.
type Handler func(body []byte) error

// Consume запускает workers обработчиков очереди queue и сразу возвращается.
// Обработчики останавливаются при отмене ctx или закрытии канала.
func Consume(ctx context.Context, log *slog.Logger, ch *amqp.Channel, queue string, workers int, handle Handler) error {
	const op = "rabbitmq.Consume"

	deliveries, err := ch.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	log = log.With(slog.String("op", op), slog.String("queue", queue))
	for range max(workers, 1) {
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case d, ok := <-deliveries:
					if !ok {
						return
					}
					settle(log, d, handle(d.Body))
				}
			}
		}()
	}
	return nil
}

func settle(log *slog.Logger, d amqp.Delivery, handleErr error) {
	if handleErr != nil {
		requeue := !d.Redelivered
		if requeue {
			log.Warn("handler failed, message requeued", sl.Err(handleErr))
		} else {
			log.Error("handler failed again, message dead-lettered", sl.Err(handleErr))
		}
		if err := d.Nack(false, requeue); err != nil {
			log.Error("failed to nack message", sl.Err(err))
		}
		return
	}
	if err := d.Ack(false); err != nil {
		log.Error("failed to ack message", sl.Err(err))
	}
}
