// Package notifier отправляет владельцам письма о решении модератора.
package notifier

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"mime"
	"strings"
	"unicode"

	"github.com/magabrotheeeer/product-hunt/internal/lib/sl"
	"github.com/magabrotheeeer/product-hunt/internal/lib/smtp"
	"github.com/magabrotheeeer/product-hunt/internal/metrics"
	"github.com/magabrotheeeer/product-hunt/internal/models"
)

// Service обрабатывает события product.moderated.
type Service struct {
	dialer smtp.Dialer
	log    *slog.Logger
}

// NewService создает новый экземпляр Service.
func NewService(dialer smtp.Dialer, log *slog.Logger) *Service {
	return &Service{
		dialer: dialer,
		log:    log,
	}
}

// HandleModerationEvent пишет владельцу продукта о принятии или отклонении.
// Нечитаемые и посторонние события подтверждаются без письма, иначе они
// возвращались бы в очередь бесконечно.
func (s *Service) HandleModerationEvent(body []byte) error {
	var event models.Event
	if err := json.Unmarshal(body, &event); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return nil
	}
	if !isDecision(event) {
		s.log.Debug("event skipped", slog.String("event", event.Name), slog.String("status", event.Status))
		return nil
	}

	if err := s.deliver(event.OwnerEmail, composeMessage(s.dialer.Sender(), event)); err != nil {
		metrics.NotificationsSentTotal.WithLabelValues("error").Inc()
		return err
	}
	metrics.NotificationsSentTotal.WithLabelValues("ok").Inc()
	s.log.Info("moderation email sent",
		slog.String("product_id", event.ProductID),
		slog.String("to", event.OwnerEmail),
	)
	return nil
}

func isDecision(e models.Event) bool {
	if e.Name != models.EventProductModerated || e.OwnerEmail == "" {
		return false
	}
	return e.Status == models.StatusAccepted || e.Status == models.StatusRejected
}

func composeMessage(from string, e models.Event) string {
	verdict := "принят"
	if e.Status == models.StatusRejected {
		verdict = "отклонен"
	}
	name := stripControl(e.ProductName)
	subject := fmt.Sprintf("Ваш продукт %s: %s", name, e.Status)
	headers := []string{
		"From: " + stripControl(from),
		"To: " + stripControl(e.OwnerEmail),
		"Subject: " + mime.QEncoding.Encode("utf-8", subject),
		"MIME-Version: 1.0",
		`Content-Type: text/plain; charset="UTF-8"`,
	}
	body := fmt.Sprintf("Здравствуйте!\r\n\r\nМодератор рассмотрел ваш продукт %q: он %s (%s).\r\n",
		name, verdict, e.Status)
	return strings.Join(headers, "\r\n") + "\r\n\r\n" + body
}

// stripControl убирает управляющие символы, в том числе CR и LF,
// чтобы пользовательские строки не порождали новые заголовки.
func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

func (s *Service) deliver(to, msg string) error {
	const op = "services.notifier.deliver"

	session, err := s.dialer.Dial()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = session.Close()
	}()

	if err := session.Mail(s.dialer.Sender()); err != nil {
		return fmt.Errorf("%s: mail from: %w", op, err)
	}
	if err := session.Rcpt(to); err != nil {
		return fmt.Errorf("%s: rcpt %s: %w", op, to, err)
	}

	w, err := session.Data()
	if err != nil {
		return fmt.Errorf("%s: data: %w", op, err)
	}
	if _, err := w.Write([]byte(msg)); err != nil {
		_ = w.Close()
		return fmt.Errorf("%s: write: %w", op, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return session.Quit()
}
