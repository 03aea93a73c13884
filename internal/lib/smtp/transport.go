// Package smtp открывает SMTP-сессии для рассылки писем.
package smtp

import (
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/smtp"
	"strconv"

	"github.com/magabrotheeeer/product-hunt/internal/config"
	"github.com/magabrotheeeer/product-hunt/internal/lib/sl"
)

// Session одна SMTP-сессия. Реализуется *smtp.Client.
type Session interface {
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}

// Dialer открывает сессии от имени одного отправителя.
type Dialer interface {
	Dial() (Session, error)
	Sender() string
}

// Transport Dialer поверх net/smtp.
type Transport struct {
	cfg config.SMTP
	log *slog.Logger
}

// NewTransport создает Transport.
func NewTransport(cfg config.SMTP, log *slog.Logger) *Transport {
	return &Transport{cfg: cfg, log: log}
}

// Dial подключается к серверу. STARTTLS включается, если сервер его
// объявляет, авторизация выполняется только при заданном пользователе.
func (t *Transport) Dial() (Session, error) {
	const op = "smtp.Dial"
	addr := net.JoinHostPort(t.cfg.Host, strconv.Itoa(t.cfg.Port))

	client, err := smtp.Dial(addr)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := t.handshake(client); err != nil {
		if closeErr := client.Close(); closeErr != nil {
			t.log.Warn("failed to close smtp client", sl.Err(closeErr))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return client, nil
}

func (t *Transport) handshake(client *smtp.Client) error {
	if ok, _ := client.Extension("STARTTLS"); ok {
		err := client.StartTLS(&tls.Config{
			ServerName: t.cfg.Host,
			MinVersion: tls.VersionTLS12,
		})
		if err != nil {
			return fmt.Errorf("starttls: %w", err)
		}
	}
	if t.cfg.User == "" {
		return nil
	}
	if err := client.Auth(smtp.PlainAuth("", t.cfg.User, t.cfg.Password, t.cfg.Host)); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	return nil
}

// Sender адрес в поле From. Без явного адреса используется логин.
func (t *Transport) Sender() string {
	if t.cfg.From != "" {
		return t.cfg.From
	}
	return t.cfg.User
}
