// Package payment создает платежные намерения и ведет журнал платежей.
package payment

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/magabrotheeeer/product-hunt/internal/lib/sl"
	"github.com/magabrotheeeer/product-hunt/internal/models"
	"github.com/magabrotheeeer/product-hunt/internal/services"
)

// Repository журнал платежей.
type Repository interface {
	CreatePayment(ctx context.Context, p models.Payment) (string, error)
	ListPaymentsByEmail(ctx context.Context, email string) ([]models.Payment, error)
}

// Provider платежный провайдер.
type Provider interface {
	CreateIntent(ctx context.Context, amount int64) (string, error)
}

// Publisher публикует доменные события.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// PaymentService связывает провайдера и журнал платежей.
type PaymentService struct {
	repo     Repository
	provider Provider
	events   Publisher
	log      *slog.Logger
}

// New создает новый экземпляр PaymentService.
func New(repo Repository, provider Provider, events Publisher, log *slog.Logger) *PaymentService {
	return &PaymentService{
		repo:     repo,
		provider: provider,
		events:   events,
		log:      log,
	}
}

// ToMinorUnits переводит цену в минимальные единицы валюты с округлением.
func ToMinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

// CreateIntent создает намерение на сумму price. Ошибка провайдера не повторяется.
func (s *PaymentService) CreateIntent(ctx context.Context, price float64) (string, error) {
	const op = "services.payment.CreateIntent"

	amount := ToMinorUnits(price)
	if amount <= 0 {
		return "", services.ErrInvalidAmount
	}
	secret, err := s.provider.CreateIntent(ctx, amount)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return secret, nil
}

// Record добавляет платеж в журнал. Данные клиента не сверяются с провайдером.
func (s *PaymentService) Record(ctx context.Context, req models.DummyPayment) (models.InsertResult, error) {
	const op = "services.payment.Record"

	date := time.Now().UTC()
	if req.Date != nil {
		date = *req.Date
	}
	p := models.Payment{
		Email:         req.Email,
		Name:          req.Name,
		Price:         req.Price,
		TransactionID: req.TransactionID,
		Status:        req.Status,
		Date:          date,
	}
	id, err := s.repo.CreatePayment(ctx, p)
	if err != nil {
		return models.InsertResult{}, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("payment recorded", slog.String("id", id), slog.String("email", req.Email))
	event := models.Event{
		Name:       models.EventPaymentRecorded,
		UserEmail:  req.Email,
		Amount:     req.Price,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.events.Publish(ctx, event.Name, event); err != nil {
		s.log.Warn("failed to publish event", slog.String("event", event.Name), sl.Err(err))
	}
	return models.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

// History возвращает платежи пользователя.
func (s *PaymentService) History(ctx context.Context, email string) ([]models.Payment, error) {
	const op = "services.payment.History"

	payments, err := s.repo.ListPaymentsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return payments, nil
}
