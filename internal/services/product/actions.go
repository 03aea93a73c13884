package product

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/product-hunt/internal/cache"
	"github.com/magabrotheeeer/product-hunt/internal/lib/sl"
	"github.com/magabrotheeeer/product-hunt/internal/models"
	"github.com/magabrotheeeer/product-hunt/internal/services"
	"github.com/magabrotheeeer/product-hunt/internal/storage"
)

// Vote засчитывает голос пользователя.
// Маркер хранит только последнего проголосовавшего, поэтому повтор отклоняется
// лишь для него. Чтение и запись не связаны транзакцией.
func (s *Service) Vote(ctx context.Context, id uuid.UUID, email string) (*models.Product, error) {
	const op = "services.product.Vote"

	p, err := s.load(ctx, op, id)
	if err != nil {
		return nil, err
	}
	if p.VotedUser == email {
		return nil, services.ErrAlreadyVoted
	}

	updated, err := s.repo.IncrementVote(ctx, id, email)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, services.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.invalidate(ctx, id)
	s.publish(ctx, models.Event{
		Name:        models.EventProductVoted,
		ProductID:   updated.ID,
		ProductName: updated.Name,
		OwnerEmail:  updated.OwnerEmail,
		UserEmail:   email,
	})
	return updated, nil
}

// Report регистрирует жалобу пользователя. Устроено так же, как Vote.
func (s *Service) Report(ctx context.Context, id uuid.UUID, email string) (*models.Product, error) {
	const op = "services.product.Report"

	p, err := s.load(ctx, op, id)
	if err != nil {
		return nil, err
	}
	if p.ReportedUser == email {
		return nil, services.ErrAlreadyReported
	}

	updated, err := s.repo.IncrementReport(ctx, id, email)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, services.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.invalidate(ctx, id)
	s.publish(ctx, models.Event{
		Name:        models.EventProductReported,
		ProductID:   updated.ID,
		ProductName: updated.Name,
		OwnerEmail:  updated.OwnerEmail,
		UserEmail:   email,
	})
	return updated, nil
}

// Moderate применяет решение модератора.
// Accepted и Rejected меняют статус, любое другое значение помечает продукт рекомендуемым.
func (s *Service) Moderate(ctx context.Context, id uuid.UUID, status string) (models.UpdateResult, error) {
	const op = "services.product.Moderate"

	isTransition := status == models.StatusAccepted || status == models.StatusRejected
	var (
		res models.UpdateResult
		err error
	)
	if isTransition {
		res, err = s.repo.SetProductStatus(ctx, id, status)
	} else {
		res, err = s.repo.SetProductFeatured(ctx, id)
	}
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, id)

	if !isTransition || res.MatchedCount == 0 {
		return res, nil
	}

	p, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		s.log.Warn("moderated product not readable, event skipped", slog.String("id", id.String()), sl.Err(err))
		return res, nil
	}
	s.log.Info("product moderated", slog.String("id", p.ID), slog.String("status", status))
	s.publish(ctx, models.Event{
		Name:        models.EventProductModerated,
		ProductID:   p.ID,
		ProductName: p.Name,
		OwnerEmail:  p.OwnerEmail,
		Status:      status,
	})
	return res, nil
}

// Update применяет патч владельца.
func (s *Service) Update(ctx context.Context, id uuid.UUID, patch models.ProductPatch) (models.UpdateResult, error) {
	const op = "services.product.Update"

	res, err := s.repo.UpdateProduct(ctx, id, patch)
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, id)
	return res, nil
}

// Delete удаляет продукт без дополнительных проверок.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) (models.DeleteResult, error) {
	const op = "services.product.Delete"

	res, err := s.repo.DeleteProduct(ctx, id)
	if err != nil {
		return models.DeleteResult{}, fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, id)

	if res.DeletedCount > 0 {
		s.publish(ctx, models.Event{Name: models.EventProductDeleted, ProductID: id.String()})
	}
	return res, nil
}

// load читает продукт из базы в обход кэша.
func (s *Service) load(ctx context.Context, op string, id uuid.UUID) (*models.Product, error) {
	p, err := s.repo.GetProduct(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, services.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (s *Service) invalidate(ctx context.Context, id uuid.UUID) {
	key := cache.ProductKey(id.String())
	if err := s.cache.Invalidate(ctx, key); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", key), sl.Err(err))
	}
}

func (s *Service) publish(ctx context.Context, event models.Event) {
	event.OccurredAt = time.Now().UTC()
	if err := s.events.Publish(ctx, event.Name, event); err != nil {
		s.log.Warn("failed to publish event", slog.String("event", event.Name), sl.Err(err))
	}
}
