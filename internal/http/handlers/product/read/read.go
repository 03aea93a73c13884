// Package read реализует HTTP-обработчик получения продукта по ID.
//
// Карточка читается через кэш. Обработчик подключен к двум путям:
// /get-product/{id} (форма редактирования) и /product-details/{id}.
package read

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/product-hunt/internal/http/request"
	"github.com/magabrotheeeer/product-hunt/internal/http/response"
	"github.com/magabrotheeeer/product-hunt/internal/lib/sl"
	"github.com/magabrotheeeer/product-hunt/internal/models"
)

// Handler обрабатывает запросы на получение продукта по уникальному идентификатору.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики для получения продукта по ID
}

// Service описывает интерфейс бизнес-логики чтения продукта.
type Service interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Продукт по ID
// @Tags Products
// @Produce json
// @Param id path string true "ID продукта"
// @Success 200 {object} models.Product
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse "Некорректный ID или ошибка сервера"
// @Router /product-details/{id} [get]
// @Router /get-product/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.product.read"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := request.ID(r)
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	p, err := h.service.Get(r.Context(), id)
	if err != nil {
		log.Error("failed to read product", sl.Err(err))
		status, body := response.FromError(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	log.Info("success to read product", slog.String("id", p.ID))
	render.JSON(w, r, p)
}
