// Package count отдает общее число продуктов.
package count

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/product-hunt/internal/http/response"
	"github.com/magabrotheeeer/product-hunt/internal/lib/sl"
)

// Service считает продукты.
type Service interface {
	Count(ctx context.Context) (int64, error)
}

// Handler обрабатывает GET /all-product-count.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Число продуктов
// @Description Оценка по статистике таблицы, для пагинации на клиенте.
// @Tags Products
// @Produce json
// @Success 200 {object} map[string]int64
// @Failure 500 {object} response.ErrorResponse
// @Router /all-product-count [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.product.count"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	n, err := h.service.Count(r.Context())
	if err != nil {
		log.Error("failed to count products", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	render.JSON(w, r, map[string]int64{
		"count": n,
	})
}
