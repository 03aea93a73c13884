// Package list отдает все купоны.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/product-hunt/internal/http/response"
	"github.com/magabrotheeeer/product-hunt/internal/lib/sl"
	"github.com/magabrotheeeer/product-hunt/internal/models"
)

// Service перечисляет купоны.
type Service interface {
	List(ctx context.Context) ([]models.Coupon, error)
}

// Handler обрабатывает GET /all-coupon.
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
// @Summary Все купоны
// @Tags Coupons
// @Produce json
// @Success 200 {array} models.Coupon
// @Failure 500 {object} response.ErrorResponse
// @Router /all-coupon [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.coupon.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	coupons, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list coupons", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	render.JSON(w, r, coupons)
}
