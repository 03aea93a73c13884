// Package read ищет купон по коду при оформлении подписки.
package read

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/product-hunt/internal/http/response"
	"github.com/magabrotheeeer/product-hunt/internal/lib/sl"
	"github.com/magabrotheeeer/product-hunt/internal/models"
)

// Service ищет купоны.
type Service interface {
	GetByCode(ctx context.Context, code string) (*models.Coupon, error)
}

// Handler обрабатывает GET /coupon/{code}.
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
// @Summary Купон по коду
// @Tags Coupons
// @Produce json
// @Param code path string true "Код купона"
// @Success 200 {object} models.Coupon
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /coupon/{code} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.coupon.read"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	code := chi.URLParam(r, "code")
	c, err := h.service.GetByCode(r.Context(), code)
	if err != nil {
		log.Warn("failed to read coupon", slog.String("code", code), sl.Err(err))
		status, body := response.FromError(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	render.JSON(w, r, c)
}
