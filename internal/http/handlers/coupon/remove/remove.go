// Package remove удаляет купон.
package remove

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

// Service удаляет купоны.
type Service interface {
	Delete(ctx context.Context, id uuid.UUID) (models.DeleteResult, error)
}

// Handler обрабатывает DELETE /coupon-data-delete/{id}.
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
// @Summary Удалить купон
// @Tags Coupons
// @Produce json
// @Param id path string true "ID купона"
// @Success 200 {object} models.DeleteResult
// @Failure 403 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /coupon-data-delete/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.coupon.remove"
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

	res, err := h.service.Delete(r.Context(), id)
	if err != nil {
		log.Error("failed to delete coupon", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	log.Info("coupon deleted", slog.String("id", id.String()), slog.Int64("deleted", res.DeletedCount))
	render.JSON(w, r, res)
}
