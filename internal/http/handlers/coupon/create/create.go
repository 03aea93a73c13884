// Package create добавляет промокод.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/product-hunt/internal/http/response"
	"github.com/magabrotheeeer/product-hunt/internal/lib/sl"
	"github.com/magabrotheeeer/product-hunt/internal/models"
)

// Service создает купоны.
type Service interface {
	Create(ctx context.Context, req models.DummyCoupon) (models.InsertResult, error)
}

// Handler обрабатывает POST /coupons.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Добавить купон
// @Tags Coupons
// @Accept json
// @Produce json
// @Param request body models.DummyCoupon true "Купон"
// @Success 200 {object} models.InsertResult
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse "Код уже занят"
// @Failure 422 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /coupons [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.coupon.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyCoupon
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	res, err := h.service.Create(r.Context(), req)
	if err != nil {
		log.Error("failed to create coupon", sl.Err(err))
		status, body := response.FromError(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	log.Info("coupon created", slog.String("code", req.Code))
	render.JSON(w, r, res)
}
