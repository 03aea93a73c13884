// Package moderate реализует HTTP-обработчик решения модератора.
//
// Статус Accepted или Rejected переводит продукт в этот статус.
// Любое другое значение, в том числе пустое, отмечает продукт избранным
// и статус не трогает.
package moderate

import (
	"context"
	"encoding/json"
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

// Service описывает интерфейс модерации.
type Service interface {
	Moderate(ctx context.Context, id uuid.UUID, status string) (models.UpdateResult, error)
}

// Handler обрабатывает PATCH /product/reviewQueue-update/{id}.
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
// @Summary Решение модератора
// @Description Accepted/Rejected меняют статус, любое другое значение ставит isFeatured=true.
// @Tags Moderation
// @Accept json
// @Produce json
// @Param id path string true "ID продукта"
// @Param request body models.ModerationRequest true "Решение"
// @Success 200 {object} models.UpdateResult
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /product/reviewQueue-update/{id} [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.product.moderate"
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

	var req models.ModerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	res, err := h.service.Moderate(r.Context(), id, req.Status)
	if err != nil {
		log.Error("failed to moderate product", sl.Err(err))
		status, body := response.FromError(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	log.Info("product moderated", slog.String("id", id.String()), slog.String("status", req.Status))
	render.JSON(w, r, res)
}
