// Package read отдает пользователя и его роль по email.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/product-hunt/internal/http/response"
	"github.com/magabrotheeeer/product-hunt/internal/lib/sl"
	"github.com/magabrotheeeer/product-hunt/internal/models"
	"github.com/magabrotheeeer/product-hunt/internal/services"
)

// Service читает пользователей.
type Service interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Role(ctx context.Context, email string) (string, error)
}

// Handler обрабатывает GET /user/{email} и GET /user/role/{email}.
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

// ByEmail godoc
// @Summary Пользователь по email
// @Description Для незарегистрированного email возвращается null.
// @Tags Users
// @Produce json
// @Param email path string true "Email"
// @Success 200 {object} models.User
// @Failure 500 {object} response.ErrorResponse
// @Router /user/{email} [get]
func (h *Handler) ByEmail(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.byEmail"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	email := chi.URLParam(r, "email")
	u, err := h.service.GetByEmail(r.Context(), email)
	if errors.Is(err, services.ErrUserNotFound) {
		log.Debug("user not found", slog.String("email", email))
		render.JSON(w, r, nil)
		return
	}
	if err != nil {
		log.Error("failed to read user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	render.JSON(w, r, u)
}

// Role godoc
// @Summary Роль пользователя
// @Description Пустая роль означает обычного пользователя.
// @Tags Users
// @Produce json
// @Param email path string true "Email"
// @Success 200 {object} map[string]string
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /user/role/{email} [get]
func (h *Handler) Role(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.role"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	role, err := h.service.Role(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		log.Error("failed to read role", sl.Err(err))
		status, body := response.FromError(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	render.JSON(w, r, map[string]string{
		"role": role,
	})
}
