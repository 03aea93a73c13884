// Package save реализует идемпотентное создание пользователя при входе.
//
// Если пользователь с email из пути уже есть, возвращается его запись
// без изменений, иначе результат вставки.
package save

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/product-hunt/internal/http/response"
	"github.com/magabrotheeeer/product-hunt/internal/lib/sl"
	"github.com/magabrotheeeer/product-hunt/internal/models"
)

// Service сохраняет пользователя.
type Service interface {
	Save(ctx context.Context, email string, req models.DummyUser) (*models.User, *models.InsertResult, error)
}

// Handler обрабатывает POST /user/{email}.
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
// @Summary Сохранить пользователя
// @Description Идемпотентно: существующий пользователь возвращается как есть.
// @Tags Users
// @Accept json
// @Produce json
// @Param email path string true "Email"
// @Param request body models.DummyUser false "Профиль"
// @Success 200 {object} models.InsertResult "Новый пользователь"
// @Success 200 {object} models.User "Существующий пользователь"
// @Failure 400 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /user/{email} [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.save"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	email := chi.URLParam(r, "email")
	if err := h.validate.Var(email, "required,email"); err != nil {
		log.Error("invalid email in path", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("field email must be a valid email"))
		return
	}

	var req models.DummyUser
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
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

	existing, res, err := h.service.Save(r.Context(), email, req)
	if err != nil {
		log.Error("failed to save user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	if existing != nil {
		log.Debug("user already exists", slog.String("email", email))
		render.JSON(w, r, existing)
		return
	}
	log.Info("user saved", slog.String("id", res.InsertedID))
	render.JSON(w, r, res)
}
