// Package token реализует HTTP-обработчик выпуска JWT.
//
// Клиент присылает email (и необязательную роль), полученные от провайдера
// входа, и получает подписанный токен. Пароли не проверяются.
package token

import (
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

// Service выпускает токены.
type Service interface {
	IssueToken(req models.TokenRequest) (string, error)
}

// Handler обрабатывает POST /jwt.
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
// @Summary Выпуск токена
// @Description Возвращает JWT для переданного email. Токен нельзя отозвать.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.TokenRequest true "Утверждения токена"
// @Success 200 {object} map[string]string
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse
// @Router /jwt [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.token"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.TokenRequest
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

	token, err := h.service.IssueToken(req)
	if err != nil {
		log.Error("failed to issue token", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not issue token"))
		return
	}

	log.Info("token issued", slog.String("email", req.Email))
	render.JSON(w, r, map[string]string{
		"token": token,
	})
}
