// Package list реализует HTTP-обработчики выборок продуктов: полный список,
// свежие, постранично, поиск по тегу, по владельцу и выборки для модератора.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/product-hunt/internal/http/response"
	"github.com/magabrotheeeer/product-hunt/internal/lib/sl"
	"github.com/magabrotheeeer/product-hunt/internal/models"
)

// Service описывает выборки продуктов.
type Service interface {
	ListAll(ctx context.Context) ([]models.Product, error)
	ListRecent(ctx context.Context) ([]models.Product, error)
	Page(ctx context.Context, page, size int) ([]models.Product, error)
	SearchByTag(ctx context.Context, pattern string) ([]models.Product, error)
	ListByOwner(ctx context.Context, email string) ([]models.Product, error)
	ReviewQueue(ctx context.Context) ([]models.Product, error)
	ListReported(ctx context.Context) ([]models.Product, error)
}

// Handler отдает списки продуктов.
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

// All godoc
// @Summary Все продукты
// @Tags Products
// @Produce json
// @Success 200 {array} models.Product
// @Failure 500 {object} response.ErrorResponse
// @Router /all-product [get]
func (h *Handler) All(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListAll(r.Context())
	h.respond(w, r, "handlers.product.listAll", products, err)
}

// Recent godoc
// @Summary Продукты, новые первыми
// @Tags Products
// @Produce json
// @Success 200 {array} models.Product
// @Failure 500 {object} response.ErrorResponse
// @Router /products [get]
func (h *Handler) Recent(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListRecent(r.Context())
	h.respond(w, r, "handlers.product.listRecent", products, err)
}

// Page godoc
// @Summary Страница продуктов
// @Description Окно skip(page*size).limit(size). Нечисловые значения заменяются нулем. size=0 возвращает все продукты.
// @Tags Products
// @Produce json
// @Param page query int false "Номер страницы с нуля"
// @Param size query int false "Размер страницы"
// @Success 200 {array} models.Product
// @Failure 500 {object} response.ErrorResponse
// @Router /product-pagination [get]
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))

	products, err := h.service.Page(r.Context(), page, size)
	h.respond(w, r, "handlers.product.page", products, err)
}

// Search godoc
// @Summary Поиск по тегам
// @Description Регулярное выражение без учета регистра. Пустой запрос возвращает все продукты.
// @Tags Products
// @Produce json
// @Param tags query string false "Шаблон тега"
// @Success 200 {array} models.Product
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /product/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.SearchByTag(r.Context(), r.URL.Query().Get("tags"))
	h.respond(w, r, "handlers.product.search", products, err)
}

// ByOwner godoc
// @Summary Продукты владельца
// @Tags Products
// @Produce json
// @Param email path string true "Email владельца"
// @Success 200 {array} models.Product
// @Failure 500 {object} response.ErrorResponse
// @Router /specific-product/{email} [get]
func (h *Handler) ByOwner(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListByOwner(r.Context(), chi.URLParam(r, "email"))
	h.respond(w, r, "handlers.product.byOwner", products, err)
}

// ReviewQueue godoc
// @Summary Очередь модерации
// @Description Продукты в статусе pending идут первыми.
// @Tags Moderation
// @Produce json
// @Success 200 {array} models.Product
// @Failure 403 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /product-review [get]
func (h *Handler) ReviewQueue(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ReviewQueue(r.Context())
	h.respond(w, r, "handlers.product.reviewQueue", products, err)
}

// Reported godoc
// @Summary Продукты с жалобами
// @Tags Moderation
// @Produce json
// @Success 200 {array} models.Product
// @Failure 403 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /product-reported [get]
func (h *Handler) Reported(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListReported(r.Context())
	h.respond(w, r, "handlers.product.reported", products, err)
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, op string, products []models.Product, err error) {
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err != nil {
		log.Error("failed to list products", sl.Err(err))
		status, body := response.FromError(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	log.Debug("list products", slog.Int("count", len(products)))
	render.JSON(w, r, products)
}
