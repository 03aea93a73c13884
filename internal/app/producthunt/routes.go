// Package producthunt собирает HTTP-приложение маркетплейса: маршруты,
// middleware и зависимости сервисов.
package producthunt

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/product-hunt/internal/config"
	"github.com/magabrotheeeer/product-hunt/internal/http/handlers/auth/token"
	couponcreate "github.com/magabrotheeeer/product-hunt/internal/http/handlers/coupon/create"
	couponlist "github.com/magabrotheeeer/product-hunt/internal/http/handlers/coupon/list"
	couponread "github.com/magabrotheeeer/product-hunt/internal/http/handlers/coupon/read"
	couponremove "github.com/magabrotheeeer/product-hunt/internal/http/handlers/coupon/remove"
	couponupdate "github.com/magabrotheeeer/product-hunt/internal/http/handlers/coupon/update"
	"github.com/magabrotheeeer/product-hunt/internal/http/handlers/health"
	"github.com/magabrotheeeer/product-hunt/internal/http/handlers/payment/paymentintent"
	"github.com/magabrotheeeer/product-hunt/internal/http/handlers/payment/paymentlist"
	"github.com/magabrotheeeer/product-hunt/internal/http/handlers/payment/paymentrecord"
	"github.com/magabrotheeeer/product-hunt/internal/http/handlers/product/count"
	productcreate "github.com/magabrotheeeer/product-hunt/internal/http/handlers/product/create"
	productlist "github.com/magabrotheeeer/product-hunt/internal/http/handlers/product/list"
	"github.com/magabrotheeeer/product-hunt/internal/http/handlers/product/moderate"
	productread "github.com/magabrotheeeer/product-hunt/internal/http/handlers/product/read"
	productremove "github.com/magabrotheeeer/product-hunt/internal/http/handlers/product/remove"
	"github.com/magabrotheeeer/product-hunt/internal/http/handlers/product/report"
	productupdate "github.com/magabrotheeeer/product-hunt/internal/http/handlers/product/update"
	"github.com/magabrotheeeer/product-hunt/internal/http/handlers/product/vote"
	reviewcreate "github.com/magabrotheeeer/product-hunt/internal/http/handlers/review/create"
	reviewlist "github.com/magabrotheeeer/product-hunt/internal/http/handlers/review/list"
	"github.com/magabrotheeeer/product-hunt/internal/http/handlers/stats/adminstate"
	userlist "github.com/magabrotheeeer/product-hunt/internal/http/handlers/user/list"
	userread "github.com/magabrotheeeer/product-hunt/internal/http/handlers/user/read"
	"github.com/magabrotheeeer/product-hunt/internal/http/handlers/user/role"
	"github.com/magabrotheeeer/product-hunt/internal/http/handlers/user/save"
	"github.com/magabrotheeeer/product-hunt/internal/http/handlers/user/subscription"
	"github.com/magabrotheeeer/product-hunt/internal/http/middlewarectx"
	"github.com/magabrotheeeer/product-hunt/internal/models"
	authservice "github.com/magabrotheeeer/product-hunt/internal/services/auth"
	couponservice "github.com/magabrotheeeer/product-hunt/internal/services/coupon"
	paymentservice "github.com/magabrotheeeer/product-hunt/internal/services/payment"
	productservice "github.com/magabrotheeeer/product-hunt/internal/services/product"
	reviewservice "github.com/magabrotheeeer/product-hunt/internal/services/review"
	statsservice "github.com/magabrotheeeer/product-hunt/internal/services/stats"
	userservice "github.com/magabrotheeeer/product-hunt/internal/services/user"
)

// Services зависимости обработчиков.
type Services struct {
	Auth     *authservice.Service
	Tokens   middlewarectx.TokenParser
	Users    *userservice.Service
	Products *productservice.Service
	Reviews  *reviewservice.Service
	Coupons  *couponservice.Service
	Payments *paymentservice.PaymentService
	Stats    *statsservice.Service
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, svc Services, limit config.RateLimit) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		middlewarectx.MetricsMiddleware,
	)

	requireAuth := middlewarectx.JWTMiddleware(svc.Tokens, logger)
	requireRole := func(roles ...string) func(http.Handler) http.Handler {
		return middlewarectx.RoleMiddleware(logger, svc.Users, roles...)
	}

	products := productlist.New(logger, svc.Products)
	productRead := productread.New(logger, svc.Products)
	users := userread.New(logger, svc.Users)

	r.Get("/", health.Root)
	r.Get("/health", health.New(logger).ServeHTTP)

	// Выдача токенов и платежи
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.RateLimitMiddleware(logger, limit.RPS, limit.Burst))
		r.Post("/jwt", token.New(logger, svc.Auth).ServeHTTP)
		r.Post("/create-payment-intent", paymentintent.New(logger, svc.Payments).ServeHTTP)
		r.Post("/payments", paymentrecord.New(logger, svc.Payments).ServeHTTP)
	})
	r.With(requireAuth).Get("/payments/{email}", paymentlist.New(logger, svc.Payments).ServeHTTP)

	// Продукты
	r.Post("/products", productcreate.New(logger, svc.Products).ServeHTTP)
	r.Get("/products", products.Recent)
	r.Get("/all-product", products.All)
	r.Get("/all-product-count", count.New(logger, svc.Products).ServeHTTP)
	r.Get("/product-pagination", products.Page)
	r.Get("/product/search", products.Search)
	r.Get("/specific-product/{email}", products.ByOwner)
	r.Get("/get-product/{id}", productRead.ServeHTTP)
	r.Get("/product-details/{id}", productRead.ServeHTTP)
	r.Put("/product-update/{id}", productupdate.New(logger, svc.Products).ServeHTTP)
	r.Patch("/products/vote/{id}", vote.New(logger, svc.Products).ServeHTTP)
	r.Patch("/products/report/{id}", report.New(logger, svc.Products).ServeHTTP)

	// Модерация
	r.Group(func(r chi.Router) {
		r.Use(requireAuth, requireRole(models.RoleModerator))
		r.Get("/product-review", products.ReviewQueue)
		r.Get("/product-reported", products.Reported)
		r.Patch("/product/reviewQueue-update/{id}", moderate.New(logger, svc.Products).ServeHTTP)
	})
	r.Group(func(r chi.Router) {
		r.Use(requireAuth, requireRole(models.RoleModerator, models.RoleAdmin))
		r.Delete("/product-data-delete/{id}", productremove.New(logger, svc.Products).ServeHTTP)
	})

	// Пользователи
	r.Post("/user/{email}", save.New(logger, svc.Users).ServeHTTP)
	r.Get("/user/{email}", users.ByEmail)
	r.Get("/user/role/{email}", users.Role)
	r.Patch("/data-update/{id}", subscription.New(logger, svc.Users).ServeHTTP)

	// Отзывы
	r.Post("/review-data", reviewcreate.New(logger, svc.Reviews).ServeHTTP)
	r.Get("/reviews/{id}", reviewlist.New(logger, svc.Reviews).ServeHTTP)

	// Купоны
	r.Get("/all-coupon", couponlist.New(logger, svc.Coupons).ServeHTTP)
	r.Get("/coupon/{code}", couponread.New(logger, svc.Coupons).ServeHTTP)

	// Администрирование
	r.Group(func(r chi.Router) {
		r.Use(requireAuth, requireRole(models.RoleAdmin))
		r.Get("/all-user", userlist.New(logger, svc.Users).ServeHTTP)
		r.Patch("/user-update/{id}", role.New(logger, svc.Users).ServeHTTP)
		r.Post("/coupons", couponcreate.New(logger, svc.Coupons).ServeHTTP)
		r.Put("/coupon-update/{id}", couponupdate.New(logger, svc.Coupons).ServeHTTP)
		r.Delete("/coupon-data-delete/{id}", couponremove.New(logger, svc.Coupons).ServeHTTP)
		r.Get("/admin-state", adminstate.New(logger, svc.Stats).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
