package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/product-hunt/internal/http/response"
	"github.com/magabrotheeeer/product-hunt/internal/lib/sl"
	"github.com/magabrotheeeer/product-hunt/internal/models"
	"github.com/magabrotheeeer/product-hunt/internal/services"
)

// UserLookup читает пользователя по email.
type UserLookup interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// RoleMiddleware пропускает запрос, только если текущая роль пользователя
// входит в roles. Роль из токена не учитывается.
// Подключается после JWTMiddleware.
func RoleMiddleware(log *slog.Logger, users UserLookup, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.RoleMiddleware"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			email, ok := EmailFromContext(r.Context())
			if !ok {
				log.Error("email not found in context")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized access"))
				return
			}

			user, err := users.GetByEmail(r.Context(), email)
			if errors.Is(err, services.ErrUserNotFound) {
				log.Warn("user not registered", slog.String("email", email))
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("forbidden access"))
				return
			}
			if err != nil {
				log.Error("failed to load user", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal error"))
				return
			}

			if !slices.Contains(roles, user.Role) {
				log.Warn("role mismatch", slog.String("email", email), slog.String("role", user.Role))
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("forbidden access"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
