package middlewarectx_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/product-hunt/internal/http/middlewarectx"
	"github.com/magabrotheeeer/product-hunt/internal/lib/jwt"
	"github.com/magabrotheeeer/product-hunt/internal/metrics"
	"github.com/magabrotheeeer/product-hunt/internal/models"
	"github.com/magabrotheeeer/product-hunt/internal/services"
)

type UserLookupMock struct {
	mock.Mock
}

func (m *UserLookupMock) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestJWTMiddleware(t *testing.T) {
	maker := jwt.NewManager("secret", time.Hour)
	valid, err := maker.GenerateToken("a@x.com", "")
	assert.NoError(t, err)
	foreign, err := jwt.NewManager("other", time.Hour).GenerateToken("a@x.com", "")
	assert.NoError(t, err)

	tests := []struct {
		name           string
		authHeader     string
		wantStatusCode int
		wantCalled     bool
	}{
		{"valid token", "Bearer " + valid, http.StatusOK, true},
		{"missing header", "", http.StatusUnauthorized, false},
		{"no bearer prefix", valid, http.StatusUnauthorized, false},
		{"wrong signature", "Bearer " + foreign, http.StatusUnauthorized, false},
		{"garbage", "Bearer abc.def", http.StatusUnauthorized, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				email, ok := middlewarectx.EmailFromContext(r.Context())
				assert.True(t, ok)
				assert.Equal(t, "a@x.com", email)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/all-user", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()

			middlewarectx.JWTMiddleware(maker, newNoopLogger())(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatusCode, rr.Code)
			assert.Equal(t, tt.wantCalled, called)
			if !tt.wantCalled {
				assert.JSONEq(t, `{"status":"Error","message":"unauthorized access"}`, rr.Body.String())
			}
		})
	}
}

func TestRoleMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		email      string
		setupMock  func(*UserLookupMock)
		wantStatus int
	}{
		{
			name:  "admin пропущен",
			email: "admin@x.com",
			setupMock: func(m *UserLookupMock) {
				m.On("GetByEmail", mock.Anything, "admin@x.com").Return(&models.User{Email: "admin@x.com", Role: models.RoleAdmin}, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:  "обычный пользователь получает 403",
			email: "u@x.com",
			setupMock: func(m *UserLookupMock) {
				m.On("GetByEmail", mock.Anything, "u@x.com").Return(&models.User{Email: "u@x.com"}, nil).Once()
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name:  "незарегистрированный пользователь получает 403",
			email: "ghost@x.com",
			setupMock: func(m *UserLookupMock) {
				m.On("GetByEmail", mock.Anything, "ghost@x.com").Return(nil, services.ErrUserNotFound).Once()
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name:  "ошибка хранилища",
			email: "a@x.com",
			setupMock: func(m *UserLookupMock) {
				m.On("GetByEmail", mock.Anything, "a@x.com").Return(nil, errors.New("db down")).Once()
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "нет email в контексте",
			setupMock:  func(*UserLookupMock) {},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(UserLookupMock)
			tt.setupMock(users)

			req := httptest.NewRequest(http.MethodGet, "/admin-state", nil)
			if tt.email != "" {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.Email, tt.email))
			}
			rr := httptest.NewRecorder()

			mw := middlewarectx.RoleMiddleware(newNoopLogger(), users, models.RoleAdmin)
			mw(okHandler()).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			users.AssertExpectations(t)
		})
	}
}

func TestRoleMiddleware_SeveralRoles(t *testing.T) {
	users := new(UserLookupMock)
	users.On("GetByEmail", mock.Anything, "mod@x.com").Return(&models.User{Role: models.RoleModerator}, nil).Once()

	req := httptest.NewRequest(http.MethodDelete, "/product-data-delete/1", nil)
	req = req.WithContext(context.WithValue(req.Context(), middlewarectx.Email, "mod@x.com"))
	rr := httptest.NewRecorder()

	mw := middlewarectx.RoleMiddleware(newNoopLogger(), users, models.RoleModerator, models.RoleAdmin)
	mw(okHandler()).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("allows requests within rate limit", func(t *testing.T) {
		mw := middlewarectx.RateLimitMiddleware(newNoopLogger(), 10, 10)(okHandler())
		for range 10 {
			rr := httptest.NewRecorder()
			mw.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/jwt", nil))
			assert.Equal(t, http.StatusOK, rr.Code)
		}
	})

	t.Run("blocks requests exceeding rate limit", func(t *testing.T) {
		mw := middlewarectx.RateLimitMiddleware(newNoopLogger(), 0.001, 1)(okHandler())

		rr := httptest.NewRecorder()
		mw.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/jwt", nil))
		assert.Equal(t, http.StatusOK, rr.Code)

		rr = httptest.NewRecorder()
		mw.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/jwt", nil))
		assert.Equal(t, http.StatusTooManyRequests, rr.Code)
		assert.Contains(t, rr.Body.String(), "too many requests")
	})
}

func TestMetricsMiddleware(t *testing.T) {
	r := chi.NewRouter()
	r.Use(middlewarectx.MetricsMiddleware)
	r.Get("/get-product/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := requestsCounted(t, "/get-product/{id}", "418")

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/get-product/42", nil))

	assert.Equal(t, http.StatusTeapot, rr.Code)
	assert.Equal(t, before+1, requestsCounted(t, "/get-product/{id}", "418"))
}

func requestsCounted(t *testing.T, route, status string) float64 {
	t.Helper()
	metrics.HTTPRequestsTotal.WithLabelValues(route, http.MethodGet, status)

	families, err := prometheus.DefaultGatherer.Gather()
	assert.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != "http_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, l := range m.GetLabel() {
				labels[l.GetName()] = l.GetValue()
			}
			if labels["route"] == route && labels["status"] == status && labels["method"] == http.MethodGet {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}
