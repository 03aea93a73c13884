package create

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/product-hunt/internal/models"
	"github.com/magabrotheeeer/product-hunt/internal/services"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, req models.DummyReview) (models.InsertResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.InsertResult), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

const productID = "2f1c7c4e-8a57-4a4b-9a3e-2b2d1f0c9e11"

func TestReviewCreateHandler(t *testing.T) {
	valid := models.DummyReview{ProductID: productID, ReviewerEmail: "r@x.com", Description: "great", Rating: 5}

	tests := []struct {
		name       string
		body       string
		setupMock  func(*MockService)
		wantStatus int
		wantBody   string
	}{
		{
			name: "отзыв сохранен",
			body: `{"productId":"` + productID + `","reviewerEmail":"r@x.com","description":"great","rating":5}`,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, valid).Return(models.InsertResult{Acknowledged: true, InsertedID: "r1"}, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"insertedId":"r1"`,
		},
		{
			name: "продукта нет",
			body: `{"productId":"` + productID + `","reviewerEmail":"r@x.com","description":"great","rating":5}`,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, valid).Return(models.InsertResult{}, services.ErrProductNotFound).Once()
			},
			wantStatus: http.StatusNotFound,
			wantBody:   "product not found",
		},
		{
			name:       "рейтинг вне диапазона",
			body:       `{"productId":"` + productID + `","reviewerEmail":"r@x.com","description":"meh","rating":7}`,
			setupMock:  func(*MockService) {},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   "field Rating is out of range",
		},
		{
			name:       "productId не uuid",
			body:       `{"productId":"abc","reviewerEmail":"r@x.com","description":"meh","rating":3}`,
			setupMock:  func(*MockService) {},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   "field ProductID can contain only uuid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			rr := httptest.NewRecorder()
			New(newNoopLogger(), svc).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/review-data", bytes.NewBufferString(tt.body)))

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.wantBody)
			svc.AssertExpectations(t)
		})
	}
}
