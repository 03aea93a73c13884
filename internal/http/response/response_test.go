package response

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/product-hunt/internal/lib/jwt"
	"github.com/magabrotheeeer/product-hunt/internal/services"
	"github.com/magabrotheeeer/product-hunt/internal/storage"
)

func TestFromError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"product not found", fmt.Errorf("services.product.Vote: %w", services.ErrProductNotFound), http.StatusNotFound, "product not found"},
		{"storage not found", fmt.Errorf("storage.GetCouponByCode: %w", storage.ErrNotFound), http.StatusNotFound, "not found"},
		{"quota", fmt.Errorf("op: %w", services.ErrQuotaExceeded), http.StatusConflict, services.ErrQuotaExceeded.Error()},
		{"already voted", services.ErrAlreadyVoted, http.StatusConflict, "you already voted"},
		{"duplicate", fmt.Errorf("op: %w", storage.ErrAlreadyExists), http.StatusConflict, "already exists"},
		{"invalid search", services.ErrInvalidSearch, http.StatusBadRequest, services.ErrInvalidSearch.Error()},
		{"invalid role", services.ErrInvalidRole, http.StatusUnprocessableEntity, services.ErrInvalidRole.Error()},
		{"token", fmt.Errorf("jwt.ParseToken: %w", jwt.ErrInvalidToken), http.StatusUnauthorized, "invalid or expired token"},
		{"unknown", errors.New("connection refused"), http.StatusInternalServerError, "internal error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := FromError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, StatusError, body.Status)
			assert.Equal(t, tt.wantMsg, body.Message)
		})
	}
}

func TestValidationError(t *testing.T) {
	type req struct {
		Email  string `validate:"required,email"`
		Rating int    `validate:"min=1,max=5"`
	}
	err := validator.New().Struct(req{Rating: 9})
	require.Error(t, err)

	resp := ValidationError(err.(validator.ValidationErrors))
	assert.Equal(t, StatusError, resp.Status)
	assert.Contains(t, resp.Message, "field Email is a required field")
	assert.Contains(t, resp.Message, "field Rating is out of range")
}
