// Package response формирует JSON-ответы об ошибках в едином формате
// и сопоставляет ошибки сервисов с HTTP-статусами.
package response

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/product-hunt/internal/lib/jwt"
	"github.com/magabrotheeeer/product-hunt/internal/services"
	"github.com/magabrotheeeer/product-hunt/internal/storage"
)

// StatusError — значение статуса для ответа с ошибкой.
const StatusError = "Error"

// ErrorResponse — тело ответа с ошибкой. Используется в аннотациях @Failure.
type ErrorResponse struct {
	Status  string `json:"status" example:"Error"`
	Message string `json:"message" example:"invalid request body"`
}

// Error возвращает ErrorResponse с переданным сообщением.
func Error(msg string) ErrorResponse {
	return ErrorResponse{
		Status:  StatusError,
		Message: msg,
	}
}

// ValidationError перечисляет нарушения валидации через запятую.
func ValidationError(errs validator.ValidationErrors) ErrorResponse {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "alphanum":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s can contain only numbers and letters", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		case "uuid":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s can contain only uuid", err.Field()))
		case "url":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid url", err.Field()))
		case "oneof":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be one of: %s", err.Field(), err.Param()))
		case "min", "max", "gt":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is out of range", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return Error(strings.Join(errsMsgs, ", "))
}

// FromError сопоставляет ошибку сервиса со статусом и телом ответа.
// Неизвестные ошибки превращаются в 500 без подробностей.
func FromError(err error) (int, ErrorResponse) {
	switch {
	case errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrCouponNotFound):
		return http.StatusNotFound, Error(rootMessage(err))
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound, Error("not found")
	case errors.Is(err, services.ErrOwnerNotFound),
		errors.Is(err, services.ErrQuotaExceeded),
		errors.Is(err, services.ErrAlreadyVoted),
		errors.Is(err, services.ErrAlreadyReported),
		errors.Is(err, services.ErrCouponExists):
		return http.StatusConflict, Error(rootMessage(err))
	case errors.Is(err, storage.ErrAlreadyExists):
		return http.StatusConflict, Error("already exists")
	case errors.Is(err, services.ErrInvalidSearch),
		errors.Is(err, services.ErrInvalidAmount):
		return http.StatusBadRequest, Error(rootMessage(err))
	case errors.Is(err, services.ErrInvalidRole):
		return http.StatusUnprocessableEntity, Error(rootMessage(err))
	case errors.Is(err, jwt.ErrInvalidToken):
		return http.StatusUnauthorized, Error("invalid or expired token")
	default:
		return http.StatusInternalServerError, Error("internal error")
	}
}

var sentinels = []error{
	services.ErrProductNotFound,
	services.ErrUserNotFound,
	services.ErrCouponNotFound,
	services.ErrOwnerNotFound,
	services.ErrQuotaExceeded,
	services.ErrAlreadyVoted,
	services.ErrAlreadyReported,
	services.ErrCouponExists,
	services.ErrInvalidSearch,
	services.ErrInvalidAmount,
	services.ErrInvalidRole,
}

// rootMessage отдает клиенту текст сентинела без префиксов op.
func rootMessage(err error) string {
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return err.Error()
}
