// Package request разбирает параметры HTTP-запроса.
package request

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/google/uuid"
)

// ID читает идентификатор {id} из пути.
func ID(r *http.Request) (uuid.UUID, error) {
	const op = "request.ID"
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}
