package models

import "time"

// Ключи маршрутизации доменных событий.
const (
	EventProductCreated   = "product.created"
	EventProductVoted     = "product.voted"
	EventProductReported  = "product.reported"
	EventProductModerated = "product.moderated"
	EventProductDeleted   = "product.deleted"
	EventPaymentRecorded  = "payment.recorded"
)

// Event — сообщение, публикуемое в брокер после изменения данных.
type Event struct {
	Name        string    `json:"name"`
	ProductID   string    `json:"product_id,omitempty"`
	ProductName string    `json:"product_name,omitempty"`
	OwnerEmail  string    `json:"owner_email,omitempty"`
	Status      string    `json:"status,omitempty"`
	UserEmail   string    `json:"user_email,omitempty"`
	Amount      float64   `json:"amount,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}
