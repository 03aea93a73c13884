package models

import "time"

// Payment — запись журнала платежей. Записи только добавляются.
type Payment struct {
	ID            string    `json:"_id"`
	Email         string    `json:"email"`
	Name          string    `json:"name,omitempty"`
	Price         float64   `json:"price"`
	TransactionID string    `json:"transactionId"`
	Status        string    `json:"status,omitempty"`
	Date          time.Time `json:"date"`
}

// DummyPayment используется для приёма данных о платеже из JSON-запроса.
// Данные клиента не сверяются с платёжным провайдером.
type DummyPayment struct {
	Email         string     `json:"email" validate:"required,email"`
	Name          string     `json:"name"`
	Price         float64    `json:"price" validate:"required,gt=0"`
	TransactionID string     `json:"transactionId" validate:"required"`
	Status        string     `json:"status"`
	Date          *time.Time `json:"date"`
}

// PaymentIntentRequest — запрос на создание платёжного намерения.
type PaymentIntentRequest struct {
	Price float64 `json:"price" validate:"required,gt=0"`
}
