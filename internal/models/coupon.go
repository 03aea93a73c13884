package models

import "time"

// Coupon — промокод, которым управляет администратор.
type Coupon struct {
	ID          string    `json:"_id"`
	Code        string    `json:"code"`
	Discount    int       `json:"discount"`
	Description string    `json:"description,omitempty"`
	ExpiryDate  time.Time `json:"expiryDate"`
	Timestamp   time.Time `json:"timestamp"`
}

// DummyCoupon используется для приёма купона из JSON-запроса.
// Discount задаётся в процентах.
type DummyCoupon struct {
	Code        string    `json:"code" validate:"required,alphanum"`
	Discount    int       `json:"discount" validate:"required,min=1,max=100"`
	Description string    `json:"description"`
	ExpiryDate  time.Time `json:"expiryDate" validate:"required"`
}
