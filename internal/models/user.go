// Package models содержит доменные структуры маркетплейса: пользователей, продукты,
// отзывы, купоны и платежи, а также типы запросов, приходящих в JSON.
package models

import "time"

// Роли пользователей. Пустая роль означает обычного пользователя.
const (
	RoleNone      = ""
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// User представляет пользователя, созданного при первом входе.
// Email уникален и является ключом идентичности.
type User struct {
	ID               string     `json:"_id"`
	Name             string     `json:"name,omitempty"`
	Email            string     `json:"email"`
	Photo            string     `json:"photo,omitempty"`
	Role             string     `json:"role,omitempty"`
	IsSubscribed     bool       `json:"isSubscribed"`
	SubscriptionDate *time.Time `json:"subscriptionDate,omitempty"`
	PaymentVerified  bool       `json:"paymentVerified"`
	Status           string     `json:"status,omitempty"`
	Timestamp        time.Time  `json:"timestamp"`
}

// DummyUser используется для приёма данных пользователя из JSON-запроса.
type DummyUser struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"omitempty,email"`
	Photo string `json:"photo"`
}

// SubscriptionUpdate содержит поля, которые клиент выставляет после успешной оплаты.
type SubscriptionUpdate struct {
	IsSubscribed     bool       `json:"isSubscribed"`
	SubscriptionDate *time.Time `json:"subscriptionDate"`
	PaymentVerified  bool       `json:"paymentVerified"`
	Status           string     `json:"status"`
}

// RoleUpdate — запрос администратора на назначение роли.
type RoleUpdate struct {
	Role string `json:"role" validate:"required,oneof=moderator admin"`
}

// TokenRequest — утверждения, на которые выпускается токен.
type TokenRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role,omitempty"`
}
