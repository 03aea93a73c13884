// Package services содержит ошибки бизнес-правил, общие для сервисов маркетплейса.
// Обработчики сопоставляют их с HTTP-статусами через errors.Is.
package services

import "errors"

var (
	// ErrUserNotFound пользователь с таким email не зарегистрирован
	ErrUserNotFound = errors.New("user not found")
	// ErrOwnerNotFound владелец продукта не зарегистрирован
	ErrOwnerNotFound = errors.New("product owner not found")
	// ErrQuotaExceeded пользователь без подписки уже добавил продукт
	ErrQuotaExceeded = errors.New("free users can add only one product, please subscribe")
	// ErrProductNotFound продукт не найден
	ErrProductNotFound = errors.New("product not found")
	// ErrAlreadyVoted повторный голос того же пользователя
	ErrAlreadyVoted = errors.New("you already voted")
	// ErrAlreadyReported повторная жалоба того же пользователя
	ErrAlreadyReported = errors.New("you already report, please wait for moderator action")
	// ErrCouponNotFound купон не найден
	ErrCouponNotFound = errors.New("coupon not found")
	// ErrCouponExists купон с таким кодом уже есть
	ErrCouponExists = errors.New("coupon code already exists")
	// ErrInvalidRole назначать можно только moderator или admin
	ErrInvalidRole = errors.New("role must be moderator or admin")
	// ErrInvalidSearch шаблон поиска по тегам не является регулярным выражением
	ErrInvalidSearch = errors.New("invalid tags search pattern")
	// ErrInvalidAmount сумма платежа должна быть положительной
	ErrInvalidAmount = errors.New("price must be positive")
)
