// Package paymentprovider создает платежные намерения в Stripe.
package paymentprovider

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// ErrEmptyClientSecret Stripe вернул намерение без client secret
var ErrEmptyClientSecret = errors.New("payment intent without client secret")

// Client клиент Stripe без повторных попыток
type Client struct {
	sc       *client.API
	currency string
}

// NewClient создаёт клиент Stripe. Пустой backendURL означает боевой API.
func NewClient(secretKey, currency, backendURL string) *Client {
	cfg := &stripe.BackendConfig{
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelError},
	}
	if backendURL != "" {
		cfg.URL = stripe.String(backendURL)
	}
	backend := stripe.GetBackendWithConfig(stripe.APIBackend, cfg)

	return &Client{
		sc: client.New(secretKey, &stripe.Backends{
			API:     backend,
			Connect: backend,
			Uploads: backend,
		}),
		currency: currency,
	}
}

// CreateIntent создает намерение на amount минимальных единиц валюты и возвращает client secret
func (c *Client) CreateIntent(ctx context.Context, amount int64) (string, error) {
	const op = "paymentprovider.CreateIntent"

	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(c.currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	pi, err := c.sc.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if pi.ClientSecret == "" {
		return "", fmt.Errorf("%s: %w", op, ErrEmptyClientSecret)
	}
	return pi.ClientSecret, nil
}
