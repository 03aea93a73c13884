// Package metrics регистрирует prometheus-метрики сервиса
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal считает ответы по шаблону маршрута, методу и статусу
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	// HTTPRequestDuration время обработки запроса
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	// DomainEventsTotal считает опубликованные доменные события
	DomainEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "product_hunt_domain_events_total",
			Help: "Domain events published to the broker",
		},
		[]string{"event"},
	)

	// NotificationsSentTotal письма, отправленные воркером уведомлений
	NotificationsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "product_hunt_notifications_sent_total",
			Help: "Moderation emails sent by the notifier",
		},
		[]string{"result"},
	)
)
