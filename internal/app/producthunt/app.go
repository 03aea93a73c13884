package producthunt

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/product-hunt/internal/cache"
	"github.com/magabrotheeeer/product-hunt/internal/config"
	"github.com/magabrotheeeer/product-hunt/internal/lib/jwt"
	"github.com/magabrotheeeer/product-hunt/internal/lib/sl"
	"github.com/magabrotheeeer/product-hunt/internal/migrations"
	"github.com/magabrotheeeer/product-hunt/internal/paymentprovider"
	"github.com/magabrotheeeer/product-hunt/internal/rabbitmq"
	authservice "github.com/magabrotheeeer/product-hunt/internal/services/auth"
	couponservice "github.com/magabrotheeeer/product-hunt/internal/services/coupon"
	paymentservice "github.com/magabrotheeeer/product-hunt/internal/services/payment"
	productservice "github.com/magabrotheeeer/product-hunt/internal/services/product"
	reviewservice "github.com/magabrotheeeer/product-hunt/internal/services/review"
	statsservice "github.com/magabrotheeeer/product-hunt/internal/services/stats"
	userservice "github.com/magabrotheeeer/product-hunt/internal/services/user"
	"github.com/magabrotheeeer/product-hunt/internal/storage/repository"
)

// App HTTP-сервис маркетплейса вместе с его ресурсами.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
	conn   *amqp.Connection
	ch     *amqp.Channel
}

// New подключает хранилище, кэш и брокер, собирает сервисы и роутер.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Up(db.DB, cfg.MigrationsPath, logger); err != nil {
		db.Close()
		return nil, err
	}
	if err = db.CheckDatabaseReady(ctx); err != nil {
		db.Close()
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		db.Close()
		return nil, err
	}

	conn, err := rabbitmq.Connect(ctx, logger, cfg.RabbitMQ)
	if err != nil {
		db.Close()
		cacheRedis.Close()
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn, cfg.RabbitMQ.Exchange, rabbitmq.ModerationQueues(cfg.RabbitMQ.Queue))
	if err != nil {
		conn.Close()
		db.Close()
		cacheRedis.Close()
		return nil, err
	}
	events := rabbitmq.NewPublisher(ch, cfg.RabbitMQ.Exchange)

	maker := jwt.NewManager(cfg.JWTToken.SecretKey, cfg.JWTToken.TokenTTL)
	provider := paymentprovider.NewClient(cfg.Stripe.SecretKey, cfg.Stripe.Currency, cfg.Stripe.BackendURL)

	svc := Services{
		Auth:     authservice.NewService(maker, logger),
		Tokens:   maker,
		Users:    userservice.NewService(db, logger),
		Products: productservice.NewService(db, db, cacheRedis, events, cfg.RedisConnection.CacheTTL, logger),
		Reviews:  reviewservice.NewService(db, logger),
		Coupons:  couponservice.NewService(db, logger),
		Payments: paymentservice.New(db, provider, events, logger),
		Stats:    statsservice.NewService(db),
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, svc, cfg.RateLimit)

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
		conn:   conn,
		ch:     ch,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене ctx.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	var err error
	select {
	case err = <-errCh:
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err = a.server.Shutdown(timeoutCtx)
	}
	a.close()
	return err
}

func (a *App) close() {
	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", sl.Err(err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", sl.Err(err))
	}
	if err := a.cache.Close(); err != nil {
		a.logger.Error("failed to close cache", sl.Err(err))
	}
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close storage", sl.Err(err))
	}
}
