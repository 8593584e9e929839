// Package gymmanager собирает основное HTTP-приложение: хранилище, миграции,
// кеш, брокер сообщений, сервисы и маршруты.
package gymmanager

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/gym-manager/internal/cache"
	"github.com/magabrotheeeer/gym-manager/internal/config"
	"github.com/magabrotheeeer/gym-manager/internal/lib/jwt"
	"github.com/magabrotheeeer/gym-manager/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/gym-manager/internal/lib/ratelimit"
	"github.com/magabrotheeeer/gym-manager/internal/migrations"
	authservice "github.com/magabrotheeeer/gym-manager/internal/services/auth"
	membershipservice "github.com/magabrotheeeer/gym-manager/internal/services/membership"
	trainerservice "github.com/magabrotheeeer/gym-manager/internal/services/trainer"
	"github.com/magabrotheeeer/gym-manager/internal/storage/repository"
)

// App представляет основное HTTP-приложение.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	conn   *amqp.Connection
	ch     *amqp.Channel
}

// New создает приложение: подключает зависимости, прогоняет миграции
// и собирает маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("failed to connect RabbitMQ: %w", err)
	}
	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to setup RabbitMQ channel: %w", err)
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	authService := authservice.New(db, jwtMaker)
	membershipService := membershipservice.New(db, cacheRedis, logger, cfg.GracePeriodDays)
	trainerService := trainerservice.New(db, rabbitmq.NewPublisher(ch), logger, cfg.GracePeriodDays)

	limiterStore := ratelimit.New(rate.Limit(cfg.RequestsPerSecond), cfg.Burst, cfg.KeyTTL)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, authService, membershipService, trainerService, limiterStore)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		conn:   conn,
		ch:     ch,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его по отмене контекста.
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

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if cerr := a.ch.Close(); cerr != nil {
			a.logger.Error("failed to close channel", slog.Any("err", cerr))
		}
		if cerr := a.conn.Close(); cerr != nil {
			a.logger.Error("failed to close connection", slog.Any("err", cerr))
		}
		if cerr := a.db.DB.Close(); cerr != nil {
			a.logger.Error("failed to close database", slog.Any("err", cerr))
		}
		return err
	}
}
