package eduplatform

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	// Регистрация swagger-документации.
	_ "github.com/magabrotheeeer/edu-platform/docs"

	"github.com/magabrotheeeer/edu-platform/internal/cache"
	"github.com/magabrotheeeer/edu-platform/internal/catalog"
	"github.com/magabrotheeeer/edu-platform/internal/config"
	"github.com/magabrotheeeer/edu-platform/internal/http/handlers/health"
	"github.com/magabrotheeeer/edu-platform/internal/lib/jwt"
	"github.com/magabrotheeeer/edu-platform/internal/lib/password"
	"github.com/magabrotheeeer/edu-platform/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/edu-platform/internal/lib/sl"
	"github.com/magabrotheeeer/edu-platform/internal/migrations"
	accessservice "github.com/magabrotheeeer/edu-platform/internal/services/access"
	authservice "github.com/magabrotheeeer/edu-platform/internal/services/auth"
	checkoutservice "github.com/magabrotheeeer/edu-platform/internal/services/checkout"
	videoservice "github.com/magabrotheeeer/edu-platform/internal/services/video"
	"github.com/magabrotheeeer/edu-platform/internal/storage"
	"github.com/magabrotheeeer/edu-platform/internal/storage/memory"
	"github.com/magabrotheeeer/edu-platform/internal/storage/postgresql"
)

// localRevocationsSize — ёмкость in-process хранилища отзывов без redis.
const localRevocationsSize = 4096

// App — HTTP-приложение платформы и его ресурсы.
type App struct {
	server  *http.Server
	logger  *slog.Logger
	db      storage.Storage
	cache   *cache.Cache
	amqp    *amqp.Connection
	channel *amqp.Channel
}

// New поднимает хранилище, кэш, брокер и собирает маршруты.
// Redis и RabbitMQ необязательны: без адреса используются in-process замены.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.eduplatform.New"

	app := &App{logger: logger}
	checks := make(map[string]health.Pinger)

	switch cfg.Storage.Driver {
	case "postgres":
		pg, err := postgresql.New(ctx, cfg.Storage.ConnectionString)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err := migrations.Run(pg.DB, cfg.Storage.MigrationsPath); err != nil {
			_ = pg.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err := pg.CheckDatabaseReady(ctx); err != nil {
			_ = pg.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		app.db = pg
		checks["postgres"] = pg
	default:
		logger.Warn("using in-memory storage, data is lost on restart")
		app.db = memory.New()
	}

	var revocations interface {
		accessservice.RevocationStore
		videoservice.RevocationChecker
	}
	if cfg.AddressRedis != "" {
		c, err := cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		app.cache = c
		checks["redis"] = c
		revocations = cache.NewRevocations(c, cfg.VideoTokenTTL)
	} else {
		logger.Warn("redis is not configured, video token revocations are kept in process")
		revocations = cache.NewLocalRevocations(localRevocationsSize, cfg.VideoTokenTTL)
	}

	var events authservice.EventPublisher = rabbitmq.NopPublisher{}
	if cfg.RabbitMQ.URL != "" {
		conn, err := rabbitmq.Connect(cfg.RabbitMQ.URL, cfg.RabbitMQ.MaxRetries, cfg.RabbitMQ.RetryDelay)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		app.amqp = conn
		ch, err := rabbitmq.SetupChannel(conn, cfg.Exchange, rabbitmq.NotificationQueues(cfg.Queue))
		if err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		app.channel = ch
		events = rabbitmq.NewEventPublisher(ch, cfg.Exchange)
	} else {
		logger.Warn("rabbitmq is not configured, domain events are dropped")
	}

	hasher := password.NewHasher(cfg.BcryptCost)
	sessions := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	videoTokens := jwt.NewVideoMaker(cfg.VideoSecretKey, cfg.VideoTokenTTL)

	authService := authservice.NewAuthService(app.db, app.db, hasher, sessions, events, logger)
	if err := authService.SeedAdmins(ctx, cfg.Admins); err != nil {
		app.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	cat := catalog.New(app.db, logger, cfg.CacheSize, cfg.CacheTTL)
	accessService := accessservice.NewAccessService(app.db, revocations, events, logger)
	videoService := videoservice.NewVideoService(cat, accessService, revocations, videoTokens, logger)
	checkoutService := checkoutservice.New(checkoutservice.NewStubGateway(logger), logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, Deps{
		Storage:  app.db,
		Catalog:  cat,
		Auth:     authService,
		Access:   accessService,
		Video:    videoService,
		Checkout: checkoutService,
		Health:   checks,
		Security: cfg.Security,
	})

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return app, nil
}

// Run обслуживает запросы до отмены ctx, затем корректно останавливает сервер.
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
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	if a.channel != nil {
		if err := a.channel.Close(); err != nil {
			a.logger.Error("failed to close channel", sl.Err(err))
		}
	}
	if a.amqp != nil {
		if err := a.amqp.Close(); err != nil {
			a.logger.Error("failed to close connection", sl.Err(err))
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Error("failed to close redis", sl.Err(err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error("failed to close storage", sl.Err(err))
		}
	}
}
