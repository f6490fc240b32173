// @title                       EcoQuest Sustainability API
// @version                     1.0
// @description                 Gamified sustainability backend: users complete tasks within missions and categories to earn points redeemable for rewards.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	_ "github.com/ecoquest/sustainability-api/docs"
	"github.com/ecoquest/sustainability-api/internal/api"
	"github.com/ecoquest/sustainability-api/internal/api/handler"
	"github.com/ecoquest/sustainability-api/internal/api/middleware"
	"github.com/ecoquest/sustainability-api/internal/core/service"
	"github.com/ecoquest/sustainability-api/internal/infrastructure/config"
	mongostore "github.com/ecoquest/sustainability-api/internal/infrastructure/db/mongo"
	redisstore "github.com/ecoquest/sustainability-api/internal/infrastructure/db/redis"
	"github.com/ecoquest/sustainability-api/internal/infrastructure/queue"
	"github.com/ecoquest/sustainability-api/internal/infrastructure/security"
	"github.com/ecoquest/sustainability-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "ecoquest-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
	log.Info().Msg("shutdown complete")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// --- Storage ---
	mongoClient, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	if err := mongostore.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	rdb, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer rdb.Close()

	// --- Security ---
	codec, err := security.NewTokenCodec(cfg.JWT.Secret, cfg.JWT.TTL, security.WithIssuer(cfg.JWT.Issuer))
	if err != nil {
		return err
	}
	hasher := security.NewBcryptHasher(bcrypt.DefaultCost)

	// --- Repositories ---
	users := mongostore.NewUserRepository(db)
	tasks := mongostore.NewTaskRepository(db)
	categories := mongostore.NewCategoryRepository(db)
	missions := mongostore.NewMissionRepository(db)
	rewards := mongostore.NewRewardRepository(db)

	cache := redisstore.NewCache(rdb, cfg.Cache.TTL)
	publisher := redisstore.NewTaskEventPublisher(rdb, cfg.TaskEvents.Channel)

	// --- Task-created notifications ---
	dispatcher := queue.NewDispatcher(
		cfg.TaskEvents.Workers,
		service.NewTaskEventHandler(redisstore.NewDedupChecker(rdb), log),
		log,
	)
	dispatcher.Start(ctx)

	subscriber := redisstore.NewTaskEventSubscriber(rdb, cfg.TaskEvents.Channel, dispatcher, log)
	if err := subscriber.Start(ctx); err != nil {
		return err
	}

	// --- HTTP ---
	e := api.NewRouter(api.Deps{
		Log:       log,
		Tokens:    codec,
		Users:     users,
		Auth:      service.NewAuthService(users, hasher, codec, cache, log),
		UserAdmin: service.NewUserService(users, hasher, cache, log),
		Tasks: service.NewTaskService(service.TaskDeps{
			Tasks:      tasks,
			Missions:   missions,
			Categories: categories,
			Users:      users,
			Publisher:  publisher,
			Cache:      cache,
		}, log),
		Categories: service.NewCategoryService(categories, cache, log),
		Missions:   service.NewMissionService(missions, cache, log),
		Rewards:    service.NewRewardService(rewards, cache, log),
		Caches:     service.NewCacheAdmin(cache),
		HealthChecks: map[string]handler.CheckFunc{
			"mongodb": func(ctx context.Context) error { return mongostore.Ping(ctx, mongoClient) },
			"redis":   func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) },
		},
		AuthRateLimit: middleware.RateLimitConfig{
			RequestsPerWindow: cfg.RateLimit.Requests,
			Window:            cfg.RateLimit.Window,
			Burst:             cfg.RateLimit.Burst,
		},
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting http server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("received interruption signal, shutting down")
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during http shutdown")
	}

	cancel()
	subscriber.Wait()
	dispatcher.Wait()
	return nil
}
