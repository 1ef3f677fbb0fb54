package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/inboxflow/inboxflow-api/internal/api"
	"github.com/inboxflow/inboxflow-api/internal/core/ports"
	"github.com/inboxflow/inboxflow-api/internal/infrastructure/config"
	memorydb "github.com/inboxflow/inboxflow-api/internal/infrastructure/db/memory"
	mongodb "github.com/inboxflow/inboxflow-api/internal/infrastructure/db/mongo"
	redisdb "github.com/inboxflow/inboxflow-api/internal/infrastructure/db/redis"
	"github.com/inboxflow/inboxflow-api/internal/infrastructure/mail"
	"github.com/inboxflow/inboxflow-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	deps := api.Dependencies{
		Logger:        log,
		SecureCookies: cfg.Env == "production",
	}

	switch cfg.Storage {
	case config.StorageMongo:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("mongo connection failed")
		}
		defer func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(disconnectCtx)
		}()

		users := mongodb.NewUserRepository(db)
		tasks := mongodb.NewTaskRepository(db)
		if err := users.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("user index creation failed")
		}
		if err := tasks.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("task index creation failed")
		}

		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer func() { _ = rdb.Close() }()

		deps.Users = users
		deps.Tasks = tasks
		deps.Notifications = mongodb.NewNotificationRepository(db)
		deps.Sessions = redisdb.NewSessionStore(rdb)
		deps.Mongo = db
		deps.Redis = rdb

	case config.StorageMemory:
		deps.Users = memorydb.NewUserRepository()
		deps.Tasks = memorydb.NewTaskRepository()
		deps.Notifications = memorydb.NewNotificationRepository()
		deps.Sessions = memorydb.NewSessionStore()
	}

	deps.Mailer = buildMailer(cfg, log)

	e := api.NewRouter(deps)

	go func() {
		log.Info().Str("port", cfg.Port).Str("storage", cfg.Storage).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}

func buildMailer(cfg *config.Config, log zerolog.Logger) ports.Mailer {
	if cfg.SMTP.Host == "" {
		return mail.NewLogMailer(log)
	}
	return mail.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From, log)
}
