package main

import (
	"bookstore/internal/config"
	authhttp "bookstore/internal/http/auth"
	"bookstore/internal/http/books"
	"bookstore/internal/http/middleware"
	"bookstore/internal/lib/logger/handlers/slogpretty"
	authservice "bookstore/internal/services/auth"
	bookservice "bookstore/internal/services/book"
	"bookstore/internal/storage/mongodb"
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slog"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "production"
)

func main() {
	// Configuration and logger setup
	cfg := config.MustLoad()
	log := setupLogger(cfg.Env)
	log.Info("Starting application", slog.String("env", cfg.Env))

	client, err := mongodb.New(cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Error("mongodb connection error", slog.Any("error", err))
		os.Exit(-1)
	}
	defer client.Close(context.Background())

	if err := client.EnsureIndexes(context.Background()); err != nil {
		log.Error("index creation error", slog.Any("error", err))
		os.Exit(-1)
	}

	if cfg.Env != envLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	authhttp.Register(
		router,
		log,
		authservice.New(log, client, cfg.JWT.Secret, cfg.JWT.TTL),
	)
	books.Register(
		router,
		log,
		bookservice.New(log, client),
		middleware.Auth(log, cfg.JWT.Secret, client),
	)

	if err := router.Run(fmt.Sprintf(":%d", cfg.HTTP.Port)); err != nil {
		log.Error("error serving", slog.Any("err", err))
		return
	}
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}
