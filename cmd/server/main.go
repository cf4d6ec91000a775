package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"Scribe/internal/api/middleware"
	"Scribe/internal/api/routes"
	"Scribe/internal/auth"
	"Scribe/internal/config"
	"Scribe/internal/core/access"
	"Scribe/internal/core/comments"
	"Scribe/internal/core/engagement"
	"Scribe/internal/core/media"
	"Scribe/internal/core/posts"
	"Scribe/internal/core/users"
	"Scribe/internal/db/migrations"
	postgresRepo "Scribe/internal/db/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logger, err := newLogger(cfg.Log, os.Stdout)
	if err != nil {
		log.Fatal(err)
	}
	slog.SetDefault(logger)

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.Error("failed to close database", "error", closeErr)
		}
	}()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}
	logger.Info("connected to database")

	if err := migrations.Up(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}
	logger.Info("migrations completed")

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
	if err != nil {
		log.Fatal("Failed to create token manager:", err)
	}

	images, err := media.NewLocalStore(cfg.Media.Root, cfg.Media.URL, logger)
	if err != nil {
		log.Fatal("Failed to prepare media directory:", err)
	}

	// Initialize repositories and services
	userRepo := postgresRepo.NewUserRepository(db)
	postRepo := postgresRepo.NewPostRepository(db)
	commentRepo := postgresRepo.NewCommentRepository(db)
	reactionRepo := postgresRepo.NewReactionRepository(db)

	userService := users.NewUserService(userRepo, tokens, logger)
	commentService := comments.NewModerationQueue(commentRepo, logger)
	postService := posts.NewPostService(postRepo, commentService, images, logger)
	ledger := engagement.NewLedger(reactionRepo, logger)

	router := routes.NewRouter(routes.Services{
		Users:      userService,
		Posts:      postService,
		Comments:   commentService,
		Engagement: ledger,
		Auth:       middleware.NewAuthMiddleware(tokens, userService, logger),
		Policy:     access.DefaultPolicy(),
	}, routes.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		MediaRoot:      images.Root(),
		MediaURL:       cfg.Media.URL,
		EnableMetrics:  cfg.Metrics.Enabled,
	})

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("Scribe API starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}
