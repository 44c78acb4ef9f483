package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"quiz-master-gateway/internal/app"
	"quiz-master-gateway/internal/backend"
	"quiz-master-gateway/internal/config"
	"quiz-master-gateway/internal/infra/memory"
	redisinfra "quiz-master-gateway/internal/infra/redis"
	transport "quiz-master-gateway/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the gateway.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the gateway server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	logger := slog.New(tint.NewHandler(os.Stdout, &tint.Options{Level: slog.LevelDebug}))
	slog.SetDefault(logger)

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	backendURL := cfg.Backend.URL
	if backendURL == "" {
		backendURL = "http://localhost:5000/api"
	}
	client := backend.New(backendURL, config.TTLDuration(cfg.Backend.Timeout, 15*time.Second), logger)

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	quizTTL := config.TTLDuration(cfg.Quiz.TTL, 30*time.Second)
	var quizzes app.QuizSource
	if redisClient != nil {
		quizzes = redisinfra.NewQuizCache(redisClient, client, quizTTL)
	} else {
		quizzes = memory.NewQuizCache(client, quizTTL)
	}

	var store app.SessionRepository
	if redisClient != nil {
		store = redisinfra.NewSessionStore(redisClient)
	} else {
		store = memory.NewSessionStore()
	}

	sessionTTL := config.TTLDuration(cfg.Session.TTL, 24*time.Hour)
	sessions := app.NewSessionService(client, store, sessionTTL, logger)
	registrations := app.NewRegistrationCoordinator(quizzes, client, logger)
	admin := app.NewAdminService(client, logger)

	handler := transport.NewHandler(
		client, quizzes, sessions, registrations, admin,
		config.TTLDuration(cfg.Stream.PollInterval, 2*time.Second),
		config.TTLDuration(cfg.Search.Debounce, 500*time.Millisecond),
		logger,
	)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      handler.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("starting quiz gateway", "port", finalPort, "backend", backendURL)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("failed to start server", "err", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		logger.Info("shutting down server")
	case <-ctx.Done():
		logger.Info("context canceled, shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
