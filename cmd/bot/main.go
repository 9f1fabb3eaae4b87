package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/notavoz/notavoz/adapters/authstore"
	"github.com/notavoz/notavoz/adapters/ffmpeg"
	"github.com/notavoz/notavoz/adapters/llm"
	"github.com/notavoz/notavoz/adapters/stt"
	"github.com/notavoz/notavoz/adapters/telegram"
	"github.com/notavoz/notavoz/domain/repositories"
	"github.com/notavoz/notavoz/internal/bot"
	"github.com/notavoz/notavoz/internal/config"
	"github.com/notavoz/notavoz/internal/sessions"
	"github.com/notavoz/notavoz/usecase"
)

const (
	rateLimit       = 5
	rateLimitWindow = time.Minute
	lockoutAttempts = 5
	lockoutDuration = 10 * time.Minute
	pendingTTL      = time.Hour
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Adapters
	messenger, err := telegram.NewClient(telegram.Config{Token: cfg.TelegramToken}, logger)
	if err != nil {
		logger.Fatal("failed to create telegram client", zap.Error(err))
	}

	transcriber, err := stt.NewTranscriber(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to create transcriber", zap.Error(err))
	}

	generator, err := llm.NewTextGenerator(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to create text generator", zap.Error(err))
	}

	authorizer, err := newAuthorizer(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to create authorizer", zap.Error(err))
	}

	converter := ffmpeg.NewConverter(logger)

	// Usecases
	preparer := usecase.NewPreparer(messenger, converter, cfg.MaxAudioSizeBytes(), cfg.TempDir, logger)
	reshaper := usecase.NewReshaper(generator, logger)
	pending := sessions.NewPendingStore(pendingTTL)
	service := usecase.NewTranscriptionService(preparer, transcriber, reshaper, pending, logger)

	handler := bot.NewHandler(
		service,
		messenger,
		authorizer,
		sessions.NewRateLimiter(rateLimit, rateLimitWindow),
		sessions.NewLockoutTracker(lockoutAttempts, lockoutDuration),
		logger,
	)

	// Health-check server, used by the hosting platform.
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":       "ok",
			"stt_provider": transcriber.Name(),
			"llm_provider": generator.Name(),
		})
	})

	go func() {
		if err := e.Start(cfg.ServerAddr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("health server failed", zap.Error(err))
		}
	}()

	go func() {
		if err := messenger.Poll(ctx, handler); err != nil && err != context.Canceled {
			logger.Error("update polling stopped", zap.Error(err))
		}
	}()

	logger.Info("bot started",
		zap.String("stt_provider", transcriber.Name()),
		zap.String("llm_provider", generator.Name()),
		zap.String("auth_store", cfg.AuthStore))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("health server forced to shutdown", zap.Error(err))
	}
	if closer, ok := authorizer.(interface{ Close(context.Context) error }); ok {
		if err := closer.Close(shutdownCtx); err != nil {
			logger.Error("failed to close auth store", zap.Error(err))
		}
	}

	logger.Info("bot exited")
}

func newAuthorizer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repositories.Authorizer, error) {
	if cfg.AuthStore == "mongo" {
		return authstore.NewMongoStore(ctx, cfg.BotPassword, logger)
	}
	return authstore.NewFileStore(cfg.DataDir, cfg.BotPassword, logger), nil
}
