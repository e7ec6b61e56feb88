package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	redisv9 "github.com/redis/go-redis/v9"

	"company_research/internal/app/di"
	"company_research/internal/app/router"
	researchhandler "company_research/internal/feature/research/transport/handler"
	"company_research/internal/platform/config"
	"company_research/internal/platform/http/handler"
	"company_research/internal/platform/logging"
	"company_research/internal/platform/observability"
	infraredis "company_research/internal/platform/redis"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 必須のAPIキーがなければ起動しない
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	_, logFile, err := logging.Setup(cfg.Env, cfg.Log, os.Stdout)
	if err != nil {
		return err
	}
	defer func() {
		if err := logFile.Close(); err != nil {
			fmt.Fprintln(os.Stderr, "failed to close log file:", err)
		}
	}()

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := observability.InitTracer(ctx, cfg.Telemetry)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(sctx); err != nil {
			slog.Warn("failed to shut down tracer", "error", err)
		}
	}()

	// Redis
	var rdb *redisv9.Client
	if cfg.Redis.Enabled() {
		if tmp, err := infraredis.NewRedisClient(ctx, cfg.Redis); err != nil {
			slog.Warn("Redis unavailable. Rate limiting runs in-process.", "error", err)
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}

	// Usecase
	researchUC, err := di.NewResearchUsecase(ctx, cfg)
	if err != nil {
		return fmt.Errorf("build research usecase: %w", err)
	}

	// Handler
	researchH := researchhandler.NewResearchHandler(researchUC)
	healthH := handler.NewHealthHandler()

	// ルータ生成
	r := router.NewRouter(researchH, healthH, router.Options{
		Limiter:   di.NewRateLimiter(rdb, cfg.RateLimit),
		JWTSecret: cfg.Auth.JWTSecret,
	})

	if !cfg.Auth.Enabled() {
		slog.Warn("JWT_SECRET is not set. /research_company is unauthenticated.")
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting Company Research API", "addr", cfg.Server.Addr, "llm", cfg.LLMProvider, "search", cfg.SearchProvider)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(sctx)
}
