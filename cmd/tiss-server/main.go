package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tiss/tiss/internal/config"
	"github.com/tiss/tiss/internal/domain/autorizacao"
	"github.com/tiss/tiss/internal/domain/beneficiario"
	"github.com/tiss/tiss/internal/domain/fatura"
	"github.com/tiss/tiss/internal/domain/guia"
	"github.com/tiss/tiss/internal/domain/material"
	"github.com/tiss/tiss/internal/domain/prestador"
	"github.com/tiss/tiss/internal/domain/procedimento"
	"github.com/tiss/tiss/internal/domain/profissional"
	"github.com/tiss/tiss/internal/platform/auth"
	"github.com/tiss/tiss/internal/platform/cache"
	"github.com/tiss/tiss/internal/platform/db"
	"github.com/tiss/tiss/internal/platform/middleware"
	"github.com/tiss/tiss/internal/platform/web"
)

const version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "tiss-server",
		Short: "TISS billing API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the TISS API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Println("---------- ---------------------------------------- ---------- --------------------")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Rollback last migration (not supported)",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("WARNING: migrate down is destructive and not supported by the built-in runner.")
			fmt.Println("Write a forward migration that reverses the change instead.")
			return nil
		},
	})

	return cmd
}

// logLevel parses a configured level name, falling back to info when the
// name is unknown or empty.
func logLevel(s string) zerolog.Level {
	level, err := zerolog.ParseLevel(s)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

func newLogger(env, level string) zerolog.Logger {
	if env == "development" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).
			Level(logLevel(level)).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).Level(logLevel(level)).With().Timestamp().Logger()
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(cfg.Env, cfg.LogLevel)

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Cache is optional: without REDIS_URL every lookup goes to Postgres.
	var cacheStore cache.Store = cache.Noop{}
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedis(ctx, cfg.RedisURL, logger)
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		defer redisCache.Close()
		cacheStore = redisCache
		logger.Info().Msg("connected to redis")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = web.ErrorHandler(logger)

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.BodyLimit("1M", "10M"))
	e.Use(middleware.RequestTimeout(30 * time.Second))

	// Health checks stay outside the authenticated group so orchestrators
	// can probe without credentials.
	e.GET("/health", db.LivenessHandler(version))
	e.GET("/health/db", db.HealthHandler(pool))

	var authMW echo.MiddlewareFunc
	if cfg.IsDev() && cfg.JWTSecret == "" {
		authMW = auth.DevAuth()
	} else {
		authMW = auth.Middleware([]byte(cfg.JWTSecret))
	}
	api := e.Group("/api/v1", authMW)

	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	api.Use(middleware.RateLimit(rateLimitCfg))

	itemTTL := cfg.ItemTTL()

	beneficiarioRepo := beneficiario.NewRepo(pool, cacheStore, itemTTL, logger)
	profissionalRepo := profissional.NewRepo(pool, cacheStore, itemTTL, logger)
	prestadorRepo := prestador.NewRepo(pool, cacheStore, itemTTL, logger)
	guiaRepo := guia.NewRepo(pool, cacheStore, itemTTL, logger)
	procedimentoRepo := procedimento.NewRepo(pool, cacheStore, itemTTL, logger)
	materialRepo := material.NewRepo(pool, cacheStore, itemTTL, logger)
	autorizacaoRepo := autorizacao.NewRepo(pool, cacheStore, itemTTL, logger)
	faturaRepo := fatura.NewRepo(pool, cacheStore, itemTTL, logger)
	faturaGuiaRepo := fatura.NewLinkRepo(pool, cacheStore, itemTTL, logger)

	beneficiarioSvc := beneficiario.NewService(beneficiarioRepo)
	profissionalSvc := profissional.NewService(profissionalRepo)
	prestadorSvc := prestador.NewService(prestadorRepo)
	guiaSvc := guia.NewService(guiaRepo)
	procedimentoSvc := procedimento.NewService(procedimentoRepo)
	materialSvc := material.NewService(materialRepo)
	autorizacaoSvc := autorizacao.NewService(autorizacaoRepo)
	faturaSvc := fatura.NewService(faturaRepo, faturaGuiaRepo)

	guiaComposite := guia.NewComposite(
		pool,
		guiaSvc,
		beneficiarioSvc,
		profissionalSvc,
		procedimentoSvc,
		materialSvc,
		autorizacaoSvc,
	)

	beneficiario.NewHandler(beneficiarioSvc).RegisterRoutes(api)
	profissional.NewHandler(profissionalSvc).RegisterRoutes(api)
	prestador.NewHandler(prestadorSvc).RegisterRoutes(api)
	guia.NewHandler(guiaSvc, guiaComposite).RegisterRoutes(api)
	procedimento.NewHandler(procedimentoSvc).RegisterRoutes(api)
	material.NewHandler(materialSvc).RegisterRoutes(api)
	autorizacao.NewHandler(autorizacaoSvc).RegisterRoutes(api)
	fatura.NewHandler(faturaSvc).RegisterRoutes(api)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
