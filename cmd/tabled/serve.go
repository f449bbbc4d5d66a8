package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"carpenter"
	"carpenter/config"
	internaldb "carpenter/internal/db"
	"carpenter/internal/middleware"
	"carpenter/internal/ui"
	"carpenter/store"
	"carpenter/table"
)

func newServeCmd() *cobra.Command {
	var (
		configPath string
		dbPath     string
		backend    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the demo table server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), configPath, dbPath, backend)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")
	cmd.Flags().StringVar(&dbPath, "db", "carpenter_demo.sqlite", "path to the demo database file")
	cmd.Flags().StringVar(&backend, "backend", "sqlite", "demo database backend: sqlite or duckdb")
	return cmd
}

func serve(ctx context.Context, configPath, dbPath, backend string) error {
	if err := config.LoadDotEnv(".env"); err != nil {
		slog.Warn("could not load .env", "error", err)
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	handle, err := openDemoDB(backend, dbPath)
	if err != nil {
		return err
	}
	defer handle.Close()

	cfg.Store.Driver = "demo"
	c := carpenter.New(cfg, carpenter.WithLogger(logger)).
		ExtendStore("demo", func(config.Driver) (table.Store, error) {
			return store.NewSQL(handle), nil
		})
	registerDemoTables(c)

	if cfg.Tables.Location != "" {
		if err := c.LoadTables(); err != nil {
			return err
		}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(logger))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodHead},
	}))
	r.Use(middleware.RateLimiter(middleware.RateLimitConfig{
		RequestsPerSecond: 50,
		Burst:             100,
	}))
	ui.MountRoutes(r, ui.NewHandler(c, logger, cfg.IsProduction()))

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", "addr", cfg.ListenAddr, "backend", backend, "env", cfg.Env)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func openDemoDB(backend, path string) (*sql.DB, error) {
	switch backend {
	case "sqlite":
		handle, err := internaldb.OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		if err := internaldb.RunMigrations(handle); err != nil {
			_ = handle.Close()
			return nil, err
		}
		return handle, nil
	case "duckdb":
		return internaldb.OpenDuckDB("")
	default:
		return nil, fmt.Errorf("unknown backend %q: must be sqlite or duckdb", backend)
	}
}
