package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"github.com/skene-dev/skene"
	"github.com/skene-dev/skene/internal/adapters/csvstore"
	"github.com/skene-dev/skene/internal/adapters/file"
	redisstore "github.com/skene-dev/skene/internal/adapters/redis"
	"github.com/skene-dev/skene/internal/config"
	"github.com/skene-dev/skene/internal/logging"
	"github.com/skene-dev/skene/internal/metrics"
	httpAdapter "github.com/skene-dev/skene/pkg/adapters/http"
	"github.com/skene-dev/skene/pkg/adapters/memory"
	redislock "github.com/skene-dev/skene/pkg/adapters/redis"
	"github.com/skene-dev/skene/pkg/ports"
	"github.com/skene-dev/skene/pkg/session"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the webhook server",
	Long:  `Starts the engine behind the assistant platform webhook, exposing the turn endpoint, a health check and Prometheus metrics.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfgPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(cfgPath)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
		if cmd.Flags().Changed("content") {
			cfg.ContentDir, _ = cmd.Flags().GetString("content")
		}
		if cmd.Flags().Changed("listen") {
			cfg.Listen, _ = cmd.Flags().GetString("listen")
		}

		logger := newServerLogger(cfg.Log)

		content, err := csvstore.New(cfg.ContentDir)
		if err != nil {
			fmt.Printf("Error loading content: %v\n", err)
			os.Exit(1)
		}

		m := metrics.New(prometheus.DefaultRegisterer)

		engine, err := skene.New(content,
			skene.WithLogger(logger),
			skene.WithLifecycleHooks(m.Hooks()),
		)
		if err != nil {
			fmt.Printf("Error initializing engine: %v\n", err)
			os.Exit(1)
		}

		manager, cleanup, err := newSessionManager(cfg.Sessions, logger)
		if err != nil {
			fmt.Printf("Error initializing sessions: %v\n", err)
			os.Exit(1)
		}
		defer cleanup()

		handler := httpAdapter.NewHandler(engine,
			httpAdapter.WithSessionManager(manager),
			httpAdapter.WithLogger(logger),
		)

		srv := &http.Server{
			Addr:    cfg.Listen,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("starting webhook server",
				"addr", srv.Addr,
				"content_dir", cfg.ContentDir,
				"sessions_backend", cfg.Sessions.Backend,
			)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			logger.Info("starting shutdown", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("graceful shutdown did not complete", "err", err)
				if err := srv.Close(); err != nil {
					logger.Error("error killing server", "err", err)
				}
			}
			logger.Info("server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("listen", "l", ":8080", "Address to listen on")
}

func newServerLogger(cfg config.LogConfig) *slog.Logger {
	level := logging.ParseLevel(cfg.Level)
	if cfg.Format == "json" {
		return logging.NewJSON(level)
	}
	return logging.New(level)
}

// newSessionManager builds the session manager for the configured backend.
// The redis backend also gets a distributed locker so multiple replicas can
// share one store.
func newSessionManager(cfg config.SessionsConfig, logger *slog.Logger) (*session.Manager, func(), error) {
	opts := []session.Option{session.WithLogger(logger)}

	var store ports.SessionStore
	cleanup := func() {}

	switch cfg.Backend {
	case config.BackendMemory:
		store = memory.NewStore()

	case config.BackendFile:
		store = file.New(cfg.Dir)

	case config.BackendRedis:
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			return nil, nil, fmt.Errorf("failed to reach redis at %s: %w", cfg.Redis.Addr, err)
		}

		redisOpts := []redisstore.Option{}
		if cfg.TTL.Std() > 0 {
			redisOpts = append(redisOpts, redisstore.WithTTL(cfg.TTL.Std()))
		}
		store = redisstore.NewFromClient(client, redisOpts...)
		opts = append(opts, session.WithLocker(redislock.NewLocker(client, "skene:lock:")))
		cleanup = func() { _ = client.Close() }

	default:
		return nil, nil, fmt.Errorf("unknown sessions backend %q", cfg.Backend)
	}

	return session.NewManager(store, opts...), cleanup, nil
}
