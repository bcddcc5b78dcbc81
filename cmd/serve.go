package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"library/cache"
	"library/config"
	"library/db"
	"library/models"
	"library/service"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd() *cobra.Command {
	var port int

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			return serve(cmd.Context(), cfg)
		},
	}
	serveCmd.Flags().IntVar(&port, "port", 0, "listen port (overrides config)")

	return serveCmd
}

// newRequestCache picks redis when REDIS_URL is configured and an in-memory
// cache otherwise. The returned func releases the redis connection.
func newRequestCache(cfg *config.Config, logger *slog.Logger) (cache.RequestCacher, func() error, error) {
	if cfg.RedisURL == "" {
		logger.Info("REDIS_URL not set, keeping activity in memory")
		return cache.CreateMemoryCache(cfg.ActivityLimit), func() error { return nil }, nil
	}

	redisClient, err := config.NewRedisClient(cfg)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("activity cache backed by redis", "addr", cfg.RedisURL)
	return cache.CreateRedisCache(cfg.ActivityLimit, redisClient), redisClient.Close, nil
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)
	gin.SetMode(cfg.GinMode)

	library, err := db.NewSeededLibrary(models.SeedBooks())
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	opts := []service.Option{
		service.WithLogger(logger),
		service.WithRegistry(registry),
	}

	requestCache, closeCache, err := newRequestCache(cfg, logger)
	if err != nil {
		return err
	}
	defer closeCache()
	opts = append(opts, service.WithRequestCache(requestCache))

	if cfg.ElasticURL != "" {
		elasticClient, err := config.NewElasticClient(cfg)
		if err != nil {
			return err
		}
		index, err := db.NewElasticBookIndex(cfg.ElasticIndex, elasticClient)
		if err != nil {
			return err
		}
		if err := index.Mirror(ctx, library.List()); err != nil {
			logger.Warn("mirroring seed books failed", "index", cfg.ElasticIndex, "error", err)
		}
		opts = append(opts, service.WithBookIndex(index))
		logger.Info("mirroring books to elasticsearch", "url", cfg.ElasticURL, "index", cfg.ElasticIndex)
	}

	routes := service.SetupRoutes(service.NewServer(library, opts...))

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: routes,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", srv.Addr)
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

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
