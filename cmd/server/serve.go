package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"ploshtadka/internal/audit"
	"ploshtadka/internal/health"
	"ploshtadka/internal/identity"
	"ploshtadka/internal/platform/config"
	"ploshtadka/internal/platform/httpserver"
	"ploshtadka/internal/platform/logger"
	"ploshtadka/internal/platform/metrics"
	"ploshtadka/internal/platform/postgres"
	"ploshtadka/internal/platform/redis"
	"ploshtadka/internal/venue/handler"
	venuemetrics "ploshtadka/internal/venue/metrics"
	"ploshtadka/internal/venue/service"
	"ploshtadka/internal/venue/store"
)

const auditStreamMaxLen = 100_000

type venueStore interface {
	service.VenueStore
	service.ImageStore
	service.UnavailabilityStore
	Ping(ctx context.Context) error
}

func newServeCmd(load func() (config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
}

func serve(ctx context.Context, cfg config.Config) error {
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(log)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	st, closeStore, err := openStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer closeStore()

	rc, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	if rc != nil {
		defer func() { _ = rc.Close() }()
	}

	var sink audit.Sink = audit.NewLogSink(log)
	if cfg.Audit.Sink == config.AuditSinkRedis {
		if rc == nil {
			return errors.New("audit sink redis requires REDIS_URL")
		}
		sink = audit.NewStreamSink(rc.Client, cfg.Audit.Stream, auditStreamMaxLen)
	}
	publisher := audit.NewPublisher(sink, cfg.Audit.BufferSize, log)

	resolver, err := identity.New(cfg.Identity, &http.Client{Timeout: cfg.Identity.Timeout}, identity.NewMetrics(reg))
	if err != nil {
		return fmt.Errorf("build identity resolver: %w", err)
	}

	svc := service.New(st, st, st,
		service.WithLogger(log),
		service.WithMetrics(venuemetrics.New(reg)),
		service.WithAuditPublisher(publisher),
	)

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	checks := health.New(log).WithCheck("store", st.Ping)
	if rc != nil {
		checks.WithCheck("redis", rc.Health)
	}
	checks.Register(r)

	handler.New(svc, log, metrics.New(reg), resolver,
		handler.WithRequestTimeout(cfg.Server.RequestTimeout),
	).Register(r)

	srv := httpserver.New(cfg.Server, r)

	log.Info("starting venue service",
		"addr", cfg.Server.Addr,
		"environment", cfg.Server.Environment,
		"store", cfg.Store.Driver,
		"identity", cfg.Identity.Strategy,
	)
	return run(ctx, log, srv, publisher, cfg.Server.ShutdownTimeout)
}

type httpServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

type backgroundRunner interface {
	Run(ctx context.Context) error
}

// run serves until ctx is done, then shuts the server down. The publisher
// keeps running until Shutdown returns so events emitted by in-flight
// requests are still flushed.
func run(ctx context.Context, log *slog.Logger, srv httpServer, publisher backgroundRunner, shutdownTimeout time.Duration) error {
	pubCtx, stopPublisher := context.WithCancel(context.WithoutCancel(ctx))
	defer stopPublisher()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return publisher.Run(pubCtx)
	})
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down venue service")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		stopPublisher()
		if err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func openStore(ctx context.Context, cfg config.StoreConfig) (venueStore, func(), error) {
	if cfg.Driver != config.StorePostgres {
		return store.NewInMemory(), func() {}, nil
	}
	db, err := postgres.Open(ctx, cfg.DatabaseURL, postgres.Options{MaxOpenConns: cfg.MaxOpenConns})
	if err != nil {
		return nil, nil, err
	}
	if err := postgres.Migrate(db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return store.NewPostgres(db), func() { _ = db.Close() }, nil
}
