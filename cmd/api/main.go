package main

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
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"github.com/BruksfildServices01/barber-queue/internal/app"
	"github.com/BruksfildServices01/barber-queue/internal/config"
	"github.com/BruksfildServices01/barber-queue/internal/jobs"
	"github.com/BruksfildServices01/barber-queue/internal/routes"
	"github.com/BruksfildServices01/barber-queue/internal/telemetry"
)

const shutdownTimeout = 15 * time.Second

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing := telemetry.Setup("barber-queue", cfg.OTLPEndpoint)
	defer func() {
		c, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = shutdownTracing(c)
	}()

	stores, closeStores, err := app.OpenStores(cfg)
	if err != nil {
		return err
	}
	defer closeStores()

	a, err := app.New(cfg, stores)
	if err != nil {
		return err
	}
	defer a.Close()

	r := gin.Default()
	routes.RegisterRoutes(r, a)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ---- jobs ----
	scheduler := cron.New()
	if err := jobs.New(a).Schedule(scheduler); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("server running", "addr", cfg.Addr(), "store", cfg.Store)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if a.Relay != nil {
		g.Go(func() error {
			return a.Relay.Run(gctx)
		})
	}

	scheduler.Start()

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")

		<-scheduler.Stop().Done()

		c, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(c)
	})

	return g.Wait()
}
