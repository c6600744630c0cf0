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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/go-toastify/toastify/pkg/toast"
	"github.com/go-toastify/toastify/pkg/wire"
)

func serveCmd() *cobra.Command {
	var (
		addr     string
		logLevel string
		demo     bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the notification server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(addr, logLevel, demo)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "Listen address")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	cmd.Flags().BoolVar(&demo, "demo", false, "Emit a demo notification every few seconds")

	return cmd
}

func runServe(addr, logLevel string, demo bool) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	metrics := toast.NewMetrics(toast.MetricsConfig{
		Registry: prometheus.DefaultRegisterer,
	})

	tctx := toast.New(
		toast.WithLogger(logger),
		toast.WithMetrics(metrics),
	)

	srv := wire.NewServer(tctx, nil)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: srv.Router(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Deferred updates apply on scheduler ticks.
	go tctx.Loop().Run(ctx)

	if demo {
		go runDemo(ctx, tctx)
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// runDemo dispatches a rotating series of notifications so a connected
// client has something to render.
func runDemo(ctx context.Context, tctx *toast.Context) {
	ticker := time.NewTicker(4 * time.Second)
	defer ticker.Stop()

	steps := []func() toast.ID{
		func() toast.ID { return tctx.Info("Build started") },
		func() toast.ID { return tctx.Success("Deploy finished") },
		func() toast.ID { return tctx.Warning("Disk usage above 80%") },
		func() toast.ID { return tctx.Error("Upstream timed out") },
		func() toast.ID {
			// A controlled-progress record driven to completion.
			id := tctx.Show("Uploading...", toast.Options{Progress: toast.Float64(0)})
			go func() {
				for p := 0.2; p <= 0.8; p += 0.2 {
					select {
					case <-ctx.Done():
						return
					case <-time.After(500 * time.Millisecond):
					}
					tctx.Update(id, toast.Options{Progress: toast.Float64(p)})
				}
				tctx.Done(id)
			}()
			return id
		},
	}

	for i := 0; ; i++ {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			steps[i%len(steps)]()
		}
	}
}
