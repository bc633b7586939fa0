package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/vango-dev/reactorctl/internal/collaborator"
	"github.com/vango-dev/reactorctl/internal/config"
)

func serveCmd() *cobra.Command {
	var (
		host        string
		port        int
		metricsPort int
		logLevel    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP+WebSocket dashboard collaborator",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.New()
			if config.Exists(".") {
				loaded, err := config.Load(".")
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if host != "" {
				cfg.Host = host
			}
			if port != 0 {
				cfg.Port = port
			}
			if metricsPort != 0 {
				cfg.MetricsPort = metricsPort
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log := newLogger(cfg.LogLevel)

			metrics := collaborator.EnableMetrics(collaborator.WithNamespace("reactorctl"))
			srv := collaborator.NewServer(log, metrics)
			defer srv.Close()

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			go func() {
				info("metrics listening on http://%s/metrics", cfg.MetricsAddress())
				mux := http.NewServeMux()
				mux.Handle("/metrics", promhttp.Handler())
				_ = collaborator.ListenAndServe(ctx, cfg.MetricsAddress(), mux)
			}()

			printBanner()
			success("collaborator listening on http://%s", cfg.Address())
			log.Info("serve: starting", "addr", cfg.Address(), "metrics_addr", cfg.MetricsAddress())

			return collaborator.ListenAndServe(ctx, cfg.Address(), srv.Router())
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "bind host (overrides reactorctl.json)")
	cmd.Flags().IntVar(&port, "port", 0, "bind port (overrides reactorctl.json)")
	cmd.Flags().IntVar(&metricsPort, "metrics-port", 0, "Prometheus metrics port")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "debug|info|warn|error")

	return cmd
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

