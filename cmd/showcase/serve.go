package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/vango-dev/showcase/app/routes"
	"github.com/vango-dev/showcase/internal/config"
	"github.com/vango-dev/showcase/internal/logging"
	"github.com/vango-dev/showcase/pkg/middleware"
	"github.com/vango-dev/showcase/pkg/server"
	"github.com/vango-dev/showcase/pkg/session"
)

func serveCmd() *cobra.Command {
	var (
		path   string
		addr   string
		pretty bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Serve the application until interrupted.

Configuration is read from showcase.json (or --config), then .env and
SHOWCASE_* environment variables. Flags win over both.

Examples:
  showcase serve
  showcase serve --addr=:3000
  SHOWCASE_LOG_FORMAT=json showcase serve --config=/etc/showcase.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(path)
			if err != nil {
				return err
			}
			if pretty {
				cfg.Server.Pretty = true
			}

			logger, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
			if err != nil {
				return err
			}
			slog.SetDefault(logger)

			if cfg.Telemetry.Tracing {
				shutdown, err := setupTracing(cmd.ErrOrStderr(), "showcase")
				if err != nil {
					return err
				}
				defer func() {
					if err := shutdown(context.Background()); err != nil {
						logger.Error("trace flush failed", "error", err)
					}
				}()
			}

			srv, _ := newServer(cfg, logger, addr)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&path, "config", "c", "", "Path to "+config.ConfigFileName+" (default: working directory)")
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address, overrides server.host and server.port")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent rendered HTML")
	return cmd
}

// newServer wires the application, metrics and tracing into a server.
// A non-empty addr replaces the configured listen address. The returned
// registry is nil when metrics are disabled.
func newServer(cfg *config.Config, logger *slog.Logger, addr string) (*server.Server, *prometheus.Registry) {
	sc := serverConfig(cfg)
	if addr != "" {
		sc.Address = addr
	}

	opts := []server.Option{server.WithLogger(logger)}

	if cfg.Telemetry.Tracing {
		name := middleware.WithTracerName(cfg.Telemetry.TracerName)
		opts = append(opts,
			server.WithHTTPMiddleware(middleware.TraceHTTP(name)),
			server.WithMiddleware(middleware.OpenTelemetry(name)),
		)
	}

	var registry *prometheus.Registry
	if cfg.Telemetry.Metrics {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		m := middleware.NewMetrics(middleware.WithRegistry(registry))
		opts = append(opts,
			server.WithObserver(m),
			server.WithHTTPMiddleware(m.HTTP),
			server.WithMiddleware(m.Middleware()),
			server.WithMetricsHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})),
		)
	}

	return server.New(sc, routes.App(routes.Router()), opts...), registry
}

// serverConfig maps file configuration onto the server's.
func serverConfig(cfg *config.Config) server.Config {
	sc := server.DefaultConfig()
	sc.Address = cfg.Address()
	sc.Title = cfg.Server.Title
	sc.Styles = []string{routes.Stylesheet}
	sc.Pretty = cfg.Server.Pretty
	sc.CookieName = cfg.Server.CookieName
	sc.SecureCookies = cfg.Server.SecureCookies
	sc.AllowedOrigins = cfg.Server.AllowedOrigins
	sc.TrustProxy = cfg.Server.TrustProxy
	sc.ShutdownTimeout = cfg.Server.ShutdownTimeout.Std()
	sc.Session = session.Config{
		IdleTimeout:     cfg.Session.IdleTimeout.Std(),
		CleanupInterval: cfg.Session.CleanupInterval.Std(),
		MaxInstances:    cfg.Session.MaxInstances,
		MaxPerIP:        cfg.Session.MaxPerIP,
		EvictOnIPLimit:  cfg.Session.EvictOnIPLimit,
	}
	return sc
}
