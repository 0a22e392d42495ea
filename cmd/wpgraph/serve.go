package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/hanpama/wpgraph/internal/eventbus"
	"github.com/hanpama/wpgraph/internal/introspection"
	"github.com/hanpama/wpgraph/internal/otel"
	"github.com/hanpama/wpgraph/internal/server"
	"github.com/urfave/cli/v3"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const shutdownGrace = 10 * time.Second

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the GraphQL HTTP server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				Usage:   "Override server.addr",
				Sources: cli.EnvVars("WPGRAPH_ADDR"),
			},
		},
		Action: runServe,
	}
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if addr := cmd.String("addr"); addr != "" {
		cfg.Server.Addr = addr
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	eventbus.Use(eventbus.New())
	shutdown, err := otel.Setup(ctx, otel.Config{
		Endpoint: cfg.Telemetry.Endpoint,
		Service:  cfg.Telemetry.Service,
		Insecure: cfg.Telemetry.Insecure,
	})
	if err != nil {
		return fmt.Errorf("otel setup: %w", err)
	}
	defer func() { _ = shutdown(context.Background()) }()
	defer server.LogEvents(logger)()

	host, closeHost, err := openHost(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeHost()

	s, err := buildSchema(cfg, host, logger)
	if err != nil {
		return err
	}
	wrapper := introspection.Wrap(s, s.GraphQL())

	sopts := []server.Option{
		server.WithTimeout(cfg.Server.Timeout),
		server.WithMaxBodyBytes(cfg.Server.MaxBodyBytes),
		server.WithGraphiQL(cfg.Server.GraphiQL),
		server.WithLogger(logger),
	}
	if cfg.Server.Pretty {
		sopts = append(sopts, server.WithPretty())
	}
	if len(cfg.Server.CORSOrigins) > 0 {
		sopts = append(sopts, server.WithCORS(cfg.Server.CORSOrigins...))
	}
	h, err := server.New(wrapper.Runtime, wrapper.Schema, sopts...)
	if err != nil {
		return fmt.Errorf("server init: %w", err)
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           otelhttp.NewHandler(h.Routes(), "wpgraph"),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	logger.Info("GraphQL server listening",
		zap.String("addr", cfg.Server.Addr),
		zap.String("host", cfg.Host.Driver),
		zap.Int("post_types", len(s.Registry().Variants())))

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return srv.Shutdown(sctx)
}
