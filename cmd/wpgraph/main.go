package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hanpama/wpgraph/internal/config"
	"github.com/hanpama/wpgraph/internal/wp"
	"github.com/hanpama/wpgraph/internal/wp/memory"
	"github.com/hanpama/wpgraph/internal/wp/wpdb"
	"github.com/hanpama/wpgraph/internal/wpschema"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "wpgraph",
		Usage: "GraphQL API over WordPress posts",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the YAML configuration file",
				Sources: cli.EnvVars("WPGRAPH_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Override log.level (debug, info, warn, error)",
				Sources: cli.EnvVars("WPGRAPH_LOG_LEVEL"),
			},
			&cli.BoolFlag{
				Name:    "dev",
				Usage:   "Human readable development logging",
				Sources: cli.EnvVars("WPGRAPH_DEV"),
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			queryCommand(),
			sdlCommand(),
			resolveCommand(),
		},
	}
}

// loadConfig reads the file named by --config, or the defaults when none is
// given, and applies the logging flags. Relative fixture paths are resolved
// against the directory of the config file.
func loadConfig(cmd *cli.Command) (config.Config, error) {
	cfg := config.Default()
	if path := cmd.String("config"); path != "" {
		var err error
		cfg, err = config.LoadFile(path)
		if err != nil {
			return config.Config{}, err
		}
		if f := cfg.Host.Fixtures; f != "" && !filepath.IsAbs(f) {
			cfg.Host.Fixtures = filepath.Join(filepath.Dir(path), f)
		}
	}
	if lvl := cmd.String("log-level"); lvl != "" {
		cfg.Log.Level = lvl
	}
	if cmd.Bool("dev") {
		cfg.Log.Development = true
	}
	return cfg, nil
}

func newLogger(cfg config.Log) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

// openHost connects the configured content host. The returned func releases
// it.
func openHost(ctx context.Context, cfg config.Config) (wp.Host, func(), error) {
	links := wp.Permalinks{Home: cfg.Site.URL, Structure: cfg.Site.PermalinkStructure}
	switch cfg.Host.Driver {
	case config.DriverPostgres:
		h, err := wpdb.Open(ctx, cfg.Host.DSN, wpdb.Options{
			TablePrefix: cfg.Host.TablePrefix,
			Taxonomies:  cfg.Host.Taxonomies,
			Permalinks:  links,
		})
		if err != nil {
			return nil, nil, err
		}
		return h, h.Close, nil
	case config.DriverMemory:
		h, err := memory.LoadFile(cfg.Host.Fixtures, links)
		if err != nil {
			return nil, nil, err
		}
		return h, func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown host driver %q", cfg.Host.Driver)
}

// newRegistry registers the builtin post types followed by the configured
// ones.
func newRegistry(cfg config.Config, host wp.Host, logger *zap.Logger) (*wpschema.Registry, error) {
	reg := wpschema.NewRegistry(
		wpschema.Env{Host: host, Filters: wp.DefaultFilters(), Logger: logger},
		wpschema.WithLogger(logger),
	)
	if err := reg.RegisterDefaults(); err != nil {
		return nil, err
	}
	for _, pt := range cfg.PostTypes {
		if err := reg.RegisterPostType(pt.Name, pt.Description); err != nil {
			return nil, fmt.Errorf("post type %q: %w", pt.Name, err)
		}
	}
	return reg, nil
}

func buildSchema(cfg config.Config, host wp.Host, logger *zap.Logger) (*wpschema.Schema, error) {
	reg, err := newRegistry(cfg, host, logger)
	if err != nil {
		return nil, err
	}
	s, err := reg.Build()
	if err != nil {
		return nil, fmt.Errorf("build schema: %w", err)
	}
	return s, nil
}
