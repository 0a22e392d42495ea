package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/hanpama/wpgraph/internal/executor"
	"github.com/hanpama/wpgraph/internal/introspection"
	"github.com/hanpama/wpgraph/internal/language"
	"github.com/hanpama/wpgraph/internal/wp"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func sdlCommand() *cli.Command {
	return &cli.Command{
		Name:  "sdl",
		Usage: "Print the GraphQL schema for the configured post types",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Write the schema to a file instead of stdout",
			},
		},
		Action: runSDL,
	}
}

func runSDL(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s, err := buildSchema(cfg, nil, zap.NewNop())
	if err != nil {
		return err
	}
	if out := cmd.String("out"); out != "" {
		return os.WriteFile(out, []byte(s.SDL()), 0o644)
	}
	_, err = fmt.Fprint(cmd.Root().Writer, s.SDL())
	return err
}

func resolveCommand() *cli.Command {
	return &cli.Command{
		Name:      "resolve",
		Usage:     "Show the GraphQL type each post type resolves to",
		ArgsUsage: "<post_type>...",
		Action:    runResolve,
	}
}

func runResolve(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() == 0 {
		return fmt.Errorf("at least one post type is required")
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	reg, err := newRegistry(cfg, nil, zap.NewNop())
	if err != nil {
		return err
	}
	w := cmd.Root().Writer
	for _, pt := range cmd.Args().Slice() {
		name := "<none>"
		if v, ok := reg.ResolveType(ctx, &wp.Post{PostType: pt}); ok {
			name = v.Name
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\n", pt, name); err != nil {
			return err
		}
	}
	return nil
}

func queryCommand() *cli.Command {
	return &cli.Command{
		Name:      "query",
		Usage:     "Execute a GraphQL query against the configured host and print the result",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "variables",
				Usage: "Variables as a JSON object",
			},
			&cli.StringFlag{
				Name:  "operation",
				Usage: "Operation name",
			},
		},
		Action: runQuery,
	}
}

func runQuery(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one query argument")
	}
	var vars map[string]any
	if raw := cmd.String("variables"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &vars); err != nil {
			return fmt.Errorf("variables: %w", err)
		}
	}
	doc, err := language.ParseQuery(cmd.Args().First())
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()

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
	res := executor.NewExecutor(wrapper.Runtime, wrapper.Schema).ExecuteRequest(ctx, doc, cmd.String("operation"), vars, nil)

	enc := json.NewEncoder(cmd.Root().Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
