// Package commands implements the leapadmin subcommands.
package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapadmin/internal/cli/config"
	"github.com/leapstack-labs/leapadmin/pkg/adapter"
	"github.com/leapstack-labs/leapadmin/pkg/resource"
)

type configKey struct{}
type loggerKey struct{}

// ContextWithConfig stores the loaded config for the subcommands.
func ContextWithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// ContextWithLogger stores the logger for the subcommands.
func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

func getConfig(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return cfg
	}
	return &config.Config{
		Server:        config.ServerConfig{Port: config.DefaultServerPort},
		MigrationsDir: config.DefaultMigrationsDir,
		OutputFormat:  config.DefaultOutput,
		Target:        config.TargetConfig{Type: config.DefaultTargetType},
	}
}

func getLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.New(slog.DiscardHandler)
}

// CommandContext bundles the connected adapter and discovered catalog
// every database-facing command starts from.
type CommandContext struct {
	Config  *config.Config
	Logger  *slog.Logger
	Adapter adapter.Adapter
	Catalog *resource.Catalog
}

// NewCommandContext validates config, connects to the target database
// and discovers the resource catalog. The cleanup function closes the
// connection.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	ctx := cmd.Context()
	cfg := getConfig(ctx)
	logger := getLogger(ctx)

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	adapterCfg := cfg.Target.AdapterConfig()
	a, err := adapter.NewAdapter(adapterCfg, logger)
	if err != nil {
		return nil, nil, err
	}
	if err := a.Connect(ctx, adapterCfg); err != nil {
		return nil, nil, fmt.Errorf("failed to connect to %s: %w", cfg.Target.Type, err)
	}
	cleanup := func() { _ = a.Close() }

	catalog, err := resource.Discover(ctx, a, adapterCfg, cfg.Resources, logger)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	return &CommandContext{
		Config:  cfg,
		Logger:  logger,
		Adapter: a,
		Catalog: catalog,
	}, cleanup, nil
}
