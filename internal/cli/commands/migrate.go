package commands

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapadmin/pkg/adapter"
	"github.com/leapstack-labs/leapadmin/pkg/dialect"
)

// MigrateOptions holds options for the migrate command.
type MigrateOptions struct {
	Dir string
}

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand() *cobra.Command {
	opts := &MigrateOptions{}

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run pending schema migrations against the target database",
		Long: `Apply SQL migration files from the migrations directory to the target
database, tracking applied versions in a goose version table.`,
		Example: `  # Apply pending migrations
  leapadmin migrate

  # Migrations from a custom directory
  leapadmin migrate --dir db/migrations`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigrate(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Dir, "dir", "", "Migrations directory (default: migrations)")

	return cmd
}

// gooseDialectFor resolves the target type through the dialect registry
// and maps it onto a goose dialect name. Dialects goose does not speak
// have no migration support.
func gooseDialectFor(targetType string) (string, error) {
	d, ok := dialect.Get(targetType)
	if !ok {
		return "", fmt.Errorf("unknown dialect %q", targetType)
	}
	switch d.Name {
	case "postgres":
		return "postgres", nil
	case "sqlite":
		return "sqlite", nil
	default:
		return "", fmt.Errorf("migrations are not supported for %s targets", d.Name)
	}
}

func runMigrate(cmd *cobra.Command, opts *MigrateOptions) error {
	ctx := cmd.Context()
	cfg := getConfig(ctx)
	logger := getLogger(ctx)

	if err := cfg.Validate(); err != nil {
		return err
	}

	gooseDialect, err := gooseDialectFor(cfg.Target.Type)
	if err != nil {
		return err
	}

	dir := cfg.MigrationsDir
	if opts.Dir != "" {
		dir = opts.Dir
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return fmt.Errorf("migrations directory does not exist: %s", dir)
	}

	adapterCfg := cfg.Target.AdapterConfig()
	a, err := adapter.NewAdapter(adapterCfg, logger)
	if err != nil {
		return err
	}
	if err := a.Connect(ctx, adapterCfg); err != nil {
		return fmt.Errorf("failed to connect to %s: %w", cfg.Target.Type, err)
	}
	defer func() { _ = a.Close() }()

	raw, ok := a.(interface{ SQLDB() *sql.DB })
	if !ok {
		return fmt.Errorf("%s adapter does not expose a SQL connection", cfg.Target.Type)
	}

	if err := goose.SetDialect(gooseDialect); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	if err := goose.Up(raw.SQLDB(), dir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, err := goose.GetDBVersion(raw.SQLDB())
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Migrations applied, database at version %d\n", version)
	return nil
}
