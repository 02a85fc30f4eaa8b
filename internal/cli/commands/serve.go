package commands

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapadmin/internal/api"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Port int
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the admin API server",
		Long: `Start the JSON administration API over the target database.

Every exposed table becomes a resource with schema metadata, filterable
listing and validated create/update/delete endpoints.`,
		Example: `  # Serve on the configured port
  leapadmin serve

  # Serve on a custom port
  leapadmin serve --port 3000`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Port, "port", 0, "Port to serve on (default: 8686)")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	port := cmdCtx.Config.Server.Port
	if opts.Port != 0 {
		port = opts.Port
	}

	srv := api.NewServer(api.Config{
		Catalog: cmdCtx.Catalog,
		Port:    port,
		Logger:  cmdCtx.Logger,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return srv.Serve(ctx)
}
