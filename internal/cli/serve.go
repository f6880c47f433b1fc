package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/flowboard/internal/api"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve stored processes over HTTP",
		Long: `Serve stored processes over HTTP until interrupted.

The listen address comes from [server] addr in the config file unless --addr
is given. In-flight requests are drained on shutdown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, cfg, err := c.newRunner(ctx)
			if err != nil {
				return err
			}
			defer runner.Close()

			if addr == "" {
				addr = cfg.Server.Addr
			}
			logger := loggerFromContext(ctx)
			handler := api.NewRouter(runner, logger).Setup()
			printInfo("Serving %s store on %s", cfg.Store.Backend, addr)
			return api.Serve(ctx, addr, handler, logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")

	return cmd
}
