package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/sddkit/pkg/observability"
	"github.com/matzehuels/sddkit/pkg/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the counting and rendering HTTP API",
		Long: `Serve the HTTP API.

  GET  /healthz
  POST /v1/count/{nnf|sdd}?w=1:0.3&w=-1:0.7
  POST /v1/render?merge&ids&format=svg
  POST /v1/render/vtree?ids&format=dot`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !cmd.Flags().Changed("addr") {
				addr = c.config.Server.Addr
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			observability.SetHTTPHooks(observability.NewLogHooks(c.Logger))
			s := server.New(runner, c.Logger, server.Options{Labels: c.config.labels(nil)})
			return s.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")

	return cmd
}
