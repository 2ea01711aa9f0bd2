package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spokechart/spoke/internal/server"
)

// defaultServeAddr is used when neither the flag nor the config set one.
const defaultServeAddr = "localhost:8417"

// serveCommand creates the serve command, a small HTTP front for the
// pipeline.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Expose the chart pipeline over HTTP",
		Long: `Expose the chart pipeline over HTTP.

Endpoints:

  GET  /healthz               liveness probe
  POST /v1/charts             compute a chart, returns chart JSON
  POST /v1/artifacts/{format} render a chart as svg, png, dot, or json

Request bodies are pipeline options as JSON; the "input" field names a CSV
file readable by the server process. Responses carry X-Chart-Hash and
X-Cache headers.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Serve.Addr
			}
			if addr == "" {
				addr = defaultServeAddr
			}

			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			printInfo("Listening on %s", StyleHighlight.Render("http://"+addr))
			printDetail("POST /v1/charts with {\"input\": \"data.csv\"} to get started")
			return server.New(runner, c.Logger).Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default localhost:8417)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
