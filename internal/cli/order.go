package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spokechart/spoke/pkg/pipeline"
)

// orderCommand creates the order command. It prints the anchor arrangement
// a strategy produces without rendering anything, which makes strategies
// easy to compare and the output easy to script against.
func (c *CLI) orderCommand() *cobra.Command {
	var (
		columnsStr string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "order [data.csv]",
		Short: "Print the anchor arrangement a strategy produces",
		Long: `Print the anchor arrangement a strategy produces.

The arrangement is written to stdout as a single space-separated line,
counter-clockwise from the positive x axis. Search strategies also report
the score of the winning arrangement.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input = args[0]
			opts.Columns = parseColumns(columnsStr)
			c.Config.Apply(&opts)
			return c.runOrder(cmd.Context(), opts, noCache)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when a cached result exists")

	cmd.Flags().StringVar(&opts.LabelColumn, "label", "", "column holding row labels")
	cmd.Flags().StringVar(&columnsStr, "columns", "", "comma-separated subset of columns to project")

	cmd.Flags().StringVar(&opts.Metric, "metric", "", "similarity metric: cosine (default), abs-pearson")
	cmd.Flags().StringVar(&opts.Ordering, "ordering", "", "anchor ordering: independent (default), dependent, cluster, none")
	cmd.Flags().IntVar(&opts.Iterations, "iterations", 0, "maximum search iterations")
	cmd.Flags().IntVar(&opts.Samples, "samples", 0, "candidates evaluated per iteration")
	cmd.Flags().IntVar(&opts.Patience, "patience", 0, "stop after this many iterations without improvement")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "random seed for reproducible searches")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "parallel candidate evaluation workers")
	cmd.Flags().Float64Var(&opts.SpreadWeight, "spread-weight", 0, "weight of the spread term (dependent ordering)")

	return cmd
}

func (c *CLI) runOrder(ctx context.Context, opts pipeline.Options, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	d, err := runner.Load(ctx, opts)
	if err != nil {
		return err
	}
	result, _, err := runner.ComputeWithCacheInfo(ctx, d, opts)
	if err != nil {
		return err
	}

	fmt.Println(strings.Join(result.AnchorOrder(), " "))
	if result.Trace != nil {
		printDetail("score %.4f after %d improvement(s)", result.Trace.Best().Score, len(result.Trace.Entries)-1)
	}
	return nil
}
