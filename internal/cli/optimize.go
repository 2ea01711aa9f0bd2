package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/spokechart/spoke/pkg/chart"
	"github.com/spokechart/spoke/pkg/errors"
	"github.com/spokechart/spoke/pkg/pipeline"
)

// optimizeCommand creates the optimize command. It runs only the anchor
// search and exposes its trace, which is useful for tuning the search
// parameters before committing to a rendering.
func (c *CLI) optimizeCommand() *cobra.Command {
	var (
		columnsStr string
		output     string
		noCache    bool
		watch      bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "optimize [data.csv]",
		Short: "Search for a good anchor arrangement and inspect the trace",
		Long: `Search for a good anchor arrangement and inspect the trace.

Runs the randomized swap search for the chosen ordering strategy and
writes the full improvement trace as JSON: one entry per iteration that
found a better arrangement, with its score. The search is seeded, so the
same seed always yields the same trace.

With --watch, a live view shows the search progress instead of a spinner.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input = args[0]
			opts.Columns = parseColumns(columnsStr)
			c.Config.Apply(&opts)
			if opts.Ordering == "" {
				opts.Ordering = pipeline.DefaultOrdering
			}
			if !opts.NeedsSearch() {
				return errors.New(errors.ErrCodeInvalidOrdering,
					"optimize requires a search strategy (independent or dependent), got %q", opts.Ordering)
			}
			return c.runOptimize(cmd.Context(), opts, output, noCache, watch)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "trace output file (default: input base + .trace.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "search again even when a cached trace exists")
	cmd.Flags().BoolVar(&watch, "watch", false, "show live search progress")

	cmd.Flags().StringVar(&opts.LabelColumn, "label", "", "column holding row labels")
	cmd.Flags().StringVar(&columnsStr, "columns", "", "comma-separated subset of columns to project")

	cmd.Flags().StringVar(&opts.Metric, "metric", "", "similarity metric: cosine (default), abs-pearson")
	cmd.Flags().StringVar(&opts.Ordering, "ordering", "", "search strategy: independent (default), dependent")
	cmd.Flags().IntVar(&opts.Iterations, "iterations", 0, "maximum search iterations")
	cmd.Flags().IntVar(&opts.Samples, "samples", 0, "candidates evaluated per iteration")
	cmd.Flags().IntVar(&opts.Patience, "patience", 0, "stop after this many iterations without improvement")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "random seed for reproducible searches")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "parallel candidate evaluation workers")
	cmd.Flags().Float64Var(&opts.SpreadWeight, "spread-weight", 0, "weight of the spread term (dependent ordering)")

	return cmd
}

// runOptimize loads the dataset, runs the search, and writes the trace.
func (c *CLI) runOptimize(ctx context.Context, opts pipeline.Options, output string, noCache, watch bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	var (
		result *chart.Chart
		cached bool
	)
	if watch {
		result, cached, err = c.watchedCompute(ctx, runner, opts)
	} else {
		result, cached, err = c.spinnerCompute(ctx, runner, opts)
	}
	if err != nil {
		return err
	}

	trace := result.Trace
	if trace == nil {
		return errors.New(errors.ErrCodeInvalidOrdering, "search produced no trace")
	}

	first, best := trace.Entries[0], trace.Best()
	printSuccess("Optimized %d anchors in %d improvement(s)", len(best.Ordering), len(trace.Entries)-1)
	printDetail("score: %.4f → %.4f", first.Score, best.Score)
	printDetail("order: %s", joinOrder(best.Ordering))
	if cached {
		printDetail("result served from cache; use --refresh to search again")
	}

	path := output
	if path == "" {
		path = basePath("", opts.Input) + ".trace.json"
	}
	data, err := json.MarshalIndent(trace, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize trace: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printFile(path)

	printNextStep("Render the chart", fmt.Sprintf("spoke project %s --ordering %s --seed %d", opts.Input, opts.Ordering, opts.Seed))
	return nil
}

// spinnerCompute runs load + compute behind a plain spinner.
func (c *CLI) spinnerCompute(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options) (*chart.Chart, bool, error) {
	spinner := newSpinnerWithContext(ctx, "Searching anchor arrangements...")
	spinner.Start()

	d, err := runner.Load(ctx, opts)
	if err != nil {
		spinner.StopWithError("Load failed")
		return nil, false, err
	}
	result, cached, err := runner.ComputeWithCacheInfo(ctx, d, opts)
	if err != nil {
		spinner.StopWithError("Search failed")
		return nil, false, err
	}
	spinner.Stop()
	return result, cached, nil
}

// watchedCompute runs load + compute with a live progress view. The search
// runs in a goroutine and feeds the bubbletea program through the pipeline
// progress callback.
func (c *CLI) watchedCompute(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options) (*chart.Chart, bool, error) {
	opts.SetComputeDefaults()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	prog := tea.NewProgram(newSearchModel(opts.Iterations))
	opts.Progress = func(iteration int, best float64) {
		prog.Send(searchProgressMsg{Iteration: iteration, Best: best})
	}

	var (
		result *chart.Chart
		cached bool
		runErr error
	)
	go func() {
		d, err := runner.Load(ctx, opts)
		if err == nil {
			result, cached, err = runner.ComputeWithCacheInfo(ctx, d, opts)
		}
		runErr = err
		prog.Send(searchDoneMsg{Err: err})
	}()

	model, err := prog.Run()
	if err != nil {
		return nil, false, fmt.Errorf("progress view: %w", err)
	}
	if m, ok := model.(searchModel); ok && m.aborted {
		return nil, false, context.Canceled
	}
	if runErr != nil {
		return nil, false, runErr
	}
	return result, cached, nil
}

// joinOrder formats an anchor ordering for terminal output.
func joinOrder(order []string) string {
	out := ""
	for i, label := range order {
		if i > 0 {
			out += StyleDim.Render(" → ")
		}
		out += StyleValue.Render(label)
	}
	return out
}
