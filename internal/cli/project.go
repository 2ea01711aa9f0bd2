package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spokechart/spoke/pkg/pipeline"
)

// projectCommand creates the project command, the main entry point of the
// CLI: it runs the full load → compute → render pipeline on a CSV file.
func (c *CLI) projectCommand() *cobra.Command {
	var (
		formatsStr string
		columnsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "project [data.csv]",
		Short: "Project a CSV dataset onto a radial chart",
		Long: `Project a CSV dataset onto a radial chart.

Each numeric column becomes an anchor on the unit circle and each row a
point inside it. Columns are min-max normalized first, then the anchor
arrangement is chosen by the configured ordering strategy:

  none         keep the column order of the file
  cluster      hierarchical clustering of similar columns (deterministic)
  independent  randomized search over the similarity structure (default)
  dependent    like independent, but also rewards spread-out points

Results are cached locally, keyed by the file content and all options, so
re-running the same command is instant.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input = args[0]
			opts.Columns = parseColumns(columnsStr)
			if formatsStr != "" {
				opts.Formats = parseFormats(formatsStr)
			}
			c.Config.Apply(&opts)
			return c.runProject(cmd.Context(), opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when a cached result exists")

	// Load flags
	cmd.Flags().StringVar(&opts.LabelColumn, "label", "", "column holding row labels (used for point colors)")
	cmd.Flags().StringVar(&columnsStr, "columns", "", "comma-separated subset of columns to project")

	// Compute flags
	cmd.Flags().StringVar(&opts.Metric, "metric", "", "similarity metric: cosine (default), abs-pearson")
	cmd.Flags().StringVar(&opts.Ordering, "ordering", "", "anchor ordering: independent (default), dependent, cluster, none")
	cmd.Flags().IntVar(&opts.Iterations, "iterations", 0, "maximum search iterations")
	cmd.Flags().IntVar(&opts.Samples, "samples", 0, "candidates evaluated per iteration")
	cmd.Flags().IntVar(&opts.Patience, "patience", 0, "stop after this many iterations without improvement")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "random seed for reproducible searches")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "parallel candidate evaluation workers")
	cmd.Flags().Float64Var(&opts.SpreadWeight, "spread-weight", 0, "weight of the spread term (dependent ordering)")

	// Render flags
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, dot, json (comma-separated)")
	cmd.Flags().Float64Var(&opts.Scale, "scale", 0, "circle radius in points")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "annotate points with their row labels")

	return cmd
}

// runProject executes the pipeline and writes the artifacts.
func (c *CLI) runProject(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger
	track := newProgress(c.Logger)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Projecting %s...", filepath.Base(opts.Input)))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Projection failed")
		return err
	}
	spinner.Stop()

	printSuccess("Projected %s", opts.Input)
	printChartStats(len(result.Chart.Anchors), len(result.Chart.Points),
		result.Stats.InvalidPoints, result.CacheInfo.ChartHit)

	if len(result.Chart.Degenerate) > 0 {
		printWarning("constant columns carry no information: %s",
			strings.Join(result.Chart.Degenerate, ", "))
	}
	if result.Stats.InvalidPoints == len(result.Chart.Points) {
		printWarning("no observation could be projected; check --columns")
	}

	if err := writeArtifacts(result.Artifacts, opts.Formats, opts.Input, output); err != nil {
		return err
	}

	if result.Chart.Trace != nil && len(result.Chart.Trace.Entries) > 1 {
		printNextStep("Inspect the search", fmt.Sprintf("spoke optimize %s --seed %d", opts.Input, opts.Seed))
	}
	track.done("pipeline finished")
	return nil
}

// writeArtifacts writes each rendered format to disk. With a single format
// and an explicit output path, the artifact goes exactly there; otherwise
// file names derive from the base path plus the format extension.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) error {
	if len(formats) == 1 && output != "" {
		return writeArtifact(artifacts[formats[0]], output)
	}

	base := basePath(output, input)
	for _, format := range formats {
		if err := writeArtifact(artifacts[format], base+"."+format); err != nil {
			return err
		}
	}
	return nil
}

func writeArtifact(data []byte, path string) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printFile(path)
	return nil
}

// basePath derives the output base name: an explicit output wins, else the
// input file name with its extension stripped.
func basePath(output, input string) string {
	if output != "" {
		return strings.TrimSuffix(output, filepath.Ext(output))
	}
	return strings.TrimSuffix(input, filepath.Ext(input))
}
