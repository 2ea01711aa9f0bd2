package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/spokechart/spoke/pkg/cache"
	"github.com/spokechart/spoke/pkg/chart"
	"github.com/spokechart/spoke/pkg/dataset"
	"github.com/spokechart/spoke/pkg/errors"
	"github.com/spokechart/spoke/pkg/observability"
	"github.com/spokechart/spoke/pkg/ordering"
	"github.com/spokechart/spoke/pkg/radviz"
	"github.com/spokechart/spoke/pkg/render"
	"github.com/spokechart/spoke/pkg/similarity"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → compute → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	d, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.Rows = d.Rows()
	result.Stats.Variables = len(d.Columns())

	r.Logger.Info("loaded dataset",
		"input", opts.Input,
		"rows", d.Rows(),
		"variables", len(d.Columns()),
		"duration", result.Stats.LoadTime)

	// Stage 2: Compute
	computeStart := time.Now()
	c, chartHit, err := r.ComputeWithCacheInfo(ctx, d, opts)
	if err != nil {
		return nil, fmt.Errorf("compute: %w", err)
	}
	result.Chart = c
	result.Stats.ComputeTime = time.Since(computeStart)
	result.Stats.InvalidPoints = len(c.Points) - c.ValidPoints()
	result.CacheInfo.ChartHit = chartHit

	if data, err := chart.Marshal(c); err == nil {
		result.ChartHash = cache.Hash(data)
	}

	r.Logger.Info("computed chart",
		"anchors", len(c.Anchors),
		"points", len(c.Points),
		"invalid", result.Stats.InvalidPoints,
		"duration", result.Stats.ComputeTime)

	if result.Stats.InvalidPoints == len(c.Points) && len(c.Points) > 0 {
		r.Logger.Warn("no observation could be projected; check the selected variables")
	}
	if len(c.Degenerate) > 0 {
		r.Logger.Warn("constant variables carry no information", "variables", c.Degenerate)
	}

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, c, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load reads the input dataset and restricts it to the selected columns.
func (r *Runner) Load(ctx context.Context, opts Options) (*dataset.Dataset, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}

	start := time.Now()
	observability.Pipeline().OnLoadStart(ctx, opts.Input)

	d, err := dataset.ReadCSVFile(opts.Input, opts.LabelColumn)
	if err == nil && len(opts.Columns) > 0 {
		d, err = d.Select(opts.Columns)
	}

	if err != nil {
		observability.Pipeline().OnLoadComplete(ctx, opts.Input, 0, 0, time.Since(start), err)
		return nil, err
	}
	observability.Pipeline().OnLoadComplete(ctx, opts.Input, d.Rows(), len(d.Columns()), time.Since(start), nil)
	return d, nil
}

// ComputeWithCacheInfo computes a chart with caching and returns cache
// hit info. The cache key covers the dataset content hash and every
// option that influences the result.
func (r *Runner) ComputeWithCacheInfo(ctx context.Context, d *dataset.Dataset, opts Options) (*chart.Chart, bool, error) {
	if err := opts.ValidateForCompute(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.ChartKey(d.Hash(), opts.ChartKeyOpts())
	if opts.NeedsSearch() {
		// Search options feed the trace key so tuning runs don't collide.
		cacheKey = r.Keyer.TraceKey(d.Hash(), opts.TraceKeyOpts())
	}

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if cached, err := chart.Unmarshal(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "chart")
				return cached, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "chart")
	}

	c, err := r.Compute(ctx, d, opts)
	if err != nil {
		return nil, false, err
	}

	if data, err := chart.Marshal(c); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLChart)
		observability.Cache().OnCacheSet(ctx, "chart", len(data))
	}
	return c, false, nil
}

// Compute normalizes the dataset, chooses an anchor ordering, and
// projects every observation.
func (r *Runner) Compute(ctx context.Context, d *dataset.Dataset, opts Options) (*chart.Chart, error) {
	if err := opts.ValidateForCompute(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	norm, degenerate := d.Normalize()
	if len(degenerate) > 0 {
		opts.Logger.Warn("dropping constant variables from normalization", "variables", degenerate)
	}

	sim, err := similarity.Compute(norm, similarity.Metric(opts.Metric))
	if err != nil {
		return nil, err
	}

	order, trace, err := r.order(ctx, norm, sim, opts)
	if err != nil {
		return nil, err
	}

	anchors, err := radviz.Layout(order)
	if err != nil {
		return nil, err
	}

	projStart := time.Now()
	observability.Pipeline().OnProjectStart(ctx, norm.Rows(), len(anchors))
	proj, err := radviz.Project(norm, anchors)
	if err != nil {
		observability.Pipeline().OnProjectComplete(ctx, norm.Rows(), 0, time.Since(projStart), err)
		return nil, err
	}
	observability.Pipeline().OnProjectComplete(ctx, norm.Rows(), proj.Invalid, time.Since(projStart), nil)

	c := chart.FromProjection(proj, opts.Metric, opts.Ordering)
	c.Degenerate = degenerate
	c.Trace = trace
	return c, nil
}

// order resolves the anchor ordering for the configured strategy.
func (r *Runner) order(ctx context.Context, d *dataset.Dataset, sim *similarity.Matrix, opts Options) ([]string, *ordering.Trace, error) {
	start := time.Now()
	observability.Pipeline().OnOrderStart(ctx, opts.Ordering, len(d.Columns()))

	order, trace, err := r.resolveOrder(ctx, d, sim, opts)

	score := 0.0
	if trace != nil {
		score = trace.Best().Score
	}
	observability.Pipeline().OnOrderComplete(ctx, opts.Ordering, score, time.Since(start), err)
	return order, trace, err
}

func (r *Runner) resolveOrder(ctx context.Context, d *dataset.Dataset, sim *similarity.Matrix, opts Options) ([]string, *ordering.Trace, error) {
	switch opts.Ordering {
	case errors.OrderingNone:
		return d.Columns(), nil, nil

	case errors.OrderingCluster:
		order, err := ordering.ClusterOrder(sim.Distances())
		return order, nil, err

	case errors.OrderingIndependent, errors.OrderingDependent:
		var scorer ordering.Scorer = &ordering.IndependentScorer{Sim: sim}
		if opts.Ordering == errors.OrderingDependent {
			scorer = &ordering.DependentScorer{Sim: sim, Data: d, SpreadWeight: opts.SpreadWeight}
		}
		trace, err := ordering.Optimize(ctx, scorer, d.Columns(), ordering.Options{
			MaxIterations: opts.Iterations,
			Samples:       opts.Samples,
			Patience:      opts.Patience,
			Seed:          opts.Seed,
			Workers:       opts.Workers,
			Progress:      opts.Progress,
		})
		if err != nil {
			return nil, nil, err
		}
		return trace.Best().Ordering, trace, nil

	default:
		return nil, nil, errors.New(errors.ErrCodeInvalidOrdering, "unknown ordering strategy %q", opts.Ordering)
	}
}

// RenderWithCacheInfo generates artifacts with caching and returns cache
// hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, c *chart.Chart, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	chartData, err := chart.Marshal(c)
	if err != nil {
		return nil, false, fmt.Errorf("serialize chart for cache key: %w", err)
	}
	chartHash := cache.Hash(chartData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(chartHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	rendered, err := r.Render(ctx, c, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(chartHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return rendered, false, nil
}

// Render produces every requested format from a computed chart.
func (r *Runner) Render(ctx context.Context, c *chart.Chart, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)

	dot := render.ToDOT(c, render.Options{Scale: opts.Scale, Detailed: opts.Detailed})

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var (
			data []byte
			err  error
		)
		switch format {
		case FormatDOT:
			data = []byte(dot)
		case FormatJSON:
			data, err = chart.Marshal(c)
		case FormatSVG:
			data, err = render.RenderSVG(dot)
		case FormatPNG:
			data, err = render.RenderPNG(dot)
		}
		if err != nil {
			observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
	return artifacts, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
