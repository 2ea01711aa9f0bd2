// Package pipeline provides the core chart pipeline.
//
// This package implements the complete load → compute → render pipeline
// that backs the CLI and the preview server. Centralizing it keeps the
// caching and validation behavior identical across entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read and validate the input dataset
//  2. Compute: Normalize, order the anchors, and project the observations
//  3. Render: Generate output in various formats (SVG, PNG, DOT, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Input:    "iris.csv",
//	    Ordering: "independent",
//	    Formats:  []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/spokechart/spoke/pkg/cache"
	"github.com/spokechart/spoke/pkg/chart"
	"github.com/spokechart/spoke/pkg/errors"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultMetric is the default column similarity metric.
	DefaultMetric = errors.MetricCosine

	// DefaultOrdering is the default anchor ordering strategy.
	DefaultOrdering = errors.OrderingIndependent

	// DefaultIterations bounds the ordering search.
	DefaultIterations = 100

	// DefaultSamples is the number of candidates evaluated per iteration.
	DefaultSamples = 20

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)

	// DefaultScale is the default circle radius in points.
	DefaultScale = 200.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the chart pipeline.
// This struct supports JSON serialization for server requests.
type Options struct {
	// Load options
	Input       string   `json:"input,omitempty"`
	LabelColumn string   `json:"label_column,omitempty"`
	Columns     []string `json:"columns,omitempty"` // subset of variables; empty means all

	// Compute options
	Metric       string  `json:"metric,omitempty"`
	Ordering     string  `json:"ordering,omitempty"`
	Iterations   int     `json:"iterations,omitempty"`
	Samples      int     `json:"samples,omitempty"`
	Patience     int     `json:"patience,omitempty"`
	Seed         uint64  `json:"seed,omitempty"`
	Workers      int     `json:"workers,omitempty"`
	SpreadWeight float64 `json:"spread_weight,omitempty"`
	Refresh      bool    `json:"refresh,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Scale    float64  `json:"scale,omitempty"`
	Detailed bool     `json:"detailed,omitempty"`

	// Runtime options (not serialized)
	Logger   *log.Logger              `json:"-"`
	Progress func(iter int, best float64) `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Chart is the computed projection.
	Chart *chart.Chart

	// ChartHash is the content hash of the serialized chart.
	ChartHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Rows          int
	Variables     int
	InvalidPoints int
	LoadTime      time.Duration
	ComputeTime   time.Duration
	RenderTime    time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ChartHit  bool // Whether the computed chart came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for
// the full pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForCompute(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for loading.
func (o *Options) ValidateForLoad() error {
	if o.Input == "" {
		return errors.New(errors.ErrCodeInvalidInput, "input is required")
	}
	if len(o.Columns) > 0 {
		if err := errors.ValidateColumns(o.Columns); err != nil {
			return err
		}
	}
	o.applyLoggerDefault()
	return nil
}

// ValidateForCompute validates and sets defaults for chart computation.
func (o *Options) ValidateForCompute() error {
	o.SetComputeDefaults()
	if err := errors.ValidateMetric(o.Metric); err != nil {
		return err
	}
	return errors.ValidateOrdering(o.Ordering)
}

// SetComputeDefaults sets default values for chart computation.
func (o *Options) SetComputeDefaults() {
	if o.Metric == "" {
		o.Metric = DefaultMetric
	}
	if o.Ordering == "" {
		o.Ordering = DefaultOrdering
	}
	if o.Iterations == 0 {
		o.Iterations = DefaultIterations
	}
	if o.Samples == 0 {
		o.Samples = DefaultSamples
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	o.applyLoggerDefault()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return errors.ValidateFormats(o.Formats, ValidFormats)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	o.applyLoggerDefault()
}

// NeedsSearch returns true if the ordering strategy runs the randomized
// search.
func (o *Options) NeedsSearch() bool {
	return o.Ordering == errors.OrderingIndependent || o.Ordering == errors.OrderingDependent
}

// ChartKeyOpts returns cache key options for chart computation.
func (o *Options) ChartKeyOpts() cache.ChartKeyOpts {
	return cache.ChartKeyOpts{
		Metric:   o.Metric,
		Ordering: o.Ordering,
		Columns:  strings.Join(o.Columns, ","),
	}
}

// TraceKeyOpts returns cache key options for the optimization trace.
func (o *Options) TraceKeyOpts() cache.TraceKeyOpts {
	return cache.TraceKeyOpts{
		Metric:       o.Metric,
		Measure:      o.Ordering,
		Iterations:   o.Iterations,
		Samples:      o.Samples,
		Patience:     o.Patience,
		Seed:         int64(o.Seed),
		SpreadWeight: o.SpreadWeight,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   format,
		Width:    o.Scale,
		Detailed: o.Detailed,
	}
}

func (o *Options) applyLoggerDefault() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}
