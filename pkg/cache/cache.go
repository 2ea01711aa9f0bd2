// Package cache provides caching for computed charts, optimization traces,
// and rendered artifacts.
//
// Projection itself is cheap, but anchor-ordering optimization and Graphviz
// rendering are not. Results are keyed by the dataset content hash plus the
// options that influenced the computation, so re-running the same command on
// an unchanged dataset is a cache hit.
//
// Backends:
//   - FileCache: XDG cache directory, the CLI default
//   - RedisCache: shared cache for the preview server
//   - MongoCache: durable cache, reuses the chart's bson tags
//   - NullCache: disables caching
package cache

import (
	"context"
	"time"
)

// Cache is the storage interface shared by all backends.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present (a miss is not an error).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}

// TTLs per entry kind. Charts and traces derive from dataset content and
// options, so they only go stale when inputs change; the TTLs exist to
// bound disk usage, not for correctness.
const (
	TTLChart    = 30 * 24 * time.Hour
	TTLTrace    = 30 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// =============================================================================
// Keyer - Cache Key Construction
// =============================================================================

// ChartKeyOpts are the options that influence a computed chart.
type ChartKeyOpts struct {
	Metric   string `json:"metric"`
	Ordering string `json:"ordering"`
	Columns  string `json:"columns"`
}

// TraceKeyOpts are the options that influence an optimization trace.
type TraceKeyOpts struct {
	Metric       string  `json:"metric"`
	Measure      string  `json:"measure"`
	Iterations   int     `json:"iterations"`
	Samples      int     `json:"samples"`
	Patience     int     `json:"patience,omitempty"`
	Seed         int64   `json:"seed"`
	SpreadWeight float64 `json:"spread_weight,omitempty"`
}

// ArtifactKeyOpts are the options that influence a rendered artifact.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Detailed bool    `json:"detailed,omitempty"`
}

// Keyer constructs cache keys from computation inputs.
// Implementations must be deterministic: the same inputs always produce
// the same key.
type Keyer interface {
	// ChartKey generates a key for a computed chart.
	ChartKey(datasetHash string, opts ChartKeyOpts) string

	// TraceKey generates a key for an optimization trace.
	TraceKey(datasetHash string, opts TraceKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact.
	ArtifactKey(chartHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key scheme: prefix + SHA-256 of the inputs.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ChartKey generates a key for a computed chart.
func (k *DefaultKeyer) ChartKey(datasetHash string, opts ChartKeyOpts) string {
	return hashKey("chart", datasetHash, opts)
}

// TraceKey generates a key for an optimization trace.
func (k *DefaultKeyer) TraceKey(datasetHash string, opts TraceKeyOpts) string {
	return hashKey("trace", datasetHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(chartHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", chartHash, opts)
}
