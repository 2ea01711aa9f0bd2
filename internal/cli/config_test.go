package cli

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/spokechart/spoke/pkg/pipeline"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[compute]
metric = "abs-pearson"
ordering = "dependent"
iterations = 250
seed = 7

[render]
scale = 300.0
formats = ["svg", "png"]

[cache]
backend = "redis"

[cache.redis]
addr = "localhost:6379"
db = 2

[serve]
addr = "0.0.0.0:9000"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Compute.Metric != "abs-pearson" {
		t.Errorf("metric = %q", cfg.Compute.Metric)
	}
	if cfg.Compute.Iterations != 250 {
		t.Errorf("iterations = %d", cfg.Compute.Iterations)
	}
	if cfg.Compute.Seed != 7 {
		t.Errorf("seed = %d", cfg.Compute.Seed)
	}
	if cfg.Render.Scale != 300.0 {
		t.Errorf("scale = %v", cfg.Render.Scale)
	}
	if len(cfg.Render.Formats) != 2 {
		t.Errorf("formats = %v", cfg.Render.Formats)
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.Redis.DB != 2 {
		t.Errorf("cache config = %+v", cfg.Cache)
	}
	if cfg.Serve.Addr != "0.0.0.0:9000" {
		t.Errorf("serve addr = %q", cfg.Serve.Addr)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := writeConfig(t, `[compute`)
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadConfigOrDefaultMissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := LoadConfigOrDefault()
	if !reflect.DeepEqual(cfg, Config{}) {
		t.Errorf("expected zero config, got %+v", cfg)
	}
}

func TestConfigApplyFlagsWin(t *testing.T) {
	cfg := Config{
		Compute: ComputeConfig{Metric: "abs-pearson", Iterations: 500, Seed: 9},
		Render:  RenderConfig{Scale: 300, Formats: []string{"png"}},
	}

	opts := pipeline.Options{
		Metric:     "cosine", // set by flag, must survive
		Iterations: 10,
	}
	cfg.Apply(&opts)

	if opts.Metric != "cosine" {
		t.Errorf("flag metric overridden: %q", opts.Metric)
	}
	if opts.Iterations != 10 {
		t.Errorf("flag iterations overridden: %d", opts.Iterations)
	}
	if opts.Seed != 9 {
		t.Errorf("config seed not applied: %d", opts.Seed)
	}
	if opts.Scale != 300 {
		t.Errorf("config scale not applied: %v", opts.Scale)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != "png" {
		t.Errorf("config formats not applied: %v", opts.Formats)
	}
}

func TestConfigApplyEmptyLeavesOptions(t *testing.T) {
	var cfg Config
	opts := pipeline.Options{Metric: "cosine", Formats: []string{"svg"}}
	cfg.Apply(&opts)

	if opts.Metric != "cosine" || len(opts.Formats) != 1 {
		t.Errorf("empty config changed options: %+v", opts)
	}
}

func TestConfigApplyEquivalence(t *testing.T) {
	// LoadConfigOrDefault with a real file must behave like LoadConfig.
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	spokeDir := filepath.Join(dir, "spoke")
	if err := os.MkdirAll(spokeDir, 0755); err != nil {
		t.Fatal(err)
	}
	content := "[compute]\nordering = \"cluster\"\n"
	if err := os.WriteFile(filepath.Join(spokeDir, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := LoadConfigOrDefault()
	if cfg.Compute.Ordering != "cluster" {
		t.Errorf("ordering = %q, want cluster", cfg.Compute.Ordering)
	}
}
