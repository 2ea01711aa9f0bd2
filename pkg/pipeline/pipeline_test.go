package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spokechart/spoke/pkg/errors"
)

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Input: "data.csv"}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Valid options should pass: %v", err)
	}

	if opts.Metric != DefaultMetric {
		t.Errorf("Metric should be %s, got %s", DefaultMetric, opts.Metric)
	}
	if opts.Ordering != DefaultOrdering {
		t.Errorf("Ordering should be %s, got %s", DefaultOrdering, opts.Ordering)
	}
	if opts.Iterations != DefaultIterations {
		t.Errorf("Iterations should be %d, got %d", DefaultIterations, opts.Iterations)
	}
	if opts.Seed != DefaultSeed {
		t.Errorf("Seed should be %d, got %d", DefaultSeed, opts.Seed)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"missing input", Options{}},
		{"bad metric", Options{Input: "x.csv", Metric: "euclidean"}},
		{"bad ordering", Options{Input: "x.csv", Ordering: "alphabetical"}},
		{"bad format", Options{Input: "x.csv", Formats: []string{"pdf"}}},
		{"duplicate columns", Options{Input: "x.csv", Columns: []string{"a", "a"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.opts.ValidateAndSetDefaults(); err == nil {
				t.Error("want error")
			}
		})
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Input: "data.csv"}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}
	originalSeed := opts.Seed
	originalFormats := len(opts.Formats)

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}
	if opts.Seed != originalSeed || len(opts.Formats) != originalFormats {
		t.Error("defaults changed on second call")
	}
}

func TestOptionsNeedsSearch(t *testing.T) {
	tests := []struct {
		ordering string
		want     bool
	}{
		{errors.OrderingIndependent, true},
		{errors.OrderingDependent, true},
		{errors.OrderingCluster, false},
		{errors.OrderingNone, false},
	}
	for _, tt := range tests {
		opts := Options{Ordering: tt.ordering}
		if got := opts.NeedsSearch(); got != tt.want {
			t.Errorf("NeedsSearch(%s) = %v, want %v", tt.ordering, got, tt.want)
		}
	}
}

func writeTestCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	csv := "species,sepal,petal,stem\n" +
		"setosa,1.0,0.2,0.3\n" +
		"setosa,0.9,0.3,0.2\n" +
		"virginica,0.2,1.0,0.9\n" +
		"virginica,0.3,0.9,1.0\n"
	if err := os.WriteFile(path, []byte(csv), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExecute(t *testing.T) {
	runner := NewRunner(nil, nil, nil)

	result, err := runner.Execute(context.Background(), Options{
		Input:       writeTestCSV(t),
		LabelColumn: "species",
		Ordering:    errors.OrderingIndependent,
		Seed:        7,
		Formats:     []string{FormatDOT, FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Stats.Rows != 4 || result.Stats.Variables != 3 {
		t.Errorf("stats = %+v", result.Stats)
	}
	if len(result.Chart.Anchors) != 3 {
		t.Errorf("anchors = %d, want 3", len(result.Chart.Anchors))
	}
	if result.Chart.Trace == nil {
		t.Error("search ordering should attach a trace")
	}
	if result.ChartHash == "" {
		t.Error("chart hash missing")
	}

	dot, ok := result.Artifacts[FormatDOT]
	if !ok || !strings.Contains(string(dot), "layout=neato") {
		t.Errorf("dot artifact missing or malformed")
	}
	if _, ok := result.Artifacts[FormatJSON]; !ok {
		t.Error("json artifact missing")
	}
}

func TestExecuteDeterministic(t *testing.T) {
	path := writeTestCSV(t)
	runner := NewRunner(nil, nil, nil)

	opts := Options{
		Input:       path,
		LabelColumn: "species",
		Ordering:    errors.OrderingIndependent,
		Seed:        11,
		Formats:     []string{FormatJSON},
	}
	first, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := runner.Execute(context.Background(), Options{
		Input:       path,
		LabelColumn: "species",
		Ordering:    errors.OrderingIndependent,
		Seed:        11,
		Formats:     []string{FormatJSON},
	})
	if err != nil {
		t.Fatal(err)
	}

	if got, want := second.Chart.AnchorOrder(), first.Chart.AnchorOrder(); !equalStrings(got, want) {
		t.Errorf("orderings differ across runs: %v vs %v", got, want)
	}
}

func TestExecuteClusterOrdering(t *testing.T) {
	runner := NewRunner(nil, nil, nil)

	result, err := runner.Execute(context.Background(), Options{
		Input:       writeTestCSV(t),
		LabelColumn: "species",
		Ordering:    errors.OrderingCluster,
		Formats:     []string{FormatJSON},
	})
	if err != nil {
		t.Fatal(err)
	}
	if result.Chart.Trace != nil {
		t.Error("cluster ordering should not attach a trace")
	}
	// petal and stem are near-identical columns; clustering keeps them adjacent
	order := result.Chart.AnchorOrder()
	pi, si := indexOf(order, "petal"), indexOf(order, "stem")
	if pi < 0 || si < 0 || abs(pi-si) != 1 {
		t.Errorf("order = %v, want petal and stem adjacent", order)
	}
}

func TestLoadUnknownColumn(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	_, err := runner.Load(context.Background(), Options{
		Input:   writeTestCSV(t),
		Columns: []string{"sepal", "missing"},
	})
	if err == nil {
		t.Error("unknown column selection should fail")
	}
}

func TestLoadMissingFile(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	_, err := runner.Load(context.Background(), Options{Input: filepath.Join(t.TempDir(), "nope.csv")})
	if errors.GetCode(err) != errors.ErrCodeFileNotFound {
		t.Errorf("code = %v, want ErrCodeFileNotFound", errors.GetCode(err))
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func indexOf(s []string, v string) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
