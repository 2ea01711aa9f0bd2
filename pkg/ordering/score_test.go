package ordering

import (
	"math"
	"testing"

	"github.com/spokechart/spoke/pkg/dataset"
	"github.com/spokechart/spoke/pkg/errors"
	"github.com/spokechart/spoke/pkg/similarity"
)

const tol = 1e-9

func mustDataset(t *testing.T, columns []string, values map[string][]float64) *dataset.Dataset {
	t.Helper()
	d, err := dataset.New(columns, values)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func mustMatrix(t *testing.T, columns []string, values map[string][]float64, metric similarity.Metric) *similarity.Matrix {
	t.Helper()
	m, err := similarity.Compute(mustDataset(t, columns, values), metric)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

// uniformMatrix builds a dataset whose columns are pairwise equally
// similar under cosine, by construction: each column is a base vector plus
// a distinct orthogonal unit component.
func uniformMatrix(t *testing.T) *similarity.Matrix {
	t.Helper()
	cols := []string{"a", "b", "c", "d"}
	values := map[string][]float64{
		"a": {1, 1, 0, 0, 0},
		"b": {1, 0, 1, 0, 0},
		"c": {1, 0, 0, 1, 0},
		"d": {1, 0, 0, 0, 1},
	}
	return mustMatrix(t, cols, values, similarity.MetricCosine)
}

func TestIndependentScoreRotationInvariant(t *testing.T) {
	m := uniformMatrix(t)
	s := &IndependentScorer{Sim: m}

	base, err := s.Score([]string{"a", "b", "c", "d"})
	if err != nil {
		t.Fatal(err)
	}

	rotations := [][]string{
		{"b", "c", "d", "a"},
		{"c", "d", "a", "b"},
		{"d", "a", "b", "c"},
	}
	for _, r := range rotations {
		got, err := s.Score(r)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(got-base) > tol {
			t.Errorf("score(%v) = %v, want %v (rotation invariance)", r, got, base)
		}
	}
}

func TestIndependentScoreUniformSimilarity(t *testing.T) {
	// When every pair is equally similar, every arrangement of the circle
	// has the same pairwise angular distances up to relabeling, so all
	// permutations score identically.
	m := uniformMatrix(t)
	s := &IndependentScorer{Sim: m}

	base, err := s.Score([]string{"a", "b", "c", "d"})
	if err != nil {
		t.Fatal(err)
	}
	got, err := s.Score([]string{"a", "c", "b", "d"})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-base) > tol {
		t.Errorf("uniform-similarity scores differ: %v vs %v", got, base)
	}
}

func TestIndependentScorePrefersSimilarNeighbors(t *testing.T) {
	// a and b are identical, c and d are identical, the two groups are
	// orthogonal. Keeping the twins adjacent must beat interleaving them.
	m := mustMatrix(t, []string{"a", "b", "c", "d"}, map[string][]float64{
		"a": {1, 0},
		"b": {1, 0},
		"c": {0, 1},
		"d": {0, 1},
	}, similarity.MetricCosine)
	s := &IndependentScorer{Sim: m}

	grouped, err := s.Score([]string{"a", "b", "c", "d"})
	if err != nil {
		t.Fatal(err)
	}
	interleaved, err := s.Score([]string{"a", "c", "b", "d"})
	if err != nil {
		t.Fatal(err)
	}
	if grouped <= interleaved {
		t.Errorf("grouped score %v should beat interleaved %v", grouped, interleaved)
	}
}

func TestIndependentScoreSkipsDegenerate(t *testing.T) {
	m := mustMatrix(t, []string{"a", "b", "flat"}, map[string][]float64{
		"a":    {1, 2, 3},
		"b":    {3, 2, 1},
		"flat": {1, 1, 1},
	}, similarity.MetricAbsPearson)
	s := &IndependentScorer{Sim: m}

	got, err := s.Score([]string{"a", "flat", "b"})
	if err != nil {
		t.Fatal(err)
	}
	if math.IsNaN(got) {
		t.Error("degenerate variable must not poison the score")
	}
}

func TestScoreRejectsBadOrderings(t *testing.T) {
	m := uniformMatrix(t)
	s := &IndependentScorer{Sim: m}

	tests := []struct {
		name     string
		ordering []string
	}{
		{"too short", []string{"a", "b"}},
		{"unknown variable", []string{"a", "b", "c", "z"}},
		{"duplicate", []string{"a", "b", "c", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Score(tt.ordering)
			if err == nil {
				t.Fatal("want error")
			}
			if errors.GetCode(err) != errors.ErrCodeInvalidOrdering {
				t.Errorf("code = %v, want ErrCodeInvalidOrdering", errors.GetCode(err))
			}
		})
	}
}

func TestDependentScoreAddsSpread(t *testing.T) {
	cols := []string{"a", "b", "c", "d"}
	values := map[string][]float64{
		"a": {1, 0, 0, 0},
		"b": {0, 1, 0, 0},
		"c": {0, 0, 1, 0},
		"d": {0, 0, 0, 1},
	}
	d := mustDataset(t, cols, values)
	m := mustMatrix(t, cols, values, similarity.MetricCosine)

	indep := &IndependentScorer{Sim: m}
	dep := &DependentScorer{Sim: m, Data: d, SpreadWeight: 1}

	ordering := []string{"a", "b", "c", "d"}
	base, err := indep.Score(ordering)
	if err != nil {
		t.Fatal(err)
	}
	got, err := dep.Score(ordering)
	if err != nil {
		t.Fatal(err)
	}

	// One-hot rows project straight onto their anchors: spread is the mean
	// squared distance of the four unit-circle corners from the origin.
	if math.Abs(got-(base+1)) > tol {
		t.Errorf("dependent score = %v, want %v", got, base+1)
	}
}

func TestDependentScoreIgnoresInvalidPoints(t *testing.T) {
	cols := []string{"a", "b"}
	values := map[string][]float64{
		"a": {1, 0, 0},
		"b": {0, 1, 0}, // third row sums to zero
	}
	d := mustDataset(t, cols, values)
	m := mustMatrix(t, cols, values, similarity.MetricCosine)

	dep := &DependentScorer{Sim: m, Data: d, SpreadWeight: 1}
	got, err := dep.Score(cols)
	if err != nil {
		t.Fatal(err)
	}
	if math.IsNaN(got) {
		t.Error("invalid observations must not poison the score")
	}
}
