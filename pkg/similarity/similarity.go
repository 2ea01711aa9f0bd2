package similarity

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/spokechart/spoke/pkg/dataset"
	"github.com/spokechart/spoke/pkg/errors"
)

// Metric identifies a column similarity metric.
type Metric string

const (
	// MetricCosine is the cosine of the angle between two columns.
	MetricCosine Metric = "cosine"
	// MetricAbsPearson is the absolute sample Pearson correlation.
	MetricAbsPearson Metric = "abs-pearson"
)

// Matrix is a symmetric similarity (or distance) matrix over named
// variables. Entries are in [0,1] or NaN for degenerate variables.
type Matrix struct {
	labels []string
	index  map[string]int
	vals   [][]float64
}

// Compute builds the similarity matrix over all columns of d using the
// given metric. The upper triangle is computed and mirrored so the matrix
// is exactly symmetric. Degenerate columns produce NaN rows and columns
// but never an error.
func Compute(d *dataset.Dataset, metric Metric) (*Matrix, error) {
	if err := errors.ValidateMetric(string(metric)); err != nil {
		return nil, err
	}

	labels := d.Columns()
	cols := make([][]float64, len(labels))
	for i, name := range labels {
		vals, err := d.Column(name)
		if err != nil {
			return nil, err
		}
		cols[i] = vals
	}

	sim := pairSimilarity(metric)

	bad := make([]bool, len(labels))
	for i := range labels {
		bad[i] = degenerate(metric, cols[i])
	}

	m := newMatrix(labels)
	for i := range labels {
		if bad[i] {
			m.vals[i][i] = math.NaN()
		} else {
			m.vals[i][i] = 1
		}
		for j := i + 1; j < len(labels); j++ {
			v := math.NaN()
			if !bad[i] && !bad[j] {
				v = sim(cols[i], cols[j])
			}
			m.vals[i][j] = v
			m.vals[j][i] = v
		}
	}
	return m, nil
}

// FromValues builds a matrix from explicit entries, e.g. similarities
// produced outside this package. vals must be square, match the label
// count, and be symmetric (NaN entries pair with NaN).
func FromValues(labels []string, vals [][]float64) (*Matrix, error) {
	if len(vals) != len(labels) {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"matrix has %d rows for %d labels", len(vals), len(labels))
	}
	m := newMatrix(labels)
	for i, row := range vals {
		if len(row) != len(labels) {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"row %d has %d entries, want %d", i, len(row), len(labels))
		}
		copy(m.vals[i], row)
	}
	for i := range labels {
		for j := i + 1; j < len(labels); j++ {
			a, b := m.vals[i][j], m.vals[j][i]
			if a != b && !(math.IsNaN(a) && math.IsNaN(b)) {
				return nil, errors.New(errors.ErrCodeInvalidInput,
					"matrix is not symmetric at (%d,%d)", i, j)
			}
		}
	}
	return m, nil
}

func newMatrix(labels []string) *Matrix {
	m := &Matrix{
		labels: append([]string(nil), labels...),
		index:  make(map[string]int, len(labels)),
		vals:   make([][]float64, len(labels)),
	}
	for i, name := range labels {
		m.index[name] = i
		m.vals[i] = make([]float64, len(labels))
	}
	return m
}

// Labels returns the variable names in matrix order.
func (m *Matrix) Labels() []string {
	return append([]string(nil), m.labels...)
}

// Len returns the number of variables.
func (m *Matrix) Len() int {
	return len(m.labels)
}

// At returns the entry at row i, column j.
func (m *Matrix) At(i, j int) float64 {
	return m.vals[i][j]
}

// Get looks up the entry for a pair of variable names.
func (m *Matrix) Get(a, b string) (float64, error) {
	i, ok := m.index[a]
	if !ok {
		return 0, errors.New(errors.ErrCodeInvalidColumn, "unknown variable %q", a)
	}
	j, ok := m.index[b]
	if !ok {
		return 0, errors.New(errors.ErrCodeInvalidColumn, "unknown variable %q", b)
	}
	return m.vals[i][j], nil
}

// Index returns the matrix position of a variable name.
func (m *Matrix) Index(name string) (int, bool) {
	i, ok := m.index[name]
	return i, ok
}

// Degenerate returns the names of variables whose row is NaN.
func (m *Matrix) Degenerate() []string {
	var out []string
	for i, name := range m.labels {
		if math.IsNaN(m.vals[i][i]) {
			out = append(out, name)
		}
	}
	return out
}

func pairSimilarity(metric Metric) func(x, y []float64) float64 {
	switch metric {
	case MetricAbsPearson:
		return func(x, y []float64) float64 {
			return math.Abs(stat.Correlation(x, y, nil))
		}
	default:
		return cosine
	}
}

func cosine(x, y []float64) float64 {
	nx := floats.Norm(x, 2)
	ny := floats.Norm(y, 2)
	return floats.Dot(x, y) / (nx * ny)
}

// degenerate reports whether a column cannot produce a finite similarity:
// any non-finite entry, a zero vector under cosine, or zero variance under
// Pearson.
func degenerate(metric Metric, col []float64) bool {
	for _, v := range col {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return true
		}
	}
	switch metric {
	case MetricAbsPearson:
		return stat.Variance(col, nil) == 0
	default:
		return floats.Norm(col, 2) == 0
	}
}
