package ordering

import (
	"math"

	"github.com/spokechart/spoke/pkg/dataset"
	"github.com/spokechart/spoke/pkg/errors"
	"github.com/spokechart/spoke/pkg/radviz"
	"github.com/spokechart/spoke/pkg/similarity"
)

// Measure identifies a placement quality measure.
type Measure string

const (
	// MeasureIndependent judges an ordering by its similarity structure
	// alone, ignoring the data rows.
	MeasureIndependent Measure = "independent"
	// MeasureDependent additionally rewards orderings that spread the
	// projected observations apart.
	MeasureDependent Measure = "dependent"
)

// DefaultSpreadWeight balances the spread term of the dependent measure
// against the angular term.
const DefaultSpreadWeight = 1.0

// Scorer assigns a quality score to an anchor ordering. Higher is better.
// Implementations must be pure: the same ordering always yields the same
// score, and concurrent calls must be safe.
type Scorer interface {
	Score(ordering []string) (float64, error)
}

// IndependentScorer scores an ordering by how close similar variables sit
// on the circle. Each pair contributes sim(i,j) · (1+cos Δθ)/2, so a fully
// similar pair placed at the same angle contributes 1 and the same pair
// placed opposite contributes 0. The measure only depends on pairwise
// angular distances, which makes it invariant under rotation of the whole
// ordering.
type IndependentScorer struct {
	Sim *similarity.Matrix
}

// Score implements [Scorer]. Pairs with NaN similarity are skipped, so
// degenerate variables neither help nor hurt an ordering.
func (s *IndependentScorer) Score(ordering []string) (float64, error) {
	return angularScore(s.Sim, ordering)
}

// DependentScorer extends the angular measure with a data-dependent spread
// term: the mean squared distance of the valid projected points from their
// centroid, weighted by SpreadWeight. Orderings that collapse all points
// into the center score lower than orderings that separate them.
type DependentScorer struct {
	Sim          *similarity.Matrix
	Data         *dataset.Dataset
	SpreadWeight float64
}

// Score implements [Scorer].
func (s *DependentScorer) Score(ordering []string) (float64, error) {
	base, err := angularScore(s.Sim, ordering)
	if err != nil {
		return 0, err
	}

	anchors, err := radviz.Layout(ordering)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidOrdering, err, "ordering does not form a valid layout")
	}
	proj, err := radviz.Project(s.Data, anchors)
	if err != nil {
		return 0, err
	}

	weight := s.SpreadWeight
	if weight == 0 {
		weight = DefaultSpreadWeight
	}
	return base + weight*spread(proj.Points), nil
}

// angularScore sums sim(i,j)·(1+cos Δθ)/2 over all pairs, with anchors at
// angle 2πk/n for position k.
func angularScore(m *similarity.Matrix, ordering []string) (float64, error) {
	idx, err := matrixPositions(m, ordering)
	if err != nil {
		return 0, err
	}

	n := len(ordering)
	score := 0.0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			sim := m.At(idx[i], idx[j])
			if math.IsNaN(sim) {
				continue
			}
			delta := 2 * math.Pi * float64(j-i) / float64(n)
			score += sim * (1 + math.Cos(delta)) / 2
		}
	}
	return score, nil
}

// matrixPositions resolves an ordering to matrix indices, rejecting
// orderings that are not a permutation of the matrix variables.
func matrixPositions(m *similarity.Matrix, ordering []string) ([]int, error) {
	if len(ordering) != m.Len() {
		return nil, errors.New(errors.ErrCodeInvalidOrdering,
			"ordering has %d variables, matrix has %d", len(ordering), m.Len())
	}
	idx := make([]int, len(ordering))
	seen := make(map[string]bool, len(ordering))
	for k, name := range ordering {
		i, ok := m.Index(name)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidOrdering,
				"ordering references unknown variable %q", name)
		}
		if seen[name] {
			return nil, errors.New(errors.ErrCodeInvalidOrdering,
				"ordering repeats variable %q", name)
		}
		seen[name] = true
		idx[k] = i
	}
	return idx, nil
}

// spread is the mean squared distance of the valid points from their
// centroid. Invalid points are excluded; a projection with fewer than two
// valid points has zero spread.
func spread(points []radviz.Point) float64 {
	var cx, cy float64
	n := 0
	for _, p := range points {
		if !p.Valid {
			continue
		}
		cx += p.X
		cy += p.Y
		n++
	}
	if n < 2 {
		return 0
	}
	cx /= float64(n)
	cy /= float64(n)

	var sum float64
	for _, p := range points {
		if !p.Valid {
			continue
		}
		dx, dy := p.X-cx, p.Y-cy
		sum += dx*dx + dy*dy
	}
	return sum / float64(n)
}
