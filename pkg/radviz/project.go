package radviz

import (
	"math"

	"github.com/spokechart/spoke/pkg/dataset"
)

// Point is one projected observation.
type Point struct {
	X, Y  float64
	Valid bool   // false when the observation could not be projected
	Label string // passthrough label from the dataset, "" when absent
}

// Projection is the result of projecting a dataset onto a set of anchors.
type Projection struct {
	Anchors []Anchor
	Points  []Point
	Invalid int // number of invalid points
}

// AllInvalid reports whether no observation could be projected. This
// usually signals a configuration error upstream, e.g. the wrong columns
// were selected as anchors.
func (p *Projection) AllInvalid() bool {
	return len(p.Points) > 0 && p.Invalid == len(p.Points)
}

// Project maps each observation of d onto the plane spanned by anchors.
// Only the anchor variables are consulted; any other columns of d are
// ignored. For observation x with s = Σ_j x_j over the anchor variables,
// the point is Σ_j (x_j/s)·a_j - a convex combination of unit-circle
// positions when the values are non-negative, so every valid point has
// norm ≤ 1.
//
// An observation is invalid when s == 0 (a 0/0 projection) or when any
// consulted value is not finite. Invalid points keep their slot with NaN
// coordinates and Valid == false rather than being dropped.
//
// Project is purely functional: it mutates neither d nor anchors.
func Project(d *dataset.Dataset, anchors []Anchor) (*Projection, error) {
	if len(anchors) < 2 {
		return nil, ErrTooFewAnchors
	}

	cols := make([][]float64, len(anchors))
	for i, a := range anchors {
		vals, err := d.Column(a.Label)
		if err != nil {
			return nil, err
		}
		cols[i] = vals
	}

	out := &Projection{
		Anchors: anchors,
		Points:  make([]Point, d.Rows()),
	}

	for row := 0; row < d.Rows(); row++ {
		var sum float64
		finite := true
		for _, vals := range cols {
			v := vals[row]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				finite = false
				break
			}
			sum += v
		}

		if !finite || sum == 0 {
			out.Points[row] = Point{X: math.NaN(), Y: math.NaN(), Label: d.Label(row)}
			out.Invalid++
			continue
		}

		var x, y float64
		for j, vals := range cols {
			w := vals[row] / sum
			x += w * anchors[j].X
			y += w * anchors[j].Y
		}
		out.Points[row] = Point{X: x, Y: y, Valid: true, Label: d.Label(row)}
	}

	return out, nil
}
