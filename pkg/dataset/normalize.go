package dataset

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

var nan = math.NaN()

// Normalize rescales every column independently to the unit interval:
// v -> (v - min) / (max - min), so the column minimum maps to exactly 0
// and the maximum to exactly 1.
//
// Columns with zero range (max == min, including all-NaN columns) are
// degenerate: their normalized values are all NaN and their names are
// returned in declaration order. Degeneracy is data, not an error - the
// rest of the dataset normalizes as usual. NaN inputs stay NaN.
func (d *Dataset) Normalize() (*Dataset, []string) {
	out := d.clone()
	var degenerate []string

	for _, col := range out.columns {
		vals := out.values[col]
		lo, hi := columnRange(vals)
		if !(hi > lo) { // zero range or no finite values
			degenerate = append(degenerate, col)
			for i := range vals {
				vals[i] = nan
			}
			continue
		}

		// Divide rather than multiply by a reciprocal so the column
		// maximum lands on exactly 1.0.
		span := hi - lo
		floats.AddConst(-lo, vals)
		for i := range vals {
			vals[i] /= span
		}
	}

	return out, degenerate
}

// columnRange returns the min and max over the finite values of a column.
// NaN entries are skipped; a column with no finite values returns (NaN, NaN).
func columnRange(vals []float64) (lo, hi float64) {
	lo, hi = nan, nan
	for _, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(lo) || v < lo {
			lo = v
		}
		if math.IsNaN(hi) || v > hi {
			hi = v
		}
	}
	return lo, hi
}
