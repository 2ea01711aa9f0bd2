package similarity

import "math"

// Distances converts a similarity matrix into a distance matrix via
// d = 1 - |s|. The diagonal becomes exactly 0 for non-degenerate
// variables; NaN entries stay NaN.
func (m *Matrix) Distances() *Matrix {
	out := newMatrix(m.labels)
	for i := range m.vals {
		for j := range m.vals[i] {
			v := m.vals[i][j]
			if math.IsNaN(v) {
				out.vals[i][j] = v
				continue
			}
			out.vals[i][j] = 1 - math.Abs(v)
		}
	}
	return out
}
