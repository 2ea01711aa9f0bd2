// Package similarity computes variable-by-variable similarity and distance
// matrices used to drive anchor ordering.
//
// Two metrics are supported:
//
//   - [MetricCosine]: cosine similarity between columns treated as vectors
//     across observations
//   - [MetricAbsPearson]: absolute sample Pearson correlation, mapping to [0,1]
//
// Matrices are symmetric by construction - the upper triangle is computed
// and mirrored, so matrix[i][j] == matrix[j][i] holds exactly, with no
// floating-point asymmetry. The diagonal is exactly 1 for non-degenerate
// variables.
//
// A degenerate variable (zero vector for cosine, zero variance for Pearson,
// or any NaN entries) yields NaN in its whole row and column, including the
// diagonal. Degeneracy is data, not an error: the rest of the matrix is
// still computed, mirroring the warn-and-continue behavior of the
// normalization step.
package similarity
