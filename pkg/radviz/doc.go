// Package radviz implements the core RadViz transform: dimensional anchors
// equally spaced on the unit circle, and projection of normalized
// observations onto the 2-D plane.
//
// # Anchors
//
// [Layout] places one anchor per variable label at angle 2πi/n, with the
// first anchor at angle 0 on the positive x-axis. Anchor positions sum to
// the zero vector for any n ≥ 2, which keeps projections centered. Each
// anchor also carries a small text-offset hint so renderers can place
// labels legibly outside the circle.
//
// # Projection
//
// [Project] maps each observation to the convex combination of anchor
// positions weighted by the observation's normalized values: with
// s = Σ_j x_j, the point is Σ_j (x_j/s)·a_j. Every valid point therefore
// lies inside the unit circle. Observations whose values sum to zero, or
// that contain non-finite values, produce invalid points carrying NaN
// coordinates - they are marked, not dropped, so downstream consumers can
// filter explicitly.
package radviz
