package ordering

import (
	"math"

	"github.com/spokechart/spoke/pkg/errors"
	"github.com/spokechart/spoke/pkg/similarity"
)

// ClusterOrder arranges variables by average-linkage agglomerative
// clustering over a distance matrix and returns the dendrogram leaf order.
// Variables that end up in the same subtree sit next to each other, which
// makes the result a cheap, fully deterministic alternative to [Optimize].
//
// The closest pair of clusters merges first; among equally distant pairs
// the one with the lowest indices wins, so the result does not depend on
// map iteration or scheduling. NaN distances (degenerate variables) sort
// after every finite distance, pushing degenerate variables to the final
// merges.
func ClusterOrder(dist *similarity.Matrix) ([]string, error) {
	labels := dist.Labels()
	if len(labels) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "empty distance matrix")
	}

	clusters := make([][]int, len(labels))
	for i := range clusters {
		clusters[i] = []int{i}
	}

	for len(clusters) > 1 {
		bestI, bestJ := -1, -1
		best := math.Inf(1)
		for i := 0; i < len(clusters); i++ {
			for j := i + 1; j < len(clusters); j++ {
				if d := linkage(dist, clusters[i], clusters[j]); d < best {
					bestI, bestJ = i, j
					best = d
				}
			}
		}
		if bestI < 0 {
			// All remaining distances are NaN; merge in index order.
			bestI, bestJ = 0, 1
		}

		clusters[bestI] = append(clusters[bestI], clusters[bestJ]...)
		clusters = append(clusters[:bestJ], clusters[bestJ+1:]...)
	}

	out := make([]string, 0, len(labels))
	for _, leaf := range clusters[0] {
		out = append(out, labels[leaf])
	}
	return out, nil
}

// linkage is the average pairwise distance between two clusters. Any NaN
// member distance makes the whole linkage NaN.
func linkage(dist *similarity.Matrix, a, b []int) float64 {
	var sum float64
	for _, i := range a {
		for _, j := range b {
			sum += dist.At(i, j)
		}
	}
	return sum / float64(len(a)*len(b))
}
