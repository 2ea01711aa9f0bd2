package ordering_test

import (
	"context"
	"fmt"

	"github.com/spokechart/spoke/pkg/dataset"
	"github.com/spokechart/spoke/pkg/ordering"
	"github.com/spokechart/spoke/pkg/similarity"
)

// Rearrange four variables so the two correlated pairs sit together.
func ExampleOptimize() {
	d, _ := dataset.New([]string{"a", "b", "c", "d"}, map[string][]float64{
		"a": {1, 0},
		"b": {1, 0},
		"c": {0, 1},
		"d": {0, 1},
	})
	sim, _ := similarity.Compute(d, similarity.MetricCosine)

	scorer := &ordering.IndependentScorer{Sim: sim}
	trace, _ := ordering.Optimize(context.Background(), scorer, []string{"a", "c", "b", "d"}, ordering.Options{
		MaxIterations: 50,
		Samples:       10,
		Seed:          1,
	})

	fmt.Printf("%.1f\n", trace.Best().Score)
	// Output:
	// 1.0
}

func ExampleClusterOrder() {
	dist, _ := similarity.FromValues([]string{"A", "B", "C"}, [][]float64{
		{0, 0.1, 0.9},
		{0.1, 0, 0.8},
		{0.9, 0.8, 0},
	})

	order, _ := ordering.ClusterOrder(dist)
	fmt.Println(order)
	// Output:
	// [A B C]
}
