// Package ordering decides the arrangement of anchor variables around the
// circle.
//
// # The Ordering Problem
//
// A radial projection is only as readable as its anchor arrangement: when
// similar variables sit next to each other, observations dominated by them
// cluster instead of smearing across the plot. Finding the arrangement that
// maximizes a placement quality measure is a permutation problem, so this
// package works with heuristics rather than exhaustive search.
//
// Three strategies are provided:
//
//   - [ClusterOrder]: deterministic average-linkage clustering over the
//     distance matrix, reading the leaf order off the dendrogram
//   - [Optimize] with an [IndependentScorer]: randomized local search over
//     pair swaps, judging orderings by similarity-weighted angular proximity
//     alone
//   - [Optimize] with a [DependentScorer]: the same search, additionally
//     rewarding orderings that spread the projected points apart
//
// The search is seeded and fully deterministic: the same matrix, options and
// seed always produce the same trace, worker parallelism included. Scores
// along a trace never decrease.
package ordering
