// Package pkg provides the core libraries for Spoke radial visualizations.
//
// # Overview
//
// Spoke projects tabular datasets onto a 2-D radial chart (RadViz): each
// variable becomes a dimensional anchor on the unit circle, and each
// observation is pulled toward the anchors in proportion to its normalized
// values. The pkg directory is organized into these areas:
//
//  1. [dataset] - Tabular input and min-max normalization
//  2. [similarity] - Variable-by-variable similarity/distance matrices
//  3. [radviz] - Anchor placement on the unit circle and observation projection
//  4. [ordering] - Anchor ordering: quality measures, randomized search, clustering
//  5. [chart] - Serialization types for computed charts
//  6. [render] - Graphviz-backed chart rendering (DOT → SVG/PNG)
//  7. [pipeline] - Orchestration (load → normalize → order → project → render)
//  8. [cache], [errors], [observability] - Infrastructure
//
// # Architecture
//
// The typical data flow through Spoke:
//
//	CSV dataset
//	     ↓
//	[dataset] package (parse + normalize columns to [0,1])
//	     ↓
//	[similarity] package (cosine / absolute Pearson matrix)
//	     ↓
//	[ordering] package (hierarchical or randomized-search anchor order)
//	     ↓
//	[radviz] package (anchor layout + point projection)
//	     ↓
//	[render] package (SVG/PNG via Graphviz)
//
// # Quick Start
//
// Most callers should use the [pipeline] package, which wires the stages
// together with caching and logging:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:    "iris.csv",
//	    Ordering: pipeline.OrderingCluster,
//	    Formats:  []string{"svg"},
//	})
package pkg
