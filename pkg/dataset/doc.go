// Package dataset provides tabular input handling and min-max normalization
// for radial chart projection.
//
// # Overview
//
// A [Dataset] is a rectangular table: named numeric columns (variables) over
// an ordered sequence of observations (rows), plus an optional label column
// that is carried through untouched for downstream coloring. Datasets are
// read-only after construction; normalization produces a new Dataset.
//
// # Normalization
//
// [Dataset.Normalize] rescales every column independently to [0,1] so the
// column minimum maps to exactly 0 and the maximum to exactly 1. A column
// with zero range (max == min) is degenerate: its normalized values are all
// NaN, and the column is reported in the returned degenerate list rather
// than raised as an error. NaN input values propagate unchanged. This
// warn-and-continue policy lets a single flat column coexist with an
// otherwise useful dataset; strict callers can reject on a non-empty
// degenerate list.
//
// # CSV Input
//
// [ReadCSV] parses a header row of column names followed by numeric rows.
// Empty cells and the literals "nan"/"NaN" become NaN. One column may be
// designated as the label column; its values are never parsed or inspected.
package dataset
