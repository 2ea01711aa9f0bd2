package dataset

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"

	"github.com/spokechart/spoke/pkg/errors"
)

// Dataset is a rectangular table of named numeric columns over observations.
// The zero value is not usable - construct with [New] or [ReadCSV].
// Datasets are immutable after construction; transformations return copies.
type Dataset struct {
	columns []string
	values  map[string][]float64
	labels  []string // optional per-row passthrough labels, nil when absent
	rows    int
}

// New creates a dataset from column names and per-column value slices.
// All columns must have the same length. Column order is preserved.
func New(columns []string, values map[string][]float64) (*Dataset, error) {
	if err := errors.ValidateColumns(columns); err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidDataset, "dataset has no columns")
	}

	rows := -1
	vals := make(map[string][]float64, len(columns))
	for _, col := range columns {
		v, ok := values[col]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidColumn, "missing values for column %q", col)
		}
		if rows == -1 {
			rows = len(v)
		} else if len(v) != rows {
			return nil, errors.New(errors.ErrCodeInvalidDataset,
				"column %q has %d rows, want %d", col, len(v), rows)
		}
		vals[col] = slices.Clone(v)
	}

	return &Dataset{
		columns: slices.Clone(columns),
		values:  vals,
		rows:    rows,
	}, nil
}

// WithLabels returns a copy of the dataset with per-row passthrough labels.
// The label slice must match the row count.
func (d *Dataset) WithLabels(labels []string) (*Dataset, error) {
	if len(labels) != d.rows {
		return nil, errors.New(errors.ErrCodeInvalidDataset,
			"have %d labels for %d rows", len(labels), d.rows)
	}
	out := d.clone()
	out.labels = slices.Clone(labels)
	return out, nil
}

// Columns returns the column names in declaration order.
// The returned slice must not be modified.
func (d *Dataset) Columns() []string { return d.columns }

// Rows returns the number of observations.
func (d *Dataset) Rows() int { return d.rows }

// Column returns the values of the named column, one per observation.
// The returned slice must not be modified.
func (d *Dataset) Column(name string) ([]float64, error) {
	v, ok := d.values[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidColumn, "unknown column: %q", name)
	}
	return v, nil
}

// Value returns the value at (row, column). Panics on an unknown column or
// out-of-range row; callers iterate over Columns() and Rows().
func (d *Dataset) Value(row int, column string) float64 {
	return d.values[column][row]
}

// Labels returns the per-row passthrough labels, or nil when none were set.
// The returned slice must not be modified.
func (d *Dataset) Labels() []string { return d.labels }

// Label returns the passthrough label for a row, or "" when labels are absent.
func (d *Dataset) Label(row int) string {
	if d.labels == nil {
		return ""
	}
	return d.labels[row]
}

// Select returns a dataset restricted to the named columns, in the given
// order. Labels are carried over.
func (d *Dataset) Select(columns []string) (*Dataset, error) {
	if err := errors.ValidateColumns(columns); err != nil {
		return nil, err
	}
	vals := make(map[string][]float64, len(columns))
	for _, col := range columns {
		v, ok := d.values[col]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidColumn, "unknown column: %q", col)
		}
		vals[col] = v
	}
	out, err := New(columns, vals)
	if err != nil {
		return nil, err
	}
	out.labels = d.labels
	return out, nil
}

// Hash returns a stable content hash of the dataset, used for cache keys.
// NaN values hash identically regardless of payload bits.
func (d *Dataset) Hash() string {
	type hashable struct {
		Columns []string            `json:"columns"`
		Values  map[string][]string `json:"values"`
		Labels  []string            `json:"labels,omitempty"`
	}
	h := hashable{
		Columns: d.columns,
		Values:  make(map[string][]string, len(d.columns)),
		Labels:  d.labels,
	}
	for _, col := range d.columns {
		vals := make([]string, d.rows)
		for i, v := range d.values[col] {
			if math.IsNaN(v) {
				vals[i] = "NaN"
			} else {
				vals[i] = fmt.Sprintf("%g", v)
			}
		}
		h.Values[col] = vals
	}
	data, _ := json.Marshal(h)
	return hashString(data)
}

func (d *Dataset) clone() *Dataset {
	vals := make(map[string][]float64, len(d.columns))
	for col, v := range d.values {
		vals[col] = slices.Clone(v)
	}
	return &Dataset{
		columns: slices.Clone(d.columns),
		values:  vals,
		labels:  slices.Clone(d.labels),
		rows:    d.rows,
	}
}
