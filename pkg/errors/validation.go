package errors

import (
	"strings"
	"unicode"
)

// Supported similarity metric names.
const (
	MetricCosine     = "cosine"
	MetricAbsPearson = "abs-pearson"
)

// Supported ordering strategy names.
const (
	OrderingNone        = "none"
	OrderingCluster     = "cluster"
	OrderingIndependent = "independent"
	OrderingDependent   = "dependent"
)

// ValidateMetric validates a similarity metric name.
func ValidateMetric(name string) error {
	switch name {
	case MetricCosine, MetricAbsPearson:
		return nil
	}
	return New(ErrCodeInvalidMetric, "unknown similarity metric: %q (want %q or %q)",
		name, MetricCosine, MetricAbsPearson)
}

// ValidateOrdering validates an ordering strategy name.
func ValidateOrdering(name string) error {
	switch name {
	case OrderingNone, OrderingCluster, OrderingIndependent, OrderingDependent:
		return nil
	}
	return New(ErrCodeInvalidOrdering, "unknown ordering strategy: %q", name)
}

// ValidateColumnName validates a dataset column name for safety and correctness.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - Maximum length of 256 characters
//
// Numeric-vs-label classification is done separately by the dataset parser.
func ValidateColumnName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidColumn, "column name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidColumn, "column name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidColumn, "column name contains invalid control characters")
		}
	}

	return nil
}

// ValidateColumns validates a set of column names and rejects duplicates.
func ValidateColumns(names []string) error {
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if err := ValidateColumnName(name); err != nil {
			return err
		}
		if seen[name] {
			return New(ErrCodeInvalidColumn, "duplicate column name: %q", name)
		}
		seen[name] = true
	}
	return nil
}

// ValidateFormats validates a list of output format names against the
// supported set.
func ValidateFormats(formats []string, valid map[string]bool) error {
	if len(formats) == 0 {
		return New(ErrCodeInvalidFormat, "no output formats specified")
	}
	for _, f := range formats {
		if !valid[strings.ToLower(f)] {
			return New(ErrCodeInvalidFormat, "unsupported output format: %q", f)
		}
	}
	return nil
}
