package dataset

import (
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spokechart/spoke/pkg/errors"
)

// ReadCSV parses a dataset from CSV. The first record is the header; every
// following record is one observation. All columns except labelColumn must
// be numeric. Empty cells and the literals "nan"/"NaN" (any case) parse to
// NaN. Pass labelColumn == "" when the dataset has no label column.
func ReadCSV(r io.Reader, labelColumn string) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New(errors.ErrCodeInvalidDataset, "empty input")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "read header")
	}

	labelIdx := -1
	columns := make([]string, 0, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		header[i] = name
		if name == labelColumn && labelColumn != "" {
			labelIdx = i
			continue
		}
		columns = append(columns, name)
	}
	if labelColumn != "" && labelIdx == -1 {
		return nil, errors.New(errors.ErrCodeInvalidColumn, "label column %q not in header", labelColumn)
	}
	if err := errors.ValidateColumns(columns); err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidDataset, "no numeric columns in header")
	}

	values := make(map[string][]float64, len(columns))
	for _, col := range columns {
		values[col] = []float64{}
	}
	var labels []string

	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "read row %d", line)
		}
		line++

		if len(record) != len(header) {
			return nil, errors.New(errors.ErrCodeInvalidDataset,
				"row %d has %d fields, header has %d", line, len(record), len(header))
		}

		col := 0
		for i, field := range record {
			if i == labelIdx {
				labels = append(labels, field)
				continue
			}
			v, err := parseCell(field)
			if err != nil {
				return nil, errors.New(errors.ErrCodeInvalidDataset,
					"row %d, column %q: not a number: %q", line, header[i], field)
			}
			values[columns[col]] = append(values[columns[col]], v)
			col++
		}
	}

	d, err := New(columns, values)
	if err != nil {
		return nil, err
	}
	if labelIdx != -1 {
		return d.WithLabels(labels)
	}
	return d, nil
}

// ReadCSVFile reads a dataset from a CSV file at path.
func ReadCSVFile(path, labelColumn string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "open %s", path)
	}
	defer f.Close()
	return ReadCSV(f, labelColumn)
}

// parseCell parses one numeric cell. Empty and "nan" cells become NaN.
func parseCell(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nan") {
		return nan, nil
	}
	return strconv.ParseFloat(s, 64)
}

func hashString(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
