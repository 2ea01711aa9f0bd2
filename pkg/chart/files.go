package chart

import (
	"fmt"
	"os"
)

// WriteFile writes a Chart to a JSON file.
func WriteFile(c *Chart, path string) error {
	data, err := Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile reads a Chart from a JSON file.
func ReadFile(path string) (*Chart, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Unmarshal(data)
}
