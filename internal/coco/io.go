package coco

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ReadFile loads a COCO document from disk.
func ReadFile(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read COCO file: %w", err)
	}

	var d Dataset
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse COCO file %s: %w", path, err)
	}

	return &d, nil
}

// WriteFile writes a COCO document to disk, creating parent directories as
// needed. The document is validated first; nothing is written on failure.
func WriteFile(path string, d *Dataset) error {
	if err := d.Validate(); err != nil {
		return fmt.Errorf("refusing to write invalid COCO document: %w", err)
	}

	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to encode COCO document: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write COCO file: %w", err)
	}

	return nil
}
