// Package labelme reads CholecInstanceSeg per-frame annotation files in the
// LabelMe JSON schema and resolves their frame/video identity from the file
// naming convention.
//
// Each annotation file covers exactly one frame and is named
// "t50_VID01_000468.json": the second underscore-separated field is the video
// id and the last is the frame id. The files live under
// <root>/<video>_full/ann_dir/.
package labelme

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Shape is one labeled polygon.
type Shape struct {
	Label string `json:"label"`

	// Points are [x, y] pairs tracing the polygon outline.
	Points [][2]float64 `json:"points"`
}

// File is the subset of the LabelMe schema the converter consumes.
type File struct {
	Shapes []Shape `json:"shapes"`
}

// ReadFile parses one per-frame annotation file.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read annotation file: %w", err)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse annotation file %s: %w", path, err)
	}

	return &f, nil
}

// FrameRef identifies the frame an annotation file belongs to.
type FrameRef struct {
	// Video is the video directory name, e.g. "VID01".
	Video string

	// Frame is the zero-padded frame number, e.g. "000468".
	Frame string
}

// ParseFrameRef extracts the video and frame ids from an annotation file path
// whose stem follows the "t50_VID01_000468" convention.
func ParseFrameRef(path string) (FrameRef, error) {
	stem := filepath.Base(path)
	if i := strings.IndexByte(stem, '.'); i >= 0 {
		stem = stem[:i]
	}

	parts := strings.Split(stem, "_")
	if len(parts) < 3 || parts[1] == "" || parts[len(parts)-1] == "" {
		return FrameRef{}, fmt.Errorf("annotation file name %q does not match <tag>_<video>_<frame>", filepath.Base(path))
	}

	return FrameRef{Video: parts[1], Frame: parts[len(parts)-1]}, nil
}

// ScanTree returns all annotation files under <root>/*_full/ann_dir/*.json in
// sorted order. The sorted walk keeps id assignment deterministic downstream.
func ScanTree(root string) ([]string, error) {
	pattern := filepath.Join(root, "*_full", "ann_dir", "*.json")
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to scan annotation tree: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no annotation files found under %s", pattern)
	}
	return paths, nil
}
