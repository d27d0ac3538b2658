// Package frameio locates and reads CholecT50 video frames.
//
// Frames live under <root>/videos/<video>/<frame>.png (some videos carry .jpg
// frames instead). The converter only needs frame dimensions, so Dimensions
// decodes image headers without loading pixel data; the overlay renderer loads
// full frames through a Cache to avoid redundant decodes when several
// annotations reference the same frame.
package frameio

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"sync"
)

// ErrFrameNotFound reports that neither a .png nor a .jpg frame exists for a
// video/frame pair.
var ErrFrameNotFound = errors.New("frame image not found")

// FramePath is a resolved frame location.
type FramePath struct {
	// Rel is the path relative to the dataset root, recorded verbatim as the
	// COCO image file_name.
	Rel string

	// Abs is the on-disk path used for reading.
	Abs string
}

// Resolve probes for <root>/videos/<video>/<frame>.png, then .jpg.
// It returns ErrFrameNotFound when neither exists.
func Resolve(root, video, frame string) (FramePath, error) {
	for _, ext := range []string{".png", ".jpg"} {
		rel := filepath.Join("videos", video, frame+ext)
		abs := filepath.Join(root, rel)
		if _, err := os.Stat(abs); err == nil {
			return FramePath{Rel: rel, Abs: abs}, nil
		}
	}
	return FramePath{}, fmt.Errorf("%w: videos/%s/%s.{png,jpg}", ErrFrameNotFound, video, frame)
}

// Dimensions returns the width and height of an image file by decoding only
// its header.
func Dimensions(path string) (width, height int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to open frame: %w", err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to decode frame %s: %w", path, err)
	}
	return cfg.Width, cfg.Height, nil
}

// Cache provides thread-safe caching of fully decoded frames, keyed by path.
// Cached frames stay in memory until Clear; preview rendering over a bounded
// image set keeps this acceptable.
type Cache struct {
	mu     sync.RWMutex
	frames map[string]image.Image
}

// NewCache creates an empty frame cache ready for concurrent use.
func NewCache() *Cache {
	return &Cache{frames: make(map[string]image.Image)}
}

// Load returns the decoded frame at path, reading from disk on a cache miss.
func (c *Cache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.frames[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open frame: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode frame %s: %w", path, err)
	}

	c.mu.Lock()
	c.frames[path] = img
	c.mu.Unlock()

	return img, nil
}

// Clear drops all cached frames.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.frames = make(map[string]image.Image)
	c.mu.Unlock()
}
