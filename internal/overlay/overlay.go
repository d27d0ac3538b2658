// Package overlay renders COCO annotations over their frames for visual QA of
// a converted dataset: filled polygons and bounding boxes per instrument, one
// distinct color per category, with the category name printed at the box
// corner.
package overlay

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/blend"
	"github.com/disintegration/imaging"
	"github.com/llgcode/draw2d/draw2dimg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/davangcodes/masked-rcnn-instruments/internal/coco"
	"github.com/davangcodes/masked-rcnn-instruments/internal/frameio"
)

// Options controls preview rendering.
type Options struct {
	// FillAlpha is the polygon fill opacity, 0..255.
	FillAlpha uint8

	// MaxWidth scales previews down to this width when the frame is wider;
	// zero keeps the original size.
	MaxWidth int
}

// DefaultOptions are the values used by the preview command.
func DefaultOptions() Options {
	return Options{FillAlpha: 96, MaxWidth: 1280}
}

// Render composites the annotations onto a copy of the frame. The frame
// itself is never modified.
func Render(frame image.Image, anns []coco.Annotation, names map[int]string, colors map[int]color.RGBA, opts Options) image.Image {
	bounds := frame.Bounds()

	base := image.NewRGBA(bounds)
	draw.Draw(base, bounds, frame, bounds.Min, draw.Src)

	layer := image.NewRGBA(bounds)
	gc := draw2dimg.NewGraphicContext(layer)

	for _, ann := range anns {
		col, ok := colors[ann.CategoryID]
		if !ok {
			col = color.RGBA{R: 255, G: 255, B: 0, A: 255}
		}

		for _, ring := range ann.Segmentation {
			if len(ring) < 6 {
				continue
			}
			gc.SetFillColor(color.RGBA{R: col.R, G: col.G, B: col.B, A: opts.FillAlpha})
			gc.MoveTo(ring[0], ring[1])
			for i := 2; i+1 < len(ring); i += 2 {
				gc.LineTo(ring[i], ring[i+1])
			}
			gc.Close()
			gc.Fill()
		}

		x, y, w, h := ann.BBox[0], ann.BBox[1], ann.BBox[2], ann.BBox[3]
		gc.SetStrokeColor(col)
		gc.SetLineWidth(2)
		gc.MoveTo(x, y)
		gc.LineTo(x+w, y)
		gc.LineTo(x+w, y+h)
		gc.LineTo(x, y+h)
		gc.Close()
		gc.Stroke()

		if name := names[ann.CategoryID]; name != "" {
			drawLabel(layer, int(x), int(y)-3, name, col)
		}
	}

	composited := blend.Normal(base, layer)

	if opts.MaxWidth > 0 && bounds.Dx() > opts.MaxWidth {
		return imaging.Resize(composited, opts.MaxWidth, 0, imaging.Lanczos)
	}
	return composited
}

// drawLabel prints text at (x, y) using the fixed 7x13 face; fonts on disk are
// not a dependency previews can assume.
func drawLabel(dst *image.RGBA, x, y int, text string, col color.RGBA) {
	if y < basicfont.Face7x13.Ascent {
		y = basicfont.Face7x13.Ascent
	}
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// WritePreviews renders previews for up to limit images of the dataset into
// outDir, one PNG per image, named after the frame's relative path. It
// returns the number of previews written.
func WritePreviews(d *coco.Dataset, imageRoot, outDir string, limit int, opts Options) (int, error) {
	if err := d.Validate(); err != nil {
		return 0, fmt.Errorf("refusing to render invalid dataset: %w", err)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return 0, fmt.Errorf("failed to create preview directory: %w", err)
	}

	names := make(map[int]string, len(d.Categories))
	colors := make(map[int]color.RGBA, len(d.Categories))
	palette := Palette(len(d.Categories))
	for i, cat := range d.Categories {
		names[cat.ID] = cat.Name
		colors[cat.ID] = palette[i]
	}

	byImage := make(map[int][]coco.Annotation)
	for _, ann := range d.Annotations {
		byImage[ann.ImageID] = append(byImage[ann.ImageID], ann)
	}

	cache := frameio.NewCache()
	written := 0
	for _, img := range d.Images {
		if limit > 0 && written >= limit {
			break
		}

		frame, err := cache.Load(filepath.Join(imageRoot, img.FileName))
		if err != nil {
			return written, err
		}

		preview := Render(frame, byImage[img.ID], names, colors, opts)
		name := strings.ReplaceAll(filepath.ToSlash(img.FileName), "/", "_")
		name = strings.TrimSuffix(name, filepath.Ext(name)) + ".png"
		if err := imaging.Save(preview, filepath.Join(outDir, name)); err != nil {
			return written, fmt.Errorf("failed to save preview for %s: %w", img.FileName, err)
		}
		written++
	}

	return written, nil
}
