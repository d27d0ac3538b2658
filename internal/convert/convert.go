// Package convert transforms LabelMe-style per-frame annotations into a single
// COCO dataset document.
package convert

import (
	"fmt"
	"log"

	"github.com/davangcodes/masked-rcnn-instruments/internal/coco"
	"github.com/davangcodes/masked-rcnn-instruments/internal/frameio"
	"github.com/davangcodes/masked-rcnn-instruments/internal/labelme"
)

// Options configures a conversion run.
//
// A frame whose LabelMe file exists and whose image is readable is always
// emitted as a COCO image, even when the file contains zero shapes; downstream
// mAP computation then counts it as a true negative rather than never seeing
// it. Frames whose image is missing or undecodable, and annotation files that
// fail to parse, are skipped and logged.
type Options struct {
	// AnnotationRoot holds <video>_full/ann_dir/*.json trees.
	AnnotationRoot string

	// ImageRoot holds videos/<video>/<frame>.{png,jpg}.
	ImageRoot string
}

// Report summarizes a conversion run.
type Report struct {
	Images          int
	Annotations     int
	Categories      []string
	SkippedMissing  int
	SkippedBadImage int
	SkippedBadJSON  int
}

// Run converts every annotation file under opts.AnnotationRoot into one COCO
// document. Image, annotation, and category ids are assigned 1-based in
// first-seen order over the sorted file walk, so a given tree always converts
// to the same document.
func Run(opts Options) (*coco.Dataset, *Report, error) {
	paths, err := labelme.ScanTree(opts.AnnotationRoot)
	if err != nil {
		return nil, nil, err
	}

	var (
		dataset coco.Dataset
		report  Report

		categoryID = make(map[string]int)
		imageID    = make(map[string]int)

		nextCategoryID   = 1
		nextImageID      = 1
		nextAnnotationID = 1
	)

	for _, path := range paths {
		ref, err := labelme.ParseFrameRef(path)
		if err != nil {
			log.Printf("skipping %s: %v", path, err)
			report.SkippedBadJSON++
			continue
		}

		ann, err := labelme.ReadFile(path)
		if err != nil {
			log.Printf("skipping %s: %v", path, err)
			report.SkippedBadJSON++
			continue
		}

		frame, err := frameio.Resolve(opts.ImageRoot, ref.Video, ref.Frame)
		if err != nil {
			log.Printf("skipping frame %s/%s: %v", ref.Video, ref.Frame, err)
			report.SkippedMissing++
			continue
		}

		width, height, err := frameio.Dimensions(frame.Abs)
		if err != nil {
			log.Printf("skipping frame %s: %v", frame.Rel, err)
			report.SkippedBadImage++
			continue
		}

		imgID, seen := imageID[frame.Rel]
		if !seen {
			imgID = nextImageID
			nextImageID++
			imageID[frame.Rel] = imgID
			dataset.Images = append(dataset.Images, coco.Image{
				ID:       imgID,
				FileName: frame.Rel,
				Height:   height,
				Width:    width,
			})
		}

		for _, shape := range ann.Shapes {
			if len(shape.Points) < 3 {
				log.Printf("skipping degenerate polygon (%d points) for %q in %s", len(shape.Points), shape.Label, path)
				continue
			}

			catID, ok := categoryID[shape.Label]
			if !ok {
				catID = nextCategoryID
				nextCategoryID++
				categoryID[shape.Label] = catID
				dataset.Categories = append(dataset.Categories, coco.Category{ID: catID, Name: shape.Label})
			}

			dataset.Annotations = append(dataset.Annotations, polygonAnnotation(nextAnnotationID, imgID, catID, shape.Points))
			nextAnnotationID++
		}
	}

	if err := dataset.Validate(); err != nil {
		return nil, nil, fmt.Errorf("converter produced an invalid document: %w", err)
	}

	report.Images = len(dataset.Images)
	report.Annotations = len(dataset.Annotations)
	for _, cat := range dataset.Categories {
		report.Categories = append(report.Categories, cat.Name)
	}

	return &dataset, &report, nil
}

// polygonAnnotation builds one COCO annotation from a polygon: the points are
// flattened into a single segmentation ring, the bbox is the axis-aligned hull
// of the points, and the area is the bbox area.
func polygonAnnotation(id, imgID, catID int, points [][2]float64) coco.Annotation {
	minX, minY := points[0][0], points[0][1]
	maxX, maxY := minX, minY

	seg := make([]float64, 0, len(points)*2)
	for _, p := range points {
		x, y := p[0], p[1]
		seg = append(seg, x, y)
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}

	w := maxX - minX
	h := maxY - minY

	return coco.Annotation{
		ID:           id,
		ImageID:      imgID,
		CategoryID:   catID,
		Segmentation: [][]float64{seg},
		BBox:         [4]float64{minX, minY, w, h},
		Area:         w * h,
		IsCrowd:      0,
	}
}
