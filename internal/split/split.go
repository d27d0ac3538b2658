// Package split partitions a COCO dataset document into disjoint train and
// test documents at a fixed image ratio.
package split

import (
	"fmt"
	"math/rand"

	"github.com/davangcodes/masked-rcnn-instruments/internal/coco"
)

// Options configures a split.
type Options struct {
	// TestRatio is the fraction of images reserved for the test split,
	// in (0, 1). The test split takes floor(nImages * TestRatio) images, so
	// the train split absorbs the rounding remainder.
	TestRatio float64

	// Seed drives the image shuffle. The same document, ratio, and seed
	// always produce the same partition.
	Seed int64
}

// Result holds the two output documents and their image-id sets.
type Result struct {
	Train *coco.Dataset
	Test  *coco.Dataset

	TrainIDs map[int]bool
	TestIDs  map[int]bool
}

// Run validates the input document and partitions it. Image and annotation
// order within each split preserves the input order; only membership changes.
// Categories are copied to both splits unchanged.
func Run(d *coco.Dataset, opts Options) (*Result, error) {
	if opts.TestRatio <= 0 || opts.TestRatio >= 1 {
		return nil, fmt.Errorf("test ratio %v outside (0, 1)", opts.TestRatio)
	}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("refusing to split invalid input: %w", err)
	}

	ids := d.ImageIDs()
	rng := rand.New(rand.NewSource(opts.Seed))
	rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })

	nTest := int(float64(len(ids)) * opts.TestRatio)
	testIDs := make(map[int]bool, nTest)
	trainIDs := make(map[int]bool, len(ids)-nTest)
	for i, id := range ids {
		if i < nTest {
			testIDs[id] = true
		} else {
			trainIDs[id] = true
		}
	}

	return &Result{
		Train:    filter(d, trainIDs),
		Test:     filter(d, testIDs),
		TrainIDs: trainIDs,
		TestIDs:  testIDs,
	}, nil
}

func filter(d *coco.Dataset, keep map[int]bool) *coco.Dataset {
	out := &coco.Dataset{
		Categories: append([]coco.Category(nil), d.Categories...),
	}
	for _, img := range d.Images {
		if keep[img.ID] {
			out.Images = append(out.Images, img)
		}
	}
	for _, ann := range d.Annotations {
		if keep[ann.ImageID] {
			out.Annotations = append(out.Annotations, ann)
		}
	}
	return out
}
