// Command annotpreview renders annotation overlays for the first images of a
// converted COCO dataset, for a quick visual check that polygons, boxes, and
// categories line up with the frames before training on them.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/davangcodes/masked-rcnn-instruments/internal/coco"
	"github.com/davangcodes/masked-rcnn-instruments/internal/overlay"
)

const (
	inputJSON  = "annotations/train_coco.json"
	imageRoot  = "data/CholecT50"
	previewDir = "previews"

	// maxPreviews caps the run; previews are a spot check, not a full render.
	maxPreviews = 50
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--help", "-h", "help":
			fmt.Println("annotpreview - render annotation overlays for visual QA")
			fmt.Println()
			fmt.Printf("Reads:  %s (frames under %s)\n", inputJSON, imageRoot)
			fmt.Printf("Writes: %s/ (up to %d PNGs)\n", previewDir, maxPreviews)
			return
		}
	}

	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	dataset, err := coco.ReadFile(inputJSON)
	if err != nil {
		log.Fatalf("failed to load dataset: %v", err)
	}

	n, err := overlay.WritePreviews(dataset, imageRoot, previewDir, maxPreviews, overlay.DefaultOptions())
	if err != nil {
		log.Fatalf("preview rendering failed after %d images: %v", n, err)
	}

	log.Printf("wrote %d previews to %s", n, previewDir)
}
