// Command convert2coco converts a tree of LabelMe-style per-frame annotation
// files into one COCO dataset document.
//
// Paths are fixed constants rather than flags; edit them to match the local
// dataset layout, as the original preprocessing setup did.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/davangcodes/masked-rcnn-instruments/internal/coco"
	"github.com/davangcodes/masked-rcnn-instruments/internal/convert"
)

const (
	// annotationRoot holds <video>_full/ann_dir/*.json LabelMe files.
	annotationRoot = "data/cholecinstanceseg/train"

	// imageRoot holds videos/<video>/<frame>.{png,jpg}.
	imageRoot = "data/CholecT50"

	outputJSON = "annotations/train_coco.json"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--help", "-h", "help":
			fmt.Println("convert2coco - convert LabelMe annotations to a COCO dataset")
			fmt.Println()
			fmt.Printf("Reads:  %s, %s\n", annotationRoot, imageRoot)
			fmt.Printf("Writes: %s\n", outputJSON)
			fmt.Println()
			fmt.Println("Paths are compiled-in constants; there are no flags.")
			return
		}
	}

	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	dataset, report, err := convert.Run(convert.Options{
		AnnotationRoot: annotationRoot,
		ImageRoot:      imageRoot,
	})
	if err != nil {
		log.Fatalf("conversion failed: %v", err)
	}

	if err := coco.WriteFile(outputJSON, dataset); err != nil {
		log.Fatalf("failed to write output: %v", err)
	}

	log.Printf("wrote %s: %d images, %d annotations, categories %v",
		outputJSON, report.Images, report.Annotations, report.Categories)
	if skipped := report.SkippedMissing + report.SkippedBadImage + report.SkippedBadJSON; skipped > 0 {
		log.Printf("skipped %d inputs (%d missing frames, %d unreadable frames, %d malformed files)",
			skipped, report.SkippedMissing, report.SkippedBadImage, report.SkippedBadJSON)
	}
}
