// Command evalmodel runs the external COCO evaluator over the test split with
// the trained checkpoint and relays its metrics (mAP, AP50/AP75, AR). Metric
// computation belongs entirely to the external framework.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/davangcodes/masked-rcnn-instruments/internal/detectron"
)

const (
	datasetRoot = "data/CholecT50"
	testJSON    = "annotations/test_split.json"
	outputDir   = "output_eval"

	pipelinePython = "python3"
	pipelineScript = "pipeline/maskrcnn_pipeline.py"
)

var checkpoint = filepath.Join("output_maskrcnn", "model_final.pth")

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--help", "-h", "help":
			fmt.Println("evalmodel - evaluate a trained Mask R-CNN checkpoint on the test split")
			fmt.Println()
			fmt.Printf("Reads:  %s, %s (dataset root %s)\n", testJSON, checkpoint, datasetRoot)
			fmt.Printf("Writes: %s (run config, evaluator metrics)\n", outputDir)
			return
		}
	}

	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg := detectron.DefaultEvalConfig(datasetRoot, testJSON, checkpoint, outputDir)
	pipeline := detectron.Pipeline{Python: pipelinePython, Script: pipelineScript}

	if err := detectron.Evaluate(context.Background(), pipeline, cfg); err != nil {
		log.Fatalf("evaluation failed: %v", err)
	}

	log.Printf("evaluation finished; metrics in %s", outputDir)
}
