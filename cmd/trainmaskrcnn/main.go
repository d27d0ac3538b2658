// Command trainmaskrcnn assembles the Mask R-CNN training configuration and
// hands it to the external Detectron2 pipeline. The model, the training loop,
// and checkpointing are owned entirely by that pipeline; this command only
// fixes the hyperparameters and relays the run.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/davangcodes/masked-rcnn-instruments/internal/detectron"
)

const (
	datasetRoot = "data/CholecT50"
	trainJSON   = "annotations/train_split.json"
	testJSON    = "annotations/test_split.json"
	outputDir   = "output_maskrcnn"

	pipelinePython = "python3"
	pipelineScript = "pipeline/maskrcnn_pipeline.py"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--help", "-h", "help":
			fmt.Println("trainmaskrcnn - run Mask R-CNN training via the external pipeline")
			fmt.Println()
			fmt.Printf("Reads:  %s, %s (dataset root %s)\n", trainJSON, testJSON, datasetRoot)
			fmt.Printf("Writes: %s (run config, checkpoints, logs)\n", outputDir)
			fmt.Println()
			fmt.Println("Hyperparameters are compiled-in constants; there are no flags.")
			return
		}
	}

	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg := detectron.DefaultTrainConfig(datasetRoot, trainJSON, testJSON, outputDir)
	pipeline := detectron.Pipeline{Python: pipelinePython, Script: pipelineScript}

	if err := detectron.Train(context.Background(), pipeline, cfg); err != nil {
		log.Fatalf("training failed: %v", err)
	}

	log.Printf("training finished; checkpoints in %s", outputDir)
}
