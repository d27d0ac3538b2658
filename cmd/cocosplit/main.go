// Command cocosplit partitions a COCO dataset document into train and test
// documents at a fixed 90/10 ratio with a fixed seed, so reruns over the same
// input reproduce the same partition.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/davangcodes/masked-rcnn-instruments/internal/coco"
	"github.com/davangcodes/masked-rcnn-instruments/internal/split"
)

const (
	inputJSON = "annotations/train_coco.json"
	outputDir = "annotations"

	testRatio = 0.1
	seed      = 42
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--help", "-h", "help":
			fmt.Println("cocosplit - split a COCO dataset into train/test partitions")
			fmt.Println()
			fmt.Printf("Reads:  %s\n", inputJSON)
			fmt.Printf("Writes: %s/train_split.json, %s/test_split.json\n", outputDir, outputDir)
			fmt.Printf("Ratio:  %.0f%% test, seed %d\n", testRatio*100, seed)
			return
		}
	}

	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	dataset, err := coco.ReadFile(inputJSON)
	if err != nil {
		log.Fatalf("failed to load input dataset: %v", err)
	}

	res, err := split.Run(dataset, split.Options{TestRatio: testRatio, Seed: seed})
	if err != nil {
		log.Fatalf("split failed: %v", err)
	}

	trainPath := filepath.Join(outputDir, "train_split.json")
	testPath := filepath.Join(outputDir, "test_split.json")

	if err := coco.WriteFile(trainPath, res.Train); err != nil {
		log.Fatalf("failed to write train split: %v", err)
	}
	if err := coco.WriteFile(testPath, res.Test); err != nil {
		log.Fatalf("failed to write test split: %v", err)
	}

	log.Printf("wrote %d train images to %s", len(res.Train.Images), trainPath)
	log.Printf("wrote %d test images to %s", len(res.Test.Images), testPath)
}
