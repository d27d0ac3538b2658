package split

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/davangcodes/masked-rcnn-instruments/internal/coco"
)

// syntheticDataset builds n images with one annotation each, cycling over two
// categories.
func syntheticDataset(n int) *coco.Dataset {
	d := &coco.Dataset{
		Categories: []coco.Category{
			{ID: 1, Name: "grasper"},
			{ID: 2, Name: "hook"},
		},
	}
	for i := 1; i <= n; i++ {
		d.Images = append(d.Images, coco.Image{
			ID:       i,
			FileName: fmt.Sprintf("videos/VID01/%06d.png", i),
			Height:   480,
			Width:    640,
		})
		d.Annotations = append(d.Annotations, coco.Annotation{
			ID:           i,
			ImageID:      i,
			CategoryID:   1 + i%2,
			Segmentation: [][]float64{{0, 0, 4, 0, 2, 3}},
			BBox:         [4]float64{0, 0, 4, 3},
			Area:         12,
		})
	}
	return d
}

func TestRunPartitionProperties(t *testing.T) {
	tests := []struct {
		name      string
		nImages   int
		ratio     float64
		wantTest  int
		wantTrain int
	}{
		{"1000 images at 10 percent", 1000, 0.1, 100, 900},
		{"10 images at 10 percent", 10, 0.1, 1, 9},
		{"odd count floors the test side", 15, 0.1, 1, 14},
		{"7 images at 30 percent", 7, 0.3, 2, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := syntheticDataset(tt.nImages)
			res, err := Run(d, Options{TestRatio: tt.ratio, Seed: 42})
			if err != nil {
				t.Fatalf("Run failed: %v", err)
			}

			if len(res.Test.Images) != tt.wantTest {
				t.Errorf("test images: got %d, want %d", len(res.Test.Images), tt.wantTest)
			}
			if len(res.Train.Images) != tt.wantTrain {
				t.Errorf("train images: got %d, want %d", len(res.Train.Images), tt.wantTrain)
			}

			// Disjoint, and union equals the input id set.
			for id := range res.TestIDs {
				if res.TrainIDs[id] {
					t.Errorf("image id %d appears in both splits", id)
				}
			}
			if got := len(res.TrainIDs) + len(res.TestIDs); got != tt.nImages {
				t.Errorf("union size: got %d, want %d", got, tt.nImages)
			}

			// Every annotation landed in the split holding its image.
			for _, ann := range res.Train.Annotations {
				if !res.TrainIDs[ann.ImageID] {
					t.Errorf("train annotation %d references non-train image %d", ann.ID, ann.ImageID)
				}
			}
			for _, ann := range res.Test.Annotations {
				if !res.TestIDs[ann.ImageID] {
					t.Errorf("test annotation %d references non-test image %d", ann.ID, ann.ImageID)
				}
			}

			if err := res.Train.Validate(); err != nil {
				t.Errorf("train split invalid: %v", err)
			}
			if err := res.Test.Validate(); err != nil {
				t.Errorf("test split invalid: %v", err)
			}
		})
	}
}

func TestRunDeterministicForSeed(t *testing.T) {
	a, err := Run(syntheticDataset(200), Options{TestRatio: 0.1, Seed: 42})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	b, err := Run(syntheticDataset(200), Options{TestRatio: 0.1, Seed: 42})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if !reflect.DeepEqual(a.TestIDs, b.TestIDs) {
		t.Error("same seed produced different test partitions")
	}

	c, err := Run(syntheticDataset(200), Options{TestRatio: 0.1, Seed: 7})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if reflect.DeepEqual(a.TestIDs, c.TestIDs) {
		t.Error("different seeds produced the same partition (shuffle not seeded)")
	}
}

func TestRunPreservesInputOrder(t *testing.T) {
	d := syntheticDataset(50)
	res, err := Run(d, Options{TestRatio: 0.2, Seed: 1})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	prev := 0
	for _, img := range res.Train.Images {
		if img.ID <= prev {
			t.Fatalf("train images reordered: id %d after %d", img.ID, prev)
		}
		prev = img.ID
	}
}

func TestRunRejectsBadInput(t *testing.T) {
	d := syntheticDataset(10)
	d.Annotations[0].ImageID = 999
	if _, err := Run(d, Options{TestRatio: 0.1, Seed: 42}); err == nil {
		t.Fatal("Run accepted a dataset with dangling references")
	}

	if _, err := Run(syntheticDataset(10), Options{TestRatio: 0, Seed: 42}); err == nil {
		t.Fatal("Run accepted ratio 0")
	}
	if _, err := Run(syntheticDataset(10), Options{TestRatio: 1, Seed: 42}); err == nil {
		t.Fatal("Run accepted ratio 1")
	}
}
