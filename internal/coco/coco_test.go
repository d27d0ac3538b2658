package coco

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validDataset() *Dataset {
	return &Dataset{
		Images: []Image{
			{ID: 1, FileName: "videos/VID01/000001.png", Height: 480, Width: 640},
			{ID: 2, FileName: "videos/VID01/000002.png", Height: 480, Width: 640},
		},
		Annotations: []Annotation{
			{ID: 1, ImageID: 1, CategoryID: 1, Segmentation: [][]float64{{0, 0, 10, 0, 10, 10}}, BBox: [4]float64{0, 0, 10, 10}, Area: 100},
			{ID: 2, ImageID: 2, CategoryID: 2, Segmentation: [][]float64{{5, 5, 20, 5, 20, 25}}, BBox: [4]float64{5, 5, 15, 20}, Area: 300},
		},
		Categories: []Category{
			{ID: 1, Name: "grasper"},
			{ID: 2, Name: "hook"},
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Dataset)
		wantErr string
	}{
		{"valid document", func(d *Dataset) {}, ""},
		{"empty document", func(d *Dataset) { *d = Dataset{} }, ""},
		{
			"duplicate image id",
			func(d *Dataset) { d.Images[1].ID = 1 },
			"duplicate image id 1",
		},
		{
			"duplicate category id",
			func(d *Dataset) { d.Categories[1].ID = 1 },
			"duplicate category id 1",
		},
		{
			"duplicate annotation id",
			func(d *Dataset) { d.Annotations[1].ID = 1 },
			"duplicate annotation id 1",
		},
		{
			"dangling image reference",
			func(d *Dataset) { d.Annotations[0].ImageID = 99 },
			"unknown image id 99",
		},
		{
			"dangling category reference",
			func(d *Dataset) { d.Annotations[1].CategoryID = 7 },
			"unknown category id 7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDataset()
			tt.mutate(d)

			err := d.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate failed: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate succeeded, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestWriteFileRefusesInvalidDocument(t *testing.T) {
	d := validDataset()
	d.Annotations[0].ImageID = 42

	path := filepath.Join(t.TempDir(), "out", "coco.json")
	if err := WriteFile(path, d); err == nil {
		t.Fatal("WriteFile succeeded on an invalid document")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("invalid document was written to %s", path)
	}
}

func TestReadFileWriteFile(t *testing.T) {
	d := validDataset()
	path := filepath.Join(t.TempDir(), "annotations", "coco.json")

	if err := WriteFile(path, d); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	if len(got.Images) != 2 || len(got.Annotations) != 2 || len(got.Categories) != 2 {
		t.Errorf("got %d/%d/%d images/annotations/categories, want 2/2/2",
			len(got.Images), len(got.Annotations), len(got.Categories))
	}
	if got.Annotations[1].Area != 300 {
		t.Errorf("Area: got %v, want 300", got.Annotations[1].Area)
	}
	if got.Images[0].FileName != "videos/VID01/000001.png" {
		t.Errorf("FileName: got %q", got.Images[0].FileName)
	}
}

func TestReadFileMissing(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("ReadFile succeeded on a missing file")
	}
}

func TestImageIDs(t *testing.T) {
	d := validDataset()
	ids := d.ImageIDs()
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		t.Errorf("ImageIDs: got %v, want [1 2]", ids)
	}
}
