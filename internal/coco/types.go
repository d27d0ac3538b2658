package coco

// Image describes one frame referenced by annotations.
type Image struct {
	// ID is the 1-based integer id the annotations reference.
	ID int `json:"id"`

	// FileName is the path of the frame relative to the dataset root,
	// e.g. "videos/VID01/000468.png".
	FileName string `json:"file_name"`

	Height int `json:"height"`
	Width  int `json:"width"`
}

// Annotation is one instrument instance on one image.
type Annotation struct {
	ID         int `json:"id"`
	ImageID    int `json:"image_id"`
	CategoryID int `json:"category_id"`

	// Segmentation holds polygon rings as flat [x1,y1,x2,y2,...] lists.
	// The converter emits exactly one ring per annotation.
	Segmentation [][]float64 `json:"segmentation"`

	// BBox is [minX, minY, width, height] in pixels.
	BBox [4]float64 `json:"bbox"`

	// Area is the bounding-box area (width * height).
	Area float64 `json:"area"`

	IsCrowd int `json:"iscrowd"`
}

// Category is one instrument class.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Dataset is a complete COCO document. It is produced wholesale by the
// converter and consumed wholesale by the splitter and the training pipeline;
// it is never mutated in place.
type Dataset struct {
	Images      []Image      `json:"images"`
	Annotations []Annotation `json:"annotations"`
	Categories  []Category   `json:"categories"`
}

// ImageIDs returns the image ids in document order.
func (d *Dataset) ImageIDs() []int {
	ids := make([]int, len(d.Images))
	for i, img := range d.Images {
		ids[i] = img.ID
	}
	return ids
}
