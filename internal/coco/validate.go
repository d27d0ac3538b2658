package coco

import "fmt"

// Validate checks the document's referential integrity: unique ids within each
// collection, and every annotation's image_id and category_id resolving to an
// existing entry. It reports the first violation found.
//
// Callers are expected to fail fast on a Validate error rather than write a
// corrupt dataset that the training framework would only reject much later.
func (d *Dataset) Validate() error {
	imageIDs := make(map[int]bool, len(d.Images))
	for _, img := range d.Images {
		if imageIDs[img.ID] {
			return fmt.Errorf("duplicate image id %d (%s)", img.ID, img.FileName)
		}
		imageIDs[img.ID] = true
	}

	categoryIDs := make(map[int]bool, len(d.Categories))
	for _, cat := range d.Categories {
		if categoryIDs[cat.ID] {
			return fmt.Errorf("duplicate category id %d (%s)", cat.ID, cat.Name)
		}
		categoryIDs[cat.ID] = true
	}

	annotationIDs := make(map[int]bool, len(d.Annotations))
	for _, ann := range d.Annotations {
		if annotationIDs[ann.ID] {
			return fmt.Errorf("duplicate annotation id %d", ann.ID)
		}
		annotationIDs[ann.ID] = true

		if !imageIDs[ann.ImageID] {
			return fmt.Errorf("annotation %d references unknown image id %d", ann.ID, ann.ImageID)
		}
		if !categoryIDs[ann.CategoryID] {
			return fmt.Errorf("annotation %d references unknown category id %d", ann.ID, ann.CategoryID)
		}
	}

	return nil
}
