// Package coco defines the COCO dataset document and its invariants.
//
// A COCO document holds three aligned collections (images, annotations, and
// categories) keyed by integer ids. Every annotation references an image and
// a category by id; Validate enforces that those references resolve before a
// document is ever written to disk.
//
// The json field names follow the public COCO schema exactly: this is the one
// bit-exact compatibility requirement of the repository, since the documents
// are consumed verbatim by the external training framework.
package coco
