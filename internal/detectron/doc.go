// Package detectron assembles training and evaluation configuration for the
// external Detectron2 Mask R-CNN pipeline and hands it to that pipeline as a
// subprocess.
//
// The pipeline owns everything heavy: dataset registration, the model, the
// training loop, inference, and COCO mAP computation. This package owns only
// the hyperparameter constants, input validation, the run-config file the
// pipeline consumes, and relaying the pipeline's exit status and metrics
// output. There is no retry and no partial success; a failed run is re-run
// from scratch.
package detectron
