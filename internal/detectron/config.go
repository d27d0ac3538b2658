package detectron

import (
	"fmt"
	"os"
)

// BaseConfig is the Detectron2 model-zoo config both drivers start from:
// Mask R-CNN with a ResNet-50 + FPN backbone, 3x schedule.
const BaseConfig = "COCO-InstanceSegmentation/mask_rcnn_R_50_FPN_3x.yaml"

// NumInstrumentClasses is the number of instrument categories in
// CholecInstanceSeg.
const NumInstrumentClasses = 7

// TrainConfig is the full set of values handed to the external training
// pipeline.
type TrainConfig struct {
	// DatasetRoot is the CholecT50 image root the file_name entries are
	// relative to.
	DatasetRoot string `json:"dataset_root"`

	TrainJSON string `json:"train_json"`
	TestJSON  string `json:"test_json"`

	// BaseConfig names the model-zoo config to merge from; Weights selects the
	// pretrained checkpoint (the model-zoo checkpoint of BaseConfig when set
	// to "model_zoo").
	BaseConfig string `json:"base_config"`
	Weights    string `json:"weights"`

	NumWorkers           int     `json:"num_workers"`
	ImsPerBatch          int     `json:"ims_per_batch"`
	BaseLR               float64 `json:"base_lr"`
	MaxIter              int     `json:"max_iter"`
	ROIBatchSizePerImage int     `json:"roi_batch_size_per_image"`
	NumClasses           int     `json:"num_classes"`

	// OutputDir receives the run config, checkpoints, and training logs.
	OutputDir string `json:"output_dir"`
}

// DefaultTrainConfig returns the training hyperparameters used for the
// instrument segmentation runs.
func DefaultTrainConfig(datasetRoot, trainJSON, testJSON, outputDir string) TrainConfig {
	return TrainConfig{
		DatasetRoot:          datasetRoot,
		TrainJSON:            trainJSON,
		TestJSON:             testJSON,
		BaseConfig:           BaseConfig,
		Weights:              "model_zoo",
		NumWorkers:           4,
		ImsPerBatch:          4,
		BaseLR:               0.00025,
		MaxIter:              5000,
		ROIBatchSizePerImage: 128,
		NumClasses:           NumInstrumentClasses,
		OutputDir:            outputDir,
	}
}

// Validate reports the first missing input or non-positive hyperparameter.
func (c TrainConfig) Validate() error {
	if err := requireFile("train annotations", c.TrainJSON); err != nil {
		return err
	}
	if err := requireFile("test annotations", c.TestJSON); err != nil {
		return err
	}
	if err := requireDir("dataset root", c.DatasetRoot); err != nil {
		return err
	}
	if c.BaseConfig == "" {
		return fmt.Errorf("base config not set")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output directory not set")
	}
	switch {
	case c.ImsPerBatch <= 0:
		return fmt.Errorf("ims per batch must be positive, got %d", c.ImsPerBatch)
	case c.BaseLR <= 0:
		return fmt.Errorf("base learning rate must be positive, got %v", c.BaseLR)
	case c.MaxIter <= 0:
		return fmt.Errorf("max iterations must be positive, got %d", c.MaxIter)
	case c.ROIBatchSizePerImage <= 0:
		return fmt.Errorf("ROI batch size must be positive, got %d", c.ROIBatchSizePerImage)
	case c.NumClasses <= 0:
		return fmt.Errorf("class count must be positive, got %d", c.NumClasses)
	case c.NumWorkers < 0:
		return fmt.Errorf("worker count must not be negative, got %d", c.NumWorkers)
	}
	return nil
}

// EvalConfig is the full set of values handed to the external evaluator.
type EvalConfig struct {
	DatasetRoot string `json:"dataset_root"`
	TestJSON    string `json:"test_json"`

	BaseConfig string `json:"base_config"`

	// Checkpoint is the trained weights file, typically
	// output_maskrcnn/model_final.pth.
	Checkpoint string `json:"checkpoint"`

	ScoreThresh float64 `json:"score_thresh"`
	NumClasses  int     `json:"num_classes"`
	MinSizeTest int     `json:"min_size_test"`
	MaxSizeTest int     `json:"max_size_test"`

	// OutputDir receives the run config and the evaluator's metrics output.
	OutputDir string `json:"output_dir"`
}

// DefaultEvalConfig returns the evaluation settings used for the instrument
// segmentation runs.
func DefaultEvalConfig(datasetRoot, testJSON, checkpoint, outputDir string) EvalConfig {
	return EvalConfig{
		DatasetRoot: datasetRoot,
		TestJSON:    testJSON,
		BaseConfig:  BaseConfig,
		Checkpoint:  checkpoint,
		ScoreThresh: 0.5,
		NumClasses:  NumInstrumentClasses,
		MinSizeTest: 800,
		MaxSizeTest: 1333,
		OutputDir:   outputDir,
	}
}

// Validate reports the first missing input or out-of-range parameter.
func (c EvalConfig) Validate() error {
	if err := requireFile("test annotations", c.TestJSON); err != nil {
		return err
	}
	if err := requireFile("checkpoint", c.Checkpoint); err != nil {
		return err
	}
	if err := requireDir("dataset root", c.DatasetRoot); err != nil {
		return err
	}
	if c.BaseConfig == "" {
		return fmt.Errorf("base config not set")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output directory not set")
	}
	switch {
	case c.ScoreThresh < 0 || c.ScoreThresh >= 1:
		return fmt.Errorf("score threshold %v outside [0, 1)", c.ScoreThresh)
	case c.NumClasses <= 0:
		return fmt.Errorf("class count must be positive, got %d", c.NumClasses)
	case c.MinSizeTest <= 0 || c.MaxSizeTest < c.MinSizeTest:
		return fmt.Errorf("invalid test size range %d..%d", c.MinSizeTest, c.MaxSizeTest)
	}
	return nil
}

func requireFile(what, path string) error {
	if path == "" {
		return fmt.Errorf("%s path not set", what)
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", what, path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s %s is a directory", what, path)
	}
	return nil
}

func requireDir(what, path string) error {
	if path == "" {
		return fmt.Errorf("%s path not set", what)
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", what, path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s %s is not a directory", what, path)
	}
	return nil
}
