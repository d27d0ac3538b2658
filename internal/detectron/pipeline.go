package detectron

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
)

// Pipeline locates the external Detectron2 launcher. The launcher receives
// "train" or "eval" plus the path of a run-config JSON file and owns the run
// from there.
type Pipeline struct {
	// Python is the interpreter, e.g. "python3".
	Python string

	// Script is the launcher script path.
	Script string
}

// run hands a mode and run-config file to the launcher, streaming its output
// through to this process. The subprocess's exit status is the only failure
// signal; there is no retry.
func (p Pipeline) run(ctx context.Context, mode, configPath string) error {
	cmd := exec.CommandContext(ctx, p.Python, p.Script, mode, configPath)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	log.Printf("running %s %s %s %s", p.Python, p.Script, mode, configPath)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("pipeline %s run failed: %w", mode, err)
	}
	return nil
}

// writeRunConfig persists cfg as JSON inside dir so the run is reproducible
// from the artifact alone.
func writeRunConfig(dir, name string, cfg interface{}) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode run config: %w", err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write run config: %w", err)
	}
	return path, nil
}

// Train validates cfg, writes it to <OutputDir>/train_config.json, and hands
// it to the pipeline.
func Train(ctx context.Context, p Pipeline, cfg TrainConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid training config: %w", err)
	}

	configPath, err := writeRunConfig(cfg.OutputDir, "train_config.json", cfg)
	if err != nil {
		return err
	}

	return p.run(ctx, "train", configPath)
}

// Evaluate validates cfg, writes it to <OutputDir>/eval_config.json, hands it
// to the pipeline's COCO evaluator, and relays any metrics the evaluator
// wrote. The metrics format belongs to the framework; it is logged verbatim.
func Evaluate(ctx context.Context, p Pipeline, cfg EvalConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid evaluation config: %w", err)
	}

	configPath, err := writeRunConfig(cfg.OutputDir, "eval_config.json", cfg)
	if err != nil {
		return err
	}

	if err := p.run(ctx, "eval", configPath); err != nil {
		return err
	}

	relayMetrics(filepath.Join(cfg.OutputDir, "metrics.json"))
	return nil
}

// relayMetrics logs the last metrics record the evaluator wrote, if any.
// Detectron2 appends one JSON object per line; only the final record reflects
// the finished evaluation.
func relayMetrics(path string) {
	f, err := os.Open(path)
	if err != nil {
		log.Printf("no metrics file at %s: %v", path, err)
		return
	}
	defer f.Close()

	var last map[string]interface{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var record map[string]interface{}
		if err := json.Unmarshal(line, &record); err != nil {
			continue
		}
		last = record
	}
	if last == nil {
		log.Printf("metrics file %s contained no records", path)
		return
	}

	keys := make([]string, 0, len(last))
	for k := range last {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		log.Printf("metric %s = %v", k, last[k])
	}
}
