package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os/exec"
	"sort"
	"strings"
	"sync"
	"time"

	"sift/internal/config"
	"sift/internal/logging"
	"sift/internal/services"
)

// ExecClassifier shells out to a configured command for every image. The
// command receives the image path as its final argument and must print a JSON
// array of {"label", "confidence"} objects to stdout.
//
// The binary is resolved lazily on first use and the resolution is cached, so
// constructing the classifier is free and a scan pass pays the lookup once.
type ExecClassifier struct {
	command       string
	args          []string
	topK          int
	minConfidence float64
	timeout       time.Duration
	logger        *slog.Logger

	resolveOnce sync.Once
	resolved    string
	resolveErr  error
}

// NewExecClassifier builds a classifier from configuration.
func NewExecClassifier(cfg *config.Config, logger *slog.Logger) *ExecClassifier {
	return &ExecClassifier{
		command:       cfg.Classifier.Command,
		args:          append([]string{}, cfg.Classifier.Args...),
		topK:          cfg.Classifier.TopK,
		minConfidence: cfg.Classifier.MinConfidence,
		timeout:       time.Duration(cfg.Classifier.Timeout) * time.Second,
		logger:        logging.NewComponentLogger(logger, "classifier"),
	}
}

// Classify runs the external command against one image and returns its ranked
// predictions filtered by the configured confidence floor and truncated to
// the configured top-K.
func (c *ExecClassifier) Classify(ctx context.Context, path string) ([]Prediction, error) {
	binary, err := c.resolveBinary()
	if err != nil {
		return nil, err
	}

	runCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	args := append(append([]string{}, c.args...), path)
	cmd := exec.CommandContext(runCtx, binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		return nil, services.Wrap(services.ErrExternalTool, "classifier", "classify", detail, err)
	}

	predictions, err := parsePredictions(stdout.Bytes())
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "classifier", "parse output", "", err)
	}

	predictions = c.filter(predictions)
	c.logger.Debug("image classified",
		logging.String("path", path),
		logging.Int("predictions", len(predictions)),
	)
	return predictions, nil
}

// Close releases classifier resources. The subprocess model holds nothing
// between invocations.
func (c *ExecClassifier) Close() error { return nil }

func (c *ExecClassifier) resolveBinary() (string, error) {
	c.resolveOnce.Do(func() {
		resolved, err := exec.LookPath(c.command)
		if err != nil {
			c.resolveErr = services.Wrap(services.ErrExternalTool, "classifier", "resolve binary",
				fmt.Sprintf("%q not found in PATH", c.command), err)
			return
		}
		c.resolved = resolved
		c.logger.Debug("classifier binary resolved", logging.String("binary", resolved))
	})
	return c.resolved, c.resolveErr
}

func (c *ExecClassifier) filter(predictions []Prediction) []Prediction {
	sort.SliceStable(predictions, func(i, j int) bool {
		return predictions[i].Confidence > predictions[j].Confidence
	})
	filtered := predictions[:0]
	for _, prediction := range predictions {
		if prediction.Confidence < c.minConfidence {
			continue
		}
		if strings.TrimSpace(prediction.Label) == "" {
			continue
		}
		filtered = append(filtered, prediction)
	}
	if c.topK > 0 && len(filtered) > c.topK {
		filtered = filtered[:c.topK]
	}
	return filtered
}

func parsePredictions(payload []byte) ([]Prediction, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return nil, nil
	}
	var predictions []Prediction
	if err := json.Unmarshal(trimmed, &predictions); err != nil {
		return nil, fmt.Errorf("decode predictions: %w", err)
	}
	return predictions, nil
}
