package classify

import "context"

// Prediction is a single ranked classifier output.
type Prediction struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Classifier produces a ranked label list for an image, highest confidence
// first. Implementations may be expensive to acquire; callers hold one
// instance for a whole scan pass rather than acquiring per item.
type Classifier interface {
	Classify(ctx context.Context, path string) ([]Prediction, error)
	Close() error
}
