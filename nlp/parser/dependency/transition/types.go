package transition

import (
	"errors"
	"fmt"

	"hybrid/alg/featurevector"
	. "hybrid/alg/transition"
)

var (
	ErrUnknownAction     = errors.New("unknown action")
	ErrInvalidTransition = errors.New("transition not valid in configuration")
	ErrInvalidGold       = errors.New("gold head out of range")
	ErrEmptySentence     = errors.New("empty sentence")
	ErrGroupMismatch     = errors.New("feature group count differs from compiled templates")
)

// Learner channels; label channels are keyed by the reduce action
const (
	ACTION_LEARNER = 0
	RIGHT_LEARNER  = int(RIGHT) - 1
	LEFT_LEARNER   = int(LEFT) - 1
	NUM_LEARNERS   = 3
)

// Predictor is the host's structured predictor. Predict must return a member
// of allowed whenever allowed is non-empty; features is nil when
// NeedsFeatures returned false for the step.
type Predictor interface {
	NeedsFeatures() bool
	Predict(features *featurevector.Vector, oracle int, allowed []int, condition int, learner int) int
}

type LossAccumulator interface {
	AddLoss(amount float64)
}

// Loss is a LossAccumulator that sums everything it is given
type Loss float64

func (l *Loss) AddLoss(amount float64) {
	*l += Loss(amount)
}

// Arc is an attachment made by a reduce transition
type Arc struct {
	Modifier, Head, Label int
}

// LogicError is an internal-consistency fault that aborted a sentence
type LogicError struct {
	Step       int
	Transition Transition
	Conf       string
	Err        error
}

func (e *LogicError) Error() string {
	return fmt.Sprintf("step %d: %v at %s: %v", e.Step, e.Transition, e.Conf, e.Err)
}

func (e *LogicError) Unwrap() error {
	return e.Err
}

// Options are the parser's recognized configuration options
type Options struct {
	NoQuadratic bool `koanf:"dparser-no-quad"`
	NoCubic     bool `koanf:"dparser-no-cubic"`
	BadRef      bool `koanf:"dparser-bad-ref"`
	SubRef      bool `koanf:"dparser-sub-ref"`
	RootLabel   int  `koanf:"root-label"`
	NumLabels   int  `koanf:"num-label"`
}

func DefaultOptions() Options {
	return Options{RootLabel: 8, NumLabels: 12}
}

// Oracle returns the reference policy selected by the options. The
// sub-optimal policy takes precedence over the degenerate one.
func (o Options) Oracle() Oracle {
	switch {
	case o.SubRef:
		return &StaticOracle{}
	case o.BadRef:
		return &DegenerateOracle{}
	default:
		return &DynamicOracle{}
	}
}

// ValidLabels returns 1..NumLabels without the root label
func (o Options) ValidLabels() []int {
	labels := make([]int, 0, o.NumLabels)
	for i := 1; i <= o.NumLabels; i++ {
		if i != o.RootLabel {
			labels = append(labels, i)
		}
	}
	return labels
}
