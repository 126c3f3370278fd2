package transition

import (
	"fmt"
	"io"
	"log"

	"hybrid/alg/featurevector"
	. "hybrid/alg/transition"
	nlp "hybrid/nlp/types"
)

// Result is the tree produced for one sentence
type Result struct {
	// Heads and Labels are indexed by token (1..n); slot 0 is unused
	Heads, Labels []int
	Sequence      TransitionSequence
	Loss          float64

	// Shifts counts every token pushed, including the initial push of token 1
	Shifts, Reduces int
}

func (r *Result) Len() int {
	return len(r.Heads) - 1
}

// WriteTo emits one "<head>:<label>" line per token
func (r *Result) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for i := 1; i < len(r.Heads); i++ {
		n, err := fmt.Fprintf(w, "%d:%d\n", r.Heads[i], r.Labels[i])
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Deterministic drives a sentence to a complete tree, one predictor call per
// decision. It owns its configuration and must not be shared between
// goroutines.
type Deterministic struct {
	Options   Options
	Predictor Predictor
	Loss      LossAccumulator
	TransFunc *ArcHybrid
	Extractor *Extractor
	Oracle    Oracle

	// Log prints every configuration with its oracle and chosen transition
	Log bool

	conf   *Configuration
	labels []int
}

func NewDeterministic(opts Options, templates *Templates, predictor Predictor, loss LossAccumulator) *Deterministic {
	return &Deterministic{
		Options:   opts,
		Predictor: predictor,
		Loss:      loss,
		TransFunc: &ArcHybrid{},
		Extractor: NewExtractor(templates, opts.NoQuadratic, opts.NoCubic),
		Oracle:    opts.Oracle(),
		conf:      NewConfiguration(),
		labels:    opts.ValidLabels(),
	}
}

// Configuration returns the state of the sentence being (or last) parsed
func (d *Deterministic) Configuration() *Configuration {
	return d.conf
}

// Parse parses sent and writes its tree to out. A nil out skips output.
// Input faults and internal-consistency faults abort the sentence; loss of
// the arcs made before the fault has already been reported.
func (d *Deterministic) Parse(sent *nlp.Sentence, out io.Writer) (*Result, error) {
	if d.Predictor == nil {
		panic("Can't parse without a predictor")
	}
	c := d.conf
	if err := c.Init(sent); err != nil {
		return nil, err
	}
	if !d.Extractor.Compiled() {
		d.Extractor.Compile(sent.Groups())
	} else if groups := sent.Groups(); groups != d.Extractor.Groups() {
		return nil, fmt.Errorf("%d groups, compiled for %d: %w", groups, d.Extractor.Groups(), ErrGroupMismatch)
	}

	var (
		loss     float64
		count    int
		features *featurevector.Vector
	)
	if d.Log {
		log.Println(c.String())
	}
	for !c.Terminal() {
		features = nil
		if d.Predictor.NeedsFeatures() {
			features = d.Extractor.Features(c, sent)
		}
		valid := d.TransFunc.Valid(c)
		gold := d.Oracle.Action(c, valid)
		if gold == NONE {
			gold = valid.First()
		}
		chosen := Action(d.Predictor.Predict(features, int(gold), valid.Values(), count, ACTION_LEARNER))
		count++

		t := Transition{Action: chosen}
		if chosen.Reduce() {
			goldLabel := d.Oracle.Label(c)
			t.Label = d.Predictor.Predict(features, goldLabel, d.labels, count, labelLearner(chosen))
			count++
		}
		if d.Log {
			log.Printf("\tvalid %v oracle %v chose %v", valid, gold, t)
		}
		arc, err := d.TransFunc.Transition(c, t)
		if err != nil {
			return nil, &LogicError{Step: len(c.Sequence), Transition: t, Conf: c.String(), Err: err}
		}
		if t.Action.Reduce() {
			loss += d.addLoss(arcLoss(c, arc))
		}
		if d.Log {
			log.Println(c.String())
		}
	}

	root, exists := c.S(0)
	if !exists {
		return nil, &LogicError{Step: len(c.Sequence), Conf: c.String(), Err: ErrInvalidTransition}
	}
	c.Heads[root] = 0
	c.Labels[root] = d.Options.RootLabel
	var rootLoss float64
	if c.GoldHeads[root] != 0 {
		rootLoss = 1
	}
	loss += d.addLoss(rootLoss)

	result := &Result{
		Heads:    append([]int(nil), c.Heads...),
		Labels:   append([]int(nil), c.Labels...),
		Sequence: append(TransitionSequence(nil), c.Sequence...),
		Loss:     loss,
	}
	shifts, reduces := result.Sequence.Counts()
	result.Shifts, result.Reduces = shifts+1, reduces
	if out != nil {
		if _, err := result.WriteTo(out); err != nil && d.Log {
			log.Println("Skipped output:", err)
		}
	}
	return result, nil
}

func labelLearner(a Action) int {
	if a == LEFT {
		return LEFT_LEARNER
	}
	return RIGHT_LEARNER
}

func (d *Deterministic) addLoss(amount float64) float64 {
	if d.Loss != nil {
		d.Loss.AddLoss(amount)
	}
	return amount
}

func arcLoss(c *Configuration, arc Arc) float64 {
	var loss float64
	if c.GoldHeads[arc.Modifier] != arc.Head {
		loss++
	}
	if c.GoldLabels[arc.Modifier] != arc.Label {
		loss++
	}
	return loss
}
