package perceptron

import (
	"fmt"
	"strings"

	"hybrid/alg/featurevector"
)

// Model holds one weight vector per (learner, class)
type Model interface {
	Score(learner, class int, features *featurevector.Vector) int64
	AddSubtract(learner, gold, decoded int, features *featurevector.Vector, amount int64)
	ScalarDivide(int64)
	AddModel(Model)
	Copy() Model
	New() Model
}

// Weights is the Model of a multiclass perceptron; Weights[learner][class]
type Weights []map[int]featurevector.Sparse

var _ Model = Weights{}

func NewWeights(learners int) Weights {
	w := make(Weights, learners)
	for i := range w {
		w[i] = make(map[int]featurevector.Sparse)
	}
	return w
}

func (w Weights) Score(learner, class int, features *featurevector.Vector) int64 {
	if learner < 0 || learner >= len(w) {
		return 0
	}
	if vec, exists := w[learner][class]; exists {
		return vec.Score(features)
	}
	return 0
}

func (w Weights) vector(learner, class int) featurevector.Sparse {
	vec, exists := w[learner][class]
	if !exists {
		vec = featurevector.NewSparse()
		w[learner][class] = vec
	}
	return vec
}

// AddSubtract moves the gold class toward features and the decoded
// class away from them
func (w Weights) AddSubtract(learner, gold, decoded int, features *featurevector.Vector, amount int64) {
	if gold == decoded {
		return
	}
	w.vector(learner, gold).UpdateAdd(features, amount)
	w.vector(learner, decoded).UpdateAdd(features, -amount)
}

func (w Weights) ScalarDivide(n int64) {
	for _, classes := range w {
		for _, vec := range classes {
			vec.ScalarDivide(n)
		}
	}
}

func (w Weights) AddModel(other Model) {
	for learner, classes := range other.(Weights) {
		for class, vec := range classes {
			w.vector(learner, class).Add(vec)
		}
	}
}

func (w Weights) Copy() Model {
	copied := NewWeights(len(w))
	for learner, classes := range w {
		for class, vec := range classes {
			copied[learner][class] = vec.Copy()
		}
	}
	return copied
}

func (w Weights) New() Model {
	return NewWeights(len(w))
}

func (w Weights) String() string {
	strs := make([]string, 0, len(w))
	for learner, classes := range w {
		var size int
		for _, vec := range classes {
			size += len(vec)
		}
		strs = append(strs, fmt.Sprintf("learner %d: %d classes, %d weights", learner, len(classes), size))
	}
	return strings.Join(strs, "\n")
}
