package perceptron

import (
	"log"

	"hybrid/alg/featurevector"
)

// Multiclass is a linear perceptron over the allowed values of each decision.
// In training mode every wrong argmax updates the model; the returned value
// is the reference, or the prediction when Explore is set.
type Multiclass struct {
	Model    Model
	Updater  UpdateStrategy
	Training bool
	Explore  bool
	Log      bool

	Decisions, Updates int
}

func NewMulticlass(learners int, updater UpdateStrategy) *Multiclass {
	if updater == nil {
		updater = &TrivialStrategy{}
	}
	return &Multiclass{Model: NewWeights(learners), Updater: updater}
}

func (m *Multiclass) NeedsFeatures() bool {
	return true
}

// Init starts training for the given number of iterations
func (m *Multiclass) Init(iterations int) {
	m.Training = true
	m.Decisions, m.Updates = 0, 0
	m.Updater.Init(m.Model, iterations)
}

// Argmax returns the highest scoring allowed value; ties go to the earlier one
func (m *Multiclass) Argmax(features *featurevector.Vector, allowed []int, learner int) int {
	best := allowed[0]
	if features == nil {
		return best
	}
	bestScore := m.Model.Score(learner, best, features)
	for _, class := range allowed[1:] {
		if score := m.Model.Score(learner, class, features); score > bestScore {
			best, bestScore = class, score
		}
	}
	return best
}

func (m *Multiclass) Predict(features *featurevector.Vector, oracle int, allowed []int, condition int, learner int) int {
	if len(allowed) == 0 {
		return oracle
	}
	m.Decisions++
	predicted := m.Argmax(features, allowed, learner)
	if !m.Training {
		return predicted
	}
	if predicted != oracle && features != nil {
		if m.Log {
			log.Println("Decision", condition, "learner", learner, "predicted", predicted, "oracle", oracle)
		}
		m.Model.AddSubtract(learner, oracle, predicted, features, 1)
		m.Updates++
	}
	if m.Explore {
		return predicted
	}
	return oracle
}

// EndInstance is called after every training sentence
func (m *Multiclass) EndInstance() {
	m.Updater.Update(m.Model)
}

// Finalize ends training and installs the final model
func (m *Multiclass) Finalize() {
	m.Model = m.Updater.Finalize(m.Model)
	m.Training = false
}

type UpdateStrategy interface {
	Init(m Model, iterations int)
	Update(model Model)
	Finalize(m Model) Model
}

type TrivialStrategy struct{}

func (u *TrivialStrategy) Init(m Model, iterations int) {

}

func (u *TrivialStrategy) Update(m Model) {

}

func (u *TrivialStrategy) Finalize(m Model) Model {
	return m
}

// AveragedStrategy averages the model over every Update
type AveragedStrategy struct {
	P, N       int64
	accumModel Model
}

func (u *AveragedStrategy) Init(m Model, iterations int) {
	u.N = 0
	u.P = int64(iterations)
	u.accumModel = m.New()
}

func (u *AveragedStrategy) Update(m Model) {
	u.accumModel.AddModel(m)
	u.N += 1
}

func (u *AveragedStrategy) Finalize(m Model) Model {
	if u.N == 0 {
		return m
	}
	// N already counts iterations*instances
	u.accumModel.ScalarDivide(u.N)
	return u.accumModel
}
