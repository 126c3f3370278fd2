package perceptron

import (
	"testing"

	"hybrid/alg/featurevector"
	"hybrid/nlp/parser/dependency/transition"
	nlp "hybrid/nlp/types"
)

var _ transition.Predictor = &Multiclass{}

func testVector(indices ...uint32) *featurevector.Vector {
	v := featurevector.NewVector(1, 1)
	for _, idx := range indices {
		v.Unigrams[0].Add(idx, featurevector.DefaultSpace)
	}
	return v
}

func TestMulticlass(t *testing.T) {
	m := NewMulticlass(2, nil)
	if !m.NeedsFeatures() {
		t.Error("Expected multiclass perceptron to need features")
	}
	features := testVector(1, 2)
	if p := m.Predict(features, 3, []int{1, 3}, 0, 0); p != 1 {
		t.Errorf("Expected first allowed value on an empty model, got %d", p)
	}

	m.Init(1)
	if p := m.Predict(features, 3, []int{1, 3}, 0, 0); p != 3 {
		t.Errorf("Expected oracle in training, got %d", p)
	}
	if m.Updates != 1 {
		t.Errorf("Expected 1 update, got %d", m.Updates)
	}
	if s := m.Model.Score(0, 3, features); s != 2 {
		t.Errorf("Expected score 2 for the gold class, got %d", s)
	}
	if s := m.Model.Score(0, 1, features); s != -2 {
		t.Errorf("Expected score -2 for the decoded class, got %d", s)
	}
	if s := m.Model.Score(1, 3, features); s != 0 {
		t.Errorf("Expected learners to be independent, got %d", s)
	}
	m.Predict(features, 3, []int{1, 3}, 1, 0)
	if m.Updates != 1 {
		t.Errorf("Expected no update on a correct prediction, got %d", m.Updates)
	}

	m.Finalize()
	if p := m.Predict(features, 1, []int{1, 3}, 0, 0); p != 3 {
		t.Errorf("Expected argmax 3 after training, got %d", p)
	}
	if p := m.Predict(features, 2, nil, 0, 0); p != 2 {
		t.Errorf("Expected oracle for an empty allowed set, got %d", p)
	}
}

func TestMulticlassExplore(t *testing.T) {
	m := NewMulticlass(1, nil)
	m.Init(1)
	m.Explore = true
	features := testVector(5)
	if p := m.Predict(features, 2, []int{1, 2}, 0, 0); p != 1 {
		t.Errorf("Expected prediction while exploring, got %d", p)
	}
	if p := m.Predict(features, 2, []int{1, 2}, 1, 0); p != 2 {
		t.Errorf("Expected updated prediction, got %d", p)
	}
}

func TestTrivialStrategy(t *testing.T) {
	w := NewWeights(1)
	u := new(TrivialStrategy)
	u.Init(w, 10)
	u.Update(w)
	if final := u.Finalize(w).(Weights); len(final) != 1 || final[0] == nil {
		t.Error("Should return trivial value")
	}
}

func TestAveragedStrategy(t *testing.T) {
	w := NewWeights(1)
	w[0][1] = featurevector.Sparse{7: 4, 8: 1}
	u := new(AveragedStrategy)
	u.Init(w, 4)
	u.Update(w)
	u.Update(w)
	w[0][1][7] = 0
	u.Update(w)
	u.Update(w)
	avg := u.Finalize(w).(Weights)
	if avg[0][1][7] != 2 {
		t.Error("Got averaged value", avg[0][1][7], "expected", 2)
	}
	if avg[0][1][8] != 1 {
		t.Error("Got averaged value", avg[0][1][8], "expected", 1)
	}
}

func TestWeightsCopy(t *testing.T) {
	w := NewWeights(2)
	features := testVector(1)
	w.AddSubtract(1, 2, 3, features, 1)
	c := w.Copy().(Weights)
	c.AddSubtract(1, 2, 3, features, 1)
	if w.Score(1, 2, features) != 1 || c.Score(1, 2, features) != 2 {
		t.Error("Copy shares weights with the original")
	}
	w.AddSubtract(0, 4, 4, features, 1)
	if len(w[0]) != 0 {
		t.Error("Expected no update when gold equals decoded")
	}
}

func parserSentence() *nlp.Sentence {
	heads := []int{2, 3, 0, 5, 3, 5, 8, 6, 3}
	labels := []int{1, 2, 8, 1, 3, 1, 1, 4, 5}
	pos := []uint32{1, 2, 3, 1, 2, 4, 1, 2, 5}
	sent := &nlp.Sentence{Tokens: make([]nlp.Token, len(heads)), Space: featurevector.DefaultSpace}
	for i := range heads {
		sent.Tokens[i] = nlp.Token{
			Gold: nlp.PackGold(heads[i], labels[i]),
			Groups: []nlp.FeatureGroup{
				{Namespace: 'w', Features: []featurevector.Feature{{Index: uint32(100 + i), Value: 1}}},
				{Namespace: 'p', Features: []featurevector.Feature{{Index: pos[i], Value: 1}}},
			},
		}
	}
	return sent
}

func TestMulticlassParser(t *testing.T) {
	sent := parserSentence()
	m := NewMulticlass(transition.NUM_LEARNERS, nil)
	d := transition.NewDeterministic(transition.DefaultOptions(), nil, m, nil)
	m.Init(100)
	converged := false
	for i := 0; i < 100 && !converged; i++ {
		updates := m.Updates
		if _, err := d.Parse(sent, nil); err != nil {
			t.Fatal(err)
		}
		m.EndInstance()
		converged = m.Updates == updates
	}
	if !converged {
		t.Fatal("Training did not converge on a single sentence")
	}
	m.Finalize()
	result, err := d.Parse(sent, nil)
	if err != nil {
		t.Fatal(err)
	}
	if result.Loss != 0 {
		t.Errorf("Expected trained model to reproduce the gold tree, got loss %v: %v", result.Loss, result.Heads)
	}
}
