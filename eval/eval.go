package eval

import "fmt"

func Precision(truePositives, testPositives int) float64 {
	if testPositives == 0 {
		return 0
	}
	return float64(truePositives) / float64(testPositives)
}

func Recall(truePositives, conditionPositives int) float64 {
	if conditionPositives == 0 {
		return 0
	}
	return float64(truePositives) / float64(conditionPositives)
}

func F1(precision, recall float64) float64 {
	if precision+recall == 0 {
		return 0
	}
	return 2.0 * (precision * recall) / (precision + recall)
}

type Result struct {
	TP, FP, FN int
}

func (r *Result) Incorrect() int {
	return r.FP + r.FN
}

func (r *Result) TestPositives() int {
	return r.TP + r.FP
}

func (r *Result) ConditionPositives() int {
	return r.TP + r.FN
}

func (r *Result) Precision() float64 {
	return Precision(r.TP, r.TestPositives())
}

func (r *Result) Recall() float64 {
	return Recall(r.TP, r.ConditionPositives())
}

func (r *Result) F1() float64 {
	return F1(r.Precision(), r.Recall())
}

type Total struct {
	Result
	Exact, Population int
}

func (t *Total) Add(r *Result) {
	t.TP += r.TP
	t.FP += r.FP
	t.FN += r.FN
	if r.Incorrect() == 0 {
		t.Exact += 1
	}
	t.Population += 1
}

func (t *Total) ExactMatch() float64 {
	if t.Population == 0 {
		return 0
	}
	return float64(t.Exact) / float64(t.Population)
}

// Attachment scores one tree against its gold tree. Slices are indexed by
// token (1..n); a wrong attachment is both a false positive and a false
// negative, so precision and recall equal the attachment accuracy.
func Attachment(goldHeads, goldLabels, heads, labels []int) (unlabeled, labeled *Result) {
	unlabeled, labeled = &Result{}, &Result{}
	for i := 1; i < len(goldHeads) && i < len(heads); i++ {
		if heads[i] == goldHeads[i] {
			unlabeled.TP++
			if labels[i] == goldLabels[i] {
				labeled.TP++
				continue
			}
		} else {
			unlabeled.FP++
			unlabeled.FN++
		}
		labeled.FP++
		labeled.FN++
	}
	return
}

// Dependency accumulates attachment scores over a corpus
type Dependency struct {
	Unlabeled, Labeled Total
}

func (d *Dependency) Add(goldHeads, goldLabels, heads, labels []int) {
	unlabeled, labeled := Attachment(goldHeads, goldLabels, heads, labels)
	d.Unlabeled.Add(unlabeled)
	d.Labeled.Add(labeled)
}

func (d *Dependency) UAS() float64 {
	return d.Unlabeled.Precision()
}

func (d *Dependency) LAS() float64 {
	return d.Labeled.Precision()
}

func (d *Dependency) String() string {
	return fmt.Sprintf("UAS %.2f LAS %.2f Exact %.2f (%d sentences, %d tokens)",
		100*d.UAS(), 100*d.LAS(), 100*d.Labeled.ExactMatch(), d.Labeled.Population, d.Labeled.TestPositives())
}
