package transition

import (
	"hybrid/alg/featurevector"
	nlp "hybrid/nlp/types"
)

const (
	ATT  = 1
	SBJ  = 2
	OBJ  = 3
	PC   = 4
	PU   = 5
	ROOT = 8
)

var (
	TEST_WORDS  = []string{"Economic", "news", "had", "little", "effect", "on", "financial", "markets", "."}
	TEST_HEADS  = []int{2, 3, 0, 5, 3, 5, 8, 6, 3}
	TEST_LABELS = []int{ATT, SBJ, ROOT, ATT, OBJ, ATT, ATT, PC, PU}

	TEST_GOLD_SEQUENCE = "LA-1 SH LA-2 SH SH LA-1 SH SH SH LA-1 SH RA-4 RA-1 RA-3 SH RA-5"
)

// testSentence builds a sentence with one single-feature group per base
// group, followed by a constant group the extractor must skip
func testSentence(heads, labels []int, groups int) *nlp.Sentence {
	sent := &nlp.Sentence{Tokens: make([]nlp.Token, len(heads)), Space: featurevector.DefaultSpace}
	for i := range heads {
		token := &sent.Tokens[i]
		if i < len(TEST_WORDS) {
			token.Form = TEST_WORDS[i]
		}
		token.Gold = nlp.PackGold(heads[i], labels[i])
		token.Groups = make([]nlp.FeatureGroup, 0, groups+1)
		for g := 0; g < groups; g++ {
			token.Groups = append(token.Groups, nlp.FeatureGroup{
				Namespace: byte('a' + g),
				Features:  []featurevector.Feature{{Index: uint32((i+1)*10 + g), Value: 1}},
			})
		}
		token.Groups = append(token.Groups, nlp.FeatureGroup{
			Namespace: nlp.CONSTANT_NAMESPACE,
			Features:  []featurevector.Feature{{Index: 99999, Value: 1}},
		})
	}
	return sent
}

func testConf(heads, labels []int) *Configuration {
	conf := NewConfiguration()
	if err := conf.Init(testSentence(heads, labels, 2)); err != nil {
		panic(err)
	}
	return conf
}

type predictCall struct {
	features  *featurevector.Vector
	oracle    int
	allowed   []int
	condition int
	learner   int
}

// oraclePredictor always agrees with the reference and records every call
type oraclePredictor struct {
	features bool
	calls    []predictCall
}

func (p *oraclePredictor) NeedsFeatures() bool {
	return p.features
}

func (p *oraclePredictor) Predict(features *featurevector.Vector, oracle int, allowed []int, condition int, learner int) int {
	p.calls = append(p.calls, predictCall{features, oracle, append([]int(nil), allowed...), condition, learner})
	return oracle
}

// firstPredictor picks the first allowed value
type firstPredictor struct{}

func (p *firstPredictor) NeedsFeatures() bool {
	return false
}

func (p *firstPredictor) Predict(features *featurevector.Vector, oracle int, allowed []int, condition int, learner int) int {
	return allowed[0]
}

// fixedPredictor returns action for every action decision
type fixedPredictor struct {
	action int
}

func (p *fixedPredictor) NeedsFeatures() bool {
	return false
}

func (p *fixedPredictor) Predict(features *featurevector.Vector, oracle int, allowed []int, condition int, learner int) int {
	if learner == ACTION_LEARNER {
		return p.action
	}
	return allowed[0]
}
