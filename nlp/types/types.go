package types

import (
	"hybrid/alg/featurevector"
)

const (
	// CONSTANT_NAMESPACE marks the host's bias group; it is never a base group
	CONSTANT_NAMESPACE byte = 128

	// MAX_HEAD is the largest head index the packed gold value can carry
	MAX_HEAD = 254
)

// A FeatureGroup is one namespace of a token's feature representation
type FeatureGroup struct {
	Namespace byte
	Features  []featurevector.Feature
}

type Token struct {
	Form   string
	Groups []FeatureGroup

	// Gold packs (head+1) in the low 8 bits and the label id above them
	Gold uint32
}

// BaseGroups returns the token's groups without the constant group
func (t *Token) BaseGroups() []FeatureGroup {
	retval := make([]FeatureGroup, 0, len(t.Groups))
	for _, g := range t.Groups {
		if g.Namespace != CONSTANT_NAMESPACE {
			retval = append(retval, g)
		}
	}
	return retval
}

// Sentence is a contiguous token arena; token i is Tokens[i-1]
type Sentence struct {
	Tokens []Token
	Space  featurevector.Space
}

func (s *Sentence) Len() int {
	return len(s.Tokens)
}

// Token returns the 1-based token i
func (s *Sentence) Token(i int) (*Token, bool) {
	if i < 1 || i > len(s.Tokens) {
		return nil, false
	}
	return &s.Tokens[i-1], true
}

// Groups is the number of base feature groups, taken from the first token
func (s *Sentence) Groups() int {
	if len(s.Tokens) == 0 {
		return 0
	}
	return len(s.Tokens[0].BaseGroups())
}

func PackGold(head, label int) uint32 {
	return uint32(head+1)&0xFF | uint32(label)<<8
}

// UnpackGold decodes a packed gold value; a zero low byte decodes to head -1
func UnpackGold(gold uint32) (head, label int) {
	return int(gold&0xFF) - 1, int(gold >> 8)
}

// GoldTree decodes the gold heads and labels, indexed by token (1..n)
func (s *Sentence) GoldTree() (heads, labels []int) {
	heads, labels = make([]int, len(s.Tokens)+1), make([]int, len(s.Tokens)+1)
	labels[0] = -1
	for i, token := range s.Tokens {
		heads[i+1], labels[i+1] = UnpackGold(token.Gold)
	}
	return
}
