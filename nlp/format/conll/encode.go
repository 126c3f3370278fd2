package conll

import (
	"errors"
	"fmt"

	"hybrid/alg/featurevector"
	nlp "hybrid/nlp/types"
	"hybrid/util"
)

const SUFFIX_LENGTH = 3

// feature groups of an encoded token
const (
	WORD_GROUP   byte = 'w'
	POS_GROUP    byte = 'p'
	SUFFIX_GROUP byte = 's'
)

var ErrUnknownLabel = errors.New("label not in label set")

// Encoder turns CoNLL sentences into parser input. Word, POS and suffix ids
// are shifted by one so that values unseen by a frozen set map to id 0.
type Encoder struct {
	Words, POS, Suffixes *util.EnumSet
	Labels               *util.EnumSet
	Space                featurevector.Space
}

func NewEncoder(labels *util.EnumSet, space featurevector.Space) *Encoder {
	return &Encoder{
		Words:    util.NewEnumSet(1000),
		POS:      util.NewEnumSet(50),
		Suffixes: util.NewEnumSet(1000),
		Labels:   labels,
		Space:    space,
	}
}

// Freeze stops the feature sets from growing
func (e *Encoder) Freeze() {
	e.Words.Frozen = true
	e.POS.Frozen = true
	e.Suffixes.Frozen = true
}

func (e *Encoder) group(namespace byte, set *util.EnumSet, value string) nlp.FeatureGroup {
	id, _ := set.Add(value)
	return nlp.FeatureGroup{
		Namespace: namespace,
		Features:  []featurevector.Feature{{Index: e.Space.Place(uint32(id + 1)), Value: 1}},
	}
}

// Encode converts sent. A row without a known gold label is an error.
func (e *Encoder) Encode(sent Sentence) (*nlp.Sentence, error) {
	if len(sent) > nlp.MAX_HEAD {
		return nil, fmt.Errorf("sentence of %d tokens exceeds %d", len(sent), nlp.MAX_HEAD)
	}
	encoded := &nlp.Sentence{Tokens: make([]nlp.Token, len(sent)), Space: e.Space}
	for i := 1; i <= len(sent); i++ {
		row, exists := sent[i]
		if !exists {
			return nil, fmt.Errorf("missing row %d", i)
		}
		label, exists := e.Labels.IndexOf(row.DepRel)
		if !exists {
			return nil, fmt.Errorf("row %d: %q: %w", i, row.DepRel, ErrUnknownLabel)
		}
		encoded.Tokens[i-1] = nlp.Token{
			Form: row.Form,
			Groups: []nlp.FeatureGroup{
				e.group(WORD_GROUP, e.Words, row.Form),
				e.group(POS_GROUP, e.POS, row.CPosTag),
				e.group(SUFFIX_GROUP, e.Suffixes, util.Suffix(row.Form, SUFFIX_LENGTH)),
			},
			Gold: nlp.PackGold(row.Head, label),
		}
	}
	return encoded, nil
}

func (e *Encoder) EncodeCorpus(corpus Sentences) ([]*nlp.Sentence, error) {
	retval := make([]*nlp.Sentence, len(corpus))
	for i, sent := range corpus {
		encoded, err := e.Encode(sent)
		if err != nil {
			return nil, fmt.Errorf("sentence %d: %w", i, err)
		}
		retval[i] = encoded
	}
	return retval, nil
}

// Tree returns a copy of sent with heads and labels taken from a parse.
// Labels outside the label set are written as "_".
func (e *Encoder) Tree(sent Sentence, heads, labels []int) Sentence {
	tree := make(Sentence, len(sent))
	for id, row := range sent {
		if id < len(heads) {
			row.Head = heads[id]
			row.DepRel = ""
			if label := labels[id] - e.Labels.Base; label >= 0 && label < e.Labels.Len() {
				row.DepRel = e.Labels.ValueOf(labels[id])
			}
		}
		tree[id] = row
	}
	return tree
}

// LabelSet enumerates labels so that the first label has id 1
func LabelSet(labels []string) *util.EnumSet {
	set := util.NewEnumSet(len(labels))
	set.Base = 1
	for _, label := range labels {
		set.Add(label)
	}
	return set
}
