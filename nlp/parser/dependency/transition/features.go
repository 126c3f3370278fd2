package transition

import (
	"hybrid/alg/featurevector"
	nlp "hybrid/nlp/types"
	"hybrid/util"
)

// Hashing constants of the weight space. Composite indices wrap in uint32.
const (
	QUADRATIC_CONSTANT uint32 = 27942141
	CUBIC_CONSTANT     uint32 = 21791
	CUBIC_CONSTANT2    uint32 = 37663
	AFFIX_CONSTANT     uint32 = 13903957
	CONSTANT           uint32 = 11650396
	OFFSET_CONST       uint32 = 344429

	VALENCY_NAMESPACE uint32 = 100
	QUAD_NAMESPACE    uint32 = 101
	CUBIC_NAMESPACE   uint32 = 102

	MAX_BUCKET = 5
)

// Extractor builds the layered feature vector of a configuration. Templates
// are compiled once, on the first sentence, for the sentence's group count.
type Extractor struct {
	Templates   *Templates
	NoQuadratic bool
	NoCubic     bool

	groups   int
	compiled bool
	pairs    [][2]int
	triples  [][3]int
	vec      *featurevector.Vector
	space    featurevector.Space
	slots    [NUM_SLOTS]int
}

func NewExtractor(templates *Templates, noQuadratic, noCubic bool) *Extractor {
	if templates == nil {
		templates = DefaultTemplates()
	}
	return &Extractor{Templates: templates, NoQuadratic: noQuadratic, NoCubic: noCubic}
}

func (x *Extractor) Compiled() bool {
	return x.compiled
}

func (x *Extractor) Groups() int {
	return x.groups
}

// Compile expands the slot templates into namespace conjunctions for the
// given number of base feature groups per token
func (x *Extractor) Compile(groups int) {
	x.groups = groups
	x.pairs = x.pairs[0:0]
	x.triples = x.triples[0:0]
	valency := int(NUM_SLOTS) * groups

	if !x.NoQuadratic {
		for _, pair := range x.Templates.Pairs {
			for i := 0; i < groups; i++ {
				for j := 0; j < groups; j++ {
					x.pairs = append(x.pairs, [2]int{x.namespace(pair[0], i), x.namespace(pair[1], j)})
				}
			}
		}
		for i := 0; i < VALENCY_PAIR_SLOTS; i++ {
			for j := 0; j < groups; j++ {
				x.pairs = append(x.pairs, [2]int{valency, i*groups + j})
			}
		}
		x.pairs = append(x.pairs, [2]int{valency, valency})
	}

	if !x.NoCubic {
		for _, triple := range x.Templates.Triples {
			for i := 0; i < groups; i++ {
				for j := 0; j < groups; j++ {
					for k := 0; k < groups; k++ {
						x.triples = append(x.triples, [3]int{
							x.namespace(triple[0], i),
							x.namespace(triple[1], j),
							x.namespace(triple[2], k)})
					}
				}
			}
		}
	}
	x.vec = featurevector.NewVector(int(NUM_SLOTS), groups)
	x.compiled = true
}

func (x *Extractor) namespace(slot Slot, group int) int {
	return int(slot)*x.groups + group
}

// NumPairs is the number of compiled namespace pairs
func (x *Extractor) NumPairs() int {
	return len(x.pairs)
}

func (x *Extractor) NumTriples() int {
	return len(x.triples)
}

// Slots resolves the twelve slots of conf to token indices, 0 when absent
func (x *Extractor) Slots(conf *Configuration) [NUM_SLOTS]int {
	var slots [NUM_SLOTS]int
	for i := 0; i < 3; i++ {
		slots[S1+Slot(i)], _ = conf.S(i)
		slots[B1+Slot(i)], _ = conf.B(i)
	}
	if sTop, exists := conf.S(0); exists {
		links := conf.Links(sTop)
		slots[SL1], slots[SL2] = links.Leftmost, links.SecondLeftmost
		slots[SR1], slots[SR2] = links.Rightmost, links.SecondRightmost
	}
	if bTop, exists := conf.B(0); exists {
		links := conf.Links(bTop)
		slots[BL1], slots[BL2] = links.Leftmost, links.SecondLeftmost
	}
	return slots
}

// Features extracts the feature vector of conf. The returned vector is
// reused by the next call.
func (x *Extractor) Features(conf *Configuration, sent *nlp.Sentence) *featurevector.Vector {
	if !x.compiled {
		x.Compile(sent.Groups())
	}
	x.space = sent.Space
	vec := x.vec
	vec.Clear()
	vec.Constant.Add(CONSTANT, x.space)

	x.slots = x.Slots(conf)
	for i, token := range x.slots {
		x.unigrams(i, token, sent)
	}
	x.valency(conf)

	if !x.NoQuadratic {
		x.quadratic()
	}
	if !x.NoCubic {
		x.cubic()
	}
	return vec
}

// unigrams emits the base features of one slot, or one fallback feature per
// group when the slot is empty
func (x *Extractor) unigrams(slot, tokenID int, sent *nlp.Sentence) {
	token, exists := sent.Token(tokenID)
	if !exists {
		for j := 0; j < x.groups; j++ {
			offset := uint32(slot*x.groups+j) * OFFSET_CONST
			fallback := AFFIX_CONSTANT * (uint32(j+1) * QUADRATIC_CONSTANT)
			x.vec.Unigrams[slot*x.groups+j].Add(fallback+offset, x.space)
		}
		return
	}
	j := 0
	for _, group := range token.Groups {
		if group.Namespace == nlp.CONSTANT_NAMESPACE {
			continue
		}
		if j >= x.groups {
			break
		}
		offset := uint32(slot*x.groups+j) * OFFSET_CONST
		ns := &x.vec.Unigrams[slot*x.groups+j]
		for _, f := range group.Features {
			ns.Add(x.space.Raw(f.Index)+offset, x.space)
		}
		j++
	}
}

func bucket(count int) int {
	return 1 + util.Min(MAX_BUCKET, count)
}

// valency emits distance, S1 left/right child counts and B1 left child count
func (x *Extractor) valency(conf *Configuration) {
	var temp [4]int
	sTop, sExists := conf.S(0)
	bTop, bExists := conf.B(0)
	switch {
	case !sExists:
		temp[0] = 0
	case !bExists:
		temp[0] = 1
	default:
		temp[0] = 2 + util.Min(MAX_BUCKET, bTop-sTop)
	}
	temp[1], temp[2], temp[3] = 1, 1, 1
	if sExists {
		links := conf.Links(sTop)
		temp[1] = bucket(links.Left)
		temp[2] = bucket(links.Right)
	}
	if bExists {
		temp[3] = bucket(conf.Links(bTop).Left)
	}
	offset := VALENCY_NAMESPACE * OFFSET_CONST
	for _, val := range temp {
		x.vec.Valency.Add(uint32(val)+offset, x.space)
	}
}

func (x *Extractor) quadratic() {
	out := &x.vec.Pairwise
	var offset uint32
	for _, pair := range x.pairs {
		nsA, nsB := x.vec.Get(pair[0]), x.vec.Get(pair[1])
		for _, fa := range nsA.Features {
			offset = x.space.Raw(fa.Index)*QUADRATIC_CONSTANT + QUAD_NAMESPACE*OFFSET_CONST
			for _, fb := range nsB.Features {
				out.Add(offset+x.space.Raw(fb.Index), x.space)
			}
		}
	}
}

func (x *Extractor) cubic() {
	out := &x.vec.Triple
	var offset1, offset2 uint32
	for _, triple := range x.triples {
		nsA, nsB, nsC := x.vec.Get(triple[0]), x.vec.Get(triple[1]), x.vec.Get(triple[2])
		for _, fa := range nsA.Features {
			offset1 = x.space.Raw(fa.Index) * CUBIC_CONSTANT
			for _, fb := range nsB.Features {
				offset2 = (x.space.Raw(fb.Index)+offset1)*CUBIC_CONSTANT2 + CUBIC_NAMESPACE*OFFSET_CONST
				for _, fc := range nsC.Features {
					out.Add(offset2+x.space.Raw(fc.Index), x.space)
				}
			}
		}
	}
}
