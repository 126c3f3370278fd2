package featurevector

import (
	"fmt"
	"strings"
)

// Kind partitions the sparse feature space
type Kind byte

const (
	UNIGRAM  Kind = iota // one namespace per (slot, group)
	PAIRWISE             // conjunctions of two namespaces
	TRIPLE               // conjunctions of three namespaces
	VALENCY              // valency and distance buckets
	CONSTANT             // bias
)

var kindNames = [...]string{"uni", "quad", "cubic", "val", "const"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// Feature is a placed weight index and its value
type Feature struct {
	Index uint32
	Value float32
}

// Space is the weight-index space features are placed into: an index i is
// stored as (i << StrideShift) & Mask.
type Space struct {
	Mask        uint32
	StrideShift uint
}

// DefaultSpace is an 18 bit weight space with no stride
var DefaultSpace = Space{Mask: (1 << 18) - 1}

func (s Space) Place(idx uint32) uint32 {
	return (idx << s.StrideShift) & s.Mask
}

// Raw strips the stride from a placed weight index
func (s Space) Raw(weightIndex uint32) uint32 {
	return weightIndex >> s.StrideShift
}

type Namespace struct {
	Kind        Kind
	Slot, Group int
	Features    []Feature
}

func (n *Namespace) Add(idx uint32, space Space) {
	n.Features = append(n.Features, Feature{space.Place(idx), 1.0})
}

func (n *Namespace) Len() int {
	return len(n.Features)
}

func (n *Namespace) Clear() {
	n.Features = n.Features[0:0]
}

func (n *Namespace) Name() string {
	if n.Kind == UNIGRAM {
		return fmt.Sprintf("%v[%d,%d]", n.Kind, n.Slot, n.Group)
	}
	return n.Kind.String()
}

// Vector is a namespaced sparse feature vector. Unigram namespaces are
// addressed by slot*groups+group.
type Vector struct {
	Valency  Namespace
	Unigrams []Namespace
	Pairwise Namespace
	Triple   Namespace
	Constant Namespace
}

func NewVector(slots, groups int) *Vector {
	v := &Vector{
		Valency:  Namespace{Kind: VALENCY},
		Unigrams: make([]Namespace, slots*groups),
		Pairwise: Namespace{Kind: PAIRWISE},
		Triple:   Namespace{Kind: TRIPLE},
		Constant: Namespace{Kind: CONSTANT},
	}
	for i := range v.Unigrams {
		v.Unigrams[i] = Namespace{Kind: UNIGRAM, Slot: i / groups, Group: i % groups}
	}
	return v
}

// Namespaces lists the namespaces in placement order: valency, unigrams,
// pairwise, triple, constant
func (v *Vector) Namespaces() []*Namespace {
	retval := make([]*Namespace, 0, len(v.Unigrams)+4)
	retval = append(retval, &v.Valency)
	for i := range v.Unigrams {
		retval = append(retval, &v.Unigrams[i])
	}
	return append(retval, &v.Pairwise, &v.Triple, &v.Constant)
}

// Get returns the namespace of an id in the compiled namespace numbering:
// ids [0, len(Unigrams)) are unigram namespaces, then VALENCY.
func (v *Vector) Get(id int) *Namespace {
	if id == len(v.Unigrams) {
		return &v.Valency
	}
	return &v.Unigrams[id]
}

func (v *Vector) Clear() {
	for _, ns := range v.Namespaces() {
		ns.Clear()
	}
}

// Len is the total number of features over all namespaces
func (v *Vector) Len() int {
	var count int
	for _, ns := range v.Namespaces() {
		count += ns.Len()
	}
	return count
}

func (v *Vector) Copy() *Vector {
	newVec := &Vector{Unigrams: make([]Namespace, len(v.Unigrams))}
	dst := newVec.Namespaces()
	for i, ns := range v.Namespaces() {
		*dst[i] = *ns
		dst[i].Features = append([]Feature(nil), ns.Features...)
	}
	return newVec
}

func (v *Vector) Equal(other *Vector) bool {
	if other == nil || len(v.Unigrams) != len(other.Unigrams) {
		return false
	}
	otherNS := other.Namespaces()
	for i, ns := range v.Namespaces() {
		if ns.Kind != otherNS[i].Kind || ns.Len() != otherNS[i].Len() {
			return false
		}
		for j, f := range ns.Features {
			if f != otherNS[i].Features[j] {
				return false
			}
		}
	}
	return true
}

func (v *Vector) String() string {
	strs := make([]string, 0, len(v.Unigrams)+4)
	for _, ns := range v.Namespaces() {
		if ns.Len() > 0 {
			strs = append(strs, fmt.Sprintf("%s:%d", ns.Name(), ns.Len()))
		}
	}
	return strings.Join(strs, " ")
}
