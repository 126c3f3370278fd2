package featurevector

import (
	"fmt"
	"sort"
	"strings"
)

// Sparse is a weight vector over placed feature indices. Extracted features
// are binary, so scoring sums the weights of the present indices.
type Sparse map[uint32]int64

func (v Sparse) Copy() Sparse {
	copied := make(Sparse, len(v))
	for k, val := range v {
		copied[k] = val
	}
	return copied
}

func (v Sparse) Score(f *Vector) int64 {
	var result int64
	for _, ns := range f.Namespaces() {
		for _, feat := range ns.Features {
			result += v[feat.Index]
		}
	}
	return result
}

// UpdateAdd adds amount to the weight of every feature in f
func (v Sparse) UpdateAdd(f *Vector, amount int64) Sparse {
	var val int64
	for _, ns := range f.Namespaces() {
		for _, feat := range ns.Features {
			val = v[feat.Index] + amount
			if val != 0 {
				v[feat.Index] = val
			} else {
				delete(v, feat.Index)
			}
		}
	}
	return v
}

// Add sums other into v
func (v Sparse) Add(other Sparse) Sparse {
	for k, val := range other {
		v[k] += val
	}
	return v
}

// ScalarDivide divides every weight by n, rounding toward zero
func (v Sparse) ScalarDivide(n int64) {
	for k, val := range v {
		if val /= n; val != 0 {
			v[k] = val
		} else {
			delete(v, k)
		}
	}
}

func (v Sparse) L1Norm() int64 {
	var result int64
	for _, val := range v {
		if val < 0 {
			val = -val
		}
		result += val
	}
	return result
}

func (v Sparse) String() string {
	keys := make([]int, 0, len(v))
	for k := range v {
		keys = append(keys, int(k))
	}
	sort.Ints(keys)
	strs := make([]string, len(keys))
	for i, k := range keys {
		strs[i] = fmt.Sprintf("%v %v", k, v[uint32(k)])
	}
	return strings.Join(strs, "\n")
}

func NewSparse() Sparse {
	return make(Sparse)
}
