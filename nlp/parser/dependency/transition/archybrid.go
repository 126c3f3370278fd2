package transition

import (
	"fmt"

	. "hybrid/alg/transition"
)

// ArcHybrid is the arc-hybrid transition system:
//
//	SH	(S   ,	wi|B,	A) => (S|wi   ,	   B,	A)
//	RA-r	(S|wj|wi,	B,	A) => (S|wj   ,	   B,	A+{(wj,r,wi)})
//	LA-r	(S|wi,	wj|B,	A) => (S      ,	wj|B,	A+{(wj,r,wi)})
type ArcHybrid struct{}

func (a *ArcHybrid) Name() string {
	return "Arc Hybrid"
}

// ValidActions lists the legal actions for a buffer pointer and stack depth,
// in the order SHIFT, RIGHT, LEFT
func (a *ArcHybrid) ValidActions(pointer, n, depth int) ActionSet {
	retval := make(ActionSet, 0, 3)
	if pointer <= n {
		retval = append(retval, SHIFT)
	}
	if depth >= 2 {
		retval = append(retval, RIGHT)
	}
	if depth >= 1 && pointer <= n {
		retval = append(retval, LEFT)
	}
	return retval
}

func (a *ArcHybrid) Valid(conf *Configuration) ActionSet {
	return a.ValidActions(conf.Pointer, conf.N, conf.Stack.Size())
}

// Transition applies t to conf in place. For reduce transitions the created
// arc is returned.
func (a *ArcHybrid) Transition(conf *Configuration, t Transition) (Arc, error) {
	if !t.Action.Known() {
		return Arc{}, ErrUnknownAction
	}
	if !a.Valid(conf).Contains(t.Action) {
		return Arc{}, fmt.Errorf("%v with stack depth %d, pointer %d of %d: %w",
			t, conf.Stack.Size(), conf.Pointer, conf.N, ErrInvalidTransition)
	}
	var arc Arc
	switch t.Action {
	case SHIFT:
		conf.Stack.Push(conf.Pointer)
		conf.Pointer++
	case RIGHT:
		wi, _ := conf.Stack.Pop()
		wj, _ := conf.Stack.Peek()
		arc = Arc{Modifier: wi, Head: wj, Label: t.Label}
		conf.Children[wj].AddRight(wi)
		conf.attach(arc)
	case LEFT:
		wi, _ := conf.Stack.Pop()
		wj := conf.Pointer
		arc = Arc{Modifier: wi, Head: wj, Label: t.Label}
		conf.Children[wj].AddLeft(wi)
		conf.attach(arc)
	}
	conf.Sequence = append(conf.Sequence, t)
	return arc, nil
}

func (c *Configuration) attach(arc Arc) {
	c.Heads[arc.Modifier] = arc.Head
	c.Labels[arc.Modifier] = arc.Label
}
