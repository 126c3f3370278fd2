package transition

import (
	"fmt"
	"strings"
)

// Action is the move type of an arc-hybrid transition. The numeric values are
// the action ids seen by the predictor and by the oracles.
type Action int

const (
	NONE Action = iota
	SHIFT
	RIGHT
	LEFT
)

var actionNames = [...]string{"NO", "SH", "RA", "LA"}

func (a Action) String() string {
	if a < NONE || a > LEFT {
		return fmt.Sprintf("UNKNOWN(%d)", int(a))
	}
	return actionNames[a]
}

// Known reports whether a is one of SHIFT, RIGHT, LEFT
func (a Action) Known() bool {
	return a >= SHIFT && a <= LEFT
}

// Reduce reports whether the action pops the stack and attaches a label
func (a Action) Reduce() bool {
	return a == RIGHT || a == LEFT
}

// Transition is Shift, RightArc(label) or LeftArc(label)
type Transition struct {
	Action Action
	Label  int
}

func Shift() Transition {
	return Transition{Action: SHIFT}
}

func RightArc(label int) Transition {
	return Transition{Action: RIGHT, Label: label}
}

func LeftArc(label int) Transition {
	return Transition{Action: LEFT, Label: label}
}

func (t Transition) String() string {
	if t.Action.Reduce() {
		return fmt.Sprintf("%v-%d", t.Action, t.Label)
	}
	return t.Action.String()
}

func (t Transition) Equal(other Transition) bool {
	return t.Action == other.Action && (!t.Action.Reduce() || t.Label == other.Label)
}

// ActionSet holds the legal actions of a decision point, always in the
// enumeration order SHIFT, RIGHT, LEFT.
type ActionSet []Action

func (s ActionSet) Contains(a Action) bool {
	for _, val := range s {
		if val == a {
			return true
		}
	}
	return false
}

// First returns the first legal action, or NONE for the empty set
func (s ActionSet) First() Action {
	if len(s) == 0 {
		return NONE
	}
	return s[0]
}

// Values returns the set as predictor values
func (s ActionSet) Values() []int {
	retval := make([]int, len(s))
	for i, a := range s {
		retval[i] = int(a)
	}
	return retval
}

func (s ActionSet) String() string {
	strs := make([]string, len(s))
	for i, a := range s {
		strs[i] = a.String()
	}
	return "{" + strings.Join(strs, ",") + "}"
}

type TransitionSequence []Transition

func (seq TransitionSequence) String() string {
	strs := make([]string, len(seq))
	for i, t := range seq {
		strs[i] = t.String()
	}
	return strings.Join(strs, " ")
}

// Counts returns the number of SHIFT and reduce transitions in the sequence
func (seq TransitionSequence) Counts() (shifts, reduces int) {
	for _, t := range seq {
		switch {
		case t.Action == SHIFT:
			shifts++
		case t.Action.Reduce():
			reduces++
		}
	}
	return
}
