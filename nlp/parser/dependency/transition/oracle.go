package transition

import (
	. "hybrid/alg/transition"
)

const (
	BASE_REWARD       = 500
	TIE_BREAK_PENALTY = 10
)

// Oracle computes the reference action and label at a decision point. Action
// returns NONE when the policy has no opinion.
type Oracle interface {
	Action(conf *Configuration, valid ActionSet) Action
	Label(conf *Configuration) int
	Name() string
}

// goldShortcut returns SHIFT or LEFT when the gold tree forces them
func goldShortcut(conf *Configuration, valid ActionSet) Action {
	sTop, sExists := conf.S(0)
	if valid.Contains(SHIFT) && (!sExists || conf.GoldHead(conf.Pointer) == sTop) {
		return SHIFT
	}
	if valid.Contains(LEFT) && conf.GoldHead(sTop) == conf.Pointer {
		return LEFT
	}
	return NONE
}

func goldLabel(conf *Configuration) int {
	sTop, _ := conf.S(0)
	return conf.GoldLabel(sTop)
}

// DynamicOracle scores every action by the gold arcs it makes unreachable
type DynamicOracle struct {
	rewards [4]int
}

var _ Oracle = &DynamicOracle{}

func (o *DynamicOracle) Name() string {
	return "dynamic"
}

func (o *DynamicOracle) Action(conf *Configuration, valid ActionSet) Action {
	if shortcut := goldShortcut(conf, valid); shortcut != NONE {
		return shortcut
	}
	rewards := o.Rewards(conf, valid)

	// later actions win ties
	best := SHIFT
	for a := SHIFT; a <= LEFT; a++ {
		if rewards[a] >= rewards[best] {
			best = a
		}
	}
	return best
}

// Rewards returns the reward per action id; invalid actions get 0
func (o *DynamicOracle) Rewards(conf *Configuration, valid ActionSet) [4]int {
	rewards := &o.rewards
	for a := SHIFT; a <= LEFT; a++ {
		rewards[a] = BASE_REWARD
	}
	rewards[NONE] = 0

	// gold arcs between the next token and the stack are lost by SHIFT
	if conf.Pointer <= conf.N {
		for _, s := range conf.Stack.Array {
			if conf.GoldArc(s, conf.Pointer) {
				rewards[SHIFT]--
			}
		}
	}

	// gold arcs between the stack top and the rest of the buffer are lost
	// by either reduce
	if sTop, sExists := conf.S(0); sExists {
		for i := conf.Pointer + 1; i <= conf.N; i++ {
			if conf.GoldArc(i, sTop) {
				rewards[RIGHT]--
				rewards[LEFT]--
			}
		}
		// keeps RA ahead of LA when S2 is the gold head of S1
		if sNext, exists := conf.S(1); exists && conf.GoldHead(sTop) == sNext {
			rewards[LEFT] -= TIE_BREAK_PENALTY
		}
	}

	for a := SHIFT; a <= LEFT; a++ {
		if !valid.Contains(a) {
			rewards[a] = 0
		}
	}
	return *rewards
}

func (o *DynamicOracle) Label(conf *Configuration) int {
	return goldLabel(conf)
}

// StaticOracle only follows the gold shortcuts
type StaticOracle struct{}

var _ Oracle = &StaticOracle{}

func (o *StaticOracle) Name() string {
	return "sub-optimal"
}

func (o *StaticOracle) Action(conf *Configuration, valid ActionSet) Action {
	return goldShortcut(conf, valid)
}

func (o *StaticOracle) Label(conf *Configuration) int {
	return goldLabel(conf)
}

// DegenerateOracle ignores the gold tree
type DegenerateOracle struct{}

var _ Oracle = &DegenerateOracle{}

func (o *DegenerateOracle) Name() string {
	return "degenerate"
}

func (o *DegenerateOracle) Action(conf *Configuration, valid ActionSet) Action {
	return valid.First()
}

func (o *DegenerateOracle) Label(conf *Configuration) int {
	return 0
}
