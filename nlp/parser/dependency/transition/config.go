package transition

import (
	"fmt"
	"strings"

	"hybrid/alg"
	. "hybrid/alg/transition"
	nlp "hybrid/nlp/types"
)

// ChildLinks is the dependent bookkeeping of one token. Child fields hold
// token indices, 0 for none.
type ChildLinks struct {
	Left, Right                int
	Leftmost, SecondLeftmost   int
	Rightmost, SecondRightmost int
}

func (l *ChildLinks) AddLeft(child int) {
	l.SecondLeftmost = l.Leftmost
	l.Leftmost = child
	l.Left++
}

func (l *ChildLinks) AddRight(child int) {
	l.SecondRightmost = l.Rightmost
	l.Rightmost = child
	l.Right++
}

// Configuration is the per-sentence parser state. All per-token slices are
// indexed by token index (1..N); slot 0 is the root.
type Configuration struct {
	N       int
	Stack   *alg.StackArray
	Pointer int

	Heads, Labels         []int
	GoldHeads, GoldLabels []int
	Children              []ChildLinks

	Sequence TransitionSequence
}

func NewConfiguration() *Configuration {
	return &Configuration{Stack: alg.NewStackArray(0)}
}

// Init resets the configuration for sent: stack [1], pointer 2, no arcs.
// Gold values are decoded and validated.
func (c *Configuration) Init(sent *nlp.Sentence) error {
	n := sent.Len()
	if n == 0 {
		return ErrEmptySentence
	}
	c.N = n
	c.Heads = resize(c.Heads, n+1)
	c.Labels = resize(c.Labels, n+1)
	c.GoldHeads = resize(c.GoldHeads, n+1)
	c.GoldLabels = resize(c.GoldLabels, n+1)
	if cap(c.Children) < n+1 {
		c.Children = make([]ChildLinks, n+1)
	} else {
		c.Children = c.Children[:n+1]
		for i := range c.Children {
			c.Children[i] = ChildLinks{}
		}
	}
	groups := sent.Groups()
	for i := 1; i <= n; i++ {
		token, _ := sent.Token(i)
		if count := baseGroups(token); count != groups {
			return fmt.Errorf("token %d: %d groups, token 1 has %d: %w", i, count, groups, ErrGroupMismatch)
		}
		head, label := nlp.UnpackGold(token.Gold)
		if head < 0 || head > n {
			return fmt.Errorf("token %d: head %d outside [0,%d]: %w", i, head, n, ErrInvalidGold)
		}
		c.GoldHeads[i], c.GoldLabels[i] = head, label
		c.Heads[i], c.Labels[i] = 0, -1
	}
	c.Labels[0] = -1
	if c.Stack == nil {
		c.Stack = alg.NewStackArray(n)
	}
	c.Stack.Clear()
	c.Stack.Push(1)
	c.Pointer = 2
	c.Sequence = c.Sequence[0:0]
	return nil
}

func baseGroups(token *nlp.Token) int {
	var count int
	for _, g := range token.Groups {
		if g.Namespace != nlp.CONSTANT_NAMESPACE {
			count++
		}
	}
	return count
}

func resize(s []int, size int) []int {
	if cap(s) < size {
		return make([]int, size)
	}
	s = s[:size]
	for i := range s {
		s[i] = 0
	}
	return s
}

// Terminal is reached when only one token is left on the stack and the
// buffer is exhausted
func (c *Configuration) Terminal() bool {
	return c.Stack.Size() <= 1 && c.Pointer > c.N
}

// S returns the stack element at depth i (0 is the top)
func (c *Configuration) S(i int) (int, bool) {
	return c.Stack.Index(i)
}

// B returns the buffer token i positions after the pointer
func (c *Configuration) B(i int) (int, bool) {
	if c.Pointer+i > c.N || c.Pointer+i < 1 {
		return 0, false
	}
	return c.Pointer + i, true
}

func (c *Configuration) Links(token int) ChildLinks {
	if token < 0 || token >= len(c.Children) {
		return ChildLinks{}
	}
	return c.Children[token]
}

// GoldHead returns the gold head of token, or -1 outside the sentence
func (c *Configuration) GoldHead(token int) int {
	if token < 1 || token > c.N {
		return -1
	}
	return c.GoldHeads[token]
}

func (c *Configuration) GoldLabel(token int) int {
	if token < 1 || token > c.N {
		return -1
	}
	return c.GoldLabels[token]
}

// GoldArc reports whether a and b share a gold arc in either direction
func (c *Configuration) GoldArc(a, b int) bool {
	return c.GoldHead(a) == b || c.GoldHead(b) == a
}

func (c *Configuration) Copy() *Configuration {
	newConf := &Configuration{
		N:          c.N,
		Stack:      c.Stack.Copy(),
		Pointer:    c.Pointer,
		Heads:      append([]int(nil), c.Heads...),
		Labels:     append([]int(nil), c.Labels...),
		GoldHeads:  append([]int(nil), c.GoldHeads...),
		GoldLabels: append([]int(nil), c.GoldLabels...),
		Children:   append([]ChildLinks(nil), c.Children...),
		Sequence:   append(TransitionSequence(nil), c.Sequence...),
	}
	return newConf
}

func (c *Configuration) String() string {
	var last string
	if len(c.Sequence) > 0 {
		last = c.Sequence[len(c.Sequence)-1].String()
	}
	return fmt.Sprintf("%s\t=>([%s],\t[%s],\tA%d)", last, c.StringStack(), c.StringBuffer(), c.NumberOfArcs())
}

func (c *Configuration) StringStack() string {
	strs := make([]string, c.Stack.Size())
	for i, val := range c.Stack.Array {
		strs[i] = fmt.Sprintf("%d", val)
	}
	return strings.Join(strs, ",")
}

func (c *Configuration) StringBuffer() string {
	switch remaining := c.N - c.Pointer + 1; {
	case remaining <= 0:
		return ""
	case remaining <= 3:
		strs := make([]string, 0, 3)
		for i := c.Pointer; i <= c.N; i++ {
			strs = append(strs, fmt.Sprintf("%d", i))
		}
		return strings.Join(strs, ",")
	default:
		return fmt.Sprintf("%d,...,%d", c.Pointer, c.N)
	}
}

func (c *Configuration) NumberOfArcs() int {
	_, reduces := c.Sequence.Counts()
	return reduces
}
