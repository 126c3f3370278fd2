package transition

import "testing"

func TestActionSet(t *testing.T) {
	set := ActionSet{SHIFT, RIGHT, LEFT}
	if set.First() != SHIFT {
		t.Errorf("Expected SHIFT first, got %v", set.First())
	}
	if !set.Contains(LEFT) || set.Contains(NONE) {
		t.Error("Contains returned wrong membership")
	}
	vals := set.Values()
	if len(vals) != 3 || vals[0] != 1 || vals[1] != 2 || vals[2] != 3 {
		t.Errorf("Expected values [1 2 3], got %v", vals)
	}
	if (ActionSet{}).First() != NONE {
		t.Error("Expected NONE for empty set")
	}
	if s := set.String(); s != "{SH,RA,LA}" {
		t.Errorf("Expected {SH,RA,LA}, got %s", s)
	}
}

func TestTransitions(t *testing.T) {
	if !LeftArc(3).Equal(LeftArc(3)) || LeftArc(3).Equal(LeftArc(4)) {
		t.Error("LeftArc equality ignores labels")
	}
	if !Shift().Equal(Transition{Action: SHIFT, Label: 7}) {
		t.Error("Shift equality should ignore labels")
	}
	if RightArc(2).String() != "RA-2" {
		t.Errorf("Expected RA-2, got %s", RightArc(2).String())
	}
	if Action(9).Known() || !RIGHT.Known() {
		t.Error("Known returned wrong answer")
	}
	seq := TransitionSequence{Shift(), RightArc(1), Shift(), LeftArc(2), RightArc(3)}
	shifts, reduces := seq.Counts()
	if shifts != 2 || reduces != 3 {
		t.Errorf("Expected 2 shifts and 3 reduces, got %d and %d", shifts, reduces)
	}
}
