package transition

import (
	"testing"

	. "hybrid/alg/transition"
)

func TestDynamicOracleShortcuts(t *testing.T) {
	arcHybrid := &ArcHybrid{}
	oracle := &DynamicOracle{}
	conf := testConf(TEST_HEADS, TEST_LABELS)

	// gold head of S1 is the next token
	if action := oracle.Action(conf, arcHybrid.Valid(conf)); action != LEFT {
		t.Errorf("Expected LA, got %v", action)
	}
	if label := oracle.Label(conf); label != ATT {
		t.Errorf("Expected label %d, got %d", ATT, label)
	}
	if _, err := arcHybrid.Transition(conf, LeftArc(ATT)); err != nil {
		t.Fatal(err)
	}

	// empty stack
	if action := oracle.Action(conf, arcHybrid.Valid(conf)); action != SHIFT {
		t.Errorf("Expected SH on empty stack, got %v", action)
	}
}

func TestDynamicOracleRewards(t *testing.T) {
	arcHybrid := &ArcHybrid{}
	oracle := &DynamicOracle{}

	// 2 and 3 both attach to 1; at ([1,2], [3]) shifting loses 1->3 and
	// the right arc onto 1 is preferred over the left arc onto 3
	conf := testConf([]int{0, 1, 1}, []int{ROOT, ATT, OBJ})
	if _, err := arcHybrid.Transition(conf, Shift()); err != nil {
		t.Fatal(err)
	}
	valid := arcHybrid.Valid(conf)
	expected := [4]int{0, BASE_REWARD - 1, BASE_REWARD, BASE_REWARD - TIE_BREAK_PENALTY}
	if rewards := oracle.Rewards(conf, valid); rewards != expected {
		t.Errorf("Expected rewards %v, got %v", expected, rewards)
	}
	if action := oracle.Action(conf, valid); action != RIGHT {
		t.Errorf("Expected RA, got %v", action)
	}
	if label := oracle.Label(conf); label != ATT {
		t.Errorf("Expected label of S1 (%d), got %d", ATT, label)
	}

	// invalid actions get no reward
	rewards := oracle.Rewards(conf, ActionSet{SHIFT})
	if rewards[RIGHT] != 0 || rewards[LEFT] != 0 || rewards[SHIFT] != BASE_REWARD-1 {
		t.Errorf("Expected only SH rewarded, got %v", rewards)
	}
}

func TestDynamicOracleTies(t *testing.T) {
	arcHybrid := &ArcHybrid{}
	oracle := &DynamicOracle{}

	// at ([1,2], [3,4]) no action loses a gold arc
	conf := testConf([]int{0, 0, 4, 0}, []int{ROOT, ROOT, ATT, ROOT})
	if _, err := arcHybrid.Transition(conf, Shift()); err != nil {
		t.Fatal(err)
	}
	valid := arcHybrid.Valid(conf)
	expected := [4]int{0, BASE_REWARD, BASE_REWARD, BASE_REWARD}
	if rewards := oracle.Rewards(conf, valid); rewards != expected {
		t.Errorf("Expected rewards %v, got %v", expected, rewards)
	}
	if action := oracle.Action(conf, valid); action != LEFT {
		t.Errorf("Expected the last tied action LA, got %v", action)
	}
	if action := oracle.Action(conf, ActionSet{SHIFT, RIGHT}); action != RIGHT {
		t.Errorf("Expected RA when LA is invalid, got %v", action)
	}
}

func TestOracleWalk(t *testing.T) {
	arcHybrid := &ArcHybrid{}
	for _, oracle := range []Oracle{&DynamicOracle{}, &StaticOracle{}, &DegenerateOracle{}} {
		conf := testConf(TEST_HEADS, TEST_LABELS)
		other := testConf(TEST_HEADS, TEST_LABELS)
		for !conf.Terminal() {
			valid := arcHybrid.Valid(conf)
			action := oracle.Action(conf, valid)
			if again := oracle.Action(other, valid); again != action {
				t.Fatalf("%s: oracle not deterministic, got %v and %v", oracle.Name(), action, again)
			}
			if action == NONE {
				action = valid.First()
			}
			if !valid.Contains(action) {
				t.Fatalf("%s: oracle chose %v outside %v", oracle.Name(), action, valid)
			}
			trans := Transition{Action: action}
			if action.Reduce() {
				trans.Label = oracle.Label(conf)
			}
			if _, err := arcHybrid.Transition(conf, trans); err != nil {
				t.Fatal(err)
			}
			if _, err := arcHybrid.Transition(other, trans); err != nil {
				t.Fatal(err)
			}
		}
		if oracle.Name() == "dynamic" && conf.Sequence.String() != TEST_GOLD_SEQUENCE {
			t.Errorf("Expected gold sequence %s, got %v", TEST_GOLD_SEQUENCE, conf.Sequence)
		}
	}
}

func TestStaticOracle(t *testing.T) {
	arcHybrid := &ArcHybrid{}
	oracle := &StaticOracle{}
	conf := testConf(TEST_HEADS, TEST_LABELS)
	if action := oracle.Action(conf, arcHybrid.Valid(conf)); action != LEFT {
		t.Errorf("Expected LA shortcut, got %v", action)
	}

	// no shortcut at ([1,2], [3])
	conf = testConf([]int{0, 1, 1}, []int{ROOT, ATT, OBJ})
	if _, err := arcHybrid.Transition(conf, Shift()); err != nil {
		t.Fatal(err)
	}
	if action := oracle.Action(conf, arcHybrid.Valid(conf)); action != NONE {
		t.Errorf("Expected NONE without a shortcut, got %v", action)
	}
}

func TestDegenerateOracle(t *testing.T) {
	arcHybrid := &ArcHybrid{}
	oracle := &DegenerateOracle{}
	conf := testConf(TEST_HEADS, TEST_LABELS)
	if action := oracle.Action(conf, arcHybrid.Valid(conf)); action != SHIFT {
		t.Errorf("Expected first valid action SH, got %v", action)
	}
	if label := oracle.Label(conf); label != 0 {
		t.Errorf("Expected label 0, got %d", label)
	}
	if action := oracle.Action(conf, ActionSet{}); action != NONE {
		t.Errorf("Expected NONE for an empty valid set, got %v", action)
	}
}

func TestOptionsOracle(t *testing.T) {
	tests := []struct {
		opts     Options
		expected string
	}{
		{Options{}, "dynamic"},
		{Options{BadRef: true}, "degenerate"},
		{Options{SubRef: true}, "sub-optimal"},
		{Options{BadRef: true, SubRef: true}, "sub-optimal"},
	}
	for _, test := range tests {
		if name := test.opts.Oracle().Name(); name != test.expected {
			t.Errorf("Options %+v: expected %s oracle, got %s", test.opts, test.expected, name)
		}
	}
	labels := DefaultOptions().ValidLabels()
	if len(labels) != 11 || labels[0] != 1 || labels[10] != 12 {
		t.Errorf("Unexpected labels %v", labels)
	}
	for _, l := range labels {
		if l == ROOT {
			t.Error("Root label in the valid label set")
		}
	}
}
