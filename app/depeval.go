package app

import (
	"fmt"
	"log"

	"hybrid/eval"
	"hybrid/nlp/format/conll"
	"hybrid/util"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
)

var (
	evalParsed, evalGold string
)

func conllTree(sent conll.Sentence, labels *util.EnumSet) (heads, ids []int) {
	heads, ids = make([]int, len(sent)+1), make([]int, len(sent)+1)
	ids[0] = -1
	for i := 1; i <= len(sent); i++ {
		row := sent[i]
		heads[i] = row.Head
		ids[i], _ = labels.Add(row.DepRel)
	}
	return
}

// EvalConll scores parsed sentences against gold sentences of the same
// corpus by head index and label name
func EvalConll(parsed, gold conll.Sentences) (*eval.Dependency, error) {
	if len(parsed) != len(gold) {
		return nil, fmt.Errorf("Evaluation set sizes are different: %d parsed, %d gold", len(parsed), len(gold))
	}
	labels := util.NewEnumSet(50)
	total := &eval.Dependency{}
	for i, sent := range parsed {
		if len(sent) != len(gold[i]) {
			return nil, fmt.Errorf("Sentence %d: %d parsed tokens, %d gold", i, len(sent), len(gold[i]))
		}
		heads, ids := conllTree(sent, labels)
		goldHeads, goldIds := conllTree(gold[i], labels)
		total.Add(goldHeads, goldIds, heads, ids)
	}
	return total, nil
}

func HybridEval(cmd *commander.Command, args []string) error {
	if err := VerifyFiles(map[string]string{"p": evalParsed, "g": evalGold}); err != nil {
		cmd.Usage()
		return err
	}
	parsed, err := conll.ReadFile(evalParsed)
	if err != nil {
		return err
	}
	log.Println("Read", len(parsed), "sentences from", evalParsed)
	gold, err := conll.ReadFile(evalGold)
	if err != nil {
		return err
	}
	log.Println("Read", len(gold), "sentences from", evalGold)
	total, err := EvalConll(parsed, gold)
	if err != nil {
		return err
	}
	log.Println("Result:", total)
	return nil
}

func HybridEvalCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       HybridEval,
		UsageLine: "hybrideval <file options> [arguments]",
		Short:     "runs dependency eval",
		Long: `
runs dependency eval

	$ ./hybrid hybrideval -p <conll> -g <conll>

`,
		Flag: *flag.NewFlagSet("hybrideval", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&evalParsed, "p", "", "Parse Result Conll File")
	cmd.Flag.StringVar(&evalGold, "g", "", "Gold Conll File")
	return cmd
}
