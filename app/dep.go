package app

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"

	"hybrid/alg/featurevector"
	"hybrid/alg/perceptron"
	"hybrid/eval"
	"hybrid/nlp/format/conll"
	"hybrid/nlp/parser/dependency/transition"
	nlp "hybrid/nlp/types"
	"hybrid/util"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
)

var _ transition.Predictor = &perceptron.Multiclass{}

func HybridConfigOut(cfg *Config, parser *transition.Deterministic) {
	log.Println("Configuration")
	log.Printf("Transition System:\t%s", parser.TransFunc.Name())
	log.Printf("Reference Policy:\t%s", parser.Oracle.Name())
	log.Printf("Iterations:\t\t%d", cfg.Iterations)
	log.Printf("Averaged:\t\t%v", cfg.Average)
	log.Printf("Explore:\t\t%v", cfg.Explore)
	log.Printf("Pairwise Features:\t%v", !cfg.Parser.NoQuadratic)
	log.Printf("Triple Features:\t%v", !cfg.Parser.NoCubic)
	log.Printf("Labels:\t\t\t%d (root %d)", cfg.Parser.NumLabels, cfg.Parser.RootLabel)
	log.Printf("Templates:\t\t%s", parser.Extractor.Templates)
	log.Println()
	log.Println("Data")
	log.Printf("Labels File:\t\t%s", cfg.Labels)
	log.Printf("Train file (conll):\t%s", cfg.Train)
	log.Printf("Input file (conll):\t%s", cfg.Input)
	log.Printf("Out (conll) file:\t%s", cfg.Output)
	log.Printf("Out (heads) file:\t%s", cfg.Heads)
}

// Train runs the perceptron over sents for the given number of iterations.
// Sentences the parser rejects are logged and skipped; their number is
// returned.
func Train(parser *transition.Deterministic, model *perceptron.Multiclass, sents []*nlp.Sentence, iterations int) int {
	var failed int
	prevPrefix := log.Prefix()
	model.Init(iterations)
	for i := 0; i < iterations; i++ {
		log.SetPrefix(fmt.Sprintf("IT #%d %s", i, prevPrefix))
		updates := model.Updates
		var loss float64
		for j, sent := range sents {
			result, err := parser.Parse(sent, nil)
			if err != nil {
				log.Println("At instance", j, "skipped:", err)
				failed++
				continue
			}
			loss += result.Loss
			model.EndInstance()
		}
		log.Println("Updates", model.Updates-updates, "of", model.Decisions, "decisions; loss", loss)
	}
	log.SetPrefix(prevPrefix)
	model.Finalize()
	return failed
}

// Parse parses every sentence, writing head:label lines to out. Results of
// rejected sentences are nil.
func Parse(parser *transition.Deterministic, sents []*nlp.Sentence, out io.Writer) ([]*transition.Result, int) {
	var failed int
	results := make([]*transition.Result, len(sents))
	for i, sent := range sents {
		result, err := parser.Parse(sent, out)
		if err != nil {
			log.Println("At instance", i, "skipped:", err)
			failed++
			continue
		}
		results[i] = result
	}
	return results, failed
}

// Evaluate scores results against the gold trees of sents
func Evaluate(sents []*nlp.Sentence, results []*transition.Result) *eval.Dependency {
	total := &eval.Dependency{}
	for i, result := range results {
		if result == nil {
			continue
		}
		goldHeads, goldLabels := sents[i].GoldTree()
		total.Add(goldHeads, goldLabels, result.Heads, result.Labels)
	}
	return total
}

func writeHeads(filename string, f func(io.Writer) error) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	writer := bufio.NewWriter(file)
	if err := f(writer); err != nil {
		return err
	}
	return writer.Flush()
}

func HybridTrainAndParse(cmd *commander.Command, args []string) error {
	cfg, err := LoadOptions(&cmd.Flag)
	if err != nil {
		return err
	}
	required := map[string]string{"labels": cfg.Labels, "train": cfg.Train}
	if cfg.Input != "" {
		required["input"] = cfg.Input
	}
	if err := VerifyFiles(required); err != nil {
		cmd.Usage()
		return err
	}

	labels, err := ReadLabels(cfg.Labels)
	if err != nil {
		return err
	}
	if labels.Len() > cfg.Parser.NumLabels {
		log.Printf("Warning: %d labels in %s, only %d used", labels.Len(), cfg.Labels, cfg.Parser.NumLabels)
	}
	templates, err := ReadTemplates(cfg.Templates)
	if err != nil {
		return err
	}

	var updater perceptron.UpdateStrategy = &perceptron.TrivialStrategy{}
	if cfg.Average {
		updater = &perceptron.AveragedStrategy{}
	}
	model := perceptron.NewMulticlass(transition.NUM_LEARNERS, updater)
	model.Explore = cfg.Explore
	var loss transition.Loss
	parser := transition.NewDeterministic(cfg.Parser, templates, model, &loss)
	parser.Log = cfg.Log
	HybridConfigOut(cfg, parser)

	encoder := conll.NewEncoder(labels, featurevector.DefaultSpace)
	_, train, err := ReadCorpus(cfg.Train, encoder)
	if err != nil {
		return err
	}
	log.Println("Read", len(train), "sentences from", cfg.Train)
	if failed := Train(parser, model, train, cfg.Iterations); failed > 0 {
		log.Println("Skipped", failed, "training instances")
	}
	log.Println("Training loss", float64(loss))
	if cfg.Log {
		util.LogMemory()
	}
	if cfg.Input == "" {
		return nil
	}

	encoder.Freeze()
	sents, input, err := ReadCorpus(cfg.Input, encoder)
	if err != nil {
		return err
	}
	log.Println("Read", len(input), "sentences from", cfg.Input)

	var (
		results []*transition.Result
		failed  int
	)
	if cfg.Heads != "" {
		err = writeHeads(cfg.Heads, func(w io.Writer) error {
			results, failed = Parse(parser, input, w)
			return nil
		})
		if err != nil {
			return err
		}
	} else {
		results, failed = Parse(parser, input, nil)
	}
	if failed > 0 {
		log.Println("Skipped", failed, "input sentences")
	}
	log.Println("Result:", Evaluate(input, results))

	if cfg.Output != "" {
		trees := make(conll.Sentences, len(sents))
		for i, sent := range sents {
			trees[i] = sent
			if results[i] != nil {
				trees[i] = encoder.Tree(sent, results[i].Heads, results[i].Labels)
			}
		}
		if err := conll.WriteFile(cfg.Output, trees); err != nil {
			return err
		}
		log.Println("Wrote", len(trees), "sentences to", cfg.Output)
	}
	return nil
}

func HybridCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       HybridTrainAndParse,
		UsageLine: "hybrid <file options> [arguments]",
		Short:     "runs arc-hybrid dependency training/parsing",
		Long: `
runs arc-hybrid dependency training/parsing

	$ ./hybrid hybrid -labels <labels> -train <conll> -input <conll> -output <out conll> [options]

options can also be given in a YAML file (-conf) or as HYBRID_* environment variables

`,
		Flag: *flag.NewFlagSet("hybrid", flag.ExitOnError),
	}
	RegisterFlags(&cmd.Flag)
	return cmd
}
