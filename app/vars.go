package app

import (
	"fmt"
	"log"
	"os"

	"hybrid/nlp/format/conll"
	"hybrid/nlp/parser/dependency/transition"
	nlp "hybrid/nlp/types"
	"hybrid/util"
	"hybrid/util/conf"
)

func VerifyExists(filename string) bool {
	_, err := os.Stat(filename)
	if err != nil {
		log.Println("Error accessing file", filename)
		log.Println(err)
		return false
	}
	return true
}

// VerifyFiles checks that every named option points to a readable file
func VerifyFiles(required map[string]string) error {
	for name, filename := range required {
		if filename == "" {
			return fmt.Errorf("Required option %s not set", name)
		}
		if !VerifyExists(filename) {
			return fmt.Errorf("Can't access %s file %s", name, filename)
		}
	}
	return nil
}

// ReadLabels reads a label list file; the label on line i gets id i
func ReadLabels(filename string) (*util.EnumSet, error) {
	relations, err := conf.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("Failed reading dependency labels configuration file %s: %w", filename, err)
	}
	labels := conll.LabelSet(relations.Values)
	labels.Frozen = true
	return labels, nil
}

func ReadTemplates(filename string) (*transition.Templates, error) {
	if filename == "" {
		return transition.DefaultTemplates(), nil
	}
	return transition.LoadTemplatesFile(filename)
}

// ReadCorpus reads and encodes a CoNLL file
func ReadCorpus(filename string, encoder *conll.Encoder) (conll.Sentences, []*nlp.Sentence, error) {
	sents, err := conll.ReadFile(filename)
	if err != nil {
		return nil, nil, err
	}
	encoded, err := encoder.EncodeCorpus(sents)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", filename, err)
	}
	return sents, encoded, nil
}
