package app

import (
	"errors"
	"fmt"
	"strings"

	"hybrid/nlp/parser/dependency/transition"

	"github.com/gonuts/flag"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	CONF_FLAG  = "conf"
	ENV_PREFIX = "HYBRID_"
)

// Config holds the command options. Parser options share the key space.
type Config struct {
	Iterations int    `koanf:"iterations"`
	Train      string `koanf:"train"`
	Input      string `koanf:"input"`
	Output     string `koanf:"output"`
	Heads      string `koanf:"heads"`
	Labels     string `koanf:"labels"`
	Templates  string `koanf:"templates"`
	Average    bool   `koanf:"average"`
	Explore    bool   `koanf:"explore"`
	Log        bool   `koanf:"log"`

	Parser transition.Options `koanf:"-"`
}

func DefaultConfig() map[string]interface{} {
	opts := transition.DefaultOptions()
	return map[string]interface{}{
		"iterations": 1,
		"train":      "",
		"input":      "",
		"output":     "",
		"heads":      "",
		"labels":     "",
		"templates":  "",
		"average":    true,
		"explore":    false,
		"log":        false,

		"dparser-no-quad":  opts.NoQuadratic,
		"dparser-no-cubic": opts.NoCubic,
		"dparser-bad-ref":  opts.BadRef,
		"dparser-sub-ref":  opts.SubRef,
		"root-label":       opts.RootLabel,
		"num-label":        opts.NumLabels,
	}
}

// RegisterFlags declares every option on fs. Only flags set on the command
// line override the other option layers.
func RegisterFlags(fs *flag.FlagSet) {
	opts := transition.DefaultOptions()
	fs.String(CONF_FLAG, "", "Optional - YAML options file")
	fs.Int("iterations", 1, "Number of Perceptron Iterations")
	fs.String("train", "", "Training Conll File")
	fs.String("input", "", "Input Conll File (gold columns are used for evaluation)")
	fs.String("output", "", "Optional - Output Conll File")
	fs.String("heads", "", "Optional - Output file of head:label lines")
	fs.String("labels", "", "Dependency Labels Configuration File")
	fs.String("templates", "", "Optional - YAML feature template file")
	fs.Bool("average", true, "Average the perceptron weights")
	fs.Bool("explore", false, "Follow the model's own predictions while training")
	fs.Bool("log", false, "Show configurations, oracle and chosen transitions")

	fs.Bool("dparser-no-quad", opts.NoQuadratic, "Disable pairwise features")
	fs.Bool("dparser-no-cubic", opts.NoCubic, "Disable triple features")
	fs.Bool("dparser-bad-ref", opts.BadRef, "Use the degenerate reference policy")
	fs.Bool("dparser-sub-ref", opts.SubRef, "Use the sub-optimal reference policy")
	fs.Int("root-label", opts.RootLabel, "Id of the root label")
	fs.Int("num-label", opts.NumLabels, "Number of labels")
}

// LoadOptions layers defaults, the options file named by -conf, HYBRID_*
// environment variables and the flags set on fs, later layers winning
func LoadOptions(fs *flag.FlagSet) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(DefaultConfig(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if f := fs.Lookup(CONF_FLAG); f != nil && f.Value.String() != "" {
		if err := k.Load(file.Provider(f.Value.String()), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading options file %s: %w", f.Value.String(), err)
		}
	}

	// HYBRID_ROOT_LABEL -> root-label
	if err := k.Load(env.Provider(ENV_PREFIX, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, ENV_PREFIX)), "_", "-")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	set := make(map[string]interface{})
	fs.Visit(func(f *flag.Flag) {
		if f.Name != CONF_FLAG {
			set[f.Name] = f.Value.String()
		}
	})
	if err := k.Load(confmap.Provider(set, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load flags: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	if err := k.Unmarshal("", &cfg.Parser); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	switch {
	case c.Iterations < 0:
		return fmt.Errorf("iterations must not be negative, got %d", c.Iterations)
	case c.Parser.NumLabels < 1:
		return errors.New("num-label must be positive")
	case c.Parser.RootLabel < 1 || c.Parser.RootLabel > c.Parser.NumLabels:
		return fmt.Errorf("root-label %d outside 1..%d", c.Parser.RootLabel, c.Parser.NumLabels)
	}
	return nil
}
