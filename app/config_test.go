package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gonuts/flag"
)

func testFlags(t *testing.T, args ...string) *flag.FlagSet {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatal(err)
	}
	return fs
}

func TestLoadOptionsDefaults(t *testing.T) {
	cfg, err := LoadOptions(testFlags(t))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Iterations != 1 || !cfg.Average || cfg.Explore || cfg.Log {
		t.Errorf("Unexpected defaults %+v", cfg)
	}
	if cfg.Parser.RootLabel != 8 || cfg.Parser.NumLabels != 12 {
		t.Errorf("Expected root label 8 of 12, got %d of %d", cfg.Parser.RootLabel, cfg.Parser.NumLabels)
	}
	if cfg.Parser.NoQuadratic || cfg.Parser.NoCubic || cfg.Parser.BadRef || cfg.Parser.SubRef {
		t.Errorf("Unexpected parser defaults %+v", cfg.Parser)
	}
}

func TestLoadOptionsLayers(t *testing.T) {
	dir := t.TempDir()
	confFile := filepath.Join(dir, "options.yaml")
	options := "iterations: 4\nroot-label: 3\nnum-label: 6\ndparser-sub-ref: true\nlabels: file.labels\n"
	if err := os.WriteFile(confFile, []byte(options), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HYBRID_DPARSER_NO_CUBIC", "true")
	t.Setenv("HYBRID_ITERATIONS", "5")

	cfg, err := LoadOptions(testFlags(t, "-conf", confFile, "-num-label", "7", "-train", "train.conll"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Parser.RootLabel != 3 || !cfg.Parser.SubRef || cfg.Labels != "file.labels" {
		t.Errorf("Options file not applied: %+v %+v", cfg, cfg.Parser)
	}
	if cfg.Iterations != 5 || !cfg.Parser.NoCubic {
		t.Errorf("Environment not applied: %+v %+v", cfg, cfg.Parser)
	}
	if cfg.Parser.NumLabels != 7 || cfg.Train != "train.conll" {
		t.Errorf("Flags not applied: %+v %+v", cfg, cfg.Parser)
	}
	if cfg.Parser.Oracle().Name() != "sub-optimal" {
		t.Errorf("Expected sub-optimal oracle, got %s", cfg.Parser.Oracle().Name())
	}
}

func TestLoadOptionsErrors(t *testing.T) {
	if _, err := LoadOptions(testFlags(t, "-conf", filepath.Join(t.TempDir(), "missing.yaml"))); err == nil {
		t.Error("Expected error for a missing options file")
	}
	if _, err := LoadOptions(testFlags(t, "-root-label", "13")); err == nil {
		t.Error("Expected error for a root label outside the label range")
	}
	if _, err := LoadOptions(testFlags(t, "-iterations", "-1")); err == nil {
		t.Error("Expected error for negative iterations")
	}
}
