package transition

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Slot is a named position of the configuration a feature is read from
type Slot int

const (
	S1 Slot = iota
	S2
	S3
	B1
	B2
	B3
	SL1
	SL2
	SR1
	SR2
	BL1
	BL2
	NUM_SLOTS
)

const (
	TEMPLATE_SEPARATOR = " "
	SLOT_SEPARATOR     = "-"

	// number of slots (S1..B3) conjoined with the valency namespace
	VALENCY_PAIR_SLOTS = 6
)

var SlotNames = map[string]Slot{
	"s1": S1, "s2": S2, "s3": S3,
	"b1": B1, "b2": B2, "b3": B3,
	"sl1": SL1, "sl2": SL2, "sr1": SR1,
	"sr2": SR2, "bl1": BL1, "bl2": BL2,
}

var slotStrings = [...]string{"s1", "s2", "s3", "b1", "b2", "b3", "sl1", "sl2", "sr1", "sr2", "bl1", "bl2"}

func (s Slot) String() string {
	if s < 0 || s >= NUM_SLOTS {
		return fmt.Sprintf("slot(%d)", int(s))
	}
	return slotStrings[s]
}

var (
	DEFAULT_PAIRS   = "s1-s2 s1-b1 s1-s1 s2-s2 s3-s3 b1-b1 b2-b2 b3-b3 b1-b2 s1-sl1 s1-sr1 b1-bl1"
	DEFAULT_TRIPLES = "b1-b2-b3 s1-b1-b2 s1-s2-b1 s1-s2-s3 s1-b1-bl1 b1-bl1-bl2 s1-sl1-sl2 s1-s2-s2 s1-sr1-b1 s1-sl1-b1 s1-sr1-sr2"
)

// Templates are the slot pairs and triples conjoined by the extractor
type Templates struct {
	Pairs   [][2]Slot
	Triples [][3]Slot
}

// TemplateSetup is the YAML form of Templates
type TemplateSetup struct {
	Pairs   []string `yaml:"pairs"`
	Triples []string `yaml:"triples"`
}

func DefaultTemplates() *Templates {
	t, err := ParseTemplates(strings.Fields(DEFAULT_PAIRS), strings.Fields(DEFAULT_TRIPLES))
	if err != nil {
		panic("Default feature templates are malformed: " + err.Error())
	}
	return t
}

func ParseTemplates(pairs, triples []string) (*Templates, error) {
	t := &Templates{
		Pairs:   make([][2]Slot, 0, len(pairs)),
		Triples: make([][3]Slot, 0, len(triples)),
	}
	for _, pair := range pairs {
		slots, err := parseSlots(pair, 2)
		if err != nil {
			return nil, err
		}
		t.Pairs = append(t.Pairs, [2]Slot{slots[0], slots[1]})
	}
	for _, triple := range triples {
		slots, err := parseSlots(triple, 3)
		if err != nil {
			return nil, err
		}
		t.Triples = append(t.Triples, [3]Slot{slots[0], slots[1], slots[2]})
	}
	return t, nil
}

func parseSlots(template string, size int) ([]Slot, error) {
	names := strings.Split(strings.ToLower(strings.TrimSpace(template)), SLOT_SEPARATOR)
	if len(names) != size {
		return nil, fmt.Errorf("template %q: expected %d slots, got %d", template, size, len(names))
	}
	slots := make([]Slot, size)
	for i, name := range names {
		slot, exists := SlotNames[name]
		if !exists {
			return nil, fmt.Errorf("template %q: unknown slot %q", template, name)
		}
		slots[i] = slot
	}
	return slots, nil
}

// LoadTemplates reads a YAML template setup; a missing list keeps its default
func LoadTemplates(reader io.Reader) (*Templates, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	setup := &TemplateSetup{
		Pairs:   strings.Fields(DEFAULT_PAIRS),
		Triples: strings.Fields(DEFAULT_TRIPLES),
	}
	if err := yaml.Unmarshal(data, setup); err != nil {
		return nil, err
	}
	return ParseTemplates(setup.Pairs, setup.Triples)
}

func LoadTemplatesFile(filename string) (*Templates, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return LoadTemplates(file)
}

func (t *Templates) String() string {
	strs := make([]string, 0, len(t.Pairs)+len(t.Triples))
	for _, p := range t.Pairs {
		strs = append(strs, p[0].String()+SLOT_SEPARATOR+p[1].String())
	}
	for _, p := range t.Triples {
		strs = append(strs, p[0].String()+SLOT_SEPARATOR+p[1].String()+SLOT_SEPARATOR+p[2].String())
	}
	return strings.Join(strs, TEMPLATE_SEPARATOR)
}
