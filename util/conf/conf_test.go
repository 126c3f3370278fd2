package conf

import (
	"strings"
	"testing"
)

func TestRead(t *testing.T) {
	c, err := Read(strings.NewReader("# labels\nATT\n\nSBJ\n  OBJ \n"))
	if err != nil {
		t.Fatal(err.Error())
	}
	if len(c.Values) != 3 {
		t.Fatalf("Expected 3 values, got %d: %v", len(c.Values), c.Values)
	}
	if c.Values[2] != "OBJ" {
		t.Errorf("Expected trimmed OBJ, got %q", c.Values[2])
	}
}
