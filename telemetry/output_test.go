package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatalf("disabled output errored: %v", err)
	}
	if om != nil {
		t.Fatal("empty dir should disable output")
	}

	// All methods must be safe on the nil manager.
	if err := om.WriteGeneration(GenerationStats{}); err != nil {
		t.Errorf("nil WriteGeneration: %v", err)
	}
	if om.Dir() != "" {
		t.Errorf("nil Dir() = %q, want empty", om.Dir())
	}
	if err := om.Close(); err != nil {
		t.Errorf("nil Close: %v", err)
	}
}

func TestOutputManagerWritesCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("creating output manager: %v", err)
	}

	if err := om.WriteGeneration(GenerationStats{Generation: 0, Ticks: 12, Fitness: 1}); err != nil {
		t.Fatalf("writing first record: %v", err)
	}
	if err := om.WriteGeneration(GenerationStats{Generation: 1, Ticks: 30, Fitness: 3}); err != nil {
		t.Fatalf("writing second record: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("closing: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "generations.csv"))
	if err != nil {
		t.Fatalf("reading generations.csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("csv has %d lines, want header plus 2 records:\n%s", len(lines), data)
	}
	if !strings.HasPrefix(lines[0], "generation,") {
		t.Errorf("header = %q, want generation column first", lines[0])
	}
	if !strings.HasPrefix(lines[1], "0,12,1") {
		t.Errorf("first record = %q, want to start with 0,12,1", lines[1])
	}
	if strings.HasPrefix(lines[2], "generation") {
		t.Error("second write repeated the header")
	}
}
