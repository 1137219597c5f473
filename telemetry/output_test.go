package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/aquarium/config"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("NewOutputManager(\"\") = %v, %v; want nil, nil", om, err)
	}
	// nil manager is a no-op
	if err := om.WritePopulation(PopulationSample{}); err != nil {
		t.Errorf("nil WritePopulation: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("nil Close: %v", err)
	}
}

func TestOutputManagerWritesCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	for tick := 1; tick <= 3; tick++ {
		if err := om.WritePopulation(PopulationSample{Tick: tick, Fish: 10 + tick, Dolphins: 2, Sharks: 1}); err != nil {
			t.Fatalf("WritePopulation: %v", err)
		}
	}
	if err := om.WriteTelemetry(WindowStats{WindowEndTick: 100, FishCount: 12}); err != nil {
		t.Fatalf("WriteTelemetry: %v", err)
	}
	if err := om.WriteBookmark(Bookmark{Type: BookmarkSharksExtinct, Tick: 100, Description: "gone"}); err != nil {
		t.Fatalf("WriteBookmark: %v", err)
	}
	if err := om.WriteConfig(config.Default()); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "population.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("population.csv has %d lines, want header + 3:\n%s", len(lines), data)
	}
	if lines[0] != "tick,fish,dolphins,sharks" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[3] != "3,13,2,1" {
		t.Errorf("last row = %q, want 3,13,2,1", lines[3])
	}

	bm, err := os.ReadFile(filepath.Join(dir, "bookmarks.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(bm), "sharks_extinct,100,gone") {
		t.Errorf("bookmarks.csv missing row:\n%s", bm)
	}

	if _, err := config.Load(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config.yaml does not load back: %v", err)
	}
}
