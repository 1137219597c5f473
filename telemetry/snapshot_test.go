package telemetry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/aquarium/components"
)

func TestSnapshotSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()

	snapshot := &Snapshot{
		Version: SnapshotVersion,
		Seed:    42,
		Pond:    "Pla",
		Width:   800,
		Height:  600,
		Tick:    1000,
		Agents: []AgentState{
			{
				ID:       1,
				Kind:     components.KindFish,
				X:        150,
				Y:        250,
				Heading:  1.2,
				Speed:    5,
				Width:    12,
				Height:   12,
				Age:      30,
				Lifetime: 120,
				FishID:   "0b0e6a8e-4a0e-4c55-9d52-3b7f1b8b2a10",
				Name:     "Pla-1",
				Genesis:  "Pla",
				Status:   components.StatusLocal.String(),
				Size:     12,
				Stats:    &LifetimeStatsJSON{BirthTick: 100, Children: 2},
			},
			{
				ID:       2,
				Kind:     components.KindShark,
				X:        10,
				Y:        20,
				Lifetime: 1000,
				Meals:    7,
			},
		},
		Bookmark: &Bookmark{
			Type:        BookmarkFishCrash,
			Tick:        1000,
			Description: "Test bookmark",
		},
	}

	path, err := SaveSnapshot(snapshot, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("Snapshot file not created at %s", path)
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}

	if loaded.Seed != snapshot.Seed {
		t.Errorf("Seed mismatch: got %d, want %d", loaded.Seed, snapshot.Seed)
	}
	if loaded.Tick != snapshot.Tick {
		t.Errorf("Tick mismatch: got %d, want %d", loaded.Tick, snapshot.Tick)
	}
	if len(loaded.Agents) != 2 {
		t.Fatalf("Agents count mismatch: got %d, want 2", len(loaded.Agents))
	}
	fish := loaded.Agents[0]
	if fish.Kind != components.KindFish || fish.Name != "Pla-1" || fish.Stats == nil || fish.Stats.Children != 2 {
		t.Errorf("fish agent not restored: %+v", fish)
	}
	if loaded.Agents[1].Meals != 7 {
		t.Errorf("shark meals = %d, want 7", loaded.Agents[1].Meals)
	}
	if loaded.Bookmark == nil {
		t.Error("Bookmark not loaded")
	} else if loaded.Bookmark.Type != snapshot.Bookmark.Type {
		t.Errorf("Bookmark type mismatch: got %s, want %s", loaded.Bookmark.Type, snapshot.Bookmark.Type)
	}
}

func TestSnapshotFilename(t *testing.T) {
	tmpDir := t.TempDir()

	snapshot := &Snapshot{
		Pond: "Pla",
		Tick: 5000,
		Bookmark: &Bookmark{
			Type: BookmarkFishExtinct,
			Tick: 5000,
		},
	}

	path, err := SaveSnapshot(snapshot, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if want := filepath.Join(tmpDir, "Pla_5000_fish_extinct.json"); path != want {
		t.Errorf("Path mismatch: got %s, want %s", path, want)
	}

	path, err = SaveSnapshot(&Snapshot{Pond: "big lake", Tick: 3000}, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if want := filepath.Join(tmpDir, "big_lake_3000.json"); path != want {
		t.Errorf("Path mismatch: got %s, want %s", path, want)
	}
}
